package vfs

import (
	"sort"
)

// Node is either a *Dir or a *File.
type Node interface {
	isNode()
}

// Dir maps child names to nodes.
type Dir struct {
	children map[string]Node
}

// File is a leaf. Its content is never read.
type File struct{}

func (*Dir) isNode()  {}
func (*File) isNode() {}

func NewDir() *Dir {
	return &Dir{children: make(map[string]Node)}
}

// Child returns the node stored under name.
func (d *Dir) Child(name string) (Node, bool) {
	n, ok := d.children[name]
	return n, ok
}

// Names returns the child names in lexical order.
func (d *Dir) Names() []string {
	names := make([]string, 0, len(d.children))
	for name := range d.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Dir) set(name string, n Node) {
	d.children[name] = n
}

// IsDir reports whether n is a directory.
func IsDir(n Node) bool {
	_, ok := n.(*Dir)
	return ok
}

// Tree is the read-only snapshot built by Load. The zero value is not usable.
type Tree struct {
	root *Dir
}

// NewTree wraps root. A nil root yields an empty tree.
func NewTree(root *Dir) *Tree {
	if root == nil {
		root = NewDir()
	}
	return &Tree{root: root}
}

func (t *Tree) Root() *Dir {
	return t.root
}

// Lookup walks from the root to the node named by the absolute path p.
// Empty segments are skipped, so "/", "" and "//a//" are all accepted.
func (t *Tree) Lookup(p string) (Node, error) {
	var current Node = t.root

	for _, segment := range splitPath(p) {
		dir, ok := current.(*Dir)
		if !ok {
			// a file has no children, so the segment is simply absent
			return nil, &PathNotFoundError{Path: displayPath(p)}
		}

		child, ok := dir.Child(segment)
		if !ok {
			return nil, &PathNotFoundError{Path: displayPath(p)}
		}
		current = child
	}

	return current, nil
}

// LookupDir is Lookup that also requires the node to be a directory.
func (t *Tree) LookupDir(p string) (*Dir, error) {
	n, err := t.Lookup(p)
	if err != nil {
		return nil, err
	}

	dir, ok := n.(*Dir)
	if !ok {
		return nil, &NotADirectoryError{Path: displayPath(p)}
	}
	return dir, nil
}
