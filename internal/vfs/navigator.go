package vfs

import (
	"sort"

	"github.com/pkg/errors"
)

// Navigator tracks the current directory inside a Tree.
type Navigator struct {
	tree *Tree
	cwd  string
}

// NewNavigator starts at the root of tree.
func NewNavigator(tree *Tree) *Navigator {
	return &Navigator{
		tree: tree,
		cwd:  Root,
	}
}

func (n *Navigator) Tree() *Tree {
	return n.tree
}

// CurrentPath returns the absolute path of the current directory.
func (n *Navigator) CurrentPath() string {
	return n.cwd
}

// List returns the names in the current directory, directories suffixed with
// "/". The result is sorted after the suffix is applied.
func (n *Navigator) List() ([]string, error) {

	dir, err := n.tree.LookupDir(n.cwd)
	if err != nil {
		return nil, err
	}

	names := dir.Names()
	for i, name := range names {
		child, _ := dir.Child(name)
		if IsDir(child) {
			names[i] = name + "/"
		}
	}
	sort.Strings(names)

	return names, nil
}

// ChangeDirectory moves to p, resolved against the current directory. The
// current directory is left untouched unless p names an existing directory.
// A file target is reported under p as given.
func (n *Navigator) ChangeDirectory(p string) error {

	target := Resolve(n.cwd, p)

	if _, err := n.tree.LookupDir(target); err != nil {
		var notDir *NotADirectoryError
		if errors.As(err, &notDir) {
			return &NotADirectoryError{Path: p}
		}
		return err
	}

	n.cwd = target
	return nil
}

// Lookup resolves p against the current directory and returns its node.
func (n *Navigator) Lookup(p string) (Node, error) {
	return n.tree.Lookup(Resolve(n.cwd, p))
}
