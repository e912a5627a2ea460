package vfs

import (
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/pkg/errors"
)

// Tree: fs.FS

// Open opens the named node. Regular files always read as empty.
func (t *Tree) Open(name string) (fs.File, error) {
	n, err := t.node("open", name)
	if err != nil {
		return nil, err
	}
	return &openNode{name: name, node: n}, nil
}

// Tree: fs.StatFS

func (t *Tree) Stat(name string) (fs.FileInfo, error) {
	n, err := t.node("stat", name)
	if err != nil {
		return nil, err
	}
	return nodeInfo{name: path.Base(name), node: n}, nil
}

// Tree: fs.ReadDirFS

func (t *Tree) ReadDir(name string) ([]fs.DirEntry, error) {
	n, err := t.node("readdir", name)
	if err != nil {
		return nil, err
	}
	dir, ok := n.(*Dir)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: &NotADirectoryError{Path: displayPath(name)}}
	}
	return dirEntries(dir), nil
}

func (t *Tree) node(op, name string) (Node, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	abs := Root + name
	if name == "." {
		abs = Root
	}
	n, err := t.Lookup(abs)
	if err != nil {
		return nil, &fs.PathError{Op: op, Path: name, Err: err}
	}
	return n, nil
}

// FS returns the subtree rooted at the current directory.
func (n *Navigator) FS() (fs.FS, error) {
	sub, err := fs.Sub(n.tree, relPath(n.cwd))
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open %s", n.cwd)
	}
	return sub, nil
}

func dirEntries(dir *Dir) []fs.DirEntry {
	names := dir.Names()
	entries := make([]fs.DirEntry, 0, len(names))
	for _, name := range names {
		child, _ := dir.Child(name)
		entries = append(entries, fs.FileInfoToDirEntry(nodeInfo{name: name, node: child}))
	}
	return entries
}

// nodeInfo

type nodeInfo struct {
	name string
	node Node
}

func (i nodeInfo) Name() string {
	if i.name == "." || i.name == "" {
		return Root
	}
	return i.name
}

func (i nodeInfo) Size() int64 { return 0 }

func (i nodeInfo) Mode() fs.FileMode {
	if i.IsDir() {
		return fs.ModeDir | 0o555
	}
	return 0o444
}

func (i nodeInfo) ModTime() time.Time { return time.Time{} }
func (i nodeInfo) IsDir() bool        { return IsDir(i.node) }
func (i nodeInfo) Sys() any           { return nil }

// openNode

type openNode struct {
	name    string
	node    Node
	entries []fs.DirEntry
	read    bool
}

func (f *openNode) Stat() (fs.FileInfo, error) {
	return nodeInfo{name: path.Base(f.name), node: f.node}, nil
}

func (f *openNode) Read([]byte) (int, error) {
	if IsDir(f.node) {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: errors.New("is a directory")}
	}
	return 0, io.EOF
}

func (f *openNode) Close() error {
	return nil
}

// openNode: fs.ReadDirFile

func (f *openNode) ReadDir(count int) ([]fs.DirEntry, error) {
	dir, ok := f.node.(*Dir)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: f.name, Err: &NotADirectoryError{Path: displayPath(f.name)}}
	}
	if !f.read {
		f.entries = dirEntries(dir)
		f.read = true
	}

	if count <= 0 {
		entries := f.entries
		f.entries = nil
		return entries, nil
	}

	if len(f.entries) == 0 {
		return nil, io.EOF
	}
	if count > len(f.entries) {
		count = len(f.entries)
	}
	entries := f.entries[:count:count]
	f.entries = f.entries[count:]
	return entries, nil
}
