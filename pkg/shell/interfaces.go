package shell

import (
	"io"
	"io/fs"
)

// Navigator is the session's view of the snapshot.
type Navigator interface {
	List() ([]string, error)
	ChangeDirectory(path string) error
	CurrentPath() string
	// FS exposes the subtree rooted at the current directory.
	FS() (fs.FS, error)
}

type Parser interface {
	Parse(line string) ([]string, error)
}

type FileOpener interface {
	OpenRead(name string) (io.ReadCloser, error)
}
