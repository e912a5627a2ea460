package shell

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Default file opener uses real file system in device
type DefaultFileOpener struct{}

func (fp *DefaultFileOpener) OpenRead(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Clean(name))
}

// FSOpener reads from an fs.FS, e.g. an embedded or in-memory tree of scripts.
type FSOpener struct {
	FS fs.FS
}

func (fp *FSOpener) OpenRead(name string) (io.ReadCloser, error) {
	return fp.FS.Open(name)
}
