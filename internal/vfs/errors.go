package vfs

import (
	"fmt"
	"io/fs"
)

// ArchiveError reports an archive that could not be opened or is malformed.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("couldn't load archive: %v", e.Err)
	}
	return fmt.Sprintf("couldn't load archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// Cause lets github.com/pkg/errors.Cause see through the wrapper.
func (e *ArchiveError) Cause() error { return e.Err }

// PathNotFoundError reports a path with no matching node.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("Path %s does not exist", e.Path)
}

// Is makes the error match fs.ErrNotExist.
func (e *PathNotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// NotADirectoryError reports a path that names a file where a directory is
// required.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("%s is not a directory", e.Path)
}
