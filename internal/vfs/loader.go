package vfs

import (
	"archive/tar"
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
)

// sniffLen covers the ustar magic at offset 257.
const sniffLen = 262

// LoadFile reads the archive at name into a Tree.
func LoadFile(logger logrus.FieldLogger, name string) (*Tree, error) {
	file, err := os.Open(filepath.Clean(name))
	if err != nil {
		return nil, &ArchiveError{Path: name, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).WithField("archive", name).Warn("couldn't close archive")
		}
	}()

	tree, err := Load(logger.WithField("archive", name), file)
	if err != nil {
		var archiveErr *ArchiveError
		if errors.As(err, &archiveErr) {
			archiveErr.Path = name
		}
		return nil, err
	}
	return tree, nil
}

// Load builds a Tree from a plain or compressed (gzip, bzip2, xz) tar stream.
// Only entry names and types are read. Every failure is an *ArchiveError.
func Load(logger logrus.FieldLogger, r io.Reader) (*Tree, error) {
	buffered := bufio.NewReaderSize(r, sniffLen)

	head, err := buffered.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &ArchiveError{Err: errors.Wrap(err, "couldn't read archive header")}
	}
	if len(head) == 0 {
		return nil, &ArchiveError{Err: errors.New("empty archive")}
	}

	tarReader, format, err := newTarReader(head, buffered)
	if err != nil {
		return nil, &ArchiveError{Err: err}
	}

	tree, entries, err := build(tarReader)
	if err != nil {
		return nil, &ArchiveError{Err: err}
	}

	logger.WithFields(logrus.Fields{
		"format":  format,
		"entries": entries,
	}).Debug("loaded archive snapshot")

	return tree, nil
}

func newTarReader(head []byte, r io.Reader) (*tar.Reader, string, error) {
	switch {
	case filetype.Is(head, "tar"):
		return tar.NewReader(r), "tar", nil

	case filetype.Is(head, "gz"):
		uncompressed, err := gzip.NewReader(r)
		if err != nil {
			return nil, "", errors.Wrap(err, "couldn't create a gzip decompressor")
		}
		return tar.NewReader(uncompressed), "gz", nil

	case filetype.Is(head, "bz2"):
		return tar.NewReader(bzip2.NewReader(r)), "bz2", nil

	case filetype.Is(head, "xz"):
		uncompressed, err := xz.NewReader(r)
		if err != nil {
			return nil, "", errors.Wrap(err, "couldn't create an xz decompressor")
		}
		return tar.NewReader(uncompressed), "xz", nil
	}

	if filetype.IsArchive(head) {
		kind, _ := filetype.Match(head)
		return nil, "", errors.Errorf(
			"unsupported archive type: %s (.%s)", kind.MIME.Value, kind.Extension,
		)
	}

	// pre-POSIX tar headers carry no magic, so anything unrecognized is tried as tar
	return tar.NewReader(r), "tar", nil
}

func build(tarReader *tar.Reader) (*Tree, int, error) {
	root := NewDir()
	entries := 0

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, entries, errors.Wrap(err, "couldn't read archive entry")
		}

		segments, err := entrySegments(header.Name)
		if err != nil {
			return nil, entries, err
		}
		if len(segments) == 0 {
			// the archive root itself
			continue
		}

		if err := insert(root, segments, header.Typeflag == tar.TypeDir); err != nil {
			return nil, entries, errors.Wrapf(err, "couldn't add entry %s", header.Name)
		}
		entries++
	}

	return NewTree(root), entries, nil
}

func entrySegments(name string) ([]string, error) {
	var segments []string
	for _, segment := range strings.Split(name, "/") {
		switch segment {
		case "", ".":
			continue
		case "..":
			return nil, errors.Errorf("entry %s escapes the archive root", name)
		}
		segments = append(segments, segment)
	}
	return segments, nil
}

// insert places the node for segments under root, creating missing parents.
// A later entry replaces an earlier one with the same path, except that a
// directory entry never discards an existing directory's children.
func insert(root *Dir, segments []string, isDir bool) error {
	parent := root

	for i, segment := range segments[:len(segments)-1] {
		child, ok := parent.Child(segment)
		if !ok {
			dir := NewDir()
			parent.set(segment, dir)
			parent = dir
			continue
		}

		dir, ok := child.(*Dir)
		if !ok {
			return errors.Errorf("%s is a file", Root+strings.Join(segments[:i+1], "/"))
		}
		parent = dir
	}

	name := segments[len(segments)-1]

	if !isDir {
		parent.set(name, &File{})
		return nil
	}

	if existing, ok := parent.Child(name); ok && IsDir(existing) {
		return nil
	}
	parent.set(name, NewDir())
	return nil
}
