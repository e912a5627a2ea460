package vfs

import (
	"path"
	"strings"
)

// Root is the absolute path of the snapshot root.
const Root = "/"

// Resolve turns p into a normalized absolute path relative to cwd, which must
// itself be absolute and normalized. It never touches the tree, so the result
// may name a node that does not exist.
func Resolve(cwd, p string) string {

	switch {
	case strings.HasPrefix(p, "/"):
		return path.Clean(p)

	case p == "..":
		// path.Dir("/") is "/", so the root is its own parent
		return path.Dir(cwd)

	default:
		// Join cleans, which resolves "." and ".." lexically and never
		// climbs above the root
		return path.Join(cwd, p)
	}
}

func splitPath(p string) []string {
	var segments []string
	for _, segment := range strings.Split(p, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func displayPath(p string) string {
	return Root + strings.Join(splitPath(p), "/")
}

// relPath converts an absolute path into an io/fs name ("." for the root).
func relPath(abs string) string {
	segments := splitPath(abs)
	if len(segments) == 0 {
		return "."
	}
	return strings.Join(segments, "/")
}
