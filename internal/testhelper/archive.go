package testhelper

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// ArchiveEntry is a tar entry. Names ending in "/" are written as directories.
type ArchiveEntry struct {
	Name    string
	Content string
}

// Dir and File are shorthands for building entry lists.
func Dir(name string) ArchiveEntry  { return ArchiveEntry{Name: strings.TrimSuffix(name, "/") + "/"} }
func File(name string) ArchiveEntry { return ArchiveEntry{Name: name, Content: name} }

// MustCreateTar writes entries, in order, into an uncompressed tar archive.
func MustCreateTar(tb testing.TB, entries ...ArchiveEntry) *bytes.Buffer {
	tb.Helper()

	var buffer bytes.Buffer
	writeTar(tb, &buffer, entries)
	return &buffer
}

// MustCreateTarGz is MustCreateTar followed by gzip compression.
func MustCreateTarGz(tb testing.TB, entries ...ArchiveEntry) *bytes.Buffer {
	tb.Helper()

	return createCompressedTar(tb, entries, func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	})
}

// MustCreateTarBz2 is MustCreateTar followed by bzip2 compression.
func MustCreateTarBz2(tb testing.TB, entries ...ArchiveEntry) *bytes.Buffer {
	tb.Helper()

	return createCompressedTar(tb, entries, func(w io.Writer) (io.WriteCloser, error) {
		return bzip2.NewWriter(w, nil)
	})
}

// MustCreateTarXz is MustCreateTar followed by xz compression.
func MustCreateTarXz(tb testing.TB, entries ...ArchiveEntry) *bytes.Buffer {
	tb.Helper()

	return createCompressedTar(tb, entries, func(w io.Writer) (io.WriteCloser, error) {
		return xz.NewWriter(w)
	})
}

func createCompressedTar(
	tb testing.TB, entries []ArchiveEntry, newCompressor func(io.Writer) (io.WriteCloser, error),
) *bytes.Buffer {
	tb.Helper()

	var buffer bytes.Buffer
	compressor, err := newCompressor(&buffer)
	require.NoError(tb, err)
	writeTar(tb, compressor, entries)
	require.NoError(tb, compressor.Close())
	return &buffer
}

// MustWriteFile stores content in a file under a fresh temporary directory and
// returns its path.
func MustWriteFile(tb testing.TB, name string, content io.Reader) string {
	tb.Helper()

	target := filepath.Join(tb.TempDir(), name)
	data, err := io.ReadAll(content)
	require.NoError(tb, err)
	require.NoError(tb, os.WriteFile(target, data, 0o600))
	return target
}

func writeTar(tb testing.TB, w io.Writer, entries []ArchiveEntry) {
	tb.Helper()

	writer := tar.NewWriter(w)
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name, "/") {
			require.NoError(tb, writer.WriteHeader(&tar.Header{
				Name:     entry.Name,
				Typeflag: tar.TypeDir,
				Mode:     0o755,
			}))
			continue
		}

		require.NoError(tb, writer.WriteHeader(&tar.Header{
			Name:     entry.Name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(entry.Content)),
		}))
		_, err := writer.Write([]byte(entry.Content))
		require.NoError(tb, err)
	}
	require.NoError(tb, writer.Close())
}
