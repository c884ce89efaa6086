package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
)

// ZipReader reads members from a zip archive
type ZipReader struct {
	rc *zip.ReadCloser
}

// OpenZip opens the zip archive at path. A missing archive is reported
// as models.ErrArchiveNotFound so callers can map it to a dedicated
// exit code.
func OpenZip(path string) (*ZipReader, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrArchiveNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("archive path is a directory: %s", path)
	}

	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// Method 93 (Zstandard) needs a registered decompressor
	rc.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	return &ZipReader{rc: rc}, nil
}

// Entries returns all members in archive order
func (r *ZipReader) Entries() []Entry {
	entries := make([]Entry, 0, len(r.rc.File))
	for _, file := range r.rc.File {
		entries = append(entries, &zipEntry{file: file})
	}
	return entries
}

// Close closes the underlying archive file
func (r *ZipReader) Close() error {
	return r.rc.Close()
}

// zipEntry adapts a zip member to the Entry interface
type zipEntry struct {
	file *zip.File
}

func (e *zipEntry) Name() string {
	return e.file.Name
}

func (e *zipEntry) IsDir() bool {
	return e.file.FileInfo().IsDir()
}

func (e *zipEntry) Size() int64 {
	return int64(e.file.UncompressedSize64)
}

func (e *zipEntry) Mode() fs.FileMode {
	return e.file.Mode()
}

func (e *zipEntry) ModTime() time.Time {
	return e.file.Modified
}

func (e *zipEntry) Open() (io.ReadCloser, error) {
	rc, err := e.file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive member %s: %w", e.file.Name, err)
	}
	return rc, nil
}
