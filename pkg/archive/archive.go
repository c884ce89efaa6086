package archive

import (
	"io"
	"io/fs"
	"time"
)

// Entry describes a single member of an archive
type Entry interface {
	// Name returns the member path relative to the archive root,
	// using forward slashes
	Name() string

	// IsDir reports whether the member is a directory
	IsDir() bool

	// Size returns the declared uncompressed size in bytes
	Size() int64

	// Mode returns the member's file mode
	Mode() fs.FileMode

	// ModTime returns the member's modification time
	ModTime() time.Time

	// Open returns a reader over the member's uncompressed content
	Open() (io.ReadCloser, error)
}

// Reader provides access to the members of an opened archive
// Implementations include zip; other formats can be added behind
// the same interface.
type Reader interface {
	// Entries returns all members in archive order
	Entries() []Entry

	// Close releases any resources held by the reader
	Close() error
}
