package sidecar

import (
	"context"
	"errors"
)

// ErrUnsupported indicates the destination filesystem cannot persist
// fingerprint records. Callers must treat this as fatal; there is no
// automatic fallback to another store.
var ErrUnsupported = errors.New("sidecar storage not supported by filesystem")

// Store persists small named records attached to files, outside the file
// content itself. Records survive rewrites of the file performed by other
// programs, which is exactly what makes them usable as change fingerprints.
type Store interface {
	// Read returns the record value attached to path under name.
	// A missing file or a missing record is not an error: both report
	// ok=false with a nil error. Structural failures, including an
	// unsupported filesystem, return an error.
	Read(ctx context.Context, path, name string) (value string, ok bool, err error)

	// Write attaches or replaces the record value for name on path.
	// An unsupported filesystem returns an error wrapping ErrUnsupported.
	Write(ctx context.Context, path, name, value string) error

	// Name returns the store name
	Name() string
}
