package sidecar

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"github.com/pkg/xattr"
)

// attrPrefix namespaces record names under the user namespace, which is
// the only namespace unprivileged processes may write on Linux
const attrPrefix = "user.unzipskip."

// XattrStore persists records as extended attributes on the files
// themselves. This is the default store: records travel with the file on
// rename and disappear with it on delete.
type XattrStore struct{}

// NewXattrStore creates an extended attribute store
func NewXattrStore() *XattrStore {
	return &XattrStore{}
}

// Read returns the record attached to path under name
func (s *XattrStore) Read(ctx context.Context, path, name string) (string, bool, error) {
	value, err := xattr.Get(path, attrPrefix+name)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, xattr.ENOATTR):
			return "", false, nil
		case isUnsupported(err):
			return "", false, fmt.Errorf("%w: %s", ErrUnsupported, path)
		default:
			return "", false, fmt.Errorf("failed to read attribute %s on %s: %w", name, path, err)
		}
	}
	return string(value), true, nil
}

// Write attaches or replaces the record for name on path
func (s *XattrStore) Write(ctx context.Context, path, name, value string) error {
	if err := xattr.Set(path, attrPrefix+name, []byte(value)); err != nil {
		if isUnsupported(err) {
			return fmt.Errorf("%w: %s", ErrUnsupported, path)
		}
		return fmt.Errorf("failed to write attribute %s on %s: %w", name, path, err)
	}
	return nil
}

// Name returns the store name
func (s *XattrStore) Name() string {
	return "xattr"
}

// isUnsupported reports whether err means the filesystem has no extended
// attribute support at all
func isUnsupported(err error) bool {
	return errors.Is(err, syscall.ENOTSUP) || errors.Is(err, syscall.EOPNOTSUPP)
}
