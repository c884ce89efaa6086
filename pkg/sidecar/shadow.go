package sidecar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// shadowDir is the per-directory folder holding record files
const shadowDir = ".unzipskip"

// ShadowStore persists records as small files in a .unzipskip folder next
// to each tracked file. It exists for filesystems without extended
// attribute support and is only ever selected explicitly; nothing falls
// back to it automatically.
//
// Rewriting or truncating the tracked file leaves its shadow record in
// place, so the store has the same independence property as extended
// attributes. Deleting the tracked file orphans the record, which is
// acceptable: orphaned records are never consulted.
type ShadowStore struct{}

// NewShadowStore creates a shadow file store
func NewShadowStore() *ShadowStore {
	return &ShadowStore{}
}

// recordPath returns the shadow file holding the record for path/name
func (s *ShadowStore) recordPath(path, name string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	return filepath.Join(dir, shadowDir, base+"."+name)
}

// Read returns the record attached to path under name
func (s *ShadowStore) Read(ctx context.Context, path, name string) (string, bool, error) {
	data, err := os.ReadFile(s.recordPath(path, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read record for %s: %w", path, err)
	}
	return strings.TrimSuffix(string(data), "\n"), true, nil
}

// Write attaches or replaces the record for name on path. The record file
// is written to a temporary name and renamed into place so readers never
// observe a partial record.
func (s *ShadowStore) Write(ctx context.Context, path, name, value string) error {
	recordPath := s.recordPath(path, name)

	if err := os.MkdirAll(filepath.Dir(recordPath), 0755); err != nil {
		return fmt.Errorf("failed to create record directory for %s: %w", path, err)
	}

	tmpPath := recordPath + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(value+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write record for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, recordPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace record for %s: %w", path, err)
	}

	return nil
}

// Name returns the store name
func (s *ShadowStore) Name() string {
	return "shadow"
}
