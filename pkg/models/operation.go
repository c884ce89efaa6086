package models

import (
	"time"
)

// DigestAlgorithm selects the content digest used for fingerprints
type DigestAlgorithm string

const (
	// DigestSHA256 fingerprints content with SHA-256
	DigestSHA256 DigestAlgorithm = "sha256"
	// DigestBLAKE3 fingerprints content with BLAKE3
	DigestBLAKE3 DigestAlgorithm = "blake3"
)

// SidecarMode selects where fingerprint records are persisted
type SidecarMode string

const (
	// SidecarXattr stores fingerprints as extended attributes on the files
	SidecarXattr SidecarMode = "xattr"
	// SidecarShadow stores fingerprints in per-directory shadow files
	SidecarShadow SidecarMode = "shadow"
)

// ExtractOperation represents an extraction run configuration
type ExtractOperation struct {
	ID              string
	ArchivePath     string
	DestPath        string
	Digest          DigestAlgorithm
	Sidecar         SidecarMode
	ExcludePatterns []string
	DryRun          bool
	LimitRate       int64 // bytes per second, 0 = unlimited
	BufferSize      int
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// Validate checks if the operation configuration is valid
func (op *ExtractOperation) Validate() error {
	if op.ArchivePath == "" {
		return &ValidationError{Field: "ArchivePath", Message: "archive path is required"}
	}
	if op.DestPath == "" {
		return &ValidationError{Field: "DestPath", Message: "destination path is required"}
	}
	switch op.Digest {
	case DigestSHA256, DigestBLAKE3:
	default:
		return &ValidationError{Field: "Digest", Message: "digest algorithm must be 'sha256' or 'blake3'"}
	}
	switch op.Sidecar {
	case SidecarXattr, SidecarShadow:
	default:
		return &ValidationError{Field: "Sidecar", Message: "sidecar mode must be 'xattr' or 'shadow'"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	if op.LimitRate < 0 {
		return &ValidationError{Field: "LimitRate", Message: "rate limit cannot be negative"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
