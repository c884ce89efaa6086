package models

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// ============== ExtractOperation Tests ==============

func TestDigestAlgorithm(t *testing.T) {
	tests := []struct {
		algorithm DigestAlgorithm
		expected  string
	}{
		{DigestSHA256, "sha256"},
		{DigestBLAKE3, "blake3"},
	}

	for _, tt := range tests {
		t.Run(string(tt.algorithm), func(t *testing.T) {
			if string(tt.algorithm) != tt.expected {
				t.Errorf("DigestAlgorithm = %s, want %s", string(tt.algorithm), tt.expected)
			}
		})
	}
}

func TestSidecarMode(t *testing.T) {
	tests := []struct {
		mode     SidecarMode
		expected string
	}{
		{SidecarXattr, "xattr"},
		{SidecarShadow, "shadow"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if string(tt.mode) != tt.expected {
				t.Errorf("SidecarMode = %s, want %s", string(tt.mode), tt.expected)
			}
		})
	}
}

func TestExtractOperationValidate(t *testing.T) {
	valid := func() *ExtractOperation {
		return &ExtractOperation{
			ArchivePath: "/archives/site.zip",
			DestPath:    "/srv/site",
			Digest:      DigestSHA256,
			Sidecar:     SidecarXattr,
			BufferSize:  65536,
		}
	}

	t.Run("ValidOperation", func(t *testing.T) {
		op := valid()
		if err := op.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("EmptyArchivePath", func(t *testing.T) {
		op := valid()
		op.ArchivePath = ""
		err := op.Validate()
		if err == nil {
			t.Fatal("Validate() should fail for empty archive path")
		}
		if ve, ok := err.(*ValidationError); ok {
			if ve.Field != "ArchivePath" {
				t.Errorf("ValidationError.Field = %s, want ArchivePath", ve.Field)
			}
		}
	})

	t.Run("EmptyDestPath", func(t *testing.T) {
		op := valid()
		op.DestPath = ""
		err := op.Validate()
		if err == nil {
			t.Fatal("Validate() should fail for empty dest path")
		}
		if ve, ok := err.(*ValidationError); ok {
			if ve.Field != "DestPath" {
				t.Errorf("ValidationError.Field = %s, want DestPath", ve.Field)
			}
		}
	})

	t.Run("UnknownDigest", func(t *testing.T) {
		op := valid()
		op.Digest = "crc32"
		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for unknown digest algorithm")
		}
	})

	t.Run("UnknownSidecarMode", func(t *testing.T) {
		op := valid()
		op.Sidecar = "database"
		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for unknown sidecar mode")
		}
	})

	t.Run("SmallBufferSize", func(t *testing.T) {
		op := valid()
		op.BufferSize = 512
		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for small buffer size")
		}
	})

	t.Run("NegativeLimitRate", func(t *testing.T) {
		op := valid()
		op.LimitRate = -1
		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for negative rate limit")
		}
	})
}

func TestExtractOperationFields(t *testing.T) {
	now := time.Now()
	started := now.Add(-time.Second)

	op := &ExtractOperation{
		ID:              "op-123",
		ArchivePath:     "/archives/site.zip",
		DestPath:        "/srv/site",
		Digest:          DigestBLAKE3,
		Sidecar:         SidecarShadow,
		ExcludePatterns: []string{"*.log", ".git/"},
		DryRun:          true,
		LimitRate:       1024 * 1024,
		BufferSize:      65536,
		CreatedAt:       now,
		StartedAt:       &started,
	}

	if op.ID != "op-123" {
		t.Errorf("ID = %s, want op-123", op.ID)
	}
	if op.Digest != DigestBLAKE3 {
		t.Errorf("Digest = %s, want blake3", op.Digest)
	}
	if op.Sidecar != SidecarShadow {
		t.Errorf("Sidecar = %s, want shadow", op.Sidecar)
	}
	if !op.DryRun {
		t.Error("DryRun should be true")
	}
	if len(op.ExcludePatterns) != 2 {
		t.Errorf("ExcludePatterns length = %d, want 2", len(op.ExcludePatterns))
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "TestField: test message"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

// ============== Report Tests ==============

func TestRunStatus(t *testing.T) {
	tests := []struct {
		status   RunStatus
		expected string
	}{
		{StatusSuccess, "success"},
		{StatusFailed, "failed"},
		{StatusCancelled, "cancelled"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if string(tt.status) != tt.expected {
				t.Errorf("RunStatus = %s, want %s", string(tt.status), tt.expected)
			}
		})
	}
}

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status   RunStatus
		expected int
	}{
		{StatusSuccess, ExitOK},
		{StatusFailed, ExitFailure},
		{StatusCancelled, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if code := tt.status.ExitCode(); code != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", code, tt.expected)
			}
		})
	}
}

// ============== Exit Code Mapping Tests ==============

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Nil", nil, ExitOK},
		{"Usage", ErrUsage, ExitUsage},
		{"WrappedUsage", fmt.Errorf("%w: expected exactly one archive path", ErrUsage), ExitUsage},
		{"ArchiveNotFound", ErrArchiveNotFound, ExitNoArchive},
		{"WrappedArchiveNotFound", fmt.Errorf("%w: /tmp/missing.zip", ErrArchiveNotFound), ExitNoArchive},
		{"GenericFailure", errors.New("disk full"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := ExitCode(tt.err); code != tt.expected {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, code, tt.expected)
			}
		})
	}
}
