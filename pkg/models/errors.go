package models

import (
	"errors"
)

// Exit codes returned by the unzipskip binary
const (
	// ExitOK indicates success
	ExitOK = 0
	// ExitFailure indicates a fatal extraction or fingerprint failure
	ExitFailure = 1
	// ExitUsage indicates a malformed command line
	ExitUsage = 2
	// ExitNoArchive indicates the archive file does not exist
	ExitNoArchive = 3
)

var (
	// ErrUsage marks command line errors so they map to ExitUsage
	ErrUsage = errors.New("invalid usage")

	// ErrArchiveNotFound marks a missing archive file so it maps to ExitNoArchive
	ErrArchiveNotFound = errors.New("archive not found")
)

// ExitCode maps an error returned by the CLI to a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrArchiveNotFound):
		return ExitNoArchive
	default:
		return ExitFailure
	}
}
