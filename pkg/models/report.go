package models

import (
	"time"
)

// Report represents the results of an extraction run
type Report struct {
	// Operation details
	OperationID string
	ArchivePath string
	DestPath    string
	DryRun      bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Overall status
	Status RunStatus
}

// Statistics holds extraction run metrics
type Statistics struct {
	// Archive entries processed, directories included (excluded entries not counted)
	EntriesScanned int

	// Entries filtered out by exclude patterns
	EntriesExcluded int

	// Files written to the destination
	FilesExtracted int

	// Files left untouched because their content is unchanged
	FilesSkipped int

	// Directories created in the destination
	DirsCreated int

	// Bytes written to the destination
	BytesWritten int64
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusSuccess indicates the run completed without errors
	StatusSuccess RunStatus = "success"
	// StatusFailed indicates the run aborted on a fatal error
	StatusFailed RunStatus = "failed"
	// StatusCancelled indicates the run was cancelled
	StatusCancelled RunStatus = "cancelled"
)

// ExitCode returns the process exit code for the run status
func (s RunStatus) ExitCode() int {
	if s == StatusSuccess {
		return ExitOK
	}
	return ExitFailure
}
