package output

import (
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
)

// EventType identifies what happened to a single archive member
type EventType string

const (
	// EventDirCreated reports a directory member materialized
	EventDirCreated EventType = "dir_created"
	// EventExtracted reports a file member written to the destination
	EventExtracted EventType = "extracted"
	// EventSkipped reports a file member left untouched
	EventSkipped EventType = "skipped"
	// EventSkipNotice marks the first skip of the run
	EventSkipNotice EventType = "skip_notice"
)

// Event is a single per-member notification emitted during extraction
type Event struct {
	Type   EventType
	Path   string
	Size   int64
	Reason string
}

// Formatter defines the interface for rendering extraction output.
// The driver emits structured events; each implementation decides how
// to present them.
type Formatter interface {
	// Start announces the run with precomputed totals over the file
	// members that will be considered
	Start(totalFiles int, totalBytes int64) error

	// Event renders a single member event
	Event(event Event) error

	// Complete renders the final report
	Complete(report *models.Report) error

	// Error reports a fatal failure that aborted the run
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
