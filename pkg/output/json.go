package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
)

// JSONFormatter buffers events and emits a single JSON document after
// the run, for automation and scripting
type JSONFormatter struct {
	writer     io.Writer
	totalFiles int
	totalBytes int64
	entries    []JSONEntry
}

// JSONEntry is one member event in the output document
type JSONEntry struct {
	Type   string `json:"type"`
	Path   string `json:"path"`
	Size   int64  `json:"size,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// JSONStats mirrors the run counters
type JSONStats struct {
	EntriesScanned  int   `json:"entries_scanned"`
	EntriesExcluded int   `json:"entries_excluded,omitempty"`
	FilesExtracted  int   `json:"files_extracted"`
	FilesSkipped    int   `json:"files_skipped"`
	DirsCreated     int   `json:"dirs_created"`
	BytesWritten    int64 `json:"bytes_written"`
}

// JSONReport is the document emitted after a completed run
type JSONReport struct {
	OperationID string      `json:"operation_id"`
	Archive     string      `json:"archive"`
	Dest        string      `json:"dest"`
	DryRun      bool        `json:"dry_run,omitempty"`
	Status      string      `json:"status"`
	Duration    string      `json:"duration"`
	DurationMs  int64       `json:"duration_ms"`
	Stats       JSONStats   `json:"stats"`
	Entries     []JSONEntry `json:"entries,omitempty"`
}

// JSONError is the document emitted when a run aborts
type JSONError struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// NewJSONFormatter creates a JSON formatter writing to w
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = io.Discard
	}
	return &JSONFormatter{
		writer:  w,
		entries: make([]JSONEntry, 0),
	}
}

// Start records the run totals
func (f *JSONFormatter) Start(totalFiles int, totalBytes int64) error {
	f.totalFiles = totalFiles
	f.totalBytes = totalBytes
	return nil
}

// Event buffers a member event for the final document. The first-skip
// notice is presentation for humans and is not part of the document.
func (f *JSONFormatter) Event(event Event) error {
	if event.Type == EventSkipNotice {
		return nil
	}

	f.entries = append(f.entries, JSONEntry{
		Type:   string(event.Type),
		Path:   event.Path,
		Size:   event.Size,
		Reason: event.Reason,
	})
	return nil
}

// Complete emits the final document
func (f *JSONFormatter) Complete(report *models.Report) error {
	doc := JSONReport{
		OperationID: report.OperationID,
		Archive:     report.ArchivePath,
		Dest:        report.DestPath,
		DryRun:      report.DryRun,
		Status:      string(report.Status),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStats{
			EntriesScanned:  report.Stats.EntriesScanned,
			EntriesExcluded: report.Stats.EntriesExcluded,
			FilesExtracted:  report.Stats.FilesExtracted,
			FilesSkipped:    report.Stats.FilesSkipped,
			DirsCreated:     report.Stats.DirsCreated,
			BytesWritten:    report.Stats.BytesWritten,
		},
		Entries: f.entries,
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// Error emits an error document so aborted runs still produce
// parseable output
func (f *JSONFormatter) Error(err error) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(JSONError{
		Status: string(models.StatusFailed),
		Error:  err.Error(),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
