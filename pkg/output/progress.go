package output

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
)

// ProgressFormatter renders a byte-level progress bar. Skipped members
// advance the bar too, since the decision step digests their full
// content either way.
type ProgressFormatter struct {
	writer io.Writer
	bar    *pb.ProgressBar
}

// NewProgressFormatter creates a progress bar formatter writing to w
func NewProgressFormatter(w io.Writer) *ProgressFormatter {
	if w == nil {
		w = io.Discard
	}
	return &ProgressFormatter{writer: w}
}

// Start brings up the bar sized to the run's total bytes
func (f *ProgressFormatter) Start(totalFiles int, totalBytes int64) error {
	f.bar = pb.New64(totalBytes).
		SetTemplate(pb.Full).
		Set(pb.Bytes, true).
		SetWriter(f.writer).
		Start()
	return nil
}

// Event advances the bar. The one-time skip notice is suppressed here
// because interleaved lines garble an active bar; the summary carries
// the skip count instead.
func (f *ProgressFormatter) Event(event Event) error {
	if f.bar == nil {
		return nil
	}

	switch event.Type {
	case EventExtracted, EventSkipped:
		f.bar.Add64(event.Size)
	}

	return nil
}

// Complete finishes the bar and displays the summary
func (f *ProgressFormatter) Complete(report *models.Report) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	writeSummary(f.writer, report)
	return nil
}

// Error finishes the bar and reports a fatal failure
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	fmt.Fprintf(f.writer, "Extraction failed: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
