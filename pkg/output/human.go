package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
)

// HumanFormatter renders events as plain lines for terminal use
type HumanFormatter struct {
	writer     io.Writer
	totalFiles int
	extracted  int
}

// NewHumanFormatter creates a human-readable formatter writing to w
func NewHumanFormatter(w io.Writer) *HumanFormatter {
	if w == nil {
		w = io.Discard
	}
	return &HumanFormatter{writer: w}
}

// Start announces the run
func (f *HumanFormatter) Start(totalFiles int, totalBytes int64) error {
	f.totalFiles = totalFiles
	fmt.Fprintf(f.writer, "Extracting: %d files, %s total\n",
		totalFiles, humanize.IBytes(uint64(totalBytes)))
	return nil
}

// Event renders a single member event. Skipped members stay silent
// beyond the one-time notice to keep the output readable on large
// unchanged trees.
func (f *HumanFormatter) Event(event Event) error {
	switch event.Type {
	case EventExtracted:
		f.extracted++
		fmt.Fprintf(f.writer, "  extracted %s (%s)\n",
			event.Path, humanize.IBytes(uint64(event.Size)))

	case EventSkipNotice:
		fmt.Fprintf(f.writer, "Note: %s is unchanged, skipping (further unchanged files are not reported)\n",
			event.Path)
	}

	return nil
}

// Complete finalizes output and displays the summary
func (f *HumanFormatter) Complete(report *models.Report) error {
	writeSummary(f.writer, report)
	return nil
}

// Error reports a fatal failure
func (f *HumanFormatter) Error(err error) error {
	fmt.Fprintf(f.writer, "Extraction failed: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// writeSummary renders the closing summary block shared by the human
// and progress formatters
func writeSummary(w io.Writer, report *models.Report) {
	heading := "Extraction completed"
	if report.DryRun {
		heading = "Dry run completed"
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s in %s\n", heading, report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Entries scanned:  %d\n", report.Stats.EntriesScanned)
	if report.Stats.EntriesExcluded > 0 {
		fmt.Fprintf(w, "  Entries excluded: %d\n", report.Stats.EntriesExcluded)
	}
	fmt.Fprintf(w, "  Files extracted:  %d\n", report.Stats.FilesExtracted)
	fmt.Fprintf(w, "  Files skipped:    %d\n", report.Stats.FilesSkipped)
	fmt.Fprintf(w, "  Dirs created:     %d\n", report.Stats.DirsCreated)
	fmt.Fprintf(w, "  Data written:     %s\n", humanize.IBytes(uint64(report.Stats.BytesWritten)))

	if report.Duration.Seconds() > 0 && report.Stats.BytesWritten > 0 {
		avgSpeed := float64(report.Stats.BytesWritten) / report.Duration.Seconds()
		fmt.Fprintf(w, "  Average speed:    %s/s\n", humanize.IBytes(uint64(avgSpeed)))
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Status: %s\n", report.Status)
}
