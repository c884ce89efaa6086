package extract

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/archive"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/logging"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/output"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/ratelimit"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/sidecar"
)

// Extractor orchestrates an extraction run over all archive members
type Extractor struct {
	reader    archive.Reader
	decider   *Decider
	store     sidecar.Store
	formatter output.Formatter
	logger    logging.Logger
	operation *models.ExtractOperation
	limiter   *ratelimit.Limiter

	noticeShown bool
}

// NewExtractor creates a new extractor
func NewExtractor(
	reader archive.Reader,
	decider *Decider,
	store sidecar.Store,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.ExtractOperation,
) *Extractor {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	return &Extractor{
		reader:    reader,
		decider:   decider,
		store:     store,
		formatter: formatter,
		logger:    logger,
		operation: operation,
		limiter:   ratelimit.NewLimiter(operation.LimitRate),
	}
}

// Run processes every archive member in archive order and returns a
// report. The first failure aborts the run; partial extraction state is
// left on disk for a later retry to pick up.
func (e *Extractor) Run(ctx context.Context) (*models.Report, error) {
	startTime := time.Now()
	report := &models.Report{
		OperationID: e.operation.ID,
		ArchivePath: e.operation.ArchivePath,
		DestPath:    e.operation.DestPath,
		DryRun:      e.operation.DryRun,
		StartTime:   startTime,
		Status:      models.StatusSuccess,
	}

	e.logger.Info(ctx, "Starting extraction", logging.Fields{
		"operation_id": e.operation.ID,
		"archive":      e.operation.ArchivePath,
		"dest":         e.operation.DestPath,
		"digest":       string(e.operation.Digest),
		"sidecar":      string(e.operation.Sidecar),
		"dry_run":      e.operation.DryRun,
	})

	entries := e.reader.Entries()

	var totalFiles int
	var totalBytes int64
	for _, entry := range entries {
		if entry.IsDir() || matchesExclude(entry.Name(), e.operation.ExcludePatterns) {
			continue
		}
		totalFiles++
		totalBytes += entry.Size()
	}

	if e.formatter != nil {
		if err := e.formatter.Start(totalFiles, totalBytes); err != nil {
			return nil, fmt.Errorf("failed to start output: %w", err)
		}
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			report.Status = models.StatusCancelled
			e.finishReport(report)
			return report, ctx.Err()
		default:
		}

		if matchesExclude(entry.Name(), e.operation.ExcludePatterns) {
			report.Stats.EntriesExcluded++
			e.logger.Debug(ctx, "Excluded entry", logging.Fields{
				"entry": entry.Name(),
			})
			continue
		}

		report.Stats.EntriesScanned++

		if err := e.processEntry(ctx, entry, report); err != nil {
			report.Status = models.StatusFailed
			e.finishReport(report)
			if e.formatter != nil {
				e.formatter.Error(err)
			}
			e.logger.Error(ctx, "Extraction aborted", err, logging.Fields{
				"entry": entry.Name(),
			})
			return report, err
		}
	}

	e.finishReport(report)

	if e.formatter != nil {
		if err := e.formatter.Complete(report); err != nil {
			return report, fmt.Errorf("failed to render report: %w", err)
		}
	}

	e.logger.Info(ctx, "Extraction completed", logging.Fields{
		"duration":        report.Duration.String(),
		"files_extracted": report.Stats.FilesExtracted,
		"files_skipped":   report.Stats.FilesSkipped,
		"bytes_written":   report.Stats.BytesWritten,
	})

	return report, nil
}

// finishReport stamps the end time and duration
func (e *Extractor) finishReport(report *models.Report) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
}

// processEntry handles a single archive member
func (e *Extractor) processEntry(ctx context.Context, entry archive.Entry, report *models.Report) error {
	destPath, err := securePath(e.operation.DestPath, entry.Name())
	if err != nil {
		return err
	}

	if entry.IsDir() {
		return e.createDir(entry, destPath, report)
	}

	decision, err := e.decider.Decide(ctx, entry, destPath)
	if err != nil {
		return err
	}

	if !decision.Extract {
		report.Stats.FilesSkipped++
		if !e.noticeShown {
			e.noticeShown = true
			e.emit(output.Event{Type: output.EventSkipNotice, Path: entry.Name()})
		}
		e.emit(output.Event{Type: output.EventSkipped, Path: entry.Name(), Size: entry.Size(), Reason: decision.Reason})
		e.logger.Debug(ctx, "Skipped unchanged file", logging.Fields{
			"entry": entry.Name(),
		})
		return nil
	}

	if e.operation.DryRun {
		report.Stats.FilesExtracted++
		e.emit(output.Event{Type: output.EventExtracted, Path: entry.Name(), Size: entry.Size(), Reason: decision.Reason})
		return nil
	}

	if err := e.writeEntry(ctx, entry, destPath); err != nil {
		return err
	}

	if err := e.store.Write(ctx, destPath, FingerprintName, decision.Digest); err != nil {
		return fmt.Errorf("failed to record fingerprint for %s: %w", entry.Name(), err)
	}

	report.Stats.FilesExtracted++
	report.Stats.BytesWritten += entry.Size()
	e.emit(output.Event{Type: output.EventExtracted, Path: entry.Name(), Size: entry.Size(), Reason: decision.Reason})
	e.logger.Debug(ctx, "Extracted file", logging.Fields{
		"entry":  entry.Name(),
		"reason": decision.Reason,
	})

	return nil
}

// createDir materializes a directory member. Directories carry no
// fingerprint, so neither the digest engine nor the sidecar store is
// consulted for them.
func (e *Extractor) createDir(entry archive.Entry, destPath string, report *models.Report) error {
	existed := true
	if _, err := os.Stat(destPath); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat %s: %w", destPath, err)
		}
		existed = false
	}

	if !e.operation.DryRun {
		if err := os.MkdirAll(destPath, dirMode(entry.Mode())); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", destPath, err)
		}
	}

	if !existed {
		report.Stats.DirsCreated++
		e.emit(output.Event{Type: output.EventDirCreated, Path: entry.Name()})
	}

	return nil
}

// writeEntry streams the member content into destPath
func (e *Extractor) writeEntry(ctx context.Context, entry archive.Entry, destPath string) error {
	reader, err := entry.Open()
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", destPath, err)
	}

	file, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode(entry.Mode()))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	limited := ratelimit.NewReader(ctx, reader, e.limiter)
	buffer := make([]byte, e.operation.BufferSize)
	written, err := io.CopyBuffer(file, limited, buffer)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}

	if written != entry.Size() {
		return fmt.Errorf("incomplete write for %s: expected %d bytes, wrote %d", entry.Name(), entry.Size(), written)
	}

	if !entry.ModTime().IsZero() {
		if err := os.Chtimes(destPath, entry.ModTime(), entry.ModTime()); err != nil {
			return fmt.Errorf("failed to set times on %s: %w", destPath, err)
		}
	}

	return nil
}

// emit sends an event to the formatter when one is attached
func (e *Extractor) emit(event output.Event) {
	if e.formatter != nil {
		e.formatter.Event(event)
	}
}

// fileMode returns the mode for an extracted file, falling back when
// the archive carries none
func fileMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm() == 0 {
		return 0644
	}
	return mode.Perm()
}

// dirMode returns the mode for a created directory
func dirMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm() == 0 {
		return 0755
	}
	return mode.Perm()
}
