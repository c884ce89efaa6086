package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/config"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
)

// validateExtractFlags validates the x command flags. Violations are
// usage errors and map to the usage exit code.
func validateExtractFlags() error {
	if extractFlags.Digest != "" {
		valid := map[string]bool{"sha256": true, "blake3": true}
		if !valid[extractFlags.Digest] {
			return fmt.Errorf("%w: invalid digest %q (valid: sha256, blake3)", models.ErrUsage, extractFlags.Digest)
		}
	}

	if extractFlags.Sidecar != "" {
		valid := map[string]bool{"xattr": true, "shadow": true}
		if !valid[extractFlags.Sidecar] {
			return fmt.Errorf("%w: invalid sidecar store %q (valid: xattr, shadow)", models.ErrUsage, extractFlags.Sidecar)
		}
	}

	if extractFlags.Format != "" {
		valid := map[string]bool{"human": true, "json": true, "progress": true}
		if !valid[extractFlags.Format] {
			return fmt.Errorf("%w: invalid output format %q (valid: human, json, progress)", models.ErrUsage, extractFlags.Format)
		}
	}

	if extractFlags.LimitRate != "" {
		if _, err := humanize.ParseBytes(extractFlags.LimitRate); err != nil {
			return fmt.Errorf("%w: invalid rate limit %q (use e.g. \"10M\", \"1G\")", models.ErrUsage, extractFlags.LimitRate)
		}
	}

	// The destination may be missing (it is created on demand) but an
	// existing non-directory can never receive an extraction.
	if info, err := os.Stat(extractFlags.Dest); err == nil && !info.IsDir() {
		return fmt.Errorf("%w: destination exists and is not a directory: %s", models.ErrUsage, extractFlags.Dest)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	// Digest algorithm
	if extractFlags.Digest != "" {
		cfg.Extract.Digest = models.DigestAlgorithm(extractFlags.Digest)
	}

	// Sidecar store
	if extractFlags.Sidecar != "" {
		cfg.Extract.Sidecar = models.SidecarMode(extractFlags.Sidecar)
	}

	// Exclude patterns
	if len(extractFlags.Exclude) > 0 {
		cfg.Exclude = extractFlags.Exclude
	}

	// Output format
	if extractFlags.Format != "" {
		cfg.Output.Format = extractFlags.Format
	}
	if extractFlags.Progress {
		cfg.Output.Format = "progress"
	}

	// Rate limit, already validated
	if extractFlags.LimitRate != "" {
		if rate, err := humanize.ParseBytes(extractFlags.LimitRate); err == nil {
			cfg.Performance.LimitRate = int64(rate)
		}
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

// createExtractOperation creates an extract operation from configuration
func createExtractOperation(cfg *config.Config, archivePath string) (*models.ExtractOperation, error) {
	operation := &models.ExtractOperation{
		ID:              uuid.New().String(),
		ArchivePath:     archivePath,
		DestPath:        extractFlags.Dest,
		Digest:          cfg.Extract.Digest,
		Sidecar:         cfg.Extract.Sidecar,
		ExcludePatterns: cfg.Exclude,
		DryRun:          extractFlags.DryRun,
		LimitRate:       cfg.Performance.LimitRate,
		BufferSize:      cfg.Performance.BufferSize,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
