package config

import (
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Extract     ExtractConfig     `yaml:"extract"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// ExtractConfig holds extraction-related settings
type ExtractConfig struct {
	Digest  models.DigestAlgorithm `yaml:"digest"`
	Sidecar models.SidecarMode     `yaml:"sidecar"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	BufferSize int   `yaml:"buffer_size"`
	LimitRate  int64 `yaml:"limit_rate"` // bytes per second, 0 = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human", "json" or "progress"
	Progress bool   `yaml:"progress"` // Prefer the progress bar on terminals
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = logging disabled)
}

// Default returns the default configuration. Exclude defaults to empty
// because a fresh install must extract every archive member.
func Default() *Config {
	return &Config{
		Extract: ExtractConfig{
			Digest:  models.DigestSHA256,
			Sidecar: models.SidecarXattr,
		},
		Performance: PerformanceConfig{
			BufferSize: 65536,
			LimitRate:  0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
			File:   "",
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Extract.Digest {
	case models.DigestSHA256, models.DigestBLAKE3:
	default:
		return &models.ValidationError{
			Field:   "extract.digest",
			Message: "must be 'sha256' or 'blake3'",
		}
	}

	switch c.Extract.Sidecar {
	case models.SidecarXattr, models.SidecarShadow:
	default:
		return &models.ValidationError{
			Field:   "extract.sidecar",
			Message: "must be 'xattr' or 'shadow'",
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if c.Performance.LimitRate < 0 {
		return &models.ValidationError{
			Field:   "performance.limit_rate",
			Message: "cannot be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true, "progress": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human', 'json' or 'progress'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
