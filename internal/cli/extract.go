package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/archive"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/config"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/digest"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/extract"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/logging"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/output"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/sidecar"
)

// ExtractFlags holds extract command flags
type ExtractFlags struct {
	Dest      string
	Digest    string
	Sidecar   string
	DryRun    bool
	Exclude   []string
	LimitRate string
	Format    string
	Progress  bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var extractFlags ExtractFlags

// NewExtractCommand creates the x command
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "x [flags] ARCHIVE",
		Short: "Extract a zip archive, skipping unchanged files",
		Long: `Extract a zip archive into a destination directory.

Every extracted file carries a content fingerprint in a sidecar
attachment next to the file data. On a later run into the same
destination, members whose content and size are unchanged are skipped
instead of rewritten.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected exactly one archive path", models.ErrUsage)
			}
			return nil
		},
		RunE: runExtract,
	}

	cmd.Flags().StringVarP(&extractFlags.Dest, "dest", "d", ".", "destination directory")
	cmd.Flags().StringVar(&extractFlags.Digest, "digest", "", "fingerprint digest: sha256, blake3 (default from config)")
	cmd.Flags().StringVar(&extractFlags.Sidecar, "sidecar", "", "fingerprint store: xattr, shadow (default from config)")
	cmd.Flags().BoolVar(&extractFlags.DryRun, "dry-run", false, "decide only, don't write anything")
	cmd.Flags().StringSliceVar(&extractFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVar(&extractFlags.LimitRate, "limit-rate", "", "write rate limit per second (e.g. \"10M\", \"1G\")")
	cmd.Flags().StringVarP(&extractFlags.Format, "format", "f", "", "output format: human, json, progress")
	cmd.Flags().BoolVar(&extractFlags.Progress, "progress", false, "force the progress bar")

	// Logging flags
	cmd.Flags().StringVar(&extractFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&extractFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&extractFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	archivePath := args[0]

	// Validate flags
	if err := validateExtractFlags(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg)

	// Create extract operation
	operation, err := createExtractOperation(cfg, archivePath)
	if err != nil {
		return fmt.Errorf("failed to create extract operation: %w", err)
	}

	// Open the archive
	reader, err := archive.OpenZip(archivePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	// Create digest engine
	engine, err := digest.New(digest.Algorithm(operation.Digest), operation.BufferSize)
	if err != nil {
		return fmt.Errorf("failed to create digest engine: %w", err)
	}

	// Create sidecar store
	var store sidecar.Store
	switch operation.Sidecar {
	case models.SidecarShadow:
		store = sidecar.NewShadowStore()
	default:
		store = sidecar.NewXattrStore()
	}

	// Create output formatter
	formatter := createFormatter(cfg)

	// Create logger
	logger, err := createLogger(extractFlags.LogFile, extractFlags.LogFormat, extractFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create and run the extractor
	extractor := extract.NewExtractor(reader, extract.NewDecider(engine, store), store, formatter, logger, operation)

	report, err := extractor.Run(ctx)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	// Exit with appropriate code
	os.Exit(report.Status.ExitCode())
	return nil
}

// createFormatter selects the output formatter. Quiet mode suppresses
// per-run output entirely; fatal errors still reach stderr.
func createFormatter(cfg *config.Config) output.Formatter {
	if cfg.Output.Quiet {
		return nil
	}

	switch cfg.Output.Format {
	case "json":
		return output.NewJSONFormatter(os.Stdout)
	case "progress":
		return output.NewProgressFormatter(os.Stdout)
	default:
		if cfg.Output.Progress && term.IsTerminal(int(os.Stdout.Fd())) {
			return output.NewProgressFormatter(os.Stdout)
		}
		return output.NewHumanFormatter(os.Stdout)
	}
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	// If no log file specified, return null logger
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	config := logging.FileLoggerConfig{
		Path:       logFile,
		Format:     format,
		Level:      logging.ParseLevel(logLevel),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}

	return logging.NewFileLogger(config)
}
