package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crazyjdean/unzip-skip-unchanged-files/internal/cli"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(models.ExitCode(err))
	}
}

func run() error {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = date

	rootCmd := &cobra.Command{
		Use:   "unzipskip",
		Short: "Zip extraction that skips unchanged files",
		Long: `unzipskip extracts zip archives into a destination directory while
skipping members whose content has not changed since the previous
extraction. Each extracted file carries a content fingerprint in a
sidecar attachment, so re-runs rewrite only what actually changed.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: unknown command %q", models.ErrUsage, args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Help()
			return models.ErrUsage
		},
	}

	// Flag parse failures are usage errors
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", models.ErrUsage, err)
	})

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewExtractCommand())
	rootCmd.AddCommand(cli.NewListCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
