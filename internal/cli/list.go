package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/archive"
	"github.com/crazyjdean/unzip-skip-unchanged-files/pkg/models"
)

// NewListCommand creates the l command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "l ARCHIVE",
		Short: "List archive contents without extracting",
		Long: `List every member of a zip archive with its declared size.
The destination directory and fingerprint attachments are never touched.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected exactly one archive path", models.ErrUsage)
			}
			return nil
		},
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	reader, err := archive.OpenZip(args[0])
	if err != nil {
		return err
	}
	defer reader.Close()

	var files int
	var totalBytes int64

	fmt.Printf("%-10s  %-19s  %s\n", "SIZE", "MODIFIED", "NAME")
	for _, entry := range reader.Entries() {
		modified := entry.ModTime().Format("2006-01-02 15:04:05")

		if entry.IsDir() {
			fmt.Printf("%-10s  %-19s  %s\n", "-", modified, entry.Name())
			continue
		}

		files++
		totalBytes += entry.Size()
		fmt.Printf("%-10s  %-19s  %s\n", humanize.IBytes(uint64(entry.Size())), modified, entry.Name())
	}

	fmt.Printf("\n%d files, %s total\n", files, humanize.IBytes(uint64(totalBytes)))
	return nil
}
