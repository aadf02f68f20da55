// Package report implements the report command: render archived article
// records as a Markdown file and a terminal table.
package report

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newscrawl/internal/logger"
	"github.com/jonesrussell/newscrawl/internal/output"
	"github.com/jonesrussell/newscrawl/internal/report"
)

// Command returns the report command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a Markdown report over the article archive",
		RunE:  run,
	}

	cmd.Flags().String("archive", "articles.db", "SQLite archive file to report on")
	cmd.Flags().String("out", "report.md", "Markdown report output file")

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	debug, err := cmd.Root().PersistentFlags().GetBool("debug")
	if err != nil {
		return err
	}

	log := logger.New(debug)

	archivePath, err := cmd.Flags().GetString("archive")
	if err != nil {
		return err
	}

	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	archive, err := output.OpenArchive(archivePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	records, err := archive.List()
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer out.Close()

	if writeErr := report.WriteMarkdown(out, records); writeErr != nil {
		return writeErr
	}

	log.Info("report written", "path", outPath, "articles", len(records))
	report.RenderTable(os.Stdout, records)

	return nil
}
