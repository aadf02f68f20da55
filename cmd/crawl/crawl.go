// Package crawl implements the single-pass crawl command: visit the
// configured seed pages, collect article links, and write every article.
package crawl

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newscrawl/cmd/common"
	"github.com/jonesrussell/newscrawl/internal/report"
)

// Command returns the crawl command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run a single-pass crawl over the configured seed pages",
		RunE:  run,
	}

	common.RegisterCrawlFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, log, err := common.Setup(cmd)
	if err != nil {
		return err
	}

	opts, err := common.OptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	records, err := common.RunSinglePass(cmd.Context(), cfg, log, opts)
	if err != nil {
		return err
	}

	log.Info("crawl finished", "articles", len(records))
	report.RenderTable(os.Stdout, records)

	return nil
}
