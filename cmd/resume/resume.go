// Package resume implements the resumable recursive crawl: the frontier
// walk runs against checkpointed state, and article output skips URLs
// already emitted by a previous run.
package resume

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newscrawl/cmd/common"
	"github.com/jonesrussell/newscrawl/internal/crawler"
	"github.com/jonesrussell/newscrawl/internal/frontier"
	"github.com/jonesrussell/newscrawl/internal/output"
	"github.com/jonesrussell/newscrawl/internal/report"
)

// Command returns the resume command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Run (or continue) the recursive crawl with checkpointed state",
		RunE:  run,
	}

	common.RegisterCrawlFlags(cmd)
	cmd.Flags().String("checkpoint", "recursive_crawler.json", "checkpoint file for crawl state")

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

	checkpointPath, err := cmd.Flags().GetString("checkpoint")
	if err != nil {
		return err
	}

	checkpoint := frontier.NewCheckpoint(checkpointPath)

	store, err := checkpoint.Load(cfg.TotalArticles)
	if err != nil {
		return fmt.Errorf("load crawl state: %w", err)
	}

	if len(store.Visited()) > 0 {
		log.Info("resuming from checkpoint",
			"path", checkpoint.Path(),
			"visited", len(store.Visited()),
			"discovered", len(store.Discovered()),
		)
	}

	f, err := common.NewFetcher(cfg, log)
	if err != nil {
		return err
	}

	origin, err := frontier.Origin(cfg.SeedURLs[0])
	if err != nil {
		return err
	}

	links, err := crawler.NewLinkExtractor(origin)
	if err != nil {
		return err
	}

	eng := crawler.NewEngine(f, links, store, checkpoint, log, crawler.Options{
		Seeds:     cfg.SeedURLs,
		Recursive: true,
	})

	if runErr := eng.Run(cmd.Context()); runErr != nil {
		return runErr
	}

	// Output must survive interruption, so the directory is created but
	// never wiped here.
	if prepErr := output.PrepareEnvironment(opts.AssetsDir, false); prepErr != nil {
		return prepErr
	}

	pipeline, err := common.NewPipeline(f, log, opts)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	records, err := pipeline.EmitPending(cmd.Context(), store, checkpoint)
	if err != nil {
		return err
	}

	log.Info("resumable crawl finished",
		"articles", len(store.Discovered()),
		"written_this_run", len(records),
	)
	report.RenderTable(os.Stdout, records)

	return nil
}
