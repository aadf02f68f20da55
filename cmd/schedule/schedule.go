// Package schedule implements the periodic crawl command: a single-pass
// crawl on a cron schedule until interrupted.
package schedule

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newscrawl/cmd/common"
)

// Command returns the schedule command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <cron expression>",
		Short: "Run the single-pass crawl on a cron schedule",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	common.RegisterCrawlFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := common.Setup(cmd)
	if err != nil {
		return err
	}

	opts, err := common.OptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	scheduler := cron.New()

	_, err = scheduler.AddFunc(args[0], func() {
		runLog := log.With("run_id", uuid.NewString())
		runLog.Info("scheduled crawl starting")

		records, runErr := common.RunSinglePass(ctx, cfg, runLog, opts)
		if runErr != nil {
			runLog.Error("scheduled crawl failed", "error", runErr.Error())
			return
		}

		runLog.Info("scheduled crawl finished", "articles", len(records))
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", args[0], err)
	}

	log.Info("scheduler started", "spec", args[0])
	scheduler.Start()

	<-ctx.Done()

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	log.Info("scheduler stopped")

	return nil
}
