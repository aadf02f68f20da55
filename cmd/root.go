// Package cmd implements the command-line interface for newscrawl.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newscrawl/cmd/crawl"
	cmdreport "github.com/jonesrussell/newscrawl/cmd/report"
	"github.com/jonesrussell/newscrawl/cmd/resume"
	"github.com/jonesrussell/newscrawl/cmd/schedule"
)

const version = "1.0.0"

// rootCmd is the root command for the newscrawl CLI.
var rootCmd = &cobra.Command{
	Use:   "newscrawl",
	Short: "A resumable news-site article scraper",
	Long: `newscrawl discovers article URLs on a news site by following links
from seed pages, optionally walking the whole site graph with checkpointed
state, and extracts structured article records.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. The context is cancelled on SIGINT or
// SIGTERM; the resumable crawl relies on its checkpoint to survive this.
func Execute() error {
	// Load .env early so environment variables are available everywhere.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "scraper_config.json", "path to the scraper configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("newscrawl version %s\n", version)
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(resume.Command())
	rootCmd.AddCommand(schedule.Command())
	rootCmd.AddCommand(cmdreport.Command())
}
