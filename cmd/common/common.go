// Package common provides the shared command bootstrap and the article
// output pipeline used by the crawl entry points.
package common

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newscrawl/internal/articles"
	"github.com/jonesrussell/newscrawl/internal/config"
	"github.com/jonesrussell/newscrawl/internal/fetcher"
	"github.com/jonesrussell/newscrawl/internal/logger"
)

// Setup loads the configuration named by the persistent --config flag and
// builds the logger per --debug.
func Setup(cmd *cobra.Command) (*config.Config, logger.Interface, error) {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("read config flag: %w", err)
	}

	debug, err := flags.GetBool("debug")
	if err != nil {
		return nil, nil, fmt.Errorf("read debug flag: %w", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger.New(debug), nil
}

// NewFetcher builds a fetcher from the scraper configuration.
func NewFetcher(cfg *config.Config, log logger.Interface) (*fetcher.Fetcher, error) {
	return fetcher.New(fetcher.Config{
		Headers:           cfg.Headers,
		Timeout:           cfg.RequestTimeout(),
		VerifyCertificate: cfg.ShouldVerifyCertificate,
		Encoding:          cfg.Encoding,
	}, log)
}

// RegisterCrawlFlags adds the output flags shared by the crawl entry points.
func RegisterCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().String("assets", "assets", "directory for article output units")
	cmd.Flags().String("archive", "", "optional SQLite archive file for article records")
	cmd.Flags().String("join", "newline", "paragraph join mode: newline or concat")
}

// OptionsFromFlags reads the flags registered by RegisterCrawlFlags.
func OptionsFromFlags(cmd *cobra.Command) (CrawlOptions, error) {
	assets, err := cmd.Flags().GetString("assets")
	if err != nil {
		return CrawlOptions{}, err
	}

	archive, err := cmd.Flags().GetString("archive")
	if err != nil {
		return CrawlOptions{}, err
	}

	join, err := cmd.Flags().GetString("join")
	if err != nil {
		return CrawlOptions{}, err
	}

	mode, err := ParseJoinMode(join)
	if err != nil {
		return CrawlOptions{}, err
	}

	return CrawlOptions{
		AssetsDir:   assets,
		ArchivePath: archive,
		JoinMode:    mode,
	}, nil
}

// ParseJoinMode maps the --join flag value to a paragraph join mode.
func ParseJoinMode(value string) (articles.JoinMode, error) {
	switch value {
	case "newline":
		return articles.JoinNewline, nil
	case "concat":
		return articles.JoinConcat, nil
	default:
		return articles.JoinNewline, fmt.Errorf("unknown join mode %q (want newline or concat)", value)
	}
}
