package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/newscrawl/internal/articles"
	"github.com/jonesrussell/newscrawl/internal/config"
	"github.com/jonesrussell/newscrawl/internal/crawler"
	"github.com/jonesrussell/newscrawl/internal/frontier"
	"github.com/jonesrussell/newscrawl/internal/logger"
	"github.com/jonesrussell/newscrawl/internal/output"
)

// CrawlOptions configures a crawl entry point.
type CrawlOptions struct {
	// AssetsDir is where raw and meta article units are written.
	AssetsDir string

	// ArchivePath enables the SQLite archive when non-empty.
	ArchivePath string

	// JoinMode selects the paragraph joining behavior.
	JoinMode articles.JoinMode
}

// Pipeline turns discovered article URLs into persisted output units.
type Pipeline struct {
	fetcher   crawler.Fetcher
	extractor *articles.Extractor
	writer    *output.Writer
	archive   *output.Archive
	log       logger.Interface
}

// NewPipeline builds the output pipeline. The fetcher is shared with the
// discovery phase so the politeness rate limit spans the whole run.
func NewPipeline(f crawler.Fetcher, log logger.Interface, opts CrawlOptions) (*Pipeline, error) {
	p := &Pipeline{
		fetcher:   f,
		extractor: articles.NewExtractor(opts.JoinMode),
		writer:    output.NewWriter(opts.AssetsDir),
		log:       log,
	}

	if opts.ArchivePath != "" {
		archive, err := output.OpenArchive(opts.ArchivePath)
		if err != nil {
			return nil, err
		}

		p.archive = archive
	}

	return p, nil
}

// Close releases pipeline resources.
func (p *Pipeline) Close() {
	if p.archive != nil {
		_ = p.archive.Close()
	}
}

// WriteArticle fetches one article URL, extracts its record, and persists
// the output units. Returns nil with no error when the page is skippable
// (transport failure or no locatable body).
func (p *Pipeline) WriteArticle(ctx context.Context, url string, id int) (*articles.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	document, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		p.log.Warn("article fetch failed, record skipped", "url", url, "error", err.Error())
		return nil, nil
	}

	rec, err := p.extractor.Extract(document, url, id)
	if errors.Is(err, articles.ErrNoBody) {
		p.log.Warn("no article body located, record skipped", "url", url)
		return nil, nil
	}

	if errors.Is(err, articles.ErrDateFormat) {
		p.log.Warn("article timestamp unparseable, field left unset", "url", url, "error", err.Error())
	} else if err != nil {
		return nil, err
	}

	if writeErr := p.writer.Write(rec); writeErr != nil {
		return nil, writeErr
	}

	if p.archive != nil {
		if archiveErr := p.archive.Upsert(rec); archiveErr != nil {
			return nil, archiveErr
		}
	}

	p.log.Info("article written", "id", id, "url", url, "title", rec.Title)

	return rec, nil
}

// EmitPending writes the output units for every discovered article that no
// previous run has emitted. Each URL is marked emitted and checkpointed as
// soon as it is handled, so an interrupted run never rewrites a unit. IDs
// come from the position in the discovered sequence, which is stable across
// resumes.
func (p *Pipeline) EmitPending(
	ctx context.Context,
	store *frontier.Store,
	checkpoint crawler.Saver,
) ([]articles.Record, error) {
	var records []articles.Record

	for i, articleURL := range store.Discovered() {
		if store.WasEmitted(articleURL) {
			continue
		}

		rec, err := p.WriteArticle(ctx, articleURL, i+1)
		if err != nil {
			return records, err
		}

		// Mark even skipped pages so a resumed run does not retry them.
		store.MarkEmitted(articleURL)

		if saveErr := checkpoint.Save(store); saveErr != nil {
			return records, fmt.Errorf("persist crawl state: %w", saveErr)
		}

		if rec != nil {
			records = append(records, *rec)
		}
	}

	return records, nil
}

// RunSinglePass performs the seed-only crawl and writes every discovered
// article. The output directory is wiped first: a single pass always
// produces a complete, self-consistent set of units.
func RunSinglePass(
	ctx context.Context,
	cfg *config.Config,
	log logger.Interface,
	opts CrawlOptions,
) ([]articles.Record, error) {
	f, err := NewFetcher(cfg, log)
	if err != nil {
		return nil, err
	}

	origin, err := frontier.Origin(cfg.SeedURLs[0])
	if err != nil {
		return nil, err
	}

	links, err := crawler.NewLinkExtractor(origin)
	if err != nil {
		return nil, err
	}

	store := frontier.NewStore(cfg.TotalArticles)
	eng := crawler.NewEngine(f, links, store, nil, log, crawler.Options{Seeds: cfg.SeedURLs})

	if runErr := eng.Run(ctx); runErr != nil {
		return nil, runErr
	}

	if prepErr := output.PrepareEnvironment(opts.AssetsDir, true); prepErr != nil {
		return nil, prepErr
	}

	pipeline, err := NewPipeline(f, log, opts)
	if err != nil {
		return nil, err
	}
	defer pipeline.Close()

	var records []articles.Record

	for i, articleURL := range store.Discovered() {
		rec, writeErr := pipeline.WriteArticle(ctx, articleURL, i+1)
		if writeErr != nil {
			return nil, writeErr
		}

		if rec != nil {
			records = append(records, *rec)
		}
	}

	return records, nil
}
