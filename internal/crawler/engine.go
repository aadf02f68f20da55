// Package crawler drives article discovery: fetch, link extraction,
// frontier update, and checkpointing, until the target article count is met
// or the frontier runs out.
package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/newscrawl/internal/frontier"
	"github.com/jonesrussell/newscrawl/internal/logger"
)

// Fetcher returns the raw document text for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Saver persists the full crawl state. Called after every engine step in
// recursive mode so a crash loses at most one in-flight fetch.
type Saver interface {
	Save(s *frontier.Store) error
}

// Options configures an Engine run.
type Options struct {
	// Seeds are the configured starting pages.
	Seeds []string

	// Recursive enables the frontier walk. When false the engine visits
	// only the seed pages.
	Recursive bool
}

// Engine orchestrates the crawl. One fetch is in flight at a time; the walk
// is strictly sequential.
type Engine struct {
	fetcher    Fetcher
	links      *LinkExtractor
	store      *frontier.Store
	checkpoint Saver
	log        logger.Interface
	opts       Options
}

// NewEngine creates an engine. checkpoint may be nil for the seed-only
// mode, which has no durable state.
func NewEngine(
	f Fetcher,
	links *LinkExtractor,
	store *frontier.Store,
	checkpoint Saver,
	log logger.Interface,
	opts Options,
) *Engine {
	return &Engine{
		fetcher:    f,
		links:      links,
		store:      store,
		checkpoint: checkpoint,
		log:        log,
		opts:       opts,
	}
}

// Run drives discovery to completion. Reaching the target count and
// exhausting the frontier are both normal termination; only context
// cancellation and checkpoint failures are errors.
func (e *Engine) Run(ctx context.Context) error {
	if e.opts.Recursive {
		return e.walkFrontier(ctx)
	}

	return e.visitSeeds(ctx)
}

// visitSeeds visits only the configured seed pages, collecting article
// links from each until the target is met or the seeds are exhausted.
func (e *Engine) visitSeeds(ctx context.Context) error {
	for _, seed := range e.opts.Seeds {
		if e.store.TargetMet() {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		document, err := e.fetcher.Fetch(ctx, seed)
		e.store.RecordVisit(seed)

		if err != nil {
			e.log.Warn("fetch failed, seed skipped", "url", seed, "error", err.Error())
			continue
		}

		links, extractErr := e.links.Extract(document)
		if extractErr != nil {
			e.log.Warn("link extraction failed, seed skipped", "url", seed, "error", extractErr.Error())
			continue
		}

		for _, articleURL := range links.Articles {
			e.store.RecordArticle(articleURL)

			if e.store.TargetMet() {
				return nil
			}
		}
	}

	e.log.Info("seeds exhausted",
		"discovered", len(e.store.Discovered()),
	)

	return nil
}

// walkFrontier is the resumable recursive-expansion crawl, flattened to a
// loop. The next fetch target is always the frontier entry at the replay
// position, so a run resumed from a checkpoint continues exactly where the
// interrupted one stopped.
func (e *Engine) walkFrontier(ctx context.Context) error {
	for _, seed := range e.opts.Seeds {
		e.store.AddCandidate(seed)
	}

	for !e.store.TargetMet() {
		target, err := e.store.NextVisitTarget()
		if errors.Is(err, frontier.ErrExhausted) {
			// Partial success: fewer articles than requested.
			e.log.Info("frontier exhausted before target",
				"discovered", len(e.store.Discovered()),
				"visited", len(e.store.Visited()),
			)

			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		document, fetchErr := e.fetcher.Fetch(ctx, target)

		// The visit is recorded even on failure so the page is never retried.
		e.store.RecordVisit(target)

		if fetchErr != nil {
			e.log.Warn("fetch failed, page skipped", "url", target, "error", fetchErr.Error())
		} else {
			e.expand(document)
		}

		if saveErr := e.persist(); saveErr != nil {
			return saveErr
		}
	}

	e.log.Info("target article count reached",
		"discovered", len(e.store.Discovered()),
		"visited", len(e.store.Visited()),
	)

	return nil
}

// expand applies one page's links to the store: every anchor becomes a
// frontier candidate, and anchors in the article-link subset are recorded
// as discovered articles.
func (e *Engine) expand(document string) {
	links, err := e.links.Extract(document)
	if err != nil {
		e.log.Warn("link extraction failed", "error", err.Error())
		return
	}

	articleSet := make(map[string]struct{}, len(links.Articles))
	for _, articleURL := range links.Articles {
		articleSet[articleURL] = struct{}{}
	}

	for _, linkURL := range links.All {
		e.store.AddCandidate(linkURL)

		if _, isArticle := articleSet[linkURL]; isArticle {
			e.store.RecordArticle(linkURL)
		}

		if e.store.TargetMet() {
			return
		}
	}
}

// persist checkpoints the crawl state. A persistence failure is fatal in
// recursive mode: continuing without durability would corrupt the resume
// invariant.
func (e *Engine) persist() error {
	if e.checkpoint == nil {
		return nil
	}

	if err := e.checkpoint.Save(e.store); err != nil {
		return fmt.Errorf("persist crawl state: %w", err)
	}

	return nil
}
