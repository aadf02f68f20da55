package common_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newscrawl/cmd/common"
	"github.com/jonesrussell/newscrawl/internal/frontier"
	"github.com/jonesrussell/newscrawl/internal/logger"
	"github.com/jonesrussell/newscrawl/internal/output"
)

// stubFetcher serves canned documents and records every URL it is asked for.
type stubFetcher struct {
	pages   map[string]string
	fetched []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.fetched = append(f.fetched, url)

	page, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("connection refused: %s", url)
	}

	return page, nil
}

type failingSaver struct{}

func (failingSaver) Save(*frontier.Store) error { return errors.New("disk full") }

func articlePage(title string) string {
	return fmt.Sprintf(`<html><body>
		<h1 itemprop="name headline">%s</h1>
		<time>01.02.2024 10:30</time>
		<div itemprop="articleBody"><p>Текст статьи.</p></div>
	</body></html>`, title)
}

func newTestPipeline(t *testing.T, f *stubFetcher, assetsDir string) *common.Pipeline {
	t.Helper()

	require.NoError(t, output.PrepareEnvironment(assetsDir, false))

	pipeline, err := common.NewPipeline(f, logger.NewNoop(), common.CrawlOptions{
		AssetsDir: assetsDir,
	})
	require.NoError(t, err)
	t.Cleanup(pipeline.Close)

	return pipeline
}

func TestPipeline_EmitPendingSkipsEmittedAndKeepsIDs(t *testing.T) {
	t.Parallel()

	a1 := "https://scientificrussia.ru/articles/a1"
	a2 := "https://scientificrussia.ru/articles/a2"

	dir := t.TempDir()
	assetsDir := filepath.Join(dir, "assets")
	checkpoint := frontier.NewCheckpoint(filepath.Join(dir, "state.json"))

	store := frontier.NewStore(2)
	store.RecordVisit("https://scientificrussia.ru/news")
	store.RecordArticle(a1)
	store.RecordArticle(a2)
	// a1 was written by an earlier, interrupted run.
	store.MarkEmitted(a1)

	fetch := &stubFetcher{pages: map[string]string{a2: articlePage("Вторая статья")}}
	pipeline := newTestPipeline(t, fetch, assetsDir)

	records, err := pipeline.EmitPending(context.Background(), store, checkpoint)
	require.NoError(t, err)

	// Only the unemitted URL is fetched, and its ID is its position in the
	// discovered sequence rather than a fresh counter.
	require.Equal(t, []string{a2}, fetch.fetched)
	require.Len(t, records, 1)
	require.Equal(t, 2, records[0].ID)
	require.FileExists(t, filepath.Join(assetsDir, "2_raw.txt"))
	require.FileExists(t, filepath.Join(assetsDir, "2_meta.json"))
	require.NoFileExists(t, filepath.Join(assetsDir, "1_raw.txt"))

	// A run resumed from the saved checkpoint has nothing left to emit.
	reloaded, err := checkpoint.Load(2)
	require.NoError(t, err)

	refetch := &stubFetcher{}
	pipeline = newTestPipeline(t, refetch, assetsDir)

	records, err = pipeline.EmitPending(context.Background(), reloaded, checkpoint)
	require.NoError(t, err)
	require.Empty(t, records)
	require.Empty(t, refetch.fetched)
}

func TestPipeline_EmitPendingMarksFailedPages(t *testing.T) {
	t.Parallel()

	bad := "https://scientificrussia.ru/articles/gone"

	dir := t.TempDir()
	checkpoint := frontier.NewCheckpoint(filepath.Join(dir, "state.json"))

	store := frontier.NewStore(1)
	store.RecordArticle(bad)

	fetch := &stubFetcher{}
	pipeline := newTestPipeline(t, fetch, filepath.Join(dir, "assets"))

	records, err := pipeline.EmitPending(context.Background(), store, checkpoint)
	require.NoError(t, err)
	require.Empty(t, records)

	// The failed page is still marked emitted and checkpointed, so a resumed
	// run never retries it.
	reloaded, err := checkpoint.Load(1)
	require.NoError(t, err)
	require.True(t, reloaded.WasEmitted(bad))
}

func TestPipeline_EmitPendingCheckpointFailureIsFatal(t *testing.T) {
	t.Parallel()

	a1 := "https://scientificrussia.ru/articles/a1"

	dir := t.TempDir()

	store := frontier.NewStore(1)
	store.RecordArticle(a1)

	fetch := &stubFetcher{pages: map[string]string{a1: articlePage("Статья")}}
	pipeline := newTestPipeline(t, fetch, filepath.Join(dir, "assets"))

	_, err := pipeline.EmitPending(context.Background(), store, failingSaver{})
	require.ErrorContains(t, err, "persist crawl state")
}
