package frontier_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newscrawl/internal/frontier"
)

func newCheckpoint(t *testing.T) *frontier.Checkpoint {
	t.Helper()

	return frontier.NewCheckpoint(filepath.Join(t.TempDir(), "recursive_crawler.json"))
}

func TestCheckpoint_RoundTrip(t *testing.T) {
	t.Parallel()

	s := frontier.NewStore(5)

	s.AddCandidate("https://site/news")
	s.AddCandidate("https://site/a")
	s.AddCandidate("https://site/b")
	s.RecordVisit("https://site/news")
	s.RecordArticle("https://site/a")
	s.MarkEmitted("https://site/a")

	cp := newCheckpoint(t)
	require.NoError(t, cp.Save(s))

	loaded, err := cp.Load(5)
	require.NoError(t, err)

	require.Equal(t, s.Discovered(), loaded.Discovered())
	require.Equal(t, s.Frontier(), loaded.Frontier())
	require.Equal(t, s.Visited(), loaded.Visited())
	require.Equal(t, s.Emitted(), loaded.Emitted())
	require.True(t, loaded.WasEmitted("https://site/a"))
}

func TestCheckpoint_LoadMissingFileIsFreshCrawl(t *testing.T) {
	t.Parallel()

	loaded, err := newCheckpoint(t).Load(3)
	require.NoError(t, err)

	require.Empty(t, loaded.Frontier())
	require.Empty(t, loaded.Visited())
	require.Empty(t, loaded.Discovered())
	require.False(t, loaded.TargetMet())
}

func TestCheckpoint_LoadCorruptFileFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recursive_crawler.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := frontier.NewCheckpoint(path).Load(3)
	require.Error(t, err)
}

func TestCheckpoint_FileFormat(t *testing.T) {
	t.Parallel()

	s := frontier.NewStore(5)

	s.AddCandidate("https://site/news")
	s.RecordVisit("https://site/news")
	s.AddCandidate("https://site/a")
	s.RecordArticle("https://site/a")

	cp := newCheckpoint(t)
	require.NoError(t, cp.Save(s))

	data, err := os.ReadFile(cp.Path())
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(data, &record))

	// Field names are the resume contract.
	require.Contains(t, record, "urls")
	require.Contains(t, record, "count")
	require.Contains(t, record, "possible_urls")
	require.Contains(t, record, "visited_urls")
	require.Contains(t, record, "created_articles")
	require.InDelta(t, 1, record["count"], 0)
}

func TestCheckpoint_ResumeReplayPosition(t *testing.T) {
	t.Parallel()

	s := frontier.NewStore(10)

	s.AddCandidate("https://site/news")
	s.AddCandidate("https://site/a")
	s.AddCandidate("https://site/b")
	s.RecordVisit("https://site/news")
	s.RecordVisit("https://site/a")

	cp := newCheckpoint(t)
	require.NoError(t, cp.Save(s))

	loaded, err := cp.Load(10)
	require.NoError(t, err)

	// Identical to what a non-interrupted run would produce next.
	next, err := loaded.NextVisitTarget()
	require.NoError(t, err)
	require.Equal(t, "https://site/b", next)
}
