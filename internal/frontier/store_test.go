package frontier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newscrawl/internal/frontier"
)

func TestStore_CandidateDedupKeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	s := frontier.NewStore(10)

	s.AddCandidate("https://site/a")
	s.AddCandidate("https://site/b")
	s.AddCandidate("https://site/a")
	s.AddCandidate("https://site/c")
	s.AddCandidate("https://site/b")

	require.Equal(t, []string{"https://site/a", "https://site/b", "https://site/c"}, s.Frontier())
}

func TestStore_RecordArticleCappedAtTarget(t *testing.T) {
	t.Parallel()

	s := frontier.NewStore(2)

	s.RecordArticle("https://site/1")
	s.RecordArticle("https://site/2")
	s.RecordArticle("https://site/3")
	s.RecordArticle("https://site/1")

	require.True(t, s.TargetMet())
	require.Equal(t, []string{"https://site/1", "https://site/2"}, s.Discovered())
}

func TestStore_MutatorsIdempotent(t *testing.T) {
	t.Parallel()

	once := frontier.NewStore(5)
	twice := frontier.NewStore(5)

	urls := []string{"https://site/x", "https://site/y"}

	for _, u := range urls {
		once.AddCandidate(u)
		once.RecordVisit(u)
		once.RecordArticle(u)
		once.MarkEmitted(u)

		twice.AddCandidate(u)
		twice.AddCandidate(u)
		twice.RecordVisit(u)
		twice.RecordVisit(u)
		twice.RecordArticle(u)
		twice.RecordArticle(u)
		twice.MarkEmitted(u)
		twice.MarkEmitted(u)
	}

	require.Equal(t, once.Frontier(), twice.Frontier())
	require.Equal(t, once.Visited(), twice.Visited())
	require.Equal(t, once.Discovered(), twice.Discovered())
	require.Equal(t, once.Emitted(), twice.Emitted())
}

func TestStore_NextVisitTargetIsReplayPosition(t *testing.T) {
	t.Parallel()

	s := frontier.NewStore(10)

	s.AddCandidate("https://site/a")
	s.AddCandidate("https://site/b")
	s.AddCandidate("https://site/c")

	next, err := s.NextVisitTarget()
	require.NoError(t, err)
	require.Equal(t, "https://site/a", next)

	s.RecordVisit("https://site/a")

	next, err = s.NextVisitTarget()
	require.NoError(t, err)
	require.Equal(t, "https://site/b", next)

	s.RecordVisit("https://site/b")
	s.RecordVisit("https://site/c")

	_, err = s.NextVisitTarget()
	require.ErrorIs(t, err, frontier.ErrExhausted)
}

func TestStore_VisitOfUnknownURLJoinsFrontier(t *testing.T) {
	t.Parallel()

	s := frontier.NewStore(10)

	s.RecordVisit("https://site/seed")

	require.Equal(t, []string{"https://site/seed"}, s.Frontier())
	require.Equal(t, []string{"https://site/seed"}, s.Visited())
}

func TestStore_EmittedMembership(t *testing.T) {
	t.Parallel()

	s := frontier.NewStore(10)

	require.False(t, s.WasEmitted("https://site/1"))

	s.MarkEmitted("https://site/1")

	require.True(t, s.WasEmitted("https://site/1"))
	require.False(t, s.WasEmitted("https://site/2"))
}
