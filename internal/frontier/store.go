// Package frontier holds the crawl's durable state: the discovered article
// URLs, the full link frontier, the visited set, and the set of URLs whose
// article output has already been written. All mutators are idempotent
// no-ops on duplicate input so that replays after a crash never corrupt
// ordering.
package frontier

import "errors"

// ErrExhausted is returned by NextVisitTarget when every frontier URL has
// been visited.
var ErrExhausted = errors.New("frontier exhausted")

// Store owns the crawl state. It is not safe for concurrent use; the crawl
// is strictly sequential with one fetch in flight, so no locking is needed.
type Store struct {
	target int

	discovered []string
	frontier   []string
	visited    []string
	emitted    []string

	inDiscovered map[string]struct{}
	inFrontier   map[string]struct{}
	inVisited    map[string]struct{}
	inEmitted    map[string]struct{}
}

// NewStore creates an empty store for a fresh crawl with the given target
// article count.
func NewStore(target int) *Store {
	return &Store{
		target:       target,
		inDiscovered: make(map[string]struct{}),
		inFrontier:   make(map[string]struct{}),
		inVisited:    make(map[string]struct{}),
		inEmitted:    make(map[string]struct{}),
	}
}

// NextVisitTarget returns the frontier URL at the replay position, which is
// always the length of the visited sequence. Deriving the position this way
// means a store loaded from a checkpoint resumes exactly where it stopped,
// with no separate cursor to desynchronize.
func (s *Store) NextVisitTarget() (string, error) {
	if len(s.visited) >= len(s.frontier) {
		return "", ErrExhausted
	}

	return s.frontier[len(s.visited)], nil
}

// AddCandidate appends a URL to the frontier if it has not been seen before.
func (s *Store) AddCandidate(url string) {
	if url == "" {
		return
	}

	if _, seen := s.inFrontier[url]; seen {
		return
	}

	s.inFrontier[url] = struct{}{}
	s.frontier = append(s.frontier, url)
}

// RecordVisit marks a URL as fetched. The URL is added to the frontier
// first if needed, keeping the visited sequence a subsequence of the
// frontier.
func (s *Store) RecordVisit(url string) {
	if url == "" {
		return
	}

	s.AddCandidate(url)

	if _, seen := s.inVisited[url]; seen {
		return
	}

	s.inVisited[url] = struct{}{}
	s.visited = append(s.visited, url)
}

// RecordArticle appends a URL to the discovered-article sequence, unless it
// is already present or the target count has been reached. The URL is also
// ensured to be on the frontier.
func (s *Store) RecordArticle(url string) {
	if url == "" || s.TargetMet() {
		return
	}

	if _, seen := s.inDiscovered[url]; seen {
		return
	}

	s.AddCandidate(url)

	s.inDiscovered[url] = struct{}{}
	s.discovered = append(s.discovered, url)
}

// TargetMet reports whether the configured article count has been reached.
func (s *Store) TargetMet() bool {
	return len(s.discovered) >= s.target
}

// MarkEmitted records that the article output for a URL has been written.
func (s *Store) MarkEmitted(url string) {
	if url == "" {
		return
	}

	if _, seen := s.inEmitted[url]; seen {
		return
	}

	s.inEmitted[url] = struct{}{}
	s.emitted = append(s.emitted, url)
}

// WasEmitted reports whether the article output for a URL has already been
// written in this or a previous run.
func (s *Store) WasEmitted(url string) bool {
	_, seen := s.inEmitted[url]
	return seen
}

// Discovered returns a copy of the discovered-article sequence in discovery
// order.
func (s *Store) Discovered() []string {
	return append([]string(nil), s.discovered...)
}

// Frontier returns a copy of the frontier sequence in first-seen order.
func (s *Store) Frontier() []string {
	return append([]string(nil), s.frontier...)
}

// Visited returns a copy of the visited sequence in visit order.
func (s *Store) Visited() []string {
	return append([]string(nil), s.visited...)
}

// Emitted returns a copy of the emitted sequence.
func (s *Store) Emitted() []string {
	return append([]string(nil), s.emitted...)
}

// restore replaces the store contents wholesale from checkpoint data.
func (s *Store) restore(discovered, frontier, visited, emitted []string) {
	s.discovered = nil
	s.frontier = nil
	s.visited = nil
	s.emitted = nil
	s.inDiscovered = make(map[string]struct{}, len(discovered))
	s.inFrontier = make(map[string]struct{}, len(frontier))
	s.inVisited = make(map[string]struct{}, len(visited))
	s.inEmitted = make(map[string]struct{}, len(emitted))

	for _, url := range frontier {
		s.AddCandidate(url)
	}

	for _, url := range visited {
		s.RecordVisit(url)
	}

	for _, url := range discovered {
		if _, seen := s.inDiscovered[url]; seen {
			continue
		}

		s.AddCandidate(url)
		s.inDiscovered[url] = struct{}{}
		s.discovered = append(s.discovered, url)
	}

	for _, url := range emitted {
		s.MarkEmitted(url)
	}
}
