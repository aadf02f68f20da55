// Package articles turns fetched article documents into structured records.
package articles

import "time"

// NotFoundAuthor is the placeholder used when no byline can be located.
const NotFoundAuthor = "NOT FOUND"

// Record is a structured article. Immutable after extraction.
type Record struct {
	// ID is sequential, 1-based, assigned at extraction time.
	ID int

	SourceURL   string
	Title       string
	Authors     []string
	PublishedAt time.Time
	Topics      []string
	Body        string
}
