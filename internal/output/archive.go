package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jonesrussell/newscrawl/internal/articles"
)

// archiveSchema creates the articles table. Author and topic sequences are
// stored as JSON arrays to keep the schema to one table.
const archiveSchema = `
CREATE TABLE IF NOT EXISTS articles (
	id           INTEGER PRIMARY KEY,
	url          TEXT NOT NULL,
	title        TEXT NOT NULL,
	published_at TEXT NOT NULL,
	authors      TEXT NOT NULL,
	topics       TEXT NOT NULL,
	body         TEXT NOT NULL
);`

// archiveRow is the relational shape of a record.
type archiveRow struct {
	ID          int    `db:"id"`
	URL         string `db:"url"`
	Title       string `db:"title"`
	PublishedAt string `db:"published_at"`
	Authors     string `db:"authors"`
	Topics      string `db:"topics"`
	Body        string `db:"body"`
}

// Archive stores article records in a SQLite database file.
type Archive struct {
	db *sqlx.DB
}

// OpenArchive opens or creates the archive database at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	if _, execErr := db.Exec(archiveSchema); execErr != nil {
		db.Close()

		return nil, fmt.Errorf("create archive schema: %w", execErr)
	}

	return &Archive{db: db}, nil
}

// Upsert inserts or replaces the archived record with the same ID.
func (a *Archive) Upsert(rec *articles.Record) error {
	row, err := toRow(rec)
	if err != nil {
		return err
	}

	const query = `
		INSERT OR REPLACE INTO articles (id, url, title, published_at, authors, topics, body)
		VALUES (:id, :url, :title, :published_at, :authors, :topics, :body)`

	if _, execErr := a.db.NamedExec(query, row); execErr != nil {
		return fmt.Errorf("archive article %d: %w", rec.ID, execErr)
	}

	return nil
}

// List returns every archived record ordered by ID.
func (a *Archive) List() ([]articles.Record, error) {
	var rows []archiveRow

	if err := a.db.Select(&rows, `SELECT * FROM articles ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}

	records := make([]articles.Record, 0, len(rows))

	for i := range rows {
		rec, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}

		records = append(records, *rec)
	}

	return records, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func toRow(rec *articles.Record) (*archiveRow, error) {
	authors, err := json.Marshal(rec.Authors)
	if err != nil {
		return nil, fmt.Errorf("marshal authors: %w", err)
	}

	topics, err := json.Marshal(rec.Topics)
	if err != nil {
		return nil, fmt.Errorf("marshal topics: %w", err)
	}

	publishedAt := ""
	if !rec.PublishedAt.IsZero() {
		publishedAt = rec.PublishedAt.Format(time.RFC3339)
	}

	return &archiveRow{
		ID:          rec.ID,
		URL:         rec.SourceURL,
		Title:       rec.Title,
		PublishedAt: publishedAt,
		Authors:     string(authors),
		Topics:      string(topics),
		Body:        rec.Body,
	}, nil
}

func fromRow(row *archiveRow) (*articles.Record, error) {
	rec := &articles.Record{
		ID:        row.ID,
		SourceURL: row.URL,
		Title:     row.Title,
		Body:      row.Body,
	}

	if row.PublishedAt != "" {
		parsed, err := time.Parse(time.RFC3339, row.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("parse archived date for article %d: %w", row.ID, err)
		}

		rec.PublishedAt = parsed
	}

	if err := json.Unmarshal([]byte(row.Authors), &rec.Authors); err != nil {
		return nil, fmt.Errorf("decode archived authors for article %d: %w", row.ID, err)
	}

	if err := json.Unmarshal([]byte(row.Topics), &rec.Topics); err != nil {
		return nil, fmt.Errorf("decode archived topics for article %d: %w", row.ID, err)
	}

	return rec, nil
}
