// Package output persists article records: a raw text unit and a metadata
// unit per record on disk, plus an optional SQLite archive.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonesrussell/newscrawl/internal/articles"
)

// metaDateLayout is the timestamp format used in metadata files.
const metaDateLayout = "2006-01-02 15:04:05"

// meta is the on-disk metadata unit for one article.
type meta struct {
	ID      int      `json:"id"`
	URL     string   `json:"url"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Authors []string `json:"author"`
	Topics  []string `json:"topics"`
}

// Writer writes article units into a target directory, keyed by the
// record's sequential ID.
type Writer struct {
	dir string
}

// NewWriter creates a writer targeting dir. The directory must exist; see
// PrepareEnvironment.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// PrepareEnvironment readies the output directory. With reset the
// directory is wiped and recreated; without, it is created only if missing,
// so output from an interrupted run survives.
func PrepareEnvironment(dir string, reset bool) error {
	if reset {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("reset output dir: %w", err)
		}
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	return nil
}

// WriteRaw writes the record's body text as <id>_raw.txt.
func (w *Writer) WriteRaw(rec *articles.Record) error {
	path := filepath.Join(w.dir, fmt.Sprintf("%d_raw.txt", rec.ID))

	if err := os.WriteFile(path, []byte(rec.Body), 0o640); err != nil {
		return fmt.Errorf("write raw article %d: %w", rec.ID, err)
	}

	return nil
}

// WriteMeta writes the record's metadata as <id>_meta.json.
func (w *Writer) WriteMeta(rec *articles.Record) error {
	date := ""
	if !rec.PublishedAt.IsZero() {
		date = rec.PublishedAt.Format(metaDateLayout)
	}

	unit := meta{
		ID:      rec.ID,
		URL:     rec.SourceURL,
		Title:   rec.Title,
		Date:    date,
		Authors: rec.Authors,
		Topics:  rec.Topics,
	}

	data, err := json.MarshalIndent(unit, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal meta %d: %w", rec.ID, err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("%d_meta.json", rec.ID))

	if writeErr := os.WriteFile(path, data, 0o640); writeErr != nil {
		return fmt.Errorf("write meta %d: %w", rec.ID, writeErr)
	}

	return nil
}

// Write persists both units for a record.
func (w *Writer) Write(rec *articles.Record) error {
	if err := w.WriteRaw(rec); err != nil {
		return err
	}

	return w.WriteMeta(rec)
}
