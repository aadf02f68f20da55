package frontier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// checkpointFile is the on-disk checkpoint format. Field names are part of
// the resume contract and must not change.
type checkpointFile struct {
	URLs            []string `json:"urls"`
	Count           int      `json:"count"`
	PossibleURLs    []string `json:"possible_urls"`
	VisitedURLs     []string `json:"visited_urls"`
	CreatedArticles []string `json:"created_articles"`
}

// Checkpoint persists and reloads store contents so an interrupted crawl
// can resume without re-fetching or re-emitting processed pages.
type Checkpoint struct {
	path string
}

// NewCheckpoint creates a checkpoint backed by the file at path.
func NewCheckpoint(path string) *Checkpoint {
	return &Checkpoint{path: path}
}

// Path returns the checkpoint file location.
func (c *Checkpoint) Path() string {
	return c.path
}

// Save writes the full store state to the checkpoint file. The write goes
// to a temporary file first and is renamed into place, so a crash mid-write
// never leaves a truncated checkpoint.
func (c *Checkpoint) Save(s *Store) error {
	record := checkpointFile{
		URLs:            s.Discovered(),
		Count:           len(s.Discovered()),
		PossibleURLs:    s.Frontier(),
		VisitedURLs:     s.Visited(),
		CreatedArticles: s.Emitted(),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	dir := filepath.Dir(c.path)
	if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
		return fmt.Errorf("create checkpoint dir: %w", mkdirErr)
	}

	tmp, err := os.CreateTemp(dir, ".checkpoint-*")
	if err != nil {
		return fmt.Errorf("create checkpoint temp file: %w", err)
	}

	tmpName := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		os.Remove(tmpName)

		return fmt.Errorf("write checkpoint: %w", writeErr)
	}

	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmpName)

		return fmt.Errorf("close checkpoint temp file: %w", closeErr)
	}

	if renameErr := os.Rename(tmpName, c.path); renameErr != nil {
		os.Remove(tmpName)

		return fmt.Errorf("replace checkpoint: %w", renameErr)
	}

	return nil
}

// Load reads the checkpoint file and returns a store with its contents,
// replacing state wholesale. A missing file means a fresh crawl: an empty
// store is returned with no error.
func (c *Checkpoint) Load(target int) (*Store, error) {
	store := NewStore(target)

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}

		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	var record checkpointFile
	if unmarshalErr := json.Unmarshal(data, &record); unmarshalErr != nil {
		return nil, fmt.Errorf("decode checkpoint: %w", unmarshalErr)
	}

	store.restore(record.URLs, record.PossibleURLs, record.VisitedURLs, record.CreatedArticles)

	return store, nil
}
