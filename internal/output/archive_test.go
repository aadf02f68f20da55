package output_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newscrawl/internal/articles"
	"github.com/jonesrussell/newscrawl/internal/output"
)

func openArchive(t *testing.T) *output.Archive {
	t.Helper()

	archive, err := output.OpenArchive(filepath.Join(t.TempDir(), "articles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })

	return archive
}

func TestArchive_UpsertAndList(t *testing.T) {
	t.Parallel()

	archive := openArchive(t)

	first := sampleRecord()
	second := &articles.Record{
		ID:        2,
		SourceURL: "https://scientificrussia.ru/articles/second",
		Title:     "Вторая",
		Authors:   []string{articles.NotFoundAuthor},
		Topics:    []string{},
		Body:      "Текст.",
	}

	require.NoError(t, archive.Upsert(first))
	require.NoError(t, archive.Upsert(second))

	records, err := archive.List()
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, first.Title, records[0].Title)
	require.Equal(t, first.Authors, records[0].Authors)
	require.True(t, first.PublishedAt.Equal(records[0].PublishedAt))

	require.Equal(t, second.SourceURL, records[1].SourceURL)
	require.True(t, records[1].PublishedAt.IsZero())
}

func TestArchive_UpsertReplacesSameID(t *testing.T) {
	t.Parallel()

	archive := openArchive(t)

	rec := sampleRecord()
	require.NoError(t, archive.Upsert(rec))

	rec.Title = "Обновлённый заголовок"
	rec.PublishedAt = time.Date(2023, time.May, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, archive.Upsert(rec))

	records, err := archive.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Обновлённый заголовок", records[0].Title)
}
