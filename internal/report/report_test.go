package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newscrawl/internal/articles"
	"github.com/jonesrussell/newscrawl/internal/report"
)

func sampleRecords() []articles.Record {
	return []articles.Record{
		{
			ID:          1,
			SourceURL:   "https://scientificrussia.ru/articles/one",
			Title:       "Первая статья",
			Authors:     []string{"Имя Фамилия"},
			PublishedAt: time.Date(2023, time.April, 5, 14, 30, 0, 0, time.UTC),
			Topics:      []string{"космос"},
		},
		{
			ID:        2,
			SourceURL: "https://scientificrussia.ru/articles/two",
			Title:     "Вторая статья",
			Authors:   []string{articles.NotFoundAuthor},
		},
	}
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	require.NoError(t, report.WriteMarkdown(&b, sampleRecords()))

	out := b.String()
	require.Contains(t, out, "# Crawl Report")
	require.Contains(t, out, "Articles collected: 2")
	require.Contains(t, out, "Первая статья")
	require.Contains(t, out, "2023-04-05 14:30")
	require.Contains(t, out, articles.NotFoundAuthor)
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	report.RenderTable(&b, sampleRecords())

	out := b.String()
	require.Contains(t, out, "Первая статья")
	require.Contains(t, out, "Вторая статья")
}
