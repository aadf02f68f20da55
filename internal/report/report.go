// Package report renders crawl results for humans: a Markdown report file
// and a terminal summary table.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nao1215/markdown"

	"github.com/jonesrussell/newscrawl/internal/articles"
)

// dateLayout is the timestamp format shown in reports.
const dateLayout = "2006-01-02 15:04"

// titlePreviewLimit truncates long titles in the terminal table.
const titlePreviewLimit = 60

// WriteMarkdown writes a Markdown report over the given records.
func WriteMarkdown(w io.Writer, records []articles.Record) error {
	md := markdown.NewMarkdown(w)

	md.H1("Crawl Report")
	md.PlainText("")
	md.PlainText(fmt.Sprintf("Articles collected: %d", len(records)))
	md.PlainText("")

	rows := make([][]string, 0, len(records))

	for i := range records {
		rec := &records[i]
		rows = append(rows, []string{
			strconv.Itoa(rec.ID),
			rec.Title,
			strings.Join(rec.Authors, ", "),
			formatDate(rec),
			strings.Join(rec.Topics, ", "),
			rec.SourceURL,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Title", "Authors", "Published", "Topics", "URL"},
		Rows:   rows,
	})

	if err := md.Build(); err != nil {
		return fmt.Errorf("build markdown report: %w", err)
	}

	return nil
}

// RenderTable prints a summary table of the records to w.
func RenderTable(w io.Writer, records []articles.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"ID", "Title", "Authors", "Published"})

	for i := range records {
		rec := &records[i]
		t.AppendRow(table.Row{
			rec.ID,
			truncate(rec.Title, titlePreviewLimit),
			strings.Join(rec.Authors, ", "),
			formatDate(rec),
		})
	}

	t.Render()
}

func formatDate(rec *articles.Record) string {
	if rec.PublishedAt.IsZero() {
		return ""
	}

	return rec.PublishedAt.Format(dateLayout)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit-1]) + "…"
}
