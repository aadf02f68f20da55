package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newscrawl/internal/frontier"
)

// Selectors for the target site's current markup. The article-link subset
// lives inside the news card container; everything else on the page is
// navigation or other content.
const (
	articleLinkSelector = ".card-body div.title a[href]"
	anchorSelector      = "a[href]"
)

// Links holds the two link sets extracted from one fetched page.
type Links struct {
	// Articles is the subset of anchors that point at article pages.
	Articles []string

	// All is every anchor target on the page, candidates for frontier expansion.
	All []string
}

// LinkExtractor pulls anchor targets out of fetched documents and
// normalizes them against the site's base origin.
type LinkExtractor struct {
	base *url.URL
}

// NewLinkExtractor creates a link extractor resolving relative hrefs
// against baseURL.
func NewLinkExtractor(baseURL string) (*LinkExtractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q has no scheme or host", baseURL)
	}

	return &LinkExtractor{base: base}, nil
}

// Extract parses a fetched document and returns its article-link subset and
// its full anchor-target set, both normalized.
func (e *LinkExtractor) Extract(document string) (*Links, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	links := &Links{}

	doc.Find(articleLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		if normalized, ok := e.normalizeAttr(sel); ok {
			links.Articles = append(links.Articles, normalized)
		}
	})

	doc.Find(anchorSelector).Each(func(_ int, sel *goquery.Selection) {
		if normalized, ok := e.normalizeAttr(sel); ok {
			links.All = append(links.All, normalized)
		}
	})

	return links, nil
}

func (e *LinkExtractor) normalizeAttr(sel *goquery.Selection) (string, bool) {
	href, exists := sel.Attr("href")
	if !exists {
		return "", false
	}

	return frontier.Normalize(e.base, href)
}
