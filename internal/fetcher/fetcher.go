// Package fetcher issues rate-limited HTTP GET requests for the crawl.
package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	colly "github.com/gocolly/colly/v2"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/jonesrussell/newscrawl/internal/logger"
)

// maxBodyBytes limits the size of fetched page responses.
const maxBodyBytes = 10 * 1024 * 1024 // 10 MB

// defaultMaxDelay bounds the randomized politeness delay inserted before
// every request.
const defaultMaxDelay = 2 * time.Second

// Config holds the fetcher settings, taken from the scraper configuration.
type Config struct {
	Headers map[string]string

	// Timeout bounds each request. Zero means no deadline at all, which is
	// a valid configuration for slow pages.
	Timeout time.Duration

	VerifyCertificate bool
	Encoding          string

	// MaxDelay bounds the random pre-request delay. Zero means the default.
	MaxDelay time.Duration
}

// Fetcher performs HTTP GETs through a colly collector configured with the
// politeness delay, request headers, timeout, and TLS settings. It is not
// safe for concurrent use; the crawl issues one fetch at a time.
type Fetcher struct {
	collector *colly.Collector
	encoding  string
	log       logger.Interface

	// lastBody holds the response captured by the OnResponse callback for
	// the fetch currently in flight.
	lastBody []byte
}

// New creates a fetcher from the given configuration.
func New(cfg Config, log logger.Interface) (*Fetcher, error) {
	collector := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
		colly.MaxBodySize(maxBodyBytes),
	)

	collector.SetRequestTimeout(cfg.Timeout)

	if !cfg.VerifyCertificate {
		collector.WithTransport(&http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // configured explicitly
		})
		log.Warn("TLS certificate verification is disabled")
	}

	maxDelay := cfg.MaxDelay
	if maxDelay == 0 {
		maxDelay = defaultMaxDelay
	}

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		RandomDelay: maxDelay,
	}); err != nil {
		return nil, fmt.Errorf("set rate limit: %w", err)
	}

	f := &Fetcher{
		collector: collector,
		encoding:  cfg.Encoding,
		log:       log,
	}

	collector.OnRequest(func(r *colly.Request) {
		for key, value := range cfg.Headers {
			r.Headers.Set(key, value)
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		f.lastBody = r.Body
	})

	return f, nil
}

// Fetch performs a GET for the given URL and returns the document text
// decoded to UTF-8. Transport failures and non-success HTTP statuses both
// return an error; callers treat either as a skippable page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.lastBody = nil

	if err := f.collector.Visit(url); err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	f.collector.Wait()

	text, err := decode(f.lastBody, f.encoding)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}

	f.log.Debug("fetched page", "url", url, "bytes", len(f.lastBody))

	return text, nil
}

// decode converts body bytes from the named charset to UTF-8.
func decode(body []byte, name string) (string, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return string(body), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q: %w", name, err)
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decode from %q: %w", name, err)
	}

	return string(decoded), nil
}
