package frontier

import (
	"fmt"
	"net/url"
	"strings"
)

// skipPrefixes lists href values that never lead to fetchable pages.
var skipPrefixes = []string{"#", "javascript:", "mailto:", "tel:"}

// Normalize resolves an anchor href against the page base and returns the
// absolute URL used for frontier dedup comparison. The second return value
// is false for hrefs that cannot become fetchable http(s) URLs.
//
// Normalization lowercases scheme and host and strips the fragment, so the
// same link expressed differently dedups to one frontier entry.
func Normalize(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(href, prefix) {
			return "", false
		}
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}

	resolved.Scheme = strings.ToLower(resolved.Scheme)
	resolved.Host = strings.ToLower(resolved.Host)
	resolved.Fragment = ""

	return resolved.String(), true
}

// Origin returns the scheme://host origin of a URL, the base against which
// relative hrefs are resolved.
func Origin(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("url %q has no scheme or host", rawURL)
	}

	return parsed.Scheme + "://" + strings.ToLower(parsed.Host), nil
}
