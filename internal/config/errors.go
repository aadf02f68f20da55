package config

import "errors"

// Validation errors. Each corresponds to one configuration fault kind and
// is fatal before any fetch happens.
var (
	// ErrSeedURL indicates a seed URL that does not match the news site pattern.
	ErrSeedURL = errors.New("seed URL does not match the news section pattern")

	// ErrArticleCount indicates the article count is not a positive integer.
	ErrArticleCount = errors.New("total articles is not a positive integer")

	// ErrArticleRange indicates the article count is outside the allowed range.
	ErrArticleRange = errors.New("total articles is out of range")

	// ErrHeaders indicates the headers field is not a string-to-string map.
	ErrHeaders = errors.New("headers are not a string map")

	// ErrEncoding indicates the encoding field is not a non-empty string.
	ErrEncoding = errors.New("encoding is not a non-empty string")

	// ErrTimeout indicates the timeout is not an integer in the allowed range.
	ErrTimeout = errors.New("timeout is not an integer in the allowed range")

	// ErrVerifyFlag indicates a certificate-verification or headless flag
	// that is not a boolean.
	ErrVerifyFlag = errors.New("verify certificate flag is not a boolean")
)
