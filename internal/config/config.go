// Package config loads and validates the scraper configuration file.
package config

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Article count and timeout bounds.
const (
	MinArticles = 1
	MaxArticles = 149
	MinTimeout  = 0
	MaxTimeout  = 59
)

/// seedURLPattern matches valid seed URLs: the news section of the target site.
var seedURLPattern = regexp.MustCompile(`^https?://(www\.)?scientificrussia\.ru/news`)

// Config holds the scraper configuration. Field names mirror the keys of
// the JSON configuration file.
type Config struct {
	SeedURLs                []string          `mapstructure:"seed_urls"`
	TotalArticles           int               `mapstructure:"total_articles_to_find_and_parse"`
	Headers                 map[string]string `mapstructure:"headers"`
	Encoding                string            `mapstructure:"encoding"`
	Timeout                 int               `mapstructure:"timeout"`
	ShouldVerifyCertificate bool              `mapstructure:"should_verify_certificate"`
	HeadlessMode            bool              `mapstructure:"headless_mode"`
}

// Load reads the configuration file at path, decodes it, and validates it.
// Any validation failure wraps one of the sentinel errors in errors.go.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := checkFieldTypes(v); err != nil {
		return nil, err
	}

	var cfg Config

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))

	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the scalar bounds of an already-decoded configuration.
func (c *Config) Validate() error {
	if len(c.SeedURLs) == 0 {
		return fmt.Errorf("%w: no seed URLs configured", ErrSeedURL)
	}

	for _, seed := range c.SeedURLs {
		if !seedURLPattern.MatchString(seed) {
			return fmt.Errorf("%w: %q", ErrSeedURL, seed)
		}
	}

	if c.TotalArticles <= 0 {
		return fmt.Errorf("%w: %d", ErrArticleCount, c.TotalArticles)
	}

	if c.TotalArticles < MinArticles || c.TotalArticles > MaxArticles {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrArticleRange, c.TotalArticles, MinArticles, MaxArticles)
	}

	if c.Encoding == "" {
		return ErrEncoding
	}

	if c.Timeout < MinTimeout || c.Timeout > MaxTimeout {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrTimeout, c.Timeout, MinTimeout, MaxTimeout)
	}

	return nil
}

// RequestTimeout returns the configured timeout as a duration. A configured
// timeout of 0 yields a zero duration, meaning requests get no deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// checkFieldTypes rejects configuration values of the wrong JSON type before
// decoding, so that each fault is reported as its own error kind rather than
// a generic decode failure.
func checkFieldTypes(v *viper.Viper) error {
	if _, ok := v.Get("seed_urls").([]any); !ok {
		return fmt.Errorf("%w: seed_urls is not a list", ErrSeedURL)
	}

	headers, ok := v.Get("headers").(map[string]any)
	if !ok {
		return ErrHeaders
	}

	for key, value := range headers {
		if _, isString := value.(string); !isString {
			return fmt.Errorf("%w: header %q has a non-string value", ErrHeaders, key)
		}
	}

	if _, ok := v.Get("encoding").(string); !ok {
		return ErrEncoding
	}

	if !isWholeNumber(v.Get("total_articles_to_find_and_parse")) {
		return ErrArticleCount
	}

	if !isWholeNumber(v.Get("timeout")) {
		return ErrTimeout
	}

	if _, ok := v.Get("should_verify_certificate").(bool); !ok {
		return ErrVerifyFlag
	}

	if _, ok := v.Get("headless_mode").(bool); !ok {
		return fmt.Errorf("%w: headless_mode", ErrVerifyFlag)
	}

	return nil
}

// isWholeNumber reports whether a decoded JSON value is an integral number.
// JSON numbers decode as float64, so a fractional part is rejected explicitly.
func isWholeNumber(value any) bool {
	switch n := value.(type) {
	case int, int32, int64:
		return true
	case float64:
		return n == math.Trunc(n)
	default:
		return false
	}
}
