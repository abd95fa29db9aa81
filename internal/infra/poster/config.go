package poster

import (
	"fmt"
	"net/url"
	"time"

	"movie-recommender/internal/resilience/retry"
	envconfig "movie-recommender/pkg/config"
)

// Default values for TMDB access.
const (
	DefaultBaseURL        = "https://api.themoviedb.org/3"
	DefaultImageBaseURL   = "https://image.tmdb.org/t/p"
	DefaultImageSize      = "w500"
	DefaultPlaceholderURL = "https://via.placeholder.com/500x750/cccccc/000000?text=No+Image+Available"
	DefaultUserAgent      = "Movie-Recommendation-System/1.0"
)

// Config holds the configuration for poster resolution.
//
// Network settings:
//   - Timeout: per-request budget covering connect and read
//   - MaxAttempts / RetryBaseDelay: exponential backoff on transient failures
//
// Fallback settings:
//   - PlaceholderURL: returned whenever a real poster cannot be resolved
//
// Caching:
//   - CacheTTL / CacheMaxEntries: resolved posters are cached by movie id
type Config struct {
	// APIKey is the TMDB v3 API key. Required.
	APIKey string `yaml:"api_key"`

	// BaseURL is the TMDB API root, without trailing slash.
	// Default: https://api.themoviedb.org/3
	BaseURL string `yaml:"base_url"`

	// ImageBaseURL is the TMDB image root, without trailing slash.
	// Default: https://image.tmdb.org/t/p
	ImageBaseURL string `yaml:"image_base_url"`

	// ImageSize is the resolution tier appended to ImageBaseURL.
	// Default: w500
	ImageSize string `yaml:"image_size"`

	// PlaceholderURL is the fallback image.
	PlaceholderURL string `yaml:"placeholder_url"`

	// UserAgent identifies this client to TMDB.
	// Default: Movie-Recommendation-System/1.0
	UserAgent string `yaml:"user_agent"`

	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// MaxAttempts is the total number of attempts per poster, including the first.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts"`

	// RetryBaseDelay is the delay before the first retry; it doubles on each retry.
	// Default: 1s
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`

	// MaxIdleConnsPerHost bounds the pooled keep-alive connections to TMDB.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// CacheTTL is how long a resolved poster URL is reused. Zero disables caching.
	// Default: 24h
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// CacheMaxEntries bounds the number of cached posters.
	// Default: 10000
	CacheMaxEntries int64 `yaml:"cache_max_entries"`
}

// DefaultConfig returns the default configuration for poster resolution.
// APIKey is left empty and must be provided.
func DefaultConfig() Config {
	return Config{
		BaseURL:             DefaultBaseURL,
		ImageBaseURL:        DefaultImageBaseURL,
		ImageSize:           DefaultImageSize,
		PlaceholderURL:      DefaultPlaceholderURL,
		UserAgent:           DefaultUserAgent,
		Timeout:             10 * time.Second,
		MaxAttempts:         3,
		RetryBaseDelay:      1 * time.Second,
		MaxIdleConnsPerHost: 10,
		CacheTTL:            24 * time.Hour,
		CacheMaxEntries:     10000,
	}
}

// RetryConfig derives the backoff policy from this configuration.
func (c *Config) RetryConfig() retry.Config {
	rc := retry.MetadataAPIConfig()
	rc.MaxAttempts = c.MaxAttempts
	rc.InitialDelay = c.RetryBaseDelay
	if rc.MaxDelay < c.RetryBaseDelay {
		rc.MaxDelay = c.RetryBaseDelay
	}
	return rc
}

// Validate checks if the configuration values are valid and safe.
//
// Validation rules:
//   - APIKey: non-empty
//   - BaseURL, ImageBaseURL, PlaceholderURL: absolute http(s) URLs
//   - Timeout: 1ms-5m
//   - MaxAttempts: 1-10
//   - RetryBaseDelay: >= 0
//   - CacheTTL: >= 0
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	for name, raw := range map[string]string{
		"base URL":        c.BaseURL,
		"image base URL":  c.ImageBaseURL,
		"placeholder URL": c.PlaceholderURL,
	} {
		if err := validateAbsoluteURL(raw); err != nil {
			return fmt.Errorf("%s %q is invalid: %w", name, raw, err)
		}
	}

	if c.ImageSize == "" {
		return fmt.Errorf("image size must not be empty")
	}

	if err := envconfig.ValidateDurationRange(c.Timeout, time.Millisecond, 5*time.Minute); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	if c.MaxAttempts < 1 || c.MaxAttempts > 10 {
		return fmt.Errorf("max attempts must be between 1 and 10, got %d", c.MaxAttempts)
	}

	if err := envconfig.ValidateNonNegativeDuration(c.RetryBaseDelay); err != nil {
		return fmt.Errorf("retry base delay: %w", err)
	}

	if err := envconfig.ValidateNonNegativeDuration(c.CacheTTL); err != nil {
		return fmt.Errorf("cache TTL: %w", err)
	}

	if c.CacheTTL > 0 && c.CacheMaxEntries < 1 {
		return fmt.Errorf("cache max entries must be positive when caching is enabled, got %d", c.CacheMaxEntries)
	}

	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
