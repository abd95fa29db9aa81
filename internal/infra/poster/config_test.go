package poster

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.BaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p", cfg.ImageBaseURL)
	assert.Equal(t, "w500", cfg.ImageSize)
	assert.Equal(t, "https://via.placeholder.com/500x750/cccccc/000000?text=No+Image+Available", cfg.PlaceholderURL)
	assert.Equal(t, "Movie-Recommendation-System/1.0", cfg.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.RetryBaseDelay)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Empty(t, cfg.APIKey)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.APIKey = "key"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(*Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: true},
		{name: "relative base url", mutate: func(c *Config) { c.BaseURL = "/3" }, wantErr: true},
		{name: "ftp image base url", mutate: func(c *Config) { c.ImageBaseURL = "ftp://image.tmdb.org" }, wantErr: true},
		{name: "empty placeholder", mutate: func(c *Config) { c.PlaceholderURL = "" }, wantErr: true},
		{name: "empty image size", mutate: func(c *Config) { c.ImageSize = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "zero attempts", mutate: func(c *Config) { c.MaxAttempts = 0 }, wantErr: true},
		{name: "too many attempts", mutate: func(c *Config) { c.MaxAttempts = 11 }, wantErr: true},
		{name: "single attempt", mutate: func(c *Config) { c.MaxAttempts = 1 }},
		{name: "negative retry delay", mutate: func(c *Config) { c.RetryBaseDelay = -time.Second }, wantErr: true},
		{name: "negative cache ttl", mutate: func(c *Config) { c.CacheTTL = -time.Second }, wantErr: true},
		{name: "cache disabled", mutate: func(c *Config) { c.CacheTTL = 0; c.CacheMaxEntries = 0 }},
		{name: "cache without capacity", mutate: func(c *Config) { c.CacheMaxEntries = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_MissingKeyIsSentinel(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, errors.Is(cfg.Validate(), ErrMissingAPIKey))
}

func TestConfig_RetryConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 4
	cfg.RetryBaseDelay = 250 * time.Millisecond

	rc := cfg.RetryConfig()

	assert.Equal(t, 4, rc.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, rc.InitialDelay)
	assert.Equal(t, 2.0, rc.Multiplier)
	assert.Zero(t, rc.JitterFraction)
	assert.ElementsMatch(t, []int{429, 500, 502, 503, 504}, rc.RetryableStatuses)
}
