// Package config loads the application configuration: built-in defaults,
// an optional YAML file, then environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"movie-recommender/internal/infra/poster"
	envconfig "movie-recommender/pkg/config"

	"gopkg.in/yaml.v3"
)

// Catalog source kinds.
const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

// ConfigPathEnv names the environment variable holding the YAML config path.
const ConfigPathEnv = "RECOMMENDER_CONFIG"

// AppConfig is the complete application configuration.
type AppConfig struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Poster    poster.Config   `yaml:"poster"`
	Throttle  ThrottleConfig  `yaml:"throttle"`
	Recommend RecommendConfig `yaml:"recommend"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// CatalogConfig selects where the precomputed catalog is loaded from.
type CatalogConfig struct {
	// Source is "file" or "postgres". Default: file
	Source string `yaml:"source"`

	// Path is the JSON artifact used by the file source. Default: data/catalog.json
	Path string `yaml:"path"`

	// DatabaseURL is the DSN used by the postgres source.
	DatabaseURL string `yaml:"database_url"`

	// Migrate creates the movies table at startup when using postgres.
	Migrate bool `yaml:"migrate"`
}

// ThrottleConfig bounds the aggregate request rate to the metadata API.
type ThrottleConfig struct {
	// RatePerSecond is the sustained rate. Zero disables pacing. Default: 10
	RatePerSecond float64 `yaml:"rate_per_second"`

	// Burst is the bucket size. Default: 1
	Burst int `yaml:"burst"`
}

// RecommendConfig controls recommendation requests.
type RecommendConfig struct {
	// Limit is the default number of recommendations. Default: 10
	Limit int `yaml:"limit"`

	// MaxLimit caps the limit a caller may request. Default: 100
	MaxLimit int `yaml:"max_limit"`

	// Parallelism bounds concurrent poster fetches per request. Default: 1
	Parallelism int `yaml:"parallelism"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is debug, info, warn or error. Default: info
	Level string `yaml:"level"`

	// Format is json or text. Default: json
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *AppConfig {
	return &AppConfig{
		Catalog: CatalogConfig{
			Source: CatalogSourceFile,
			Path:   "data/catalog.json",
		},
		Poster: poster.DefaultConfig(),
		Throttle: ThrottleConfig{
			RatePerSecond: 10,
			Burst:         1,
		},
		Recommend: RecommendConfig{
			Limit:       10,
			MaxLimit:    100,
			Parallelism: 1,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// ResolvePath returns flagValue when set, otherwise the RECOMMENDER_CONFIG environment variable.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(ConfigPathEnv)
}

// Load builds the configuration from defaults, the YAML file at path (if
// non-empty) and environment variables, then validates it.
// The path parameter is expected to come from a trusted source (command-line argument or environment).
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 -- path is provided by trusted source (CLI arg or environment), not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides fields with any environment variables that are set.
func (c *AppConfig) applyEnv() {
	c.Catalog.Source = envconfig.GetEnvString("CATALOG_SOURCE", c.Catalog.Source)
	c.Catalog.Path = envconfig.GetEnvString("CATALOG_PATH", c.Catalog.Path)
	c.Catalog.DatabaseURL = envconfig.GetEnvString("DATABASE_URL", c.Catalog.DatabaseURL)
	c.Catalog.Migrate = envconfig.GetEnvBool("CATALOG_MIGRATE", c.Catalog.Migrate)

	c.Poster.APIKey = envconfig.GetEnvString("TMDB_API_KEY", c.Poster.APIKey)
	c.Poster.BaseURL = envconfig.GetEnvString("TMDB_BASE_URL", c.Poster.BaseURL)
	c.Poster.ImageBaseURL = envconfig.GetEnvString("TMDB_IMAGE_BASE_URL", c.Poster.ImageBaseURL)
	c.Poster.ImageSize = envconfig.GetEnvString("TMDB_IMAGE_SIZE", c.Poster.ImageSize)
	c.Poster.Timeout = envconfig.GetEnvDuration("TMDB_TIMEOUT", c.Poster.Timeout)
	c.Poster.PlaceholderURL = envconfig.GetEnvString("POSTER_PLACEHOLDER_URL", c.Poster.PlaceholderURL)
	c.Poster.MaxAttempts = envconfig.GetEnvInt("POSTER_MAX_ATTEMPTS", c.Poster.MaxAttempts)
	c.Poster.RetryBaseDelay = envconfig.GetEnvDuration("POSTER_RETRY_BASE_DELAY", c.Poster.RetryBaseDelay)
	c.Poster.CacheTTL = envconfig.GetEnvDuration("POSTER_CACHE_TTL", c.Poster.CacheTTL)
	c.Poster.CacheMaxEntries = int64(envconfig.GetEnvInt("POSTER_CACHE_MAX_ENTRIES", int(c.Poster.CacheMaxEntries)))

	c.Throttle.RatePerSecond = envconfig.GetEnvFloat("POSTER_RATE_PER_SECOND", c.Throttle.RatePerSecond)
	c.Throttle.Burst = envconfig.GetEnvInt("POSTER_BURST", c.Throttle.Burst)

	c.Recommend.Limit = envconfig.GetEnvInt("RECOMMEND_LIMIT", c.Recommend.Limit)
	c.Recommend.Parallelism = envconfig.GetEnvInt("POSTER_PARALLELISM", c.Recommend.Parallelism)

	c.Server.Addr = envconfig.GetEnvString("HTTP_ADDR", c.Server.Addr)

	c.Log.Level = envconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envconfig.GetEnvString("LOG_FORMAT", c.Log.Format)
}

// Validate checks the configuration. Poster settings are validated when the
// resolver is built, so commands that skip posters do not need an API key.
func (c *AppConfig) Validate() error {
	var errs []error

	switch c.Catalog.Source {
	case CatalogSourceFile:
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("CATALOG_PATH is required when CATALOG_SOURCE=file"))
		}
	case CatalogSourcePostgres:
		if c.Catalog.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when CATALOG_SOURCE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q",
			CatalogSourceFile, CatalogSourcePostgres, c.Catalog.Source))
	}

	if c.Throttle.RatePerSecond < 0 {
		errs = append(errs, fmt.Errorf("POSTER_RATE_PER_SECOND must be non-negative, got %v", c.Throttle.RatePerSecond))
	}
	if c.Throttle.Burst < 1 {
		errs = append(errs, fmt.Errorf("POSTER_BURST must be at least 1, got %d", c.Throttle.Burst))
	}

	if c.Recommend.MaxLimit < 1 {
		errs = append(errs, fmt.Errorf("recommend max_limit must be positive, got %d", c.Recommend.MaxLimit))
	}
	if c.Recommend.Limit < 1 || c.Recommend.Limit > c.Recommend.MaxLimit {
		errs = append(errs, fmt.Errorf("RECOMMEND_LIMIT must be between 1 and %d, got %d", c.Recommend.MaxLimit, c.Recommend.Limit))
	}
	if c.Recommend.Parallelism < 1 || c.Recommend.Parallelism > 32 {
		errs = append(errs, fmt.Errorf("POSTER_PARALLELISM must be between 1 and 32, got %d", c.Recommend.Parallelism))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if err := envconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown_timeout: %w", err))
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
