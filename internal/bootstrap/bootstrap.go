// Package bootstrap wires configuration into the catalog source and poster
// resolver shared by the API server and the command-line client.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"movie-recommender/internal/config"
	"movie-recommender/internal/domain/entity"
	fileRepo "movie-recommender/internal/infra/adapter/persistence/file"
	pgRepo "movie-recommender/internal/infra/adapter/persistence/postgres"
	"movie-recommender/internal/infra/db"
	"movie-recommender/internal/infra/poster"
	"movie-recommender/internal/infra/throttle"
	"movie-recommender/internal/repository"
	"movie-recommender/internal/resilience/circuitbreaker"
	recUC "movie-recommender/internal/usecase/recommend"
)

// Catalog is a loaded catalog plus the database it came from, if any.
type Catalog struct {
	Catalog *entity.Catalog

	// DB is non-nil for the postgres source; the caller closes it.
	DB *sql.DB
}

// Close releases the database connection when one was opened.
func (c *Catalog) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// OpenDatabase connects to cfg.DatabaseURL and migrates when cfg.Migrate is set.
func OpenDatabase(ctx context.Context, cfg config.CatalogConfig) (*sql.DB, error) {
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Migrate {
		if err := db.MigrateUp(ctx, database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return database, nil
}

// LoadCatalog loads the catalog from the configured source. A missing
// artifact yields an error wrapping entity.ErrStartupDataMissing.
func LoadCatalog(ctx context.Context, cfg config.CatalogConfig, logger *slog.Logger) (*Catalog, error) {
	var (
		src      repository.CatalogSource
		database *sql.DB
	)

	switch cfg.Source {
	case config.CatalogSourcePostgres:
		var err error
		database, err = OpenDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		src = pgRepo.NewCatalogSource(circuitbreaker.NewGuardedDB(database))
	default:
		src = fileRepo.NewCatalogSource(cfg.Path)
	}

	catalog, err := src.Load(ctx)
	if err != nil {
		if database != nil {
			_ = database.Close()
		}
		return nil, err
	}

	logger.Info("catalog loaded",
		slog.String("source", cfg.Source),
		slog.Int("movies", catalog.Size()))

	return &Catalog{Catalog: catalog, DB: database}, nil
}

// NewPosterResolver builds the TMDB resolver with Prometheus metrics.
// It fails when the poster configuration is invalid, e.g. without an API key.
func NewPosterResolver(cfg poster.Config) (*poster.TMDBResolver, error) {
	return poster.NewTMDBResolver(cfg, poster.NewHTTPClient(cfg),
		poster.WithMetrics(poster.NewPrometheusMetrics()))
}

// NewServingPosterResolver picks the resolver for the HTTP API. Without an
// API key it logs a warning and falls back to a resolver that always returns
// the placeholder image; the TMDB resolver is nil in that case.
func NewServingPosterResolver(cfg poster.Config, logger *slog.Logger) (recUC.PosterResolver, *poster.TMDBResolver, error) {
	if cfg.APIKey == "" {
		logger.Warn("TMDB_API_KEY not set, serving placeholder posters")
		return poster.NewPlaceholderResolver(cfg.PlaceholderURL), nil, nil
	}

	resolver, err := NewPosterResolver(cfg)
	if err != nil {
		return nil, nil, err
	}
	return resolver, resolver, nil
}

// NewService builds the recommendation service. A nil resolver disables posters.
func NewService(catalog *entity.Catalog, resolver recUC.PosterResolver, cfg *config.AppConfig) *recUC.Service {
	limiter := throttle.NewLimiter(cfg.Throttle.RatePerSecond, cfg.Throttle.Burst)

	return recUC.NewService(recUC.NewLookup(catalog), resolver, limiter, recUC.Config{
		DefaultLimit: cfg.Recommend.Limit,
		Parallelism:  cfg.Recommend.Parallelism,
	})
}
