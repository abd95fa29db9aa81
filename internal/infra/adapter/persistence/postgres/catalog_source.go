// Package postgres stores and loads the recommendation catalog in PostgreSQL.
// Each row of the movies table carries one row of the similarity matrix as a pgvector column.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"movie-recommender/internal/domain/entity"
	"movie-recommender/internal/repository"
	"movie-recommender/internal/resilience/retry"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
)

// undefinedTable is the PostgreSQL SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// Querier is satisfied by *sql.DB and by circuitbreaker.GuardedDB.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// CatalogSource loads the catalog from the movies table.
type CatalogSource struct {
	q        Querier
	retryCfg retry.Config
}

// NewCatalogSource creates a PostgreSQL-backed CatalogSource.
// Transient connection failures are retried with retry.DBConfig.
func NewCatalogSource(q Querier) repository.CatalogSource {
	return &CatalogSource{
		q:        q,
		retryCfg: retry.DBConfig(),
	}
}

// Load reads every movie ordered by position and validates the resulting matrix.
func (s *CatalogSource) Load(ctx context.Context) (*entity.Catalog, error) {
	var catalog *entity.Catalog
	err := retry.WithBackoff(ctx, s.retryCfg, func() error {
		c, err := s.load(ctx)
		if err != nil {
			return err
		}
		catalog = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *CatalogSource) load(ctx context.Context) (*entity.Catalog, error) {
	const query = `
SELECT movie_id, title, similarity
FROM movies
ORDER BY position`

	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
			return nil, fmt.Errorf("%w: table movies does not exist (generate the catalog artifact first)",
				entity.ErrStartupDataMissing)
		}
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		movies []entity.Movie
		matrix [][]float64
	)
	for rows.Next() {
		var (
			m   entity.Movie
			vec pgvector.Vector
		)
		if err := rows.Scan(&m.ID, &m.Title, &vec); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		movies = append(movies, m)
		matrix = append(matrix, toFloat64(vec.Slice()))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}

	if len(movies) == 0 {
		return nil, fmt.Errorf("%w: table movies is empty (generate the catalog artifact first)",
			entity.ErrStartupDataMissing)
	}

	catalog, err := entity.NewCatalog(movies, matrix)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog, nil
}

// ReplaceCatalog atomically replaces the contents of the movies table with catalog.
func ReplaceCatalog(ctx context.Context, db *sql.DB, catalog *entity.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("ReplaceCatalog: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceCatalog: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return fmt.Errorf("ReplaceCatalog: clear: %w", err)
	}

	const insert = `
INSERT INTO movies (position, movie_id, title, similarity)
VALUES ($1, $2, $3, $4)`

	for i, m := range catalog.Movies {
		vec := pgvector.NewVector(toFloat32(catalog.Similarity[i]))
		if _, err := tx.ExecContext(ctx, insert, int64(i), m.ID, m.Title, vec); err != nil {
			return fmt.Errorf("ReplaceCatalog: insert %q: %w", m.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceCatalog: commit: %w", err)
	}
	return nil
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
