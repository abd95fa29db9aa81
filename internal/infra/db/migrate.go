package db

import (
	"context"
	"database/sql"
	"fmt"
)

// MigrateUp creates the catalog schema. It is idempotent.
//
// The similarity column is an unconstrained pgvector so catalogs of any size
// can be stored without a schema change.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	// Without CREATE privilege, assume the extension is already installed.
	_, _ = db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`)

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS movies (
    position   INTEGER PRIMARY KEY,
    movie_id   BIGINT NOT NULL,
    title      TEXT NOT NULL,
    similarity vector NOT NULL
)`); err != nil {
		return fmt.Errorf("create movies table: %w", err)
	}

	indexes := []string{
		// Title lookups
		`CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title)`,
		// Poster lookups by TMDB id
		`CREATE INDEX IF NOT EXISTS idx_movies_movie_id ON movies(movie_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// MigrateDown drops the catalog schema.
// Use with caution: this deletes the loaded catalog.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_movies_movie_id`,
		`DROP INDEX IF EXISTS idx_movies_title`,
		`DROP TABLE IF EXISTS movies`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	// The vector extension is left installed; other schemas may use it.
	return nil
}
