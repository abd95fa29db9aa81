package circuitbreaker

import (
	"context"
	"database/sql"
)

// GuardedDB runs catalog queries through a breaker so a dead database fails
// fast instead of blocking every retry on connection timeouts.
type GuardedDB struct {
	cb *CircuitBreaker
	db *sql.DB
}

// NewGuardedDB wraps db with a CatalogDBConfig breaker.
func NewGuardedDB(db *sql.DB) *GuardedDB {
	return NewGuardedDBWithConfig(db, CatalogDBConfig())
}

// NewGuardedDBWithConfig wraps db with a breaker built from cfg.
func NewGuardedDBWithConfig(db *sql.DB, cfg Config) *GuardedDB {
	return &GuardedDB{cb: New(cfg), db: db}
}

// QueryContext runs the query through the breaker.
func (g *GuardedDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return Do(g.cb, func() (*sql.Rows, error) {
		return g.db.QueryContext(ctx, query, args...)
	})
}

// PingContext pings the database through the breaker.
func (g *GuardedDB) PingContext(ctx context.Context) error {
	return g.cb.Run(func() error {
		return g.db.PingContext(ctx)
	})
}

// Breaker exposes the underlying breaker.
func (g *GuardedDB) Breaker() *CircuitBreaker {
	return g.cb
}
