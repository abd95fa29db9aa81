package repository

import (
	"context"

	"movie-recommender/internal/domain/entity"
)

// CatalogSource loads the precomputed recommendation catalog.
// Implementations return an error wrapping entity.ErrStartupDataMissing when
// the artifact does not exist, and a validation error when it is malformed.
type CatalogSource interface {
	Load(ctx context.Context) (*entity.Catalog, error)
}
