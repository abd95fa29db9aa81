// Package file loads the recommendation catalog from a JSON artifact on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"movie-recommender/internal/domain/entity"
	"movie-recommender/internal/repository"

	"github.com/goccy/go-json"
)

// artifact is the on-disk layout:
//
//	{"movies":[{"movie_id":19995,"title":"Avatar"}],"similarity":[[1.0]]}
type artifact struct {
	Movies     []movieRecord `json:"movies"`
	Similarity [][]float64   `json:"similarity"`
}

type movieRecord struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
}

// CatalogSource reads the catalog artifact from a JSON file.
type CatalogSource struct {
	path string
}

// NewCatalogSource creates a CatalogSource for the artifact at path.
func NewCatalogSource(path string) repository.CatalogSource {
	return &CatalogSource{path: path}
}

// Load reads and validates the artifact.
func (s *CatalogSource) Load(ctx context.Context) (*entity.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found (generate the catalog artifact first)",
				entity.ErrStartupDataMissing, s.path)
		}
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	var a artifact
	if err := json.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", s.path, err)
	}

	movies := make([]entity.Movie, len(a.Movies))
	for i, m := range a.Movies {
		movies[i] = entity.Movie{ID: m.MovieID, Title: m.Title}
	}

	catalog, err := entity.NewCatalog(movies, a.Similarity)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", s.path, err)
	}
	return catalog, nil
}

// Save writes catalog to path in the artifact layout.
func Save(path string, catalog *entity.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}

	a := artifact{
		Movies:     make([]movieRecord, len(catalog.Movies)),
		Similarity: catalog.Similarity,
	}
	for i, m := range catalog.Movies {
		a.Movies[i] = movieRecord{MovieID: m.ID, Title: m.Title}
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
