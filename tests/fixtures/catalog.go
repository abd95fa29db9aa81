// Package fixtures provides reusable test data generators for catalog-backed tests.
package fixtures

import (
	"math"
	"strconv"

	"movie-recommender/internal/domain/entity"
)

// SampleMovies returns a small catalog of real TMDB ids.
func SampleMovies() []entity.Movie {
	return []entity.Movie{
		{ID: 19995, Title: "Avatar"},
		{ID: 597, Title: "Titanic"},
		{ID: 24428, Title: "The Avengers"},
		{ID: 27205, Title: "Inception"},
		{ID: 157336, Title: "Interstellar"},
	}
}

// SampleSimilarity is the matrix paired with SampleMovies.
// Row "Avatar" ranks The Avengers, then Inception and Interstellar tied, then Titanic.
func SampleSimilarity() [][]float64 {
	return [][]float64{
		{1.0, 0.2, 0.8, 0.5, 0.5},
		{0.2, 1.0, 0.1, 0.3, 0.4},
		{0.8, 0.1, 1.0, 0.6, 0.7},
		{0.5, 0.3, 0.6, 1.0, 0.9},
		{0.5, 0.4, 0.7, 0.9, 1.0},
	}
}

// CatalogOption is a functional option for customizing test catalogs.
type CatalogOption func(*entity.Catalog)

// NewTestCatalog creates the sample catalog. The result is not validated so
// options can build deliberately malformed catalogs.
//
// Example:
//
//	catalog := NewTestCatalog()
//	catalog := NewTestCatalog(WithMovies(movies...))
func NewTestCatalog(opts ...CatalogOption) *entity.Catalog {
	c := &entity.Catalog{
		Movies:     SampleMovies(),
		Similarity: SampleSimilarity(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithMovies replaces the movies and generates a matching similarity matrix.
func WithMovies(movies ...entity.Movie) CatalogOption {
	return func(c *entity.Catalog) {
		c.Movies = movies
		c.Similarity = GenerateSimilarity(len(movies))
	}
}

// WithSimilarity replaces the similarity matrix as-is.
func WithSimilarity(matrix [][]float64) CatalogOption {
	return func(c *entity.Catalog) {
		c.Similarity = matrix
	}
}

// WithSize replaces the catalog with n generated movies.
func WithSize(n int) CatalogOption {
	return func(c *entity.Catalog) {
		c.Movies = GenerateMovies(n)
		c.Similarity = GenerateSimilarity(n)
	}
}

// GenerateMovies creates n movies titled "Movie 0" .. "Movie n-1" with ids 1000..1000+n-1.
func GenerateMovies(n int) []entity.Movie {
	movies := make([]entity.Movie, n)
	for i := range movies {
		movies[i] = entity.Movie{ID: int64(1000 + i), Title: "Movie " + strconv.Itoa(i)}
	}
	return movies
}

// GenerateSimilarity creates a symmetric n×n matrix with ones on the diagonal
// and scores decaying with index distance.
func GenerateSimilarity(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = 1 / (1 + math.Abs(float64(i-j)))
		}
	}
	return m
}
