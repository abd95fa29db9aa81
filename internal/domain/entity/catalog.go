package entity

import "fmt"

// Catalog is the precomputed recommendation artifact: an ordered list of movies
// and a square similarity matrix indexed consistently with that order.
// A Catalog is immutable once loaded and may be shared across goroutines.
type Catalog struct {
	Movies     []Movie
	Similarity [][]float64
}

// NewCatalog builds a Catalog and validates its shape.
func NewCatalog(movies []Movie, similarity [][]float64) (*Catalog, error) {
	c := &Catalog{Movies: movies, Similarity: similarity}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the catalog is non-empty and that the similarity
// matrix is square with dimension equal to the number of movies.
func (c *Catalog) Validate() error {
	if c == nil || len(c.Movies) == 0 {
		return &ValidationError{Field: "movies", Message: "catalog must contain at least one movie"}
	}

	if len(c.Similarity) != len(c.Movies) {
		return &ValidationError{
			Field:   "similarity",
			Message: fmt.Sprintf("matrix has %d rows, expected %d", len(c.Similarity), len(c.Movies)),
		}
	}

	for i, row := range c.Similarity {
		if len(row) != len(c.Movies) {
			return &ValidationError{
				Field:   "similarity",
				Message: fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), len(c.Movies)),
			}
		}
	}

	return nil
}

// Size returns the number of movies in the catalog.
func (c *Catalog) Size() int {
	return len(c.Movies)
}

// IndexOf returns the position of the first movie whose title equals title
// exactly (case-sensitive), or -1 when there is no such movie.
func (c *Catalog) IndexOf(title string) int {
	for i, m := range c.Movies {
		if m.Title == title {
			return i
		}
	}
	return -1
}
