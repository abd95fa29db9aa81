package recommend

import (
	"cmp"
	"slices"

	"movie-recommender/internal/domain/entity"
)

// Lookup answers top-K similarity queries against an immutable catalog.
// It performs no I/O and is safe for concurrent use.
type Lookup struct {
	catalog *entity.Catalog
	byID    map[int64]int
}

// NewLookup indexes catalog for lookups. The catalog must already be valid
// and must not be modified afterwards.
func NewLookup(catalog *entity.Catalog) *Lookup {
	byID := make(map[int64]int, catalog.Size())
	for i, m := range catalog.Movies {
		if _, dup := byID[m.ID]; !dup {
			byID[m.ID] = i
		}
	}
	return &Lookup{catalog: catalog, byID: byID}
}

type scoredIndex struct {
	index int
	score float64
}

// Recommend returns up to k movies most similar to title, best first.
//
// The title must match a catalog title exactly; duplicates resolve to the
// first occurrence. Equal scores keep catalog order. The queried movie is
// never part of the result.
//
// Returns a non-nil, possibly empty slice on success. An unknown title
// yields *entity.NotFoundError; k <= 0 yields ErrInvalidLimit.
func (l *Lookup) Recommend(title string, k int) ([]entity.Recommendation, error) {
	if k <= 0 {
		return nil, ErrInvalidLimit
	}

	idx := l.catalog.IndexOf(title)
	if idx < 0 {
		return nil, &entity.NotFoundError{Title: title}
	}

	row := l.catalog.Similarity[idx]
	ranked := make([]scoredIndex, 0, len(row))
	for j, score := range row {
		ranked = append(ranked, scoredIndex{index: j, score: score})
	}

	slices.SortStableFunc(ranked, func(a, b scoredIndex) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]entity.Recommendation, 0, min(k, len(ranked)))
	for _, r := range ranked {
		if r.index == idx {
			continue
		}
		if len(out) == k {
			break
		}
		out = append(out, entity.Recommendation{
			Movie: l.catalog.Movies[r.index],
			Score: r.score,
		})
	}

	return out, nil
}

// Titles returns every catalog title in catalog order.
func (l *Lookup) Titles() []string {
	titles := make([]string, len(l.catalog.Movies))
	for i, m := range l.catalog.Movies {
		titles[i] = m.Title
	}
	return titles
}

// Movie returns the first catalog movie with the given TMDB id.
func (l *Lookup) Movie(id int64) (entity.Movie, bool) {
	i, ok := l.byID[id]
	if !ok {
		return entity.Movie{}, false
	}
	return l.catalog.Movies[i], true
}

// Size returns the number of movies in the catalog.
func (l *Lookup) Size() int {
	return l.catalog.Size()
}
