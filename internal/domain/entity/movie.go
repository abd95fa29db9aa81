// Package entity defines the core domain entities and validation logic for the application.
// It contains the movie catalog, the precomputed similarity matrix that travels with it,
// recommendation results, and the domain-specific errors shared across layers.
package entity

// Movie is a single catalog entry.
// ID is the TMDB movie identifier used to query the metadata API;
// Title is the human-facing lookup key.
type Movie struct {
	ID    int64
	Title string
}

// Recommendation is a catalog movie paired with its similarity score
// relative to the queried title.
type Recommendation struct {
	Movie Movie
	Score float64
}

// RecommendedMovie is a Recommendation decorated with a displayable poster URL.
// When posters are requested PosterURL is either a TMDB image URL or the
// placeholder; it is empty only when poster decoration was skipped.
type RecommendedMovie struct {
	Movie     Movie
	Score     float64
	PosterURL string
}
