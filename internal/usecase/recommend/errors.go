// Package recommend provides the recommendation use cases: similarity lookup
// over the precomputed catalog and decoration of results with poster URLs.
package recommend

import "errors"

// Sentinel errors for recommendation operations.
var (
	// ErrInvalidLimit indicates that the requested number of recommendations is not positive.
	ErrInvalidLimit = errors.New("recommendation limit must be positive")

	// ErrEmptyTitle indicates that no title was provided for a lookup.
	ErrEmptyTitle = errors.New("title is required")
)
