// Package pathutil parses and normalizes URL paths for routing and metrics.
package pathutil

import (
	"errors"
	"strconv"
)

// ErrInvalidID is returned when a path segment is not a positive integer id.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a path segment such as r.PathValue("id") as a positive int64.
func ParseID(segment string) (int64, error) {
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
