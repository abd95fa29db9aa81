// Package poster resolves display poster URLs for catalog movies through the
// TMDB metadata API. Every failure is classified, logged as a warning, and
// collapsed to a placeholder image URL at the public boundary.
package poster

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"

	"movie-recommender/internal/resilience/circuitbreaker"
	"movie-recommender/internal/resilience/retry"
)

// ErrMissingAPIKey is returned when the TMDB API key is not configured.
var ErrMissingAPIKey = errors.New("TMDB API key is required (set TMDB_API_KEY)")

// Kind classifies the outcome of a poster resolution.
type Kind string

const (
	// KindOK means a poster path was found and composed into an image URL.
	KindOK Kind = "ok"
	// KindNoPoster means TMDB answered but has no poster for the movie.
	KindNoPoster Kind = "no_poster"
	// KindHTTP means TMDB answered with a non-2xx status after retries.
	KindHTTP Kind = "http"
	// KindConnection means the connection could not be established (DNS, refused, unreachable).
	KindConnection Kind = "connection"
	// KindTimeout means the per-request timeout was exceeded.
	KindTimeout Kind = "timeout"
	// KindRequest is any other transport-level failure.
	KindRequest Kind = "request"
	// KindUnexpected covers malformed payloads and anything else.
	KindUnexpected Kind = "unexpected"
	// KindCircuitOpen means the call was short-circuited by the breaker.
	KindCircuitOpen Kind = "circuit_open"
)

// Fallback reports whether this outcome yields the placeholder image.
func (k Kind) Fallback() bool {
	return k != KindOK
}

// cacheable reports whether the outcome reflects upstream data rather than
// a transient condition.
func (k Kind) cacheable() bool {
	return k == KindOK || k == KindNoPoster
}

// UpstreamError describes why a poster could not be resolved.
type UpstreamError struct {
	MovieID    int64
	Kind       Kind
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("poster for movie %d: %s (status %d): %v", e.MovieID, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("poster for movie %d: %s: %v", e.MovieID, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// payloadError marks a 2xx response whose body could not be used.
type payloadError struct {
	err error
}

func (e *payloadError) Error() string {
	return fmt.Sprintf("malformed payload: %v", e.err)
}

func (e *payloadError) Unwrap() error {
	return e.err
}

// classify maps an error from the fetch pipeline to a Kind.
func classify(err error) Kind {
	if err == nil {
		return KindOK
	}

	if circuitbreaker.IsRejected(err) {
		return KindCircuitOpen
	}

	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return KindHTTP
	}

	var pErr *payloadError
	if errors.As(err, &pErr) {
		return KindUnexpected
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) ||
		(errors.As(err, &opErr) && opErr.Op == "dial") ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return KindConnection
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) {
		return KindRequest
	}

	return KindUnexpected
}

// statusCode extracts the HTTP status from err, or 0.
func statusCode(err error) int {
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
