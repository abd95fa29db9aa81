// Package throttle provides a token-bucket limiter shared by outbound calls
// to the movie metadata API, so concurrent poster fetches stay within a
// bounded aggregate request rate.
package throttle

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter implements token bucket algorithm for rate limiting.
// It is safe for concurrent use; one instance is shared per process.
type Limiter struct {
	rate    rate.Limit
	burst   int
	limiter *rate.Limiter
}

// NewLimiter creates a new Limiter with the specified rate and burst capacity.
//
// Parameters:
//   - requestsPerSecond: Maximum sustained request rate (e.g., 10.0 for one call every 100ms)
//   - burst: Maximum number of requests that can be made in a burst
//
// A non-positive rate disables limiting.
//
// Example:
//
//	limiter := NewLimiter(10, 1)  // one poster fetch every 100ms
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	r := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		r = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		rate:    r,
		burst:   burst,
		limiter: rate.NewLimiter(r, burst),
	}
}

// Wait blocks until a token is available or the context is canceled.
// It should be called before making a rate-limited request.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Rate returns the configured sustained rate in requests per second.
func (l *Limiter) Rate() float64 {
	return float64(l.rate)
}

// Burst returns the configured burst capacity.
func (l *Limiter) Burst() int {
	return l.burst
}
