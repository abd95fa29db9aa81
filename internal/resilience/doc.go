// Package resilience holds the fault-tolerance helpers used around TMDB
// lookups and the catalog database: circuitbreaker wraps sony/gobreaker, and
// retry implements exponential backoff with jitter and Retry-After support.
//
//	cb := circuitbreaker.New(circuitbreaker.MetadataAPIConfig())
//	err := retry.WithBackoff(ctx, retry.MetadataAPIConfig(), func() error {
//	    return cb.Run(func() error { return fetchDetails(ctx, id) })
//	})
package resilience
