package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movie-recommender/internal/observability/logging"
	"movie-recommender/internal/observability/tracing"
	"movie-recommender/internal/resilience/circuitbreaker"
	"movie-recommender/internal/resilience/retry"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxBodyBytes bounds how much of a movie details response is read.
const maxBodyBytes = 1 << 20

// Resolution is the classified outcome of resolving one poster.
// URL is always usable: either the composed image URL or the placeholder.
type Resolution struct {
	URL        string
	Kind       Kind
	StatusCode int

	// Attempts counts the HTTP requests sent for this resolution.
	Attempts int

	// Cached is set when the resolution was served without contacting TMDB.
	Cached bool

	// Err explains a fallback. Nil for KindOK and KindNoPoster.
	Err error
}

// movieDetails is the subset of the TMDB movie details payload we read.
type movieDetails struct {
	PosterPath string `json:"poster_path"`
}

// Option customizes a TMDBResolver.
type Option func(*TMDBResolver)

// WithCache replaces the default in-memory cache. Passing nil disables caching.
func WithCache(c Cache) Option {
	return func(r *TMDBResolver) {
		r.cache = c
		r.cacheSet = true
	}
}

// WithMetrics replaces the Prometheus metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(r *TMDBResolver) {
		r.metrics = m
	}
}

// WithCircuitBreaker replaces the default tmdb-api circuit breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(r *TMDBResolver) {
		r.breaker = cb
	}
}

// TMDBResolver resolves poster image URLs from the TMDB movie details endpoint.
//
// Features:
//   - Bounded retries with exponential backoff on transient failures
//   - Circuit breaker shared by all lookups
//   - Per-movie cache of upstream-determined results
//   - Placeholder fallback for every failure
//
// Thread safety: TMDBResolver is safe for concurrent use.
type TMDBResolver struct {
	client   *http.Client
	breaker  *circuitbreaker.CircuitBreaker
	retryCfg retry.Config
	cache    Cache
	cacheSet bool
	owned    *MemoryCache
	metrics  MetricsRecorder
	config   Config
}

// NewTMDBResolver creates a resolver. A nil client gets NewHTTPClient(cfg).
// The configuration is validated; a missing API key is an error.
//
// Example:
//
//	cfg := poster.DefaultConfig()
//	cfg.APIKey = os.Getenv("TMDB_API_KEY")
//	resolver, err := poster.NewTMDBResolver(cfg, poster.NewHTTPClient(cfg))
//	url := resolver.ResolvePoster(ctx, 19995)
func NewTMDBResolver(cfg Config, client *http.Client, opts ...Option) (*TMDBResolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid poster config: %w", err)
	}

	if client == nil {
		client = NewHTTPClient(cfg)
	}

	r := &TMDBResolver{
		client:   client,
		retryCfg: cfg.RetryConfig(),
		metrics:  NewPrometheusMetrics(),
		config:   cfg,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.breaker == nil {
		cbCfg := circuitbreaker.MetadataAPIConfig()
		cbCfg.IsSuccessful = func(err error) bool {
			return err == nil || !r.retryCfg.IsRetryable(err)
		}
		r.breaker = circuitbreaker.New(cbCfg)
	}

	if !r.cacheSet && cfg.CacheTTL > 0 {
		mc, err := NewMemoryCache(cfg.CacheMaxEntries, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		r.cache = mc
		r.owned = mc
	}

	return r, nil
}

// Close releases resources owned by the resolver.
func (r *TMDBResolver) Close() {
	if r.owned != nil {
		r.owned.Close()
	}
}

// PlaceholderURL returns the configured fallback image.
func (r *TMDBResolver) PlaceholderURL() string {
	return r.config.PlaceholderURL
}

// BreakerState reports the state of the upstream circuit breaker.
func (r *TMDBResolver) BreakerState() string {
	return r.breaker.State().String()
}

// ResolvePoster returns the poster image URL for movieID, or the placeholder
// when the poster cannot be resolved. It never fails.
func (r *TMDBResolver) ResolvePoster(ctx context.Context, movieID int64) string {
	return r.Resolve(ctx, movieID).URL
}

// Resolve returns the poster URL for movieID together with how it was obtained.
func (r *TMDBResolver) Resolve(ctx context.Context, movieID int64) Resolution {
	start := time.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "poster.Resolve",
		trace.WithAttributes(attribute.Int64("movie.id", movieID)))
	defer span.End()

	var res Resolution
	if cached, ok := r.lookupCache(movieID); ok {
		r.metrics.RecordCacheHit()
		res = cached
	} else {
		res = r.fetch(ctx, movieID)
		if r.cache != nil && res.Kind.cacheable() {
			r.cache.Set(movieID, res)
		}
	}

	r.metrics.RecordResolution(res.Kind, time.Since(start))

	span.SetAttributes(
		attribute.String("poster.kind", string(res.Kind)),
		attribute.Int("poster.attempts", res.Attempts),
		attribute.Bool("poster.cached", res.Cached),
	)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, string(res.Kind))
	}

	return res
}

func (r *TMDBResolver) lookupCache(movieID int64) (Resolution, bool) {
	if r.cache == nil {
		return Resolution{}, false
	}
	res, ok := r.cache.Get(movieID)
	if !ok {
		return Resolution{}, false
	}
	res.Cached = true
	res.Attempts = 0
	return res, true
}

// fetch runs the retry loop. Each attempt passes through the circuit breaker.
func (r *TMDBResolver) fetch(ctx context.Context, movieID int64) Resolution {
	logger := logging.FromContext(ctx).With(slog.Int64("movie_id", movieID))

	attempts := 0
	var posterPath string
	// lastUpstream is the last error TMDB itself produced; a breaker that
	// opens mid-retry must not hide it.
	var lastUpstream error

	err := retry.WithBackoff(ctx, r.retryCfg, func() error {
		execErr := r.breaker.Run(func() error {
			attempts++
			path, err := r.fetchDetails(ctx, movieID)
			if err != nil {
				return err
			}
			posterPath = path
			return nil
		})
		if execErr != nil {
			if !circuitbreaker.IsRejected(execErr) {
				lastUpstream = execErr
			}
			r.metrics.RecordAttempt(string(classify(execErr)))
		} else {
			r.metrics.RecordAttempt("success")
		}
		return execErr
	})

	if err != nil {
		rejected := circuitbreaker.IsRejected(err)
		cause := err
		if rejected && lastUpstream != nil {
			cause = lastUpstream
		}
		kind := classify(cause)
		status := statusCode(cause)
		upErr := &UpstreamError{MovieID: movieID, Kind: kind, StatusCode: status, Err: cause}
		logFallback(logger, upErr, attempts, rejected)
		return Resolution{
			URL:        r.config.PlaceholderURL,
			Kind:       kind,
			StatusCode: status,
			Attempts:   attempts,
			Err:        upErr,
		}
	}

	if posterPath == "" {
		logger.Warn("no poster available for movie, using placeholder image")
		return Resolution{
			URL:        r.config.PlaceholderURL,
			Kind:       KindNoPoster,
			StatusCode: http.StatusOK,
			Attempts:   attempts,
		}
	}

	return Resolution{
		URL:        r.imageURL(posterPath),
		Kind:       KindOK,
		StatusCode: http.StatusOK,
		Attempts:   attempts,
	}
}

// fetchDetails performs a single GET against the movie details endpoint.
func (r *TMDBResolver) fetchDetails(ctx context.Context, movieID int64) (string, error) {
	endpoint, err := r.endpoint(movieID)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		// The request URL carries the API key; keep it out of error messages.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = r.redactedEndpoint(movieID)
		}
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return "", retry.NewHTTPError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return "", &payloadError{err: fmt.Errorf("response exceeds %d bytes", maxBodyBytes)}
	}

	var details movieDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return "", &payloadError{err: err}
	}

	return details.PosterPath, nil
}

func (r *TMDBResolver) endpoint(movieID int64) (string, error) {
	u, err := url.Parse(r.redactedEndpoint(movieID))
	if err != nil {
		return "", fmt.Errorf("build endpoint: %w", err)
	}
	q := u.Query()
	q.Set("api_key", r.config.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (r *TMDBResolver) redactedEndpoint(movieID int64) string {
	return fmt.Sprintf("%s/movie/%d", strings.TrimRight(r.config.BaseURL, "/"), movieID)
}

// imageURL joins the image root, size tier and poster path.
func (r *TMDBResolver) imageURL(posterPath string) string {
	if !strings.HasPrefix(posterPath, "/") {
		posterPath = "/" + posterPath
	}
	return strings.TrimRight(r.config.ImageBaseURL, "/") + "/" + r.config.ImageSize + posterPath
}

func logFallback(logger *slog.Logger, err *UpstreamError, attempts int, breakerRejected bool) {
	attrs := []any{
		slog.String("kind", string(err.Kind)),
		slog.Int("attempts", attempts),
		slog.String("error", err.Err.Error()),
	}
	if breakerRejected && err.Kind != KindCircuitOpen {
		attrs = append(attrs, slog.Bool("circuit_open", true))
	}

	switch err.Kind {
	case KindHTTP:
		logger.Warn("metadata API returned an error status, using placeholder image",
			append(attrs, slog.Int("status_code", err.StatusCode))...)
	case KindConnection:
		logger.Warn("connection error fetching poster, using placeholder image", attrs...)
	case KindTimeout:
		logger.Warn("timeout fetching poster, using placeholder image", attrs...)
	case KindRequest:
		logger.Warn("request error fetching poster, using placeholder image", attrs...)
	case KindCircuitOpen:
		logger.Warn("metadata API circuit open, using placeholder image", attrs...)
	default:
		logger.Warn("unexpected error fetching poster, using placeholder image", attrs...)
	}
}
