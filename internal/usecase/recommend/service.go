package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"movie-recommender/internal/domain/entity"
	"movie-recommender/internal/observability/logging"
	"movie-recommender/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the number of recommendations returned when none is requested.
const DefaultLimit = 10

// DefaultDeadlineMargin caps the time reserved after poster decoration.
const DefaultDeadlineMargin = 2 * time.Second

// PosterResolver resolves a displayable poster URL for a movie. It never fails:
// any upstream problem yields PlaceholderURL().
type PosterResolver interface {
	ResolvePoster(ctx context.Context, movieID int64) string
	PlaceholderURL() string
}

// Limiter paces outbound poster requests.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Config controls the recommendation service.
type Config struct {
	// DefaultLimit is the number of results for Recommend. Default: 10
	DefaultLimit int

	// Parallelism bounds concurrent poster fetches per request. Default: 1
	Parallelism int

	// DeadlineMargin is kept free before the caller's deadline so results can
	// still be written after poster decoration is cut short. The margin used
	// is at most a tenth of the remaining time. Default: 2s
	DeadlineMargin time.Duration
}

// DefaultConfig returns the sequential reference behavior: ten results,
// one poster fetch at a time.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:   DefaultLimit,
		Parallelism:    1,
		DeadlineMargin: DefaultDeadlineMargin,
	}
}

// Service combines the similarity lookup with poster decoration.
type Service struct {
	lookup  *Lookup
	posters PosterResolver
	limiter Limiter
	cfg     Config
}

// NewService creates a Service. posters and limiter may be nil, in which case
// results are not decorated or not paced respectively.
func NewService(lookup *Lookup, posters PosterResolver, limiter Limiter, cfg Config) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	if cfg.DeadlineMargin <= 0 {
		cfg.DeadlineMargin = DefaultDeadlineMargin
	}

	catalogMovies.Set(float64(lookup.Size()))

	return &Service{
		lookup:  lookup,
		posters: posters,
		limiter: limiter,
		cfg:     cfg,
	}
}

// Titles returns the catalog titles available for selection.
func (s *Service) Titles() []string {
	return s.lookup.Titles()
}

// DefaultLimit returns the configured number of results for Recommend.
func (s *Service) DefaultLimit() int {
	return s.cfg.DefaultLimit
}

// Recommend returns the default number of recommendations for title, with posters.
func (s *Service) Recommend(ctx context.Context, title string) ([]entity.RecommendedMovie, error) {
	return s.RecommendMovies(ctx, title, s.cfg.DefaultLimit, true)
}

// RecommendMovies returns up to k recommendations for title in similarity order.
// When withPosters is set each result carries a poster URL; poster failures
// never surface as errors.
//
// Errors:
//   - ErrEmptyTitle: title is empty
//   - ErrInvalidLimit: k <= 0
//   - *entity.NotFoundError: title is not in the catalog
func (s *Service) RecommendMovies(ctx context.Context, title string, k int, withPosters bool) ([]entity.RecommendedMovie, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "recommend.Recommend",
		trace.WithAttributes(
			attribute.String("movie.title", title),
			attribute.Int("recommend.limit", k),
			attribute.Bool("recommend.posters", withPosters),
		))
	defer span.End()

	logger := logging.FromContext(ctx)

	if title == "" {
		recommendationsTotal.WithLabelValues("invalid").Inc()
		span.SetStatus(codes.Error, ErrEmptyTitle.Error())
		return nil, ErrEmptyTitle
	}

	start := time.Now()
	recs, err := s.lookup.Recommend(title, k)
	recommendationLookupDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		status := "invalid"
		if errors.Is(err, entity.ErrNotFound) {
			status = "not_found"
			logger.Info("movie not found in catalog", slog.String("title", title))
		}
		recommendationsTotal.WithLabelValues(status).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		return nil, fmt.Errorf("recommend %q: %w", title, err)
	}

	if len(recs) == 0 {
		recommendationsTotal.WithLabelValues("empty").Inc()
	} else {
		recommendationsTotal.WithLabelValues("ok").Inc()
	}

	out := make([]entity.RecommendedMovie, len(recs))
	for i, r := range recs {
		out[i] = entity.RecommendedMovie{Movie: r.Movie, Score: r.Score}
	}

	if withPosters && s.posters != nil {
		s.decorate(ctx, out)
	}

	span.SetAttributes(attribute.Int("recommend.count", len(out)))
	logger.Debug("recommendations computed",
		slog.String("title", title),
		slog.Int("count", len(out)))

	return out, nil
}

// decorate fills PosterURL for every item. Slots are written by index so the
// output order never depends on fetch completion order. Once the decoration
// deadline passes, the remaining slots get the placeholder.
func (s *Service) decorate(ctx context.Context, items []entity.RecommendedMovie) {
	ctx, cancel := s.decorationContext(ctx)
	defer cancel()

	var fallbacks atomic.Int32
	var g errgroup.Group
	g.SetLimit(s.cfg.Parallelism)

	for i := range items {
		g.Go(func() error {
			items[i].PosterURL = s.resolve(ctx, items[i].Movie.ID, &fallbacks)
			return nil
		})
	}

	_ = g.Wait()

	if n := fallbacks.Load(); n > 0 {
		logging.FromContext(ctx).Warn("poster decoration cut short, using placeholder images",
			slog.Int("placeholders", int(n)),
			slog.Int("count", len(items)))
	}
}

// resolve paces and resolves one poster. A done context yields the
// placeholder without calling the resolver.
func (s *Service) resolve(ctx context.Context, movieID int64, fallbacks *atomic.Int32) string {
	if ctx.Err() != nil {
		fallbacks.Add(1)
		return s.posters.PlaceholderURL()
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			fallbacks.Add(1)
			return s.posters.PlaceholderURL()
		}
	}
	return s.posters.ResolvePoster(ctx, movieID)
}

// decorationContext ends poster work ahead of the caller's deadline so the
// response is never lost to it. Without a deadline ctx is returned as is.
func (s *Service) decorationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return ctx, func() {}
	}
	margin := min(s.cfg.DeadlineMargin, time.Until(deadline)/10)
	return context.WithDeadline(ctx, deadline.Add(-margin))
}

// Poster resolves the poster for a catalog movie by TMDB id.
// Returns an error wrapping entity.ErrNotFound when the id is not in the catalog.
func (s *Service) Poster(ctx context.Context, movieID int64) (entity.Movie, string, error) {
	movie, ok := s.lookup.Movie(movieID)
	if !ok {
		return entity.Movie{}, "", fmt.Errorf("movie id %d: %w", movieID, entity.ErrNotFound)
	}
	if s.posters == nil {
		return movie, "", nil
	}

	ctx, cancel := s.decorationContext(ctx)
	defer cancel()

	var fallbacks atomic.Int32
	return movie, s.resolve(ctx, movieID, &fallbacks), nil
}
