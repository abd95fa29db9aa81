package recommend_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-recommender/internal/bootstrap"
	hhttp "movie-recommender/internal/handler/http"
	"movie-recommender/internal/handler/http/recommend"
	"movie-recommender/internal/infra/poster"
	"movie-recommender/tests/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hangingTMDB never answers until the client gives up or the test ends.
func hangingTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

func TestRecommendHandler_HangingUpstreamWithinTimeout(t *testing.T) {
	srv := hangingTMDB(t)

	cfg := poster.DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = srv.URL
	cfg.Timeout = 100 * time.Millisecond
	cfg.RetryBaseDelay = 10 * time.Millisecond
	resolver, err := poster.NewTMDBResolver(cfg, poster.NewHTTPClient(cfg))
	require.NoError(t, err)
	t.Cleanup(resolver.Close)

	mux := newMux(t, fixtures.NewTestCatalog(fixtures.WithSize(11)), resolver)
	handler := hhttp.Timeout(time.Second)(mux)

	rec := serve(handler, "/recommendations?title=Movie+0")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got recommend.RecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 10, got.Count)
	require.Len(t, got.Recommendations, 10)
	for _, r := range got.Recommendations {
		assert.Equal(t, poster.DefaultPlaceholderURL, r.PosterURL, "movie %d", r.MovieID)
	}
}

func TestHandlers_NoAPIKeyServesPlaceholder(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	posters, tmdb, err := bootstrap.NewServingPosterResolver(poster.DefaultConfig(), logger)
	require.NoError(t, err)
	assert.Nil(t, tmdb)

	mux := newMux(t, fixtures.NewTestCatalog(), posters)

	t.Run("poster endpoint", func(t *testing.T) {
		rec := serve(mux, "/movies/597/poster")

		require.Equal(t, http.StatusOK, rec.Code)
		var got recommend.PosterResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, poster.DefaultPlaceholderURL, got.PosterURL)
	})

	t.Run("recommendations", func(t *testing.T) {
		rec := serve(mux, "/recommendations?title=Avatar")

		require.Equal(t, http.StatusOK, rec.Code)
		var got recommend.RecommendationsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got.Recommendations, 4)
		for _, r := range got.Recommendations {
			assert.Equal(t, poster.DefaultPlaceholderURL, r.PosterURL)
		}
	})
}
