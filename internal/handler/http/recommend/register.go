package recommend

import (
	"net/http"

	recUC "movie-recommender/internal/usecase/recommend"
)

// Config bounds what callers may request.
type Config struct {
	// MaxLimit caps the limit query parameter.
	MaxLimit int
}

// Register registers the catalog, recommendation and poster routes on mux.
func Register(mux *http.ServeMux, svc *recUC.Service, cfg Config) {
	mux.Handle("GET /movies", ListHandler{Svc: svc})
	mux.Handle("GET /movies/{id}/poster", PosterHandler{Svc: svc})
	mux.Handle("GET /recommendations", RecommendHandler{Svc: svc, MaxLimit: cfg.MaxLimit})
}
