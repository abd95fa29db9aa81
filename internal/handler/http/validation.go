package http

import (
	"net/http"

	"movie-recommender/internal/handler/http/respond"
)

// Input limits. Titles are short and the API takes no request bodies.
const (
	maxPathLength  = 2048
	maxQueryLength = 2048
	maxBodyBytes   = 1 << 10
)

// InputValidation returns middleware that rejects oversized URLs and caps
// request bodies.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength || len(r.URL.RawQuery) > maxQueryLength {
				respond.JSON(w, http.StatusRequestURITooLong, respond.ErrorBody{Error: "URI too long"})
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}
