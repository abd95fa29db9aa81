package recommend

import (
	"errors"
	"net/http"

	"movie-recommender/internal/domain/entity"
	"movie-recommender/internal/handler/http/pathutil"
	"movie-recommender/internal/handler/http/respond"
	recUC "movie-recommender/internal/usecase/recommend"
)

// PosterHandler resolves the poster of one catalog movie.
type PosterHandler struct{ Svc *recUC.Service }

// ServeHTTP resolves a poster
// @Summary      Resolve a movie poster
// @Description  Returns the poster URL for a catalog movie by TMDB id, or the placeholder when none is available.
// @Tags         movies
// @Produce      json
// @Param        id path int true "TMDB movie id"
// @Success      200 {object} PosterResponse
// @Failure      400 {object} respond.ErrorBody "Invalid id"
// @Failure      404 {object} respond.ErrorBody "Id not in the catalog"
// @Router       /movies/{id}/poster [get]
func (h PosterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	movie, url, err := h.Svc.Poster(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, PosterResponse{MovieID: movie.ID, Title: movie.Title, PosterURL: url})
}
