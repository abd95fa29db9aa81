package recommend

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"movie-recommender/internal/domain/entity"
	"movie-recommender/internal/handler/http/respond"
	recUC "movie-recommender/internal/usecase/recommend"
)

// RecommendHandler serves similarity recommendations with posters.
type RecommendHandler struct {
	Svc      *recUC.Service
	MaxLimit int
}

// ServeHTTP returns recommendations for a title
// @Summary      Recommend similar movies
// @Description  Returns up to limit movies most similar to title, best first, each with a poster URL.
// @Description  Poster lookups that fail fall back to a placeholder image and never fail the request.
// @Tags         recommendations
// @Produce      json
// @Param        title   query string true  "Exact catalog title"
// @Param        limit   query int    false "Number of results (default 10)"
// @Param        posters query bool   false "Resolve poster URLs (default true)"
// @Success      200 {object} RecommendationsResponse
// @Failure      400 {object} respond.ErrorBody "Missing title or invalid parameter"
// @Failure      404 {object} respond.ErrorBody "Title not in the catalog"
// @Failure      500 {object} respond.ErrorBody
// @Router       /recommendations [get]
func (h RecommendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	title := q.Get("title")
	if title == "" {
		respond.Error(w, http.StatusBadRequest, recUC.ErrEmptyTitle)
		return
	}

	limit, err := h.parseLimit(q.Get("limit"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}

	withPosters := true
	if v := q.Get("posters"); v != "" {
		withPosters, err = strconv.ParseBool(v)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, errors.New("posters must be true or false"))
			return
		}
	}

	recs, err := h.Svc.RecommendMovies(r.Context(), title, limit, withPosters)
	if err != nil {
		respond.Problem(w, http.StatusInternalServerError, toAppError(err))
		return
	}

	out := RecommendationsResponse{
		Title:           title,
		Count:           len(recs),
		Recommendations: make([]RecommendationDTO, len(recs)),
	}
	for i, rec := range recs {
		out.Recommendations[i] = RecommendationDTO{
			MovieID:   rec.Movie.ID,
			Title:     rec.Movie.Title,
			Score:     rec.Score,
			PosterURL: rec.PosterURL,
		}
	}
	if len(recs) == 0 {
		out.Message = noRecommendationsMessage
	}

	respond.JSON(w, http.StatusOK, out)
}

func (h RecommendHandler) parseLimit(raw string) (int, error) {
	if raw == "" {
		return h.Svc.DefaultLimit(), nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if h.MaxLimit > 0 && limit > h.MaxLimit {
		return 0, fmt.Errorf("limit must be at most %d", h.MaxLimit)
	}
	return limit, nil
}

// toAppError maps service errors to user-facing responses.
func toAppError(err error) error {
	var nf *entity.NotFoundError
	switch {
	case errors.As(err, &nf):
		return respond.NewAppError(http.StatusNotFound, nf.Error(), err)
	case errors.Is(err, recUC.ErrEmptyTitle):
		return respond.NewAppError(http.StatusBadRequest, recUC.ErrEmptyTitle.Error(), err)
	case errors.Is(err, recUC.ErrInvalidLimit):
		return respond.NewAppError(http.StatusBadRequest, recUC.ErrInvalidLimit.Error(), err)
	default:
		return err
	}
}
