package recommend

import (
	"net/http"

	"movie-recommender/internal/handler/http/respond"
	recUC "movie-recommender/internal/usecase/recommend"
)

// ListHandler serves the catalog titles.
type ListHandler struct{ Svc *recUC.Service }

// ServeHTTP lists catalog titles
// @Summary      List catalog titles
// @Description  Returns every catalog title in catalog order. Any of them can be passed to /recommendations.
// @Tags         movies
// @Produce      json
// @Success      200 {object} TitlesResponse
// @Router       /movies [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	titles := h.Svc.Titles()
	respond.JSON(w, http.StatusOK, TitlesResponse{Titles: titles, Count: len(titles)})
}
