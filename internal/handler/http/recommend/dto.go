// Package recommend provides the HTTP handlers for browsing the catalog,
// requesting recommendations and resolving posters.
package recommend

// TitlesResponse lists every selectable catalog title.
type TitlesResponse struct {
	Titles []string `json:"titles" example:"Avatar,Titanic"`
	Count  int      `json:"count" example:"2"`
}

// RecommendationDTO is one recommended movie.
type RecommendationDTO struct {
	MovieID   int64   `json:"movie_id" example:"24428"`
	Title     string  `json:"title" example:"The Avengers"`
	Score     float64 `json:"score" example:"0.8"`
	PosterURL string  `json:"poster_url,omitempty" example:"https://image.tmdb.org/t/p/w500/RYMX2wcKCBAr24UyPD7xwmjaTn.jpg"`
}

// RecommendationsResponse is the result of a recommendation request.
// Message is set when the lookup succeeded but produced no results.
type RecommendationsResponse struct {
	Title           string              `json:"title" example:"Avatar"`
	Count           int                 `json:"count" example:"1"`
	Recommendations []RecommendationDTO `json:"recommendations"`
	Message         string              `json:"message,omitempty"`
}

// PosterResponse is the resolved poster for one catalog movie.
type PosterResponse struct {
	MovieID   int64  `json:"movie_id" example:"597"`
	Title     string `json:"title" example:"Titanic"`
	PosterURL string `json:"poster_url" example:"https://image.tmdb.org/t/p/w500/9xjZS2rlVxm8SFx8kPC3aIGCOYQ.jpg"`
}

// noRecommendationsMessage is returned alongside an empty result.
const noRecommendationsMessage = "No recommendations found."
