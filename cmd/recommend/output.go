package main

import (
	"fmt"
	"io"

	"movie-recommender/internal/domain/entity"

	"github.com/goccy/go-json"
)

// RecommendOutput is the JSON output format.
type RecommendOutput struct {
	Title           string                 `json:"title"`
	Count           int                    `json:"count"`
	Recommendations []RecommendationOutput `json:"recommendations"`
	Message         string                 `json:"message,omitempty"`
}

// RecommendationOutput is a single recommendation in JSON output.
type RecommendationOutput struct {
	MovieID   int64   `json:"movie_id"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	PosterURL string  `json:"poster_url,omitempty"`
}

// TitlesOutput is the JSON form of --list.
type TitlesOutput struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

const noRecommendations = "No recommendations found."

// writeText prints recommendations in human-readable format.
func writeText(w io.Writer, title string, recs []entity.RecommendedMovie) error {
	if _, err := fmt.Fprintf(w, "Recommendations for %q\n\n", title); err != nil {
		return err
	}

	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, noRecommendations)
		return err
	}

	for i, rec := range recs {
		if _, err := fmt.Fprintf(w, "%d. %s (id %d)\n", i+1, rec.Movie.Title, rec.Movie.ID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Similarity: %.4f\n", rec.Score); err != nil {
			return err
		}
		if rec.PosterURL != "" {
			if _, err := fmt.Fprintf(w, "   Poster: %s\n", rec.PosterURL); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeJSON prints recommendations as indented JSON.
func writeJSON(w io.Writer, title string, recs []entity.RecommendedMovie) error {
	out := RecommendOutput{
		Title:           title,
		Count:           len(recs),
		Recommendations: make([]RecommendationOutput, len(recs)),
	}
	for i, rec := range recs {
		out.Recommendations[i] = RecommendationOutput{
			MovieID:   rec.Movie.ID,
			Title:     rec.Movie.Title,
			Score:     rec.Score,
			PosterURL: rec.PosterURL,
		}
	}
	if len(recs) == 0 {
		out.Message = noRecommendations
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// writeTitles prints catalog titles one per line, or as JSON.
func writeTitles(w io.Writer, titles []string, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(TitlesOutput{Titles: titles, Count: len(titles)})
	}
	for _, t := range titles {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}
