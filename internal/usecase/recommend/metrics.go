package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for recommendation requests
var (
	// recommendationsTotal tracks lookups by result
	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation lookups",
		},
		[]string{"status"}, // status: ok|empty|not_found|invalid
	)

	// recommendationLookupDuration tracks time spent in the similarity lookup only
	recommendationLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_lookup_duration_seconds",
			Help:    "Similarity lookup duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// catalogMovies reports the size of the loaded catalog
	catalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)
)
