package poster

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder records poster resolution metrics.
// Tests inject their own implementation instead of Prometheus.
type MetricsRecorder interface {
	// RecordResolution counts a finished resolution by outcome kind and its latency.
	RecordResolution(kind Kind, duration time.Duration)

	// RecordAttempt counts a single upstream HTTP attempt.
	// outcome is "success" or the failure kind of that attempt.
	RecordAttempt(outcome string)

	// RecordCacheHit counts a resolution served from cache.
	RecordCacheHit()
}

var (
	posterResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_resolutions_total",
			Help: "Total number of poster resolutions by outcome kind",
		},
		[]string{"kind"},
	)

	posterUpstreamAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_upstream_attempts_total",
			Help: "Total number of HTTP attempts made against the metadata API",
		},
		[]string{"outcome"},
	)

	posterResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_resolution_duration_seconds",
			Help:    "Time spent resolving a poster, including retries",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	posterCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cache_hits_total",
			Help: "Total number of poster resolutions served from cache",
		},
	)
)

// PrometheusMetrics implements MetricsRecorder using the process-wide Prometheus registry.
type PrometheusMetrics struct{}

// NewPrometheusMetrics returns the Prometheus-backed recorder.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{}
}

func (PrometheusMetrics) RecordResolution(kind Kind, duration time.Duration) {
	posterResolutionsTotal.WithLabelValues(string(kind)).Inc()
	posterResolutionDuration.Observe(duration.Seconds())
}

func (PrometheusMetrics) RecordAttempt(outcome string) {
	posterUpstreamAttemptsTotal.WithLabelValues(outcome).Inc()
}

func (PrometheusMetrics) RecordCacheHit() {
	posterCacheHitsTotal.Inc()
}
