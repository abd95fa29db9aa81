// Package http provides the middleware and operational endpoints of the
// recommendation API: health probes, metrics, logging and panic recovery.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"movie-recommender/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CatalogStatus reports the loaded catalog.
type CatalogStatus interface {
	Size() int
}

// BreakerStatus reports the poster API circuit breaker.
type BreakerStatus interface {
	BreakerState() string
}

// HealthHandler reports the catalog, the optional catalog database and the
// poster API circuit breaker.
//
// An empty catalog or an unreachable database makes the service unhealthy.
// An open breaker only degrades it: recommendations still work and posters
// fall back to the placeholder.
type HealthHandler struct {
	Catalog CatalogStatus
	DB      *sql.DB
	Posters BreakerStatus
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"catalog": h.checkCatalog(),
	}
	if h.DB != nil {
		checks["database"] = h.checkDatabase(ctx)
	}
	if h.Posters != nil {
		checks["poster_api"] = h.checkPosterAPI()
	}

	status := "healthy"
	for _, c := range checks {
		if c.Status == "unhealthy" {
			status = "unhealthy"
			break
		}
		if c.Status == "degraded" {
			status = "degraded"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkCatalog() CheckStatus {
	if h.Catalog == nil || h.Catalog.Size() == 0 {
		return CheckStatus{Status: "unhealthy", Message: "catalog not loaded"}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: map[string]interface{}{"movies": h.Catalog.Size()},
	}
}

// checkDatabase pings the catalog database and reports pool statistics.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: respond.SanitizeError(err),
		}
	}

	stats := h.DB.Stats()
	details := map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	// MaxOpenConnections is 0 when unlimited.
	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80.0 {
			return CheckStatus{
				Status:  "degraded",
				Message: "connection pool utilization above 80%",
				Details: details,
			}
		}
	}

	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkPosterAPI() CheckStatus {
	state := h.Posters.BreakerState()
	details := map[string]interface{}{"circuit_breaker": state}
	if state == "open" {
		return CheckStatus{
			Status:  "degraded",
			Message: "poster API circuit open; serving placeholders",
			Details: details,
		}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler answers readiness probes: ready once the catalog is loaded
// and, when configured, the catalog database answers a ping.
type ReadyHandler struct {
	Catalog CatalogStatus
	DB      *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Catalog == nil || h.Catalog.Size() == 0 {
		http.Error(w, "catalog not loaded", http.StatusServiceUnavailable)
		return
	}

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			http.Error(w, "database not ready", http.StatusServiceUnavailable)
			return
		}
	}

	writeText(w, "ready")
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Default().Debug("failed to write probe response", slog.Any("error", err))
	}
}
