package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_CountsByNormalizedPath(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"movie_id":1}`))
	}))

	for _, id := range []string{"597", "19995", "24428"} {
		req := httptest.NewRequest(http.MethodGet, "/movies/"+id+"/poster", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/movies/:id/poster", "200"))
	if got != 3 {
		t.Errorf("http_requests_total{path=/movies/:id/poster} = %v, want 3", got)
	}
	if n := testutil.CollectAndCount(httpRequestsTotal); n != 1 {
		t.Errorf("expected a single label set, got %d", n)
	}
}

func TestMetricsMiddleware_RecordsStatus(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recommendations?title=Nope", nil))

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/recommendations", "404"))
	if got != 1 {
		t.Errorf("http_requests_total{status=404} = %v, want 1", got)
	}
}

func TestMetricsMiddleware_InFlightReturnsToZero(t *testing.T) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := testutil.ToFloat64(httpRequestsInFlight); v != 1 {
			t.Errorf("in-flight during request = %v, want 1", v)
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movies", nil))

	if v := testutil.ToFloat64(httpRequestsInFlight); v != 0 {
		t.Errorf("in-flight after request = %v, want 0", v)
	}
}

func TestMetricsHandler_ExposesHTTPMetrics(t *testing.T) {
	MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movies", nil))

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, name := range []string{"http_requests_total", "http_request_duration_seconds", "http_requests_in_flight"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
