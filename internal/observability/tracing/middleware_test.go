package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-recommender/internal/handler/http/requestid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans installs an in-memory exporter for the duration of the test and
// re-initializes the package tracer against it.
func recordSpans(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("movie-recommender")

	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer("movie-recommender")
	})
	return exporter, tp
}

func serveStatus(code int, target string, header http.Header) *httptest.ResponseRecorder {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func attrs(span tracetest.SpanStub) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(span.Attributes))
	for _, kv := range span.Attributes {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter, tp := recordSpans(t)

	serveStatus(http.StatusOK, "/recommendations?title=Avatar", nil)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "GET /recommendations" {
		t.Errorf("expected span name 'GET /recommendations', got %q", spans[0].Name)
	}

	a := attrs(spans[0])
	if got := a["http.method"].AsString(); got != "GET" {
		t.Errorf("http.method = %q", got)
	}
	if got := a["http.path"].AsString(); got != "/recommendations" {
		t.Errorf("http.path = %q", got)
	}
	if got := a["http.status_code"].AsInt64(); got != 200 {
		t.Errorf("http.status_code = %d", got)
	}
}

func TestMiddleware_SpanNameUsesRoute(t *testing.T) {
	exporter, tp := recordSpans(t)

	serveStatus(http.StatusOK, "/movies/597/poster", nil)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "GET /movies/:id/poster" {
		t.Errorf("span name = %q", spans[0].Name)
	}
	a := attrs(spans[0])
	if got := a["http.path"].AsString(); got != "/movies/597/poster" {
		t.Errorf("http.path = %q", got)
	}
	if got := a["http.route"].AsString(); got != "/movies/:id/poster" {
		t.Errorf("http.route = %q", got)
	}
}

func TestMiddleware_AddsTraceIDHeader(t *testing.T) {
	recordSpans(t)

	rr := serveStatus(http.StatusOK, "/movies", nil)

	traceID := rr.Header().Get("X-Trace-Id")
	if len(traceID) != 32 {
		t.Errorf("expected 32 hex character trace ID, got %q", traceID)
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := recordSpans(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})

	header := http.Header{}
	header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	serveStatus(http.StatusOK, "/movies", header)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace ID = %s", got)
	}
}

func TestMiddleware_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   codes.Code
	}{
		{name: "5xx marks error", status: http.StatusServiceUnavailable, want: codes.Error},
		{name: "404 does not", status: http.StatusNotFound, want: codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, tp := recordSpans(t)

			serveStatus(tt.status, "/recommendations", nil)
			_ = tp.ForceFlush(context.Background())

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			if got := spans[0].Status.Code; got != tt.want {
				t.Errorf("span status = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMiddleware_RequestIDAttribute(t *testing.T) {
	exporter, tp := recordSpans(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req = req.WithContext(requestid.WithRequestID(req.Context(), "req-42"))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := attrs(spans[0])["request.id"].AsString(); got != "req-42" {
		t.Errorf("request.id = %q, want req-42", got)
	}
}
