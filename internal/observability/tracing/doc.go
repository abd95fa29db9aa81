// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through the global tracer provider, so exporting is
// configured by whoever installs a provider with otel.SetTracerProvider.
// Without one, spans are no-ops.
//
// Example usage:
//
//	import "movie-recommender/internal/observability/tracing"
//
//	func resolve(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "poster.Resolve")
//	    defer span.End()
//	}
package tracing
