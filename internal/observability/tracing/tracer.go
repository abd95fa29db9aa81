package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("movie-recommender")

// GetTracer returns the service tracer. Spans go nowhere until a
// TracerProvider is installed with otel.SetTracerProvider.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "poster.Resolve")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
