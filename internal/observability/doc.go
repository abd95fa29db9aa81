// Package observability groups structured logging and OpenTelemetry tracing.
// Prometheus metrics live next to the code they measure and are exposed by
// the HTTP layer at /metrics.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - tracing: OpenTelemetry tracing integration
package observability
