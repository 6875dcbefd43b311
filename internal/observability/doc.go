// Package observability groups the logging, metrics and tracing helpers used
// by the article service and its persistence adapters.
//
// Subpackages:
//   - logging: slog construction and context propagation
//   - metrics: Prometheus collectors and recorders
//   - tracing: OpenTelemetry tracer and span helpers
package observability
