// Package tracing provides the OpenTelemetry tracer used by the article use case
// and small helpers for starting and finishing spans.
//
// The tracer is resolved from the global provider, so spans are no-ops until the
// process installs an SDK TracerProvider with otel.SetTracerProvider.
//
// Example usage:
//
//	ctx, span := tracing.StartSpan(ctx, "article.WriteArticle")
//	defer func() { tracing.End(span, err) }()
package tracing
