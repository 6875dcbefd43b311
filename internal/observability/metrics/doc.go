// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Article mutations (writes, edits, deletes)
//   - Favorite toggles
//   - Use case failures by error kind
//   - Database query metrics
//
// All metrics are registered with the Prometheus default registry.
//
// Example usage:
//
//	start := time.Now()
//	rows, err := db.QueryContext(ctx, query)
//	metrics.RecordDBQuery("find_article_by_slug", time.Since(start))
package metrics
