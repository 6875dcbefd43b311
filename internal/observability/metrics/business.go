package metrics

import "time"

// Edited fields reported by RecordArticleEdited.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldContent     = "content"
)

// Favorite actions reported by RecordFavorite.
const (
	ActionFavorite   = "favorite"
	ActionUnfavorite = "unfavorite"
)

// RecordArticleWritten records a successfully created article.
func RecordArticleWritten() {
	ArticlesWrittenTotal.Inc()
}

// RecordArticleEdited records a successful edit of the given field.
func RecordArticleEdited(field string) {
	ArticleEditsTotal.WithLabelValues(field).Inc()
}

// RecordArticleDeleted records a deleted article.
func RecordArticleDeleted() {
	ArticlesDeletedTotal.Inc()
}

// RecordFavorite records a favorite or unfavorite action.
func RecordFavorite(action string) {
	FavoritesTotal.WithLabelValues(action).Inc()
}

// RecordArticlesListed records how many details a listing returned.
// Listing is one of "articles", "articles_for_user" or "feed".
func RecordArticlesListed(listing string, count int) {
	ArticlesListedTotal.WithLabelValues(listing).Add(float64(count))
}

// RecordOperationError records a failed use case operation.
// Kind is "not_found", "conflict", "forbidden", "validation" or "internal".
func RecordOperationError(operation, kind string) {
	OperationErrorsTotal.WithLabelValues(operation, kind).Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query (e.g., "find_article_by_slug", "insert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// RecordCircuitBreakerState records the state of the named circuit breaker.
// State follows gobreaker's numbering: 0 closed, 1 half-open, 2 open.
func RecordCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
