package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track article use case operations
var (
	// ArticlesWrittenTotal counts articles successfully created
	ArticlesWrittenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conduit_articles_written_total",
			Help: "Total number of articles written",
		},
	)

	// ArticleEditsTotal counts successful edits by field
	ArticleEditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conduit_article_edits_total",
			Help: "Total number of article edits by field",
		},
		[]string{"field"},
	)

	// ArticlesDeletedTotal counts articles removed by their authors
	ArticlesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conduit_articles_deleted_total",
			Help: "Total number of articles deleted",
		},
	)

	// FavoritesTotal counts favorite and unfavorite actions
	FavoritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conduit_article_favorites_total",
			Help: "Total number of favorite toggles by action",
		},
		[]string{"action"},
	)

	// ArticlesListedTotal counts article details returned by listings
	ArticlesListedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conduit_articles_listed_total",
			Help: "Total number of article details returned by listing operations",
		},
		[]string{"listing"},
	)

	// OperationErrorsTotal counts failed use case operations by error kind
	OperationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conduit_article_operation_errors_total",
			Help: "Total number of failed article operations by operation and error kind",
		},
		[]string{"operation", "kind"},
	)
)

// Database metrics track query performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// CircuitBreakerState exposes breaker state: 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)
