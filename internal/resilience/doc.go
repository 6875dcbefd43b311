// Package resilience groups the fault tolerance helpers used around storage.
//
//   - circuitbreaker wraps the database handle so that a failing database is
//     short-circuited instead of piling up blocked queries.
//   - retry retries transient connection errors with exponential backoff and jitter.
//
// Usage Example:
//
//	conn := circuitbreaker.NewDBCircuitBreaker(sqlDB)
//	err := retry.WithBackoff(ctx, retry.ConnectConfig(), func() error {
//	    return sqlDB.PingContext(ctx)
//	})
package resilience
