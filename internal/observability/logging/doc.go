// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	ctx = logging.WithLogger(ctx, logger.With("user_id", user.ID))
//	...
//	logging.FromContext(ctx).Info("article written", slog.String("slug", a.Slug))
package logging
