// Package app wires the configured database, repositories and the article
// use case together.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"conduit/internal/config"
	pgRepo "conduit/internal/infra/adapter/persistence/postgres"
	sqliteRepo "conduit/internal/infra/adapter/persistence/sqlite"
	"conduit/internal/infra/db"
	"conduit/internal/observability/logging"
	"conduit/internal/resilience/circuitbreaker"
	artUC "conduit/internal/usecase/article"
)

// App holds the long-lived components of a running service.
type App struct {
	Config   *config.ServiceConfig
	DB       *sql.DB
	Conn     db.Conn
	Breaker  *circuitbreaker.DBCircuitBreaker // nil when disabled
	Articles *artUC.Service
}

// New opens the database selected by cfg and builds the article service on top of it.
// SQLite databases are migrated on open; postgres needs an explicit Migrate.
func New(ctx context.Context, cfg *config.ServiceConfig) (*App, error) {
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, database), nil
}

func openDatabase(ctx context.Context, cfg *config.ServiceConfig) (*sql.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		database, err := db.Open(ctx, cfg.DSN(), db.ConnectionConfigFromEnv())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return database, nil
	case config.DriverSQLite:
		database, err := sqliteRepo.Open(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return database, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func newApp(ctx context.Context, cfg *config.ServiceConfig, database *sql.DB) *App {
	a := &App{Config: cfg, DB: database, Conn: database}
	if cfg.CircuitBreakerEnabled() {
		a.Breaker = circuitbreaker.NewDBCircuitBreaker(database)
		a.Conn = a.Breaker
	}

	svc := &artUC.Service{Pagination: cfg.PaginationConfig()}
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		svc.Social = sqliteRepo.NewSocialRepo(a.Conn)
		svc.Articles = sqliteRepo.NewArticleRepo(a.Conn)
		svc.Favorites = sqliteRepo.NewFavoriteRepo(a.Conn)
	default:
		svc.Social = pgRepo.NewSocialRepo(a.Conn)
		svc.Articles = pgRepo.NewArticleRepo(a.Conn)
		svc.Favorites = pgRepo.NewFavoriteRepo(a.Conn)
	}
	a.Articles = svc

	logging.FromContext(ctx).Info("article service ready",
		slog.String("driver", cfg.Database.Driver),
		slog.Bool("circuit_breaker", a.Breaker != nil))
	return a
}

// Migrate applies the schema for postgres. SQLite is already migrated by New.
func (a *App) Migrate(ctx context.Context) error {
	if a.Config.Database.Driver != config.DriverPostgres {
		return nil
	}
	if err := db.MigrateUp(ctx, a.Conn); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}

// Close reports final pool statistics and closes the database.
func (a *App) Close() error {
	db.ReportPoolStats(a.DB)
	return a.DB.Close()
}
