package db

import (
	"context"
	"fmt"
	"log/slog"

	"conduit/internal/observability/logging"
	"conduit/internal/resilience/retry"
)

type migration struct {
	name string
	stmt string
}

// upMigrations create the postgres schema. Every statement is idempotent.
var upMigrations = []migration{
	{name: "users", stmt: `
CREATE TABLE IF NOT EXISTS users (
    id       BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email    TEXT NOT NULL UNIQUE,
    bio      TEXT NOT NULL DEFAULT '',
    image    TEXT NOT NULL DEFAULT ''
)`},
	{name: "user_follows", stmt: `
CREATE TABLE IF NOT EXISTS user_follows (
    follower_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    following_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    PRIMARY KEY (follower_id, following_id),
    CHECK (follower_id <> following_id)
)`},
	{name: "articles", stmt: `
CREATE TABLE IF NOT EXISTS articles (
    id          BIGSERIAL PRIMARY KEY,
    slug        TEXT NOT NULL UNIQUE,
    title       TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL DEFAULT '',
    author_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{name: "tags", stmt: `
CREATE TABLE IF NOT EXISTS tags (
    id   BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
)`},
	{name: "article_tags", stmt: `
CREATE TABLE IF NOT EXISTS article_tags (
    article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    tag_id     BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (article_id, tag_id)
)`},
	{name: "article_favorites", stmt: `
CREATE TABLE IF NOT EXISTS article_favorites (
    user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, article_id)
)`},
	// listings are ordered newest first
	{name: "idx_articles_created_at", stmt: `CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC)`},
	{name: "idx_articles_author_id", stmt: `CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`},
	{name: "idx_article_tags_tag_id", stmt: `CREATE INDEX IF NOT EXISTS idx_article_tags_tag_id ON article_tags(tag_id)`},
	{name: "idx_article_favorites_article_id", stmt: `CREATE INDEX IF NOT EXISTS idx_article_favorites_article_id ON article_favorites(article_id)`},
}

// downMigrations drop the schema in reverse dependency order.
var downMigrations = []migration{
	{name: "article_favorites", stmt: `DROP TABLE IF EXISTS article_favorites`},
	{name: "article_tags", stmt: `DROP TABLE IF EXISTS article_tags`},
	{name: "tags", stmt: `DROP TABLE IF EXISTS tags`},
	{name: "articles", stmt: `DROP TABLE IF EXISTS articles`},
	{name: "user_follows", stmt: `DROP TABLE IF EXISTS user_follows`},
	{name: "users", stmt: `DROP TABLE IF EXISTS users`},
}

// MigrateUp creates the postgres schema. It is safe to run repeatedly.
// Each statement is retried on transient connection errors.
func MigrateUp(ctx context.Context, conn Conn) error {
	return run(ctx, conn, "up", upMigrations)
}

// MigrateDown drops every table created by MigrateUp.
// Use with caution: this deletes all data.
func MigrateDown(ctx context.Context, conn Conn) error {
	return run(ctx, conn, "down", downMigrations)
}

func run(ctx context.Context, conn Conn, direction string, steps []migration) error {
	logger := logging.FromContext(ctx)
	for _, m := range steps {
		err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
			_, err := conn.ExecContext(ctx, m.stmt)
			return err
		})
		if err != nil {
			return fmt.Errorf("migrate %s %s: %w", direction, m.name, err)
		}
		logger.Debug("migration applied",
			slog.String("direction", direction),
			slog.String("step", m.name))
	}
	logger.Info("migrations complete",
		slog.String("direction", direction),
		slog.Int("steps", len(steps)))
	return nil
}
