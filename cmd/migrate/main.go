// Command migrate opens the configured database and applies the schema.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"conduit/internal/app"
	"conduit/internal/config"
	"conduit/internal/infra/db"
	"conduit/internal/observability/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "path to the YAML service config (optional)")
	down := fs.Bool("down", false, "drop the postgres schema instead of creating it")
	textLog := fs.Bool("text-log", false, "log in human-readable text instead of JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format := logging.FormatJSON
	if *textLog {
		format = logging.FormatText
	}
	logger := logging.WithFields(logging.New(stdout, format, logging.LevelFromEnv()),
		map[string]interface{}{"component": "migrate"})
	slog.SetDefault(logger)
	ctx = logging.WithLogger(ctx, logger)

	cfg, err := config.LoadServiceConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		return err
	}

	if *down && cfg.Database.Driver != config.DriverPostgres {
		err := fmt.Errorf("-down is only supported for postgres")
		logger.Error("invalid flags", slog.Any("error", err))
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if *down {
		err = db.MigrateDown(ctx, a.Conn)
	} else {
		err = a.Migrate(ctx)
	}
	if err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		return err
	}

	logger.Info("migration finished",
		slog.String("driver", cfg.Database.Driver),
		slog.Bool("down", *down))
	return nil
}
