package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/satprep/practice/internal/config"
	"github.com/satprep/practice/internal/database"
	"github.com/satprep/practice/internal/handler/health"
	"github.com/satprep/practice/internal/history"
	"github.com/satprep/practice/internal/practice"
	"github.com/satprep/practice/internal/server"
	"github.com/satprep/practice/internal/views"
	"github.com/satprep/practice/internal/views/catalog"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating db dir: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	store, err := history.NewStore(ctx, db)
	if err != nil {
		return fmt.Errorf("initializing history store: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- View catalog ---
	registry := views.NewRegistry()
	if err := views.RegisterAll(registry, catalog.Default()...); err != nil {
		return fmt.Errorf("registering views: %w", err)
	}
	for _, c := range views.Categories() {
		logger.Debug("view category loaded", "category", c, "count", registry.Count(c))
	}

	// --- Sessions ---
	broker := server.NewBroker()
	sessions := practice.NewManager(logger, store, broker, practice.Config{
		TickInterval:          cfg.TickInterval,
		DefaultSectionSeconds: cfg.DefaultSectionSeconds,
	})

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Sessions: sessions,
		Views:    registry,
		History:  store,
		Broker:   broker,
		Checks: map[string]health.Checker{
			"sqlite":  health.CheckerFunc(db.PingContext),
			"catalog": catalogChecker{registry},
		},
		AdminKeyHash: cfg.AdminKeyHash,
		SPADir:       cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		// Records whatever sessions were still open.
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// catalogChecker reports unhealthy if any view category is empty.
type catalogChecker struct{ registry *views.Registry }

func (c catalogChecker) Check(_ context.Context) error {
	var errs []error
	for _, cat := range views.Categories() {
		if c.registry.Count(cat) == 0 {
			errs = append(errs, fmt.Errorf("no %s views registered", cat))
		}
	}
	return errors.Join(errs...)
}
