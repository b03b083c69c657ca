// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/cosmify/internal/convert"
	"github.com/starford/cosmify/internal/index"
	"github.com/starford/cosmify/internal/storage"
	"github.com/starford/cosmify/internal/watch"
)

// Run converts the configured vault once and, in watch mode, again after
// every change until ctx is cancelled or the process is interrupted.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{logOutput: os.Stderr}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	logger := newLogger(app.logOutput, cfg)

	logger.Info("configuration loaded",
		slog.String("input", cfg.Vault.Input),
		slog.String("output", cfg.Vault.Output),
		slog.String("id_mode", cfg.Convert.IDMode),
		slog.String("link_style", cfg.Convert.LinkStyle),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.Bool("watch", cfg.Watch.Enabled))

	in, err := storage.NewFS(cfg.Vault.Input)
	if err != nil {
		return fmt.Errorf("init input: %w", err)
	}

	// Ensure output directory exists.
	if err := os.MkdirAll(cfg.Vault.Output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := storage.NewFS(cfg.Vault.Output)
	if err != nil {
		return fmt.Errorf("init output: %w", err)
	}

	var popts []convert.Option
	if cfg.SQLite.Enabled() {
		db, err := index.Open(cfg.SQLite.Path)
		if err != nil {
			return fmt.Errorf("init index: %w", err)
		}
		defer db.Close()
		popts = append(popts, convert.WithIndex(db))
	}

	pipeline := convert.New(in, out, cfg.PipelineOptions(), logger, popts...)
	runOnce := func(ctx context.Context) error {
		rep, err := pipeline.Run(ctx)
		if err != nil {
			return err
		}
		logger.Info("notes converted",
			slog.Int("notes", len(rep.Notes)),
			slog.Int("ids_created", rep.IDs),
			slog.Int("titles_created", rep.Titles),
			slog.Int("renamed", rep.Renamed))
		return nil
	}

	if err := runOnce(ctx); err != nil {
		return err
	}
	if !cfg.Watch.Enabled {
		return nil
	}

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gCtx := errgroup.WithContext(watchCtx)

	g.Go(func() error {
		return watch.Watch(gCtx, in.Root(), cfg.Watch.Debounce, logger, runOnce)
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			stop()
		case <-gCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("watch error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("watch stopped")
	return nil
}

func newLogger(w io.Writer, cfg *Config) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.App.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
