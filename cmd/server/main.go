package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/lawdir/internal/config"
	"github.com/JonMunkholm/lawdir/internal/core"
	"github.com/JonMunkholm/lawdir/internal/logging"
	"github.com/JonMunkholm/lawdir/internal/metrics"
	"github.com/JonMunkholm/lawdir/internal/remote"
	"github.com/JonMunkholm/lawdir/internal/store"
	"github.com/JonMunkholm/lawdir/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	ctx := context.Background()

	syncer, closeBackend, err := remote.Open(ctx, cfg.Sync)
	if err != nil {
		slog.Error("failed to open sync backend", "backend", cfg.Sync.Backend, "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	opts := core.Options{
		Limiter:       core.NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime),
		ImportTimeout: cfg.Import.Timeout,
		AutoPush:      cfg.Sync.AutoPush,
		SyncTimeout:   cfg.Sync.Timeout,
		Defaults: core.Defaults{
			Language: cfg.Directory.DefaultLanguage,
			Image:    cfg.Directory.PlaceholderImage,
		},
	}
	// a nil *Syncer must not become a non-nil interface
	if syncer != nil {
		opts.Syncer = syncer
	}
	service := core.NewService(store.NewMemory(nil), opts)

	if service.SyncEnabled() && cfg.Sync.PullOnStart {
		pullCtx, cancel := context.WithTimeout(ctx, cfg.Sync.Timeout)
		n, err := service.SyncPull(pullCtx)
		cancel()
		if err != nil {
			// start empty rather than refuse to serve
			slog.Warn("initial sync pull failed", "backend", cfg.Sync.Backend, "error", err)
		} else {
			slog.Info("directory loaded", "backend", cfg.Sync.Backend, "records", n)
		}
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.ImportStatus(); status.Active > 0 {
			slog.Info("waiting for imports to complete", "active", status.Active)
			if err := service.Drain(shutdownCtx); err != nil {
				slog.Warn("imports did not complete in time", "error", err)
			} else {
				slog.Info("all imports completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		closeBackend()
		os.Exit(1)
	}
	slog.Info("server stopped")
}
