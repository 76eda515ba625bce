package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/linguakit/linguapp/internal/config"
	"github.com/linguakit/linguapp/internal/core"
	"github.com/linguakit/linguapp/internal/logging"
	"github.com/linguakit/linguapp/internal/progress"
	"github.com/linguakit/linguapp/internal/remote"
	"github.com/linguakit/linguapp/internal/session"
	"github.com/linguakit/linguapp/internal/store"
	"github.com/linguakit/linguapp/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store_path", cfg.Store.Path,
		"practice_limit", cfg.Session.PracticeLimit,
		"exam_limit", cfg.Session.ExamLimit,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Open the local key-value store
	kv, err := store.Open(cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	// Hydrate learning state; this applies the streak-reset check
	state, err := progress.Load(kv, time.Now())
	if err != nil {
		slog.Error("failed to load progress state", "error", err)
		os.Exit(1)
	}
	slog.Info("progress loaded",
		"words", len(state.Words),
		"streak", state.StreakCount,
		"last_session", state.LastSessionDate,
	)

	fetcher := remote.NewFetcher(cfg.Remote.SheetURL, cfg.Remote.FetchTimeout)

	service := core.NewService(kv, state, fetcher, core.Options{
		Limits: session.Limits{
			Practice: cfg.Session.PracticeLimit,
			Exam:     cfg.Session.ExamLimit,
		},
	})

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
