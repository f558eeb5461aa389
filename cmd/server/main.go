package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/tabforge/csv2xlsx/internal/config"
	"github.com/tabforge/csv2xlsx/internal/convert"
	"github.com/tabforge/csv2xlsx/internal/history"
	"github.com/tabforge/csv2xlsx/internal/logging"
	"github.com/tabforge/csv2xlsx/internal/web"
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
		"max_concurrent", cfg.Convert.MaxConcurrent,
		"max_file_size", cfg.Convert.MaxFileSize,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"history_enabled", cfg.History.Enabled(),
	)

	ctx := context.Background()

	// Conversion history is optional: skip the database entirely when no
	// URL is configured.
	var store *history.Store
	if cfg.History.Enabled() {
		poolConfig, err := pgxpool.ParseConfig(cfg.History.DatabaseURL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.History.MaxConns)
		poolConfig.MinConns = int32(cfg.History.MinConns)
		poolConfig.MaxConnLifetime = cfg.History.MaxConnLifetime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		if u, err := url.Parse(cfg.History.DatabaseURL); err == nil {
			slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
		}

		store = history.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			slog.Error("failed to ensure history schema", "error", err)
			os.Exit(1)
		}
	}

	service := convert.NewService(convert.ServiceConfig{
		MaxConcurrent:  int64(cfg.Convert.MaxConcurrent),
		AcquireTimeout: cfg.Convert.MaxWaitTime,
		MaxFetchBytes:  cfg.Convert.MaxFileSize,
		FetchTimeout:   cfg.Convert.FetchTimeout,
	})

	server := web.NewServer(cfg, service, store)

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

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
