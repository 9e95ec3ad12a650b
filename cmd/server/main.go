package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/reportline/sheetparser/internal/config"
	"github.com/reportline/sheetparser/internal/logging"
	"github.com/reportline/sheetparser/internal/parser"
	"github.com/reportline/sheetparser/internal/schema"
	"github.com/reportline/sheetparser/internal/web"
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

	gen := schema.ByName(cfg.Sheet.Generation)
	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"sheet_generation", gen.Name,
		"fetch_timeout", cfg.Fetch.Timeout,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	fetcher := parser.NewFetcher(&http.Client{Timeout: cfg.Fetch.Timeout}, cfg.Fetch.MaxBytes)
	core := parser.New(fetcher, gen)
	server := web.NewServer(core, cfg)

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
	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
