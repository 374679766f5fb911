package main

import (
	"context"
	"log"
	"os"

	"taxonomy-indexer/internal/app"
	"taxonomy-indexer/internal/config"
	"taxonomy-indexer/internal/pkg/logging"

	"github.com/joho/godotenv"
)

// indexer runs the reindex pipeline once and exits. Intended for cron and
// one-off operator runs; the server binary exposes the same pipeline over HTTP.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.App.LogLevel)
	defer func() { _ = logger.Sync() }()

	container, err := app.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Error("cleanup error", "error", err)
		}
	}()

	sum, err := container.Pipeline.Run(context.Background())
	if err != nil {
		logger.Error("reindex failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("reindex completed", "jobs_indexed", sum.JobsIndexed, "pages", sum.Pages, "duration", sum.Duration)
}
