package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ArticlesBench/internal/app"
	"ArticlesBench/internal/config"
	"ArticlesBench/internal/logging"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if err := app.NewIngest(cfg, logger).Serve(ctx); err != nil {
		logger.Error("ingestion stopped", "error", err)
		return err
	}
	return nil
}
