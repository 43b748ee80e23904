package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"job-match/internal/app"
	"job-match/internal/config"
	"job-match/internal/infrastructure/messaging"
	"job-match/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if err := run(cfg, lg); err != nil {
		lg.Error("worker failed", zap.Error(err))
		_ = lg.Sync()
		os.Exit(1)
	}
	lg.Info("worker stopped")
	_ = lg.Sync()
}

func run(cfg config.Config, lg *zap.Logger) error {
	if cfg.RabbitMQ.URL == "" {
		return errors.New("RABBITMQ_URL is required for the worker")
	}
	if !cfg.Database.Enabled() {
		return errors.New("database configuration is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := app.NewContainer(ctx, cfg, lg, app.ContainerOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			lg.Warn("cleanup error", zap.Error(err))
		}
	}()

	consumer, err := messaging.NewConsumer(cfg.RabbitMQ, cfg.Matching.MinPercentage, c.Ranking, lg)
	if err != nil {
		return err
	}
	defer func() { _ = consumer.Close() }()

	return consumer.Run(ctx)
}
