package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/travelagency/config"
	"github.com/Domenick1991/travelagency/internal/email"
	"github.com/Domenick1991/travelagency/internal/kafka"
	"github.com/Domenick1991/travelagency/internal/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	slog.SetDefault(log)

	if len(cfg.Kafka.Brokers) == 0 {
		log.Error("kafka.brokers is empty, nothing to consume")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.EventsTopic, log)
	defer consumer.Close()

	sender := email.NewSender(log)

	log.Info("worker started",
		slog.String("topic", cfg.Kafka.EventsTopic),
		slog.String("group_id", cfg.Kafka.GroupID),
	)
	if err := consumer.Consume(ctx, sender.Send); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("worker stopped")
}
