package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/rafabene/minipost-backend/internal/infrastructure/config"
	"github.com/rafabene/minipost-backend/internal/infrastructure/logging"
	"github.com/rafabene/minipost-backend/internal/infrastructure/messaging/kafka"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting minipost consumer",
		"broker", cfg.Kafka.Broker,
		"topic", cfg.Kafka.Topic,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(&cfg.Kafka, logger)
	defer consumer.Close()

	if err := consumer.Run(ctx); err != nil {
		logger.Error("consumer failed", "error", err)
		log.Fatal(err)
	}

	logger.Info("consumer exited")
}
