package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/adapters/event"
	"github.com/rediet/portfolio/adapters/persistence"
	"github.com/rediet/portfolio/internal/application/usecase/views"
	"github.com/rediet/portfolio/internal/config"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Portfolio Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("KAFKA_BROKERS is required for the worker", nil)
	}

	// Redis
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	recordViewUC := views.NewRecordViewUseCase(persistence.NewViewCounter(redisClient), appLogger)

	// Kafka Consumer
	viewConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicViewEvents,
		GroupID:  "view-counter-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer viewConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicViewEvents))

	for {
		msg, err := viewConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		err = recordViewUC.Execute(ctx, msg.Value)
		switch {
		case errors.Is(err, apperror.ErrInvalidInput):
			appLogger.Warn("Skipping malformed event", zap.Int64("offset", msg.Offset), zap.Error(err))
		case err != nil:
			appLogger.Error("Failed to record page view", err, zap.Int64("offset", msg.Offset))
			continue
		}

		commitMessage(viewConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}
