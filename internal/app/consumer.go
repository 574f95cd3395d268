package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/auth"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/events"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/messaging/kafka/consumer"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/shared/connection"
)

// RunConsumer provisions login accounts from employee lifecycle events
// until interrupted.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	userRepo := auth.NewRepository(gormDB)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{kafkaBroker},
		Topic:   events.EmployeeCreatedTopic,
		GroupID: "employcentric-account-provisioner",
		// Explicit commits only; a crash mid-batch replays the event
		// and the unique index on email makes the replay harmless.
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.ConsumeEmployeeLifecycle(ctx, reader, userRepo, logger); err != nil {
			logger.Error("consumer exited", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
