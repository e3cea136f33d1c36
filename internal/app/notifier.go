package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/meharshjain/leave-approval-system/internal/events"
	"github.com/meharshjain/leave-approval-system/internal/messaging/kafka/consumer"
	"github.com/meharshjain/leave-approval-system/internal/notification"
)

func RunNotifier() error {
	logger := zap.L().Named("app.notifier")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	dispatcher := notification.NewSMTPDispatcher(notification.SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       os.Getenv("SMTP_PORT"),
		User:       os.Getenv("SMTP_USER"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       os.Getenv("SMTP_FROM"),
		TLSEnabled: os.Getenv("SMTP_TLS") == "true",
	})

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		GroupTopics:    []string{events.LeaveRequestedTopic, events.LeaveDecidedTopic},
		GroupID:        "leave-approval-notifier",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveNotifications(ctx, reader, dispatcher, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("notifier shutting down")
	cancel()

	return nil
}
