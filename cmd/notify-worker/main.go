// Command notify-worker consumes queued expense notifications and delivers them.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"fintrack-be/internal/config"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/notification"
)

func main() {
	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AMQPURL == "" {
		logger.ErrorContext(ctx, "AMQP_URL is required to run the notification worker")
		os.Exit(1)
	}

	client, err := notification.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to AMQP broker", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx = applog.WithContext(ctx, logger)
	err = client.Consume(ctx, notification.LogDeliverer{})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Notification worker stopped", applog.FieldError, err)
		os.Exit(1)
	}
	logger.InfoContext(context.Background(), "Notification worker stopped")
}
