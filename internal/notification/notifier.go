// Package notification sends and consumes outbound user notifications.
package notification

import (
	"context"
	"log/slog"

	applog "fintrack-be/internal/log"
)

// Notifier hands a message to the delivery channel. A nil error means the message was accepted,
// not that it reached the recipient.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier writes messages to the log; used when no broker is configured
type LogNotifier struct {
	logger *applog.Logger
}

func NewLogNotifier(logger *applog.Logger) *LogNotifier {
	if logger == nil {
		logger = applog.New(applog.Config{})
	}
	return &LogNotifier{logger: logger.WithComponent(applog.ComponentNotification)}
}

func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.InfoContext(ctx, "Notification",
		applog.FieldRecipient, msg.Recipient,
		"subject", msg.Subject,
		"body", msg.Body,
		"html", msg.IsHTML)
	return nil
}

// Deliverer performs the final delivery of a consumed message
type Deliverer interface {
	Deliver(ctx context.Context, msg Message) error
}

// LogDeliverer logs each message instead of mailing it
type LogDeliverer struct{}

func (LogDeliverer) Deliver(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "Delivered notification",
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldRecipient, msg.Recipient,
		"subject", msg.Subject)
	return nil
}
