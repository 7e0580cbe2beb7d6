package notification

import (
	"context"
	"log/slog"
)

const (
	// KindWalletCredited indicates a funding attempt completed and the wallet
	// balance was credited.
	KindWalletCredited = "wallet_credited"
	// KindCreditEscalation indicates money was verified with the provider but
	// the wallet credit did not land. Requires manual reconciliation.
	KindCreditEscalation = "credit_escalation"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Reference   string
	Body        string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the
// logger. Escalations are logged at error level so they surface in alerting.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	if message.Kind == KindCreditEscalation {
		n.logger.Error("notification", "kind", message.Kind, "destination", message.Destination, "reference", message.Reference, "body", message.Body)
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "reference", message.Reference, "body", message.Body)
	return nil
}
