// Package notify delivers outbound text messages. Delivery is best-effort:
// the dialogue core fires notices after the primary transition is persisted
// and never fails a reply on a send error.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notice is a pending outbound message produced by a dialogue transition.
type Notice struct {
	To   string
	Body string
}

// Notifier sends a text message to a recipient identifier.
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// LogNotifier logs would-be sends instead of delivering them. Used in
// development and by the local chat console.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns a notifier that only logs.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, to, body string) error {
	n.logger.Info("outbound message (not delivered)",
		zap.String("to", to),
		zap.Int("length", len(body)),
	)
	n.logger.Debug("outbound message body", zap.String("body", body))
	return nil
}
