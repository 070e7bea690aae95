package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogSender only logs messages. Development transport.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a log-only sender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements Sender
func (s *LogSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.logger.Info("Email not delivered (log provider)",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
