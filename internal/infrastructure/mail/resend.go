package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// emailsAPI is the part of the Resend client used here
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender sends through the Resend HTTP API
type ResendSender struct {
	emails emailsAPI
	from   string
	logger *zap.Logger
}

// NewResendSender creates a sender for the given API key and sender address
func NewResendSender(apiKey, from string, logger *zap.Logger) *ResendSender {
	return &ResendSender{
		emails: resend.NewClient(apiKey).Emails,
		from:   from,
		logger: logger,
	}
}

// Send implements Sender
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	sent, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	s.logger.Info("Email sent",
		zap.String("provider", "resend"),
		zap.String("id", sent.Id),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
