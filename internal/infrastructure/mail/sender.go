// Package mail delivers HTML email through a transactional provider.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/infrastructure/config"
)

// Message is one HTML email
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Validate checks the fields every transport needs
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return errors.New("mail: at least one recipient is required")
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" {
			return errors.New("mail: empty recipient")
		}
	}
	if m.Subject == "" {
		return errors.New("mail: subject is required")
	}
	return nil
}

// Sender delivers messages
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender builds the transport selected by cfg.Provider
func NewSender(cfg config.EmailConfig, logger *zap.Logger) (Sender, error) {
	switch cfg.Provider {
	case config.EmailProviderResend:
		return NewResendSender(cfg.ResendAPIKey, cfg.From, logger), nil
	case config.EmailProviderSMTP:
		return NewSMTPSender(cfg, logger), nil
	case config.EmailProviderLog, "":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("mail: unknown provider %q", cfg.Provider)
	}
}
