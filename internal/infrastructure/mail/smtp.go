package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/infrastructure/config"
)

// SMTPSender sends through an SMTP relay. A new connection is dialed per message.
type SMTPSender struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

// NewSMTPSender creates an SMTP sender
func NewSMTPSender(cfg config.EmailConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send implements Sender
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.buildMessage(msg)
	if err != nil {
		return err
	}
	client, err := gomail.NewClient(s.cfg.SMTPHost, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	s.logger.Info("Email sent",
		zap.String("provider", "smtp"),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func (s *SMTPSender) buildMessage(msg Message) (*gomail.Msg, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("smtp: invalid sender: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("smtp: invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return m, nil
}

func (s *SMTPSender) clientOptions() []gomail.Option {
	opts := []gomail.Option{gomail.WithPort(s.cfg.SMTPPort)}
	if s.cfg.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(s.cfg.Timeout))
	}
	if s.cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.SMTPUsername),
			gomail.WithPassword(s.cfg.SMTPPassword),
		)
	}
	switch s.cfg.SMTPTLS {
	case "ssl":
		opts = append(opts, gomail.WithSSL())
	case "starttls":
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}
	return opts
}
