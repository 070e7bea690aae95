// Package notification renders and sends the back-office emails.
package notification

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/domain/trade"
	"github.com/podstore/backoffice/internal/infrastructure/mail"
)

// Template names used as metric labels
const (
	TemplateRaw               = "raw"
	TemplateOrderConfirmation = "order_confirmation"
	TemplateOrderSummary      = "order_summary"
	TemplateTicket            = "ticket"
	TemplateWelcome           = "welcome"
)

// Renderer produces a subject and an HTML body for each email kind
type Renderer interface {
	OrderConfirmation(order *trade.Order) (string, string, error)
	OrderSummary(lines []trade.SummaryLine, total decimal.Decimal) (string, string, error)
	Ticket(order trade.MarketplaceOrder) (string, string, error)
	Welcome(user *identity.User) (string, string, error)
}

// Recorder counts delivery attempts
type Recorder interface {
	EmailSent(ctx context.Context, template string, ok bool)
}

type nopRecorder struct{}

func (nopRecorder) EmailSent(context.Context, string, bool) {}

// EmailService sends email through the configured transport.
// Every failure, rendering included, is returned as a delivery error.
type EmailService struct {
	sender   mail.Sender
	renderer Renderer
	metrics  Recorder
	logger   *zap.Logger
}

// NewEmailService creates a new EmailService. metrics may be nil.
func NewEmailService(sender mail.Sender, renderer Renderer, metrics Recorder, logger *zap.Logger) *EmailService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &EmailService{
		sender:   sender,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Send delivers a caller-built HTML message
func (s *EmailService) Send(ctx context.Context, to, subject, html string) error {
	return s.deliver(ctx, TemplateRaw, mail.Message{To: []string{to}, Subject: subject, HTML: html})
}

// SendOrderConfirmation mails the summary of a stored order to its customer
func (s *EmailService) SendOrderConfirmation(ctx context.Context, order *trade.Order) error {
	subject, html, err := s.renderer.OrderConfirmation(order)
	if err != nil {
		return s.renderFailed(ctx, TemplateOrderConfirmation, err)
	}
	return s.deliver(ctx, TemplateOrderConfirmation, mail.Message{
		To:      []string{order.Customer.Email},
		Subject: subject,
		HTML:    html,
	})
}

// SendOrderSummary mails the product table entered in the dashboard
func (s *EmailService) SendOrderSummary(ctx context.Context, to string, lines []trade.SummaryLine, total decimal.Decimal) error {
	subject, html, err := s.renderer.OrderSummary(lines, total)
	if err != nil {
		return s.renderFailed(ctx, TemplateOrderSummary, err)
	}
	return s.deliver(ctx, TemplateOrderSummary, mail.Message{To: []string{to}, Subject: subject, HTML: html})
}

// SendTicket mails a marketplace ticket and returns the rendered HTML so
// the caller can archive exactly what was sent.
func (s *EmailService) SendTicket(ctx context.Context, to string, order trade.MarketplaceOrder) (string, error) {
	subject, html, err := s.renderer.Ticket(order)
	if err != nil {
		return "", s.renderFailed(ctx, TemplateTicket, err)
	}
	if err := s.deliver(ctx, TemplateTicket, mail.Message{To: []string{to}, Subject: subject, HTML: html}); err != nil {
		return "", err
	}
	return html, nil
}

// SendWelcome greets a newly created user
func (s *EmailService) SendWelcome(ctx context.Context, user *identity.User) error {
	subject, html, err := s.renderer.Welcome(user)
	if err != nil {
		return s.renderFailed(ctx, TemplateWelcome, err)
	}
	return s.deliver(ctx, TemplateWelcome, mail.Message{To: []string{user.Email}, Subject: subject, HTML: html})
}

func (s *EmailService) deliver(ctx context.Context, template string, msg mail.Message) error {
	if err := s.sender.Send(ctx, msg); err != nil {
		s.metrics.EmailSent(ctx, template, false)
		s.logger.Warn("Email delivery failed",
			zap.String("template", template),
			zap.Strings("to", msg.To),
			zap.Error(err))
		return shared.NewDeliveryError(err)
	}
	s.metrics.EmailSent(ctx, template, true)
	s.logger.Info("Email sent", zap.String("template", template), zap.Strings("to", msg.To))
	return nil
}

func (s *EmailService) renderFailed(ctx context.Context, template string, err error) error {
	s.metrics.EmailSent(ctx, template, false)
	s.logger.Error("Email template failed", zap.String("template", template), zap.Error(err))
	return shared.NewDeliveryError(err)
}
