package integration

import (
	"context"
	"net/url"
	"path"

	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/domain/trade"
	"github.com/podstore/backoffice/internal/infrastructure/telemetry"
)

// TicketMailer renders and sends a marketplace ticket, returning the HTML sent
type TicketMailer interface {
	SendTicket(ctx context.Context, to string, order trade.MarketplaceOrder) (string, error)
}

// TicketArchive stores rendered tickets
type TicketArchive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// TicketSyncService mails a ticket for every completed marketplace order.
// Orders are handled one after another; a failed order is counted and skipped.
type TicketSyncService struct {
	client  trade.MarketplaceClient
	mailer  TicketMailer
	archive TicketArchive
	prefix  string
	metrics Recorder
	logger  *zap.Logger
}

// NewTicketSyncService creates a new TicketSyncService. archive and metrics may be nil.
func NewTicketSyncService(
	client trade.MarketplaceClient,
	mailer TicketMailer,
	archive TicketArchive,
	prefix string,
	metrics Recorder,
	logger *zap.Logger,
) *TicketSyncService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &TicketSyncService{
		client:  client,
		mailer:  mailer,
		archive: archive,
		prefix:  prefix,
		metrics: metrics,
		logger:  logger,
	}
}

// Sync fetches the marketplace orders and mails the successful ones
func (s *TicketSyncService) Sync(ctx context.Context) (*SyncResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ticket_sync", "sync")
	defer span.End()

	orders, err := s.client.FetchOrders(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to fetch marketplace orders", zap.Error(err))
		return nil, internalError(ErrTicketFetch, err)
	}

	result := &SyncResult{}
	for _, order := range orders {
		if !order.IsSuccessful() {
			continue
		}
		if order.Customer.Email == "" {
			s.logger.Warn("Ticket skipped, order has no customer email", zap.String("order_id", order.ExternalID))
			result.Failed++
			s.metrics.TicketSynced(ctx, false)
			continue
		}

		html, err := s.mailer.SendTicket(ctx, order.Customer.Email, order)
		if err != nil {
			s.logger.Warn("Ticket not sent", zap.String("order_id", order.ExternalID), zap.Error(err))
			result.Failed++
			s.metrics.TicketSynced(ctx, false)
			continue
		}
		result.Sent++
		s.metrics.TicketSynced(ctx, true)
		s.store(ctx, order.ExternalID, html)
	}

	s.logger.Info("Ticket sync finished",
		zap.Int("orders", len(orders)),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))
	return result, nil
}

// store archives the ticket; a storage failure only logs
func (s *TicketSyncService) store(ctx context.Context, orderID, html string) {
	if s.archive == nil || orderID == "" {
		return
	}
	key := ticketKey(s.prefix, orderID)
	if err := s.archive.Put(ctx, key, []byte(html), "text/html; charset=utf-8"); err != nil {
		s.logger.Warn("Ticket archive failed", zap.String("key", key), zap.Error(err))
	}
}

// ticketKey keeps the marketplace id as a single segment under prefix:
// "/" is escaped, so "../x" cannot leave the ticket folder.
func ticketKey(prefix, orderID string) string {
	return path.Join(prefix, url.PathEscape(orderID)+".html")
}
