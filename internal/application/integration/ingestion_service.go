package integration

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apptrade "github.com/podstore/backoffice/internal/application/trade"
	"github.com/podstore/backoffice/internal/domain/catalog"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/domain/trade"
	"github.com/podstore/backoffice/internal/infrastructure/telemetry"
)

const actionIngest = "crear el pedido"

// OrderConfirmer mails the confirmation of a stored order
type OrderConfirmer interface {
	SendOrderConfirmation(ctx context.Context, order *trade.Order) error
}

// Recorder counts marketplace activity
type Recorder interface {
	OrderIngested(ctx context.Context, source string)
	OrderRejected(ctx context.Context, source, reason string)
	TicketSynced(ctx context.Context, ok bool)
}

type nopRecorder struct{}

func (nopRecorder) OrderIngested(context.Context, string)         {}
func (nopRecorder) OrderRejected(context.Context, string, string) {}
func (nopRecorder) TicketSynced(context.Context, bool)            {}

// OrderIngestionService stores orders pushed by the marketplace webhook
type OrderIngestionService struct {
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
	confirmer   OrderConfirmer
	metrics     Recorder
	logger      *zap.Logger
}

// NewOrderIngestionService creates a new OrderIngestionService. metrics may be nil.
func NewOrderIngestionService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	confirmer OrderConfirmer,
	metrics Recorder,
	logger *zap.Logger,
) *OrderIngestionService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &OrderIngestionService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		confirmer:   confirmer,
		metrics:     metrics,
		logger:      logger,
	}
}

// Ingest stores a validated webhook payload for ownerID and sends the
// confirmation email. A stored order is never rolled back because of email.
func (s *OrderIngestionService) Ingest(ctx context.Context, ownerID string, payload OrderPayload) (*IngestResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_ingestion", "ingest")
	defer span.End()

	lines, err := s.resolveLines(ctx, ownerID, payload)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	order, err := trade.NewOrder(ownerID, payload.Customer(), payload.Totals(), lines)
	if err != nil {
		s.metrics.OrderRejected(ctx, telemetry.SourceRappi, "invalid")
		return nil, err
	}
	order.Marketplace = trade.MarketplaceRef{
		StoreID:         payload.StoreID,
		StoreExternalID: payload.StoreExternalID,
		OrderExternalID: payload.OrderExternalID,
	}
	order.Status = trade.OrderStatus{ID: payload.Status.ID, Name: payload.Status.Name}
	order.PlacedAt = parseTimestamp(payload.CreatedAt)
	order.ModifiedAt = parseTimestamp(payload.UpdatedAt)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(err, shared.ErrAlreadyExists) {
			s.metrics.OrderRejected(ctx, telemetry.SourceRappi, "duplicate")
			s.logger.Warn("Duplicate marketplace order",
				zap.String("user_id", ownerID),
				zap.String("order_external_id", payload.OrderExternalID))
			return nil, ErrOrderRegistered
		}
		s.metrics.OrderRejected(ctx, telemetry.SourceRappi, "store")
		return nil, shared.NewPersistenceError(actionIngest, err)
	}
	s.metrics.OrderIngested(ctx, telemetry.SourceRappi)
	s.logger.Info("Marketplace order stored",
		zap.Int64("order_id", order.ID),
		zap.String("order_external_id", payload.OrderExternalID),
		zap.Int("lines", len(order.Lines)))

	result := &IngestResult{Order: apptrade.ToOrderResponse(order)}
	if err := s.confirmer.SendOrderConfirmation(ctx, order); err != nil {
		s.logger.Warn("Order stored but confirmation email failed",
			zap.Int64("order_id", order.ID),
			zap.String("customer_email", order.Customer.Email),
			zap.Error(err))
		result.EmailWarning = err.Error()
	}
	return result, nil
}

// resolveLines links each line to the owner's catalog by sync id, then barcode
func (s *OrderIngestionService) resolveLines(ctx context.Context, ownerID string, payload OrderPayload) ([]trade.OrderProduct, error) {
	var products []catalog.Product
	if refs := payload.References(); len(refs) > 0 {
		found, err := s.productRepo.FindByReferences(ctx, ownerID, refs)
		if err != nil {
			return nil, shared.NewPersistenceError(actionIngest, err)
		}
		products = found
	}

	lines := make([]trade.OrderProduct, 0, len(payload.Items))
	for _, it := range payload.Items {
		line := it.Line()
		if p := matchProduct(products, it.SyncProductID, it.EAN); p != nil {
			id := p.ID
			line.ProductID = &id
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func matchProduct(products []catalog.Product, refs ...string) *catalog.Product {
	for _, ref := range refs {
		for i := range products {
			if products[i].Matches(ref) {
				return &products[i]
			}
		}
	}
	return nil
}
