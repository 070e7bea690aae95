package trade

import (
	"context"

	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/domain/catalog"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/domain/trade"
)

const (
	actionCreate = "crear el pedido"
	actionList   = "obtener los pedidos"
	actionGet    = "obtener el pedido"
	actionDelete = "eliminar el pedido"
)

// OrderService handles dashboard order operations. Orders have no update.
type OrderService struct {
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create stores a local checkout with its lines in one nested create.
// Each line snapshots the catalog name and price.
func (s *OrderService) Create(ctx context.Context, ownerID string, req CreateOrderRequest) (*OrderResponse, error) {
	if req.UserID != "" {
		ownerID = req.UserID
	}

	ids := make([]int64, 0, len(req.Products))
	for _, p := range req.Products {
		ids = append(ids, p.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, shared.NewPersistenceError(actionCreate, err)
	}
	byID := make(map[int64]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]trade.OrderProduct, 0, len(req.Products))
	for _, item := range req.Products {
		p, ok := byID[item.ProductID]
		if !ok {
			s.logger.Warn("Checkout references unknown product", zap.Int64("product_id", item.ProductID))
			return nil, shared.NewPersistenceError(actionCreate, shared.ErrInvalidRef)
		}
		productID := p.ID
		lines = append(lines, trade.OrderProduct{
			ProductID:         &productID,
			Name:              p.Name,
			EAN:               p.EAN,
			Quantity:          item.Quantity,
			Price:             p.Price,
			PriceWithDiscount: p.Price,
		})
	}

	order, err := trade.NewOrder(ownerID, trade.Customer{Name: req.CustomerName, Email: req.CustomerEmail},
		trade.Totals{TotalAmount: *req.TotalAmount, NetValue: *req.TotalAmount, TotalWithDiscount: *req.TotalAmount}, lines)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, shared.NewPersistenceError(actionCreate, err)
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetAll returns every order with its lines
func (s *OrderService) GetAll(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, shared.NewPersistenceError(actionList, err)
	}
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out, nil
}

// ListFormatted returns every order shaped for the dashboard table
func (s *OrderService) ListFormatted(ctx context.Context) ([]FormattedOrder, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, shared.NewPersistenceError(actionList, err)
	}
	out := make([]FormattedOrder, len(orders))
	for i := range orders {
		out[i] = FormatOrder(&orders[i])
	}
	return out, nil
}

// GetByID returns an order with its lines
func (s *OrderService) GetByID(ctx context.Context, id int64) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewPersistenceError(actionGet, err)
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Delete removes an order; its lines cascade
func (s *OrderService) Delete(ctx context.Context, id int64) (*OrderResponse, error) {
	order, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return nil, shared.NewPersistenceError(actionDelete, err)
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}
