package trade

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MarketplaceOrder is an order as reported by the marketplace API.
// It is not persisted; the ticket sync only renders and mails it.
type MarketplaceOrder struct {
	ExternalID  string
	StatusName  string
	Customer    Customer
	Lines       []OrderProduct
	TotalAmount decimal.Decimal
	PlacedAt    *time.Time
}

// IsSuccessful reports whether the marketplace marked the order as completed
func (o MarketplaceOrder) IsSuccessful() bool {
	return o.StatusName == StatusSuccessful
}

// MarketplaceClient reads orders from the marketplace
type MarketplaceClient interface {
	FetchOrders(ctx context.Context) ([]MarketplaceOrder, error)
}
