package trade

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/shared"
)

// StatusSuccessful is the marketplace status name of a completed order
const StatusSuccessful = "successful"

// OrderStatus is the marketplace status pair
type OrderStatus struct {
	ID   int
	Name string
}

// Customer holds the contact data of the buyer
type Customer struct {
	Name     string
	Email    string
	Phone    string
	Document string
	Address  string
	Country  string
	City     string
}

// MarketplaceRef correlates an order with the marketplace that sent it
type MarketplaceRef struct {
	StoreID         string
	StoreExternalID string
	OrderExternalID string
}

// Totals are the monetary fields as reported by the caller.
// They are stored as given and never recomputed.
type Totals struct {
	TotalAmount       decimal.Decimal
	NetValue          decimal.Decimal
	Taxes             decimal.Decimal
	TotalWithDiscount decimal.Decimal
}

// Order is an order placed by a customer of a store owner.
// Orders are immutable once created.
type Order struct {
	ID          int64
	UserID      string
	Customer    Customer
	Totals      Totals
	Marketplace MarketplaceRef
	Status      OrderStatus
	PlacedAt    *time.Time
	ModifiedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Lines       []OrderProduct
}

// OrderProduct is one line item. ProductID is nil for items that only
// exist in the marketplace catalog.
type OrderProduct struct {
	ID                int64
	OrderID           int64
	ProductID         *int64
	CatalogName       string // filled from the joined product on reads
	ExternalProductID string
	SyncProductID     string
	Name              string
	EAN               string
	Quantity          int
	Price             decimal.Decimal
	Tax               decimal.Decimal
	PriceWithDiscount decimal.Decimal
	Lot               string
}

// NewOrder validates the line items and returns a new order
func NewOrder(userID string, customer Customer, totals Totals, lines []OrderProduct) (*Order, error) {
	if userID == "" {
		return nil, shared.NewValidationError("El pedido requiere un usuario")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("El pedido debe tener al menos un producto")
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, shared.NewValidationError("La cantidad debe ser al menos 1")
		}
	}
	now := time.Now()
	return &Order{
		UserID:    userID,
		Customer:  customer,
		Totals:    totals,
		CreatedAt: now,
		UpdatedAt: now,
		Lines:     lines,
	}, nil
}

// IsSuccessful reports whether the marketplace marked the order as completed
func (o *Order) IsSuccessful() bool {
	return o.Status.Name == StatusSuccessful
}

// LinesTotal returns the sum of quantity*price over all lines
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// Total returns quantity*price
func (l OrderProduct) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DisplayName prefers the catalog name over the marketplace snapshot
func (l OrderProduct) DisplayName() string {
	if l.CatalogName != "" {
		return l.CatalogName
	}
	return l.Name
}

// FirstTax returns the first tax value of a line, or zero.
// Multi-rate taxes are not modelled.
func FirstTax(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return values[0]
}
