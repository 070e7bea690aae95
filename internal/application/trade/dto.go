package trade

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/domain/trade"
	"github.com/podstore/backoffice/internal/infrastructure/templates"
)

// CheckoutLine is one product of a dashboard checkout
type CheckoutLine struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is a local checkout. Line prices are taken from the
// catalog at the time of the call; TotalAmount is stored as given.
type CreateOrderRequest struct {
	UserID        string           `json:"userId" binding:"omitempty,max=64"`
	CustomerName  string           `json:"customerName" binding:"omitempty,max=200"`
	CustomerEmail string           `json:"customerEmail" binding:"required,email"`
	Products      []CheckoutLine   `json:"products" binding:"required,min=1,dive"`
	TotalAmount   *decimal.Decimal `json:"totalAmount" binding:"present"`
}

// OrderLineResponse is an order line in API responses
type OrderLineResponse struct {
	ID                int64           `json:"id"`
	ProductID         *int64          `json:"productId"`
	ExternalProductID string          `json:"externalProductId,omitempty"`
	SyncProductID     string          `json:"syncProductId,omitempty"`
	Name              string          `json:"name"`
	EAN               string          `json:"ean,omitempty"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	Tax               decimal.Decimal `json:"tax"`
	PriceWithDiscount decimal.Decimal `json:"priceWithDiscount"`
	Lot               string          `json:"lote,omitempty"`
}

// OrderResponse is a stored order in API responses
type OrderResponse struct {
	ID                int64               `json:"id"`
	UserID            string              `json:"userId"`
	CustomerName      string              `json:"customerName"`
	CustomerEmail     string              `json:"customerEmail"`
	CustomerPhone     string              `json:"customerPhone,omitempty"`
	CustomerDocument  string              `json:"customerDocument,omitempty"`
	CustomerAddress   string              `json:"customerAddress,omitempty"`
	CustomerCountry   string              `json:"customerCountry,omitempty"`
	CustomerCity      string              `json:"customerCity,omitempty"`
	TotalAmount       decimal.Decimal     `json:"totalAmount"`
	NetValue          decimal.Decimal     `json:"netValue"`
	Taxes             decimal.Decimal     `json:"taxes"`
	TotalWithDiscount decimal.Decimal     `json:"totalWithDiscount"`
	StoreID           string              `json:"storeId,omitempty"`
	StoreExternalID   string              `json:"storeExternalId,omitempty"`
	OrderExternalID   string              `json:"orderExternalId,omitempty"`
	StatusID          int                 `json:"statusId"`
	StatusName        string              `json:"statusName,omitempty"`
	PlacedAt          *time.Time          `json:"placedAt,omitempty"`
	ModifiedAt        *time.Time          `json:"modifiedAt,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
	Items             []OrderLineResponse `json:"items"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *trade.Order) OrderResponse {
	resp := OrderResponse{
		ID:                o.ID,
		UserID:            o.UserID,
		CustomerName:      o.Customer.Name,
		CustomerEmail:     o.Customer.Email,
		CustomerPhone:     o.Customer.Phone,
		CustomerDocument:  o.Customer.Document,
		CustomerAddress:   o.Customer.Address,
		CustomerCountry:   o.Customer.Country,
		CustomerCity:      o.Customer.City,
		TotalAmount:       o.Totals.TotalAmount,
		NetValue:          o.Totals.NetValue,
		Taxes:             o.Totals.Taxes,
		TotalWithDiscount: o.Totals.TotalWithDiscount,
		StoreID:           o.Marketplace.StoreID,
		StoreExternalID:   o.Marketplace.StoreExternalID,
		OrderExternalID:   o.Marketplace.OrderExternalID,
		StatusID:          o.Status.ID,
		StatusName:        o.Status.Name,
		PlacedAt:          o.PlacedAt,
		ModifiedAt:        o.ModifiedAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Items:             make([]OrderLineResponse, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		resp.Items = append(resp.Items, OrderLineResponse{
			ID:                l.ID,
			ProductID:         l.ProductID,
			ExternalProductID: l.ExternalProductID,
			SyncProductID:     l.SyncProductID,
			Name:              l.DisplayName(),
			EAN:               l.EAN,
			Quantity:          l.Quantity,
			Price:             l.Price,
			Tax:               l.Tax,
			PriceWithDiscount: l.PriceWithDiscount,
			Lot:               l.Lot,
		})
	}
	return resp
}

// FormattedCustomer is the customer block of the dashboard order list
type FormattedCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FormattedItem is one line of the dashboard order list
type FormattedItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// FormattedOrder is an order shaped for display
type FormattedOrder struct {
	ID             string            `json:"id"`
	CreatedAt      string            `json:"createdAt"`
	Customer       FormattedCustomer `json:"customer"`
	Items          []FormattedItem   `json:"items"`
	Total          decimal.Decimal   `json:"total"`
	TotalFormatted string            `json:"totalFormatted"`
}

// FormatOrder maps an order to its display form. The total is the stored
// order total, not the sum of the lines.
func FormatOrder(o *trade.Order) FormattedOrder {
	name := o.Customer.Name
	if name == "" {
		name = templates.CustomerPlaceholder
	}
	out := FormattedOrder{
		ID:             strconv.FormatInt(o.ID, 10),
		CreatedAt:      shared.FormatDateTime(o.CreatedAt),
		Customer:       FormattedCustomer{Name: name, Email: o.Customer.Email},
		Items:          make([]FormattedItem, 0, len(o.Lines)),
		Total:          o.Totals.TotalAmount,
		TotalFormatted: shared.FormatCurrency(o.Totals.TotalAmount),
	}
	for _, l := range o.Lines {
		out.Items = append(out.Items, FormattedItem{
			Name:     l.DisplayName(),
			Quantity: l.Quantity,
			Price:    l.Price,
			Total:    l.Total(),
		})
	}
	return out
}
