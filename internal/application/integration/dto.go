package integration

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apptrade "github.com/podstore/backoffice/internal/application/trade"
	"github.com/podstore/backoffice/internal/domain/trade"
)

// TaxPayload is one tax entry of a webhook line
type TaxPayload struct {
	Value decimal.Decimal `json:"value"`
}

// ItemPayload is one line of a webhook order
type ItemPayload struct {
	Quantity          int              `json:"quantity" binding:"required,min=1"`
	Price             *decimal.Decimal `json:"price" binding:"present"`
	PriceWithDiscount *decimal.Decimal `json:"priceWithDiscount"`
	Lote              string           `json:"lote" binding:"omitempty,max=64"`
	SyncProductID     string           `json:"syncProductId" binding:"omitempty,max=64"`
	ExternalProductID string           `json:"externalProductId" binding:"omitempty,max=64"`
	Name              string           `json:"name" binding:"omitempty,max=200"`
	EAN               string           `json:"ean" binding:"omitempty,max=20"`
	Taxes             []TaxPayload     `json:"taxes"`
}

// StatusPayload is the marketplace status pair
type StatusPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name" binding:"required"`
}

// OrderPayload is the body of the marketplace order webhook
type OrderPayload struct {
	StoreID           string           `json:"storeId" binding:"required,max=64"`
	StoreExternalID   string           `json:"storeExternalId" binding:"omitempty,max=64"`
	OrderExternalID   string           `json:"orderExternalId" binding:"required,max=64"`
	TotalAmount       *decimal.Decimal `json:"totalAmount" binding:"present"`
	NetValue          decimal.Decimal  `json:"netValue"`
	Taxes             decimal.Decimal  `json:"taxes"`
	TotalWithDiscount decimal.Decimal  `json:"totalWithDiscount"`
	CustomerName      string           `json:"customerName" binding:"omitempty,max=200"`
	CustomerEmail     string           `json:"customerEmail" binding:"required,email"`
	CustomerPhone     string           `json:"customerPhone" binding:"omitempty,max=50"`
	CustomerDocument  string           `json:"customerDocument" binding:"omitempty,max=50"`
	CustomerAddress   string           `json:"customerAddress" binding:"omitempty,max=300"`
	CustomerCountry   string           `json:"customerCountry" binding:"omitempty,max=100"`
	CustomerCity      string           `json:"customerCity" binding:"omitempty,max=100"`
	Items             []ItemPayload    `json:"items" binding:"required,min=1,dive"`
	Status            StatusPayload    `json:"status"`
	CreatedAt         string           `json:"createdAt" binding:"omitempty,rfc3339"`
	UpdatedAt         string           `json:"updatedAt" binding:"omitempty,rfc3339"`
}

// References returns the SKU candidates of every line, sync ids first
func (p OrderPayload) References() []string {
	seen := map[string]bool{}
	var refs []string
	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref != "" && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	for _, it := range p.Items {
		add(it.SyncProductID)
	}
	for _, it := range p.Items {
		add(it.EAN)
	}
	return refs
}

// Customer returns the buyer block
func (p OrderPayload) Customer() trade.Customer {
	return trade.Customer{
		Name:     p.CustomerName,
		Email:    p.CustomerEmail,
		Phone:    p.CustomerPhone,
		Document: p.CustomerDocument,
		Address:  p.CustomerAddress,
		Country:  p.CustomerCountry,
		City:     p.CustomerCity,
	}
}

// Totals returns the monetary fields exactly as sent
func (p OrderPayload) Totals() trade.Totals {
	return trade.Totals{
		TotalAmount:       *p.TotalAmount,
		NetValue:          p.NetValue,
		Taxes:             p.Taxes,
		TotalWithDiscount: p.TotalWithDiscount,
	}
}

// Line converts an item; tax is the first entry of the taxes array
func (it ItemPayload) Line() trade.OrderProduct {
	taxes := make([]decimal.Decimal, 0, len(it.Taxes))
	for _, t := range it.Taxes {
		taxes = append(taxes, t.Value)
	}
	l := trade.OrderProduct{
		ExternalProductID: it.ExternalProductID,
		SyncProductID:     it.SyncProductID,
		Name:              it.Name,
		EAN:               it.EAN,
		Quantity:          it.Quantity,
		Price:             *it.Price,
		PriceWithDiscount: *it.Price,
		Tax:               trade.FirstTax(taxes),
		Lot:               it.Lote,
	}
	if it.PriceWithDiscount != nil {
		l.PriceWithDiscount = *it.PriceWithDiscount
	}
	return l
}

// parseTimestamp reads an ISO-8601 timestamp; empty means unknown
func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

// IngestResult is the webhook outcome. EmailWarning is set when the order
// was stored but the confirmation email could not be sent.
type IngestResult struct {
	Order        apptrade.OrderResponse `json:"order"`
	EmailWarning string                 `json:"emailWarning,omitempty"`
}

// SyncResult counts the tickets handled by one sync
type SyncResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
