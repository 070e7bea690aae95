package notification

import (
	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/trade"
)

// SendEmailRequest is a raw email composed by the dashboard
type SendEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	HTML    string `json:"html" binding:"required"`
}

// SummaryItem is one row of an order summary request
type SummaryItem struct {
	Product  string           `json:"product" binding:"required,max=200"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
	Amount   *decimal.Decimal `json:"amount" binding:"present"`
}

// OrderSummaryRequest asks for an order summary email
type OrderSummaryRequest struct {
	RecipientEmail string           `json:"recipientEmail" binding:"required,email"`
	ProductList    []SummaryItem    `json:"productList" binding:"required,min=1,dive"`
	TotalAmount    *decimal.Decimal `json:"totalAmount" binding:"present"`
}

// Lines converts the request rows to summary lines
func (r OrderSummaryRequest) Lines() []trade.SummaryLine {
	lines := make([]trade.SummaryLine, len(r.ProductList))
	for i, item := range r.ProductList {
		lines[i] = trade.SummaryLine{Product: item.Product, Quantity: item.Quantity}
		if item.Amount != nil {
			lines[i].Amount = *item.Amount
		}
	}
	return lines
}

// Total returns the requested total, zero when absent
func (r OrderSummaryRequest) Total() decimal.Decimal {
	if r.TotalAmount == nil {
		return decimal.Zero
	}
	return *r.TotalAmount
}
