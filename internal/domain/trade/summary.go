package trade

import "github.com/shopspring/decimal"

// SummaryLine is one row of an order summary email. Amount is the line
// total as entered by the dashboard user.
type SummaryLine struct {
	Product  string
	Quantity int
	Amount   decimal.Decimal
}
