package testutil

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/catalog"
	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/trade"
)

// TestUserID is the owner used by fixtures
const TestUserID = "7b0e4b0c-3f1e-4f8a-9d59-2f0c7c1c9a10"

// NewTestUser returns a user with a generated name and email
func NewTestUser() *identity.User {
	return identity.NewUser(TestUserID, gofakeit.Name(), gofakeit.Email(), identity.RoleUser)
}

// NewTestProduct returns a stored-looking product owned by TestUserID
func NewTestProduct(id int64) *catalog.Product {
	p := catalog.NewProduct(
		TestUserID,
		gofakeit.ProductName(),
		decimal.NewFromFloat(gofakeit.Price(10, 999)).Round(2),
		gofakeit.LetterN(3)+"-"+gofakeit.DigitN(4),
		gofakeit.DigitN(13),
	)
	p.ID = id
	return p
}

// NewTestOrder returns a stored-looking order with one line per price
func NewTestOrder(id int64, prices ...string) *trade.Order {
	lines := make([]trade.OrderProduct, 0, len(prices))
	total := decimal.Zero
	for i, price := range prices {
		p := decimal.RequireFromString(price)
		lines = append(lines, trade.OrderProduct{
			ID:       int64(i + 1),
			OrderID:  id,
			Name:     gofakeit.ProductName(),
			Quantity: 1,
			Price:    p,
		})
		total = total.Add(p)
	}
	created := time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)
	return &trade.Order{
		ID:     id,
		UserID: TestUserID,
		Customer: trade.Customer{
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
		},
		Totals:    trade.Totals{TotalAmount: total},
		CreatedAt: created,
		UpdatedAt: created,
		Lines:     lines,
	}
}
