package templates

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/trade"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Company{
		CompanyName:  "Soluciones Innovadoras GDC",
		ContactEmail: "tickets@solucionesinnovadorasgdc.com",
		ContactPhone: "+52 81 1038 6975",
	})
	require.NoError(t, err)
	return e
}

func TestEngine_OrderConfirmation(t *testing.T) {
	e := newEngine(t)
	order := &trade.Order{
		Totals: trade.Totals{TotalAmount: decimal.RequireFromString("820.5")},
		Lines: []trade.OrderProduct{
			{Name: "VHILL 3000 BANANA ICE", Quantity: 2, Price: decimal.NewFromInt(250)},
			{Name: "snapshot", CatalogName: "IPLAY BOX COOL MINT", Quantity: 1, Price: decimal.RequireFromString("320.50")},
		},
	}

	subject, html, err := e.OrderConfirmation(order)
	require.NoError(t, err)
	assert.Equal(t, "Resumen de tu pedido", subject)
	assert.Contains(t, html, "¡Gracias por tu compra!")
	assert.Contains(t, html, "VHILL 3000 BANANA ICE - 2 pcs")
	assert.Contains(t, html, "$500.00")
	assert.Contains(t, html, "IPLAY BOX COOL MINT - 1 pcs")
	assert.NotContains(t, html, "snapshot")
	assert.Contains(t, html, "$820.50")
	assert.Contains(t, html, "Soluciones Innovadoras GDC")
	assert.Contains(t, html, "+52 81 1038 6975")
}

func TestEngine_OrderSummary_EscapesInput(t *testing.T) {
	e := newEngine(t)

	subject, html, err := e.OrderSummary([]trade.SummaryLine{
		{Product: "<script>alert(1)</script>", Quantity: 3, Amount: decimal.NewFromInt(960)},
	}, decimal.NewFromInt(960))
	require.NoError(t, err)
	assert.Equal(t, "Resumen de su pedido", subject)
	assert.Contains(t, html, "Nuevo pedido")
	assert.Contains(t, html, "3 pcs")
	assert.Contains(t, html, "Total del pedido: $960.00")
	assert.NotContains(t, html, "<script>")
}

func TestEngine_Ticket(t *testing.T) {
	e := newEngine(t)
	placed := time.Date(2024, 1, 5, 18, 30, 0, 0, time.UTC)

	subject, html, err := e.Ticket(trade.MarketplaceOrder{
		ExternalID:  "1001",
		PlacedAt:    &placed,
		TotalAmount: decimal.NewFromInt(250),
		Lines:       []trade.OrderProduct{{Name: "VHILL 3000 BANANA ICE", Quantity: 1, Price: decimal.NewFromInt(250)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tu ticket de Pod Store", subject)
	assert.Contains(t, html, "Pedido 1001")
	assert.Contains(t, html, "5/1/2024, 12:30:00")
	assert.Contains(t, html, CustomerPlaceholder)
	assert.Contains(t, html, "Total: $250.00")
}

func TestEngine_Welcome(t *testing.T) {
	e := newEngine(t)

	subject, html, err := e.Welcome(&identity.User{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, SubjectWelcome, subject)
	assert.Contains(t, html, "¡Bienvenido, Ana!")
}
