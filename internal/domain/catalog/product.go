package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/shared"
)

// Product is a sellable item owned by the dashboard user that created it.
// InternalSKU is unique per owner.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	InternalSKU string
	EAN         string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct creates a new product; the ID is assigned by the store
func NewProduct(userID, name string, price decimal.Decimal, sku, ean string) *Product {
	now := time.Now()
	return &Product{
		Name:        strings.TrimSpace(name),
		Price:       price.Round(2),
		InternalSKU: strings.TrimSpace(sku),
		EAN:         strings.TrimSpace(ean),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Matches reports whether ref names this product by SKU or barcode
func (p *Product) Matches(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	return p.InternalSKU == ref || p.EAN == ref
}

// ProductPatch lists the fields an update may touch.
// Setting EAN to "" clears the barcode.
type ProductPatch struct {
	Name        shared.Optional[string]
	Price       shared.Optional[decimal.Decimal]
	InternalSKU shared.Optional[string]
	EAN         shared.Optional[string]
}

// IsEmpty reports whether the patch changes nothing
func (p ProductPatch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Price.IsSet() && !p.InternalSKU.IsSet() && !p.EAN.IsSet()
}

// Validate rejects patches that would blank a required column or zero the price
func (p ProductPatch) Validate() error {
	if name, ok := p.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return shared.NewValidationError("El nombre del producto es obligatorio")
	}
	if sku, ok := p.InternalSKU.Get(); ok && strings.TrimSpace(sku) == "" {
		return shared.NewValidationError("El SKU interno es obligatorio")
	}
	if price, ok := p.Price.Get(); ok && !price.IsPositive() {
		return shared.NewValidationError("El precio debe ser mayor que 0")
	}
	return nil
}
