package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	InternalSKU string          `gorm:"column:internal_sku;type:varchar(50);not null;uniqueIndex:idx_products_owner_sku,priority:2"`
	EAN         *string         `gorm:"column:ean;type:varchar(20);index"`
	UserID      string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_products_owner_sku,priority:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		InternalSKU: m.InternalSKU,
		EAN:         stringValue(m.EAN),
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		InternalSKU: p.InternalSKU,
		EAN:         nullableString(p.EAN),
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductPatchColumns maps a patch to the columns it writes.
// An EAN set to "" is stored as NULL.
func ProductPatchColumns(p catalog.ProductPatch) map[string]any {
	cols := map[string]any{}
	if v, ok := p.Name.Get(); ok {
		cols["name"] = v
	}
	if v, ok := p.Price.Get(); ok {
		cols["price"] = v.Round(2)
	}
	if v, ok := p.InternalSKU.Get(); ok {
		cols["internal_sku"] = v
	}
	if v, ok := p.EAN.Get(); ok {
		cols["ean"] = nullableString(v)
	}
	return cols
}
