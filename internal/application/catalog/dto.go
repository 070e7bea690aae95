package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/catalog"
	"github.com/podstore/backoffice/internal/domain/shared"
)

// CreateProductRequest represents a request to create a new product.
// UserID defaults to the signed-in dashboard user.
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=2,max=100"`
	Price       *decimal.Decimal `json:"price" binding:"required,gt=0"`
	InternalSKU string           `json:"internalSku" binding:"required,min=1,max=50"`
	EAN         string           `json:"ean" binding:"omitempty,max=20"`
	UserID      string           `json:"userId" binding:"omitempty,max=64"`
}

// UpdateProductRequest represents a partial update; absent fields are left untouched.
// Only ean may be cleared with "" or null.
type UpdateProductRequest struct {
	Name        shared.Optional[string]          `json:"name" binding:"omitempty,min=2,max=100"`
	Price       shared.Optional[decimal.Decimal] `json:"price" binding:"omitempty,gt=0"`
	InternalSKU shared.Optional[string]          `json:"internalSku" binding:"omitempty,min=1,max=50"`
	EAN         shared.Optional[string]          `json:"ean" binding:"omitempty,max=20"`
}

// ToPatch converts the request to a domain patch
func (r UpdateProductRequest) ToPatch() catalog.ProductPatch {
	return catalog.ProductPatch{
		Name:        r.Name,
		Price:       r.Price,
		InternalSKU: r.InternalSKU,
		EAN:         r.EAN,
	}
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	InternalSKU string          `json:"internalSku"`
	EAN         string          `json:"ean,omitempty"`
	UserID      string          `json:"userId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		InternalSKU: p.InternalSKU,
		EAN:         p.EAN,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
