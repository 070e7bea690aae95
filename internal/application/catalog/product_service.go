package catalog

import (
	"context"

	"github.com/podstore/backoffice/internal/domain/catalog"
	"github.com/podstore/backoffice/internal/domain/shared"
)

// Localized action names used in error messages
const (
	actionCreate = "crear el producto"
	actionList   = "obtener los productos"
	actionGet    = "obtener el producto"
	actionUpdate = "actualizar el producto"
	actionDelete = "eliminar el producto"
)

// ProductService handles product-related business operations.
// Input is validated by the caller; each method is one store round trip.
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a product owned by ownerID unless the request names another owner
func (s *ProductService) Create(ctx context.Context, ownerID string, req CreateProductRequest) (*ProductResponse, error) {
	if req.UserID != "" {
		ownerID = req.UserID
	}
	product := catalog.NewProduct(ownerID, req.Name, *req.Price, req.InternalSKU, req.EAN)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, shared.NewPersistenceError(actionCreate, err)
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetAll returns every product
func (s *ProductService) GetAll(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, shared.NewPersistenceError(actionList, err)
	}
	return ToProductResponses(products), nil
}

// GetByID returns a product
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewPersistenceError(actionGet, err)
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update applies a partial update and returns the stored row
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	patch := req.ToPatch()
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	product, err := s.productRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, shared.NewPersistenceError(actionUpdate, err)
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product and returns the removed row
func (s *ProductService) Delete(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return nil, shared.NewPersistenceError(actionDelete, err)
	}
	resp := ToProductResponse(product)
	return &resp, nil
}
