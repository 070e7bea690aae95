package catalog

import "context"

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create inserts a product and fills its ID
	Create(ctx context.Context, product *Product) error

	// FindAll returns every product ordered by ID
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindByIDs returns the products with the given IDs; missing IDs are skipped
	FindByIDs(ctx context.Context, ids []int64) ([]Product, error)

	// FindByReferences returns the owner's products whose SKU or EAN is in refs
	FindByReferences(ctx context.Context, userID string, refs []string) ([]Product, error)

	// Update applies the patch and returns the stored row
	Update(ctx context.Context, id int64, patch ProductPatch) (*Product, error)

	// Delete removes the product and returns the removed row
	Delete(ctx context.Context, id int64) (*Product, error)
}
