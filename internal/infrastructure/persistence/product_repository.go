package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/podstore/backoffice/internal/domain/catalog"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/infrastructure/persistence/models"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts the product and copies the generated ID back
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	*product = *model.ToDomain()
	return nil
}

// FindAll returns every product ordered by ID
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return toProducts(rows), nil
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the products with the given IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return toProducts(rows), nil
}

// FindByReferences returns the owner's products whose SKU or EAN is one of refs
func (r *GormProductRepository) FindByReferences(ctx context.Context, userID string, refs []string) ([]catalog.Product, error) {
	if len(refs) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND (internal_sku IN ? OR ean IN ?)", userID, refs, refs).
		Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return toProducts(rows), nil
}

// Update writes only the columns present in the patch and returns the stored row
func (r *GormProductRepository) Update(ctx context.Context, id int64, patch catalog.ProductPatch) (*catalog.Product, error) {
	cols := models.ProductPatchColumns(patch)
	if len(cols) == 0 {
		return r.FindByID(ctx, id)
	}

	var model models.ProductModel
	result := r.db.WithContext(ctx).
		Model(&model).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(cols)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return model.ToDomain(), nil
}

// Delete removes the product and returns the removed row.
// Order lines that referenced it keep their snapshot and lose the link.
func (r *GormProductRepository) Delete(ctx context.Context, id int64) (*catalog.Product, error) {
	var model models.ProductModel
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&model)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return model.ToDomain(), nil
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *rows[i].ToDomain())
	}
	return products
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
