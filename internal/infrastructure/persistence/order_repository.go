package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/domain/trade"
	"github.com/podstore/backoffice/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order together with its lines. The connection skips
// GORM's implicit transaction, so the nested create runs in an explicit one.
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return translateError(err)
	}
	*order = *model.ToDomain()
	return nil
}

// FindAll returns every order, newest first, with lines and their catalog products
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]trade.Order, error) {
	var rows []models.OrderModel
	if err := r.withLines(ctx).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	orders := make([]trade.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders, nil
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.withLines(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Delete removes the order header; lines go with it through ON DELETE CASCADE.
// The returned order carries no lines.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) (*trade.Order, error) {
	var model models.OrderModel
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

func (r *GormOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Lines.Product")
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
