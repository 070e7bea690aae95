package persistence

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/infrastructure/persistence/models"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	*user = *model.ToDomain()
	return nil
}

// FindAll returns every user, oldest first
func (r *GormUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	var rows []models.UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	users := make([]identity.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].ToDomain())
	}
	return users, nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByLogin finds a user by email or username, case-insensitively
func (r *GormUserRepository) FindByLogin(ctx context.Context, login string) (*identity.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" {
		return nil, shared.ErrNotFound
	}
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? OR LOWER(username) = ?", login, login).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Update writes only the columns present in the patch and returns the stored row
func (r *GormUserRepository) Update(ctx context.Context, id string, patch identity.UserPatch) (*identity.User, error) {
	cols := models.UserPatchColumns(patch)
	if len(cols) == 0 {
		return r.FindByID(ctx, id)
	}

	var model models.UserModel
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

// Delete deletes a user by ID and returns the removed row
func (r *GormUserRepository) Delete(ctx context.Context, id string) (*identity.User, error) {
	var model models.UserModel
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

var _ identity.UserRepository = (*GormUserRepository)(nil)
