package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/infrastructure/persistence/models"
)

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	seeder := NewSeeder(db, zap.NewNop())

	res, err := seeder.Seed(ctx, SeedOptions{})
	require.NoError(t, err)
	assert.Equal(t, 23, res.Products)

	users := NewGormUserRepository(db)
	user, err := users.FindByLogin(ctx, SeedRappiUsername)
	require.NoError(t, err)
	assert.Equal(t, SeedRappiEmail, user.Email)
	assert.True(t, user.CheckPassword(SeedRappiPassword))
	assert.False(t, user.CheckPassword("otra"))

	products := NewGormProductRepository(db)
	found, err := products.FindByReferences(ctx, SeedOwnerID, []string{"31009", "6942222314494"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	t.Run("reseeding replaces rows", func(t *testing.T) {
		res, err := seeder.Seed(ctx, SeedOptions{FakeProducts: 5, FakeSeed: 42})
		require.NoError(t, err)
		assert.Equal(t, 28, res.Products)

		var userCount, productCount int64
		require.NoError(t, db.Model(&models.UserModel{}).Count(&userCount).Error)
		require.NoError(t, db.Model(&models.ProductModel{}).Count(&productCount).Error)
		assert.Equal(t, int64(1), userCount)
		assert.Equal(t, int64(28), productCount)
	})
}

func TestSeedCatalog(t *testing.T) {
	skus := map[string]bool{}
	for _, p := range SeedCatalog {
		assert.False(t, skus[p.InternalSKU], "duplicate sku %s", p.InternalSKU)
		skus[p.InternalSKU] = true
		assert.Len(t, p.EAN, 13)
	}
	assert.Len(t, SeedCatalog, 23)
}
