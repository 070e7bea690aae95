package persistence

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/podstore/backoffice/internal/domain/catalog"
	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/infrastructure/persistence/models"
)

// Seed data
const (
	SeedOwnerID       = "user_2nDNdBES1ULEWhiCitoBnGFKQzi"
	SeedRappiUsername = "rappi_user"
	SeedRappiEmail    = "rappi@rappi.com"
	SeedRappiPassword = "rappi_password"
)

// SeedProduct is one catalog entry created by the seeder
type SeedProduct struct {
	Name        string
	Price       string
	InternalSKU string
	EAN         string
}

// SeedCatalog is the starting Pod Store catalog
var SeedCatalog = []SeedProduct{
	{"VHILL 3000 BANANA ICE", "250", "31009", "6975932947232"},
	{"VHILL 3000 BLACK MINT", "250", "30965", "6975932947485"},
	{"VHILL 3000 BLUEBERRY RASPBERRY ICE", "250", "39159", "6975932947348"},
	{"VHILL 3000 CHERRY ICE", "250", "36516", "6975932947492"},
	{"VHILL 3000 COOL MINT", "250", "34154", "6975932947300"},
	{"VHILL 3000 GRAPE ICE", "250", "33799", "6975932947454"},
	{"VHILL 3000 GRAPE STRAWBERRY", "250", "33782", "6975932947447"},
	{"VHILL 3000 LUSH ICE", "250", "34215", "6975932947409"},
	{"VHILL 3000 LYCHEE ICE", "250", "33454", "6975932947324"},
	{"VHILL 3000 STRAWBERRY WATERMELON", "250", "34116", "6975932947461"},
	{"VHILL 3000 BLUEBERRY KIWI", "250", "34147", "6975932947294"},
	{"VHILL 3000 PEACH ICE", "250", "36400", "6975932947423"},
	{"IPLAY BOX BLUBERRY STORM", "320", "13916", "6942222314579"},
	{"IPLAY BOX BLUBERRY MINT", "320", "14234", "6942222314159"},
	{"IPLAY BOX BLUEBERRY CHERRY", "320", "14456", "6942222313879"},
	{"IPLAY BOX COCO STRAWBERRY", "320", "14357", "6942222314333"},
	{"IPLAY BOX COOL MINT", "320", "14470", "6942222314470"},
	{"IPLAY BOX DARK MINT", "320", "13879", "6942222313916"},
	{"IPLAY BOX MR PEACH MINT", "320", "14173", "6942222314418"},
	{"IPLAY BOX PINK LEMONADE", "320", "14258", "6942222314234"},
	{"IPLAY BOX STRAWBERRY LITCHI BURST", "320", "14579", "6942222314456"},
	{"IPLAY BOX STRAWBERRY WATERMELON", "320", "14531", "6942222314357"},
	{"IPLAY BOX DOUBLE APPLE", "320", "31448", "6942222314494"},
}

// SeedOptions tunes a seed run
type SeedOptions struct {
	// FakeProducts adds that many generated products after the catalog
	FakeProducts int
	// FakeSeed makes the generated products reproducible; 0 picks a random seed
	FakeSeed uint64
}

// SeedResult counts the rows written
type SeedResult struct {
	Users    int
	Products int
}

// Seeder resets users and products to a known state
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Seed wipes products and users, then creates the marketplace user and the
// catalog, all in one transaction. Orders are left alone.
func (s *Seeder) Seed(ctx context.Context, opts SeedOptions) (*SeedResult, error) {
	user := identity.NewUser(uuid.NewString(), "Rappi", SeedRappiEmail, identity.RoleUser)
	user.Username = SeedRappiUsername
	if err := user.SetPassword(SeedRappiPassword); err != nil {
		return nil, err
	}

	products, err := seedProducts(opts)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ProductModel{}).Error; err != nil {
			return fmt.Errorf("delete products: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UserModel{}).Error; err != nil {
			return fmt.Errorf("delete users: %w", err)
		}
		if err := tx.Create(models.UserModelFromDomain(user)).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := tx.CreateInBatches(products, 100).Error; err != nil {
			return fmt.Errorf("create products: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Database seeded",
		zap.String("rappi_user_id", user.ID),
		zap.Int("products", len(products)))
	return &SeedResult{Users: 1, Products: len(products)}, nil
}

func seedProducts(opts SeedOptions) ([]*models.ProductModel, error) {
	out := make([]*models.ProductModel, 0, len(SeedCatalog)+opts.FakeProducts)
	for _, p := range SeedCatalog {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("seed price %q: %w", p.Price, err)
		}
		out = append(out, models.ProductModelFromDomain(catalog.NewProduct(SeedOwnerID, p.Name, price, p.InternalSKU, p.EAN)))
	}

	if opts.FakeProducts > 0 {
		faker := gofakeit.New(opts.FakeSeed)
		for i := 0; i < opts.FakeProducts; i++ {
			name := faker.ProductName()
			if len(name) > 100 {
				name = name[:100]
			}
			price := decimal.NewFromFloat(faker.Price(50, 900)).Round(2)
			sku := fmt.Sprintf("FK-%05d", i+1)
			out = append(out, models.ProductModelFromDomain(catalog.NewProduct(SeedOwnerID, name, price, sku, faker.DigitN(13))))
		}
	}
	return out, nil
}
