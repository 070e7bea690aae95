package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/trade"
)

// OrderModel is the persistence model for the Order aggregate.
// (user_id, order_external_id) is unique so a repeated webhook delivery is rejected.
type OrderModel struct {
	ID                int64               `gorm:"primaryKey;autoIncrement"`
	UserID            string              `gorm:"type:varchar(64);not null;index;uniqueIndex:idx_orders_owner_external,priority:1,where:order_external_id IS NOT NULL"`
	CustomerName      string              `gorm:"type:varchar(200)"`
	CustomerEmail     string              `gorm:"type:varchar(255);not null"`
	CustomerPhone     string              `gorm:"type:varchar(50)"`
	CustomerDocument  string              `gorm:"type:varchar(50)"`
	CustomerAddress   string              `gorm:"type:varchar(300)"`
	CustomerCountry   string              `gorm:"type:varchar(100)"`
	CustomerCity      string              `gorm:"type:varchar(100)"`
	TotalAmount       decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	NetValue          decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Taxes             decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	TotalWithDiscount decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	StoreID           string              `gorm:"type:varchar(64)"`
	StoreExternalID   string              `gorm:"type:varchar(64)"`
	OrderExternalID   *string             `gorm:"type:varchar(64);uniqueIndex:idx_orders_owner_external,priority:2,where:order_external_id IS NOT NULL"`
	StatusID          int                 `gorm:"not null;default:0"`
	StatusName        string              `gorm:"type:varchar(50)"`
	PlacedAt          *time.Time          `gorm:"index"`
	ModifiedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Lines             []OrderProductModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderProductModel is the persistence model for an order line.
type OrderProductModel struct {
	ID                int64           `gorm:"primaryKey;autoIncrement"`
	OrderID           int64           `gorm:"not null;index"`
	ProductID         *int64          `gorm:"index"`
	Product           *ProductModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	ExternalProductID string          `gorm:"type:varchar(64)"`
	SyncProductID     string          `gorm:"type:varchar(64)"`
	Name              string          `gorm:"type:varchar(200)"`
	EAN               string          `gorm:"column:ean;type:varchar(20)"`
	Quantity          int             `gorm:"not null"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PriceWithDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Lot               string          `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (OrderProductModel) TableName() string {
	return "order_products"
}

// ToDomain converts the persistence model to a domain Order.
// Lines are included when they were loaded.
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		ID:     m.ID,
		UserID: m.UserID,
		Customer: trade.Customer{
			Name:     m.CustomerName,
			Email:    m.CustomerEmail,
			Phone:    m.CustomerPhone,
			Document: m.CustomerDocument,
			Address:  m.CustomerAddress,
			Country:  m.CustomerCountry,
			City:     m.CustomerCity,
		},
		Totals: trade.Totals{
			TotalAmount:       m.TotalAmount,
			NetValue:          m.NetValue,
			Taxes:             m.Taxes,
			TotalWithDiscount: m.TotalWithDiscount,
		},
		Marketplace: trade.MarketplaceRef{
			StoreID:         m.StoreID,
			StoreExternalID: m.StoreExternalID,
			OrderExternalID: stringValue(m.OrderExternalID),
		},
		Status:     trade.OrderStatus{ID: m.StatusID, Name: m.StatusName},
		PlacedAt:   m.PlacedAt,
		ModifiedAt: m.ModifiedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Lines:      make([]trade.OrderProduct, 0, len(m.Lines)),
	}
	for i := range m.Lines {
		o.Lines = append(o.Lines, m.Lines[i].ToDomain())
	}
	return o
}

// ToDomain converts the line model to a domain OrderProduct
func (m *OrderProductModel) ToDomain() trade.OrderProduct {
	l := trade.OrderProduct{
		ID:                m.ID,
		OrderID:           m.OrderID,
		ProductID:         m.ProductID,
		ExternalProductID: m.ExternalProductID,
		SyncProductID:     m.SyncProductID,
		Name:              m.Name,
		EAN:               m.EAN,
		Quantity:          m.Quantity,
		Price:             m.Price,
		Tax:               m.Tax,
		PriceWithDiscount: m.PriceWithDiscount,
		Lot:               m.Lot,
	}
	if m.Product != nil {
		l.CatalogName = m.Product.Name
	}
	return l
}

// OrderModelFromDomain creates a persistence model, lines included,
// so a single Create inserts the whole graph.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		ID:                o.ID,
		UserID:            o.UserID,
		CustomerName:      o.Customer.Name,
		CustomerEmail:     o.Customer.Email,
		CustomerPhone:     o.Customer.Phone,
		CustomerDocument:  o.Customer.Document,
		CustomerAddress:   o.Customer.Address,
		CustomerCountry:   o.Customer.Country,
		CustomerCity:      o.Customer.City,
		TotalAmount:       o.Totals.TotalAmount,
		NetValue:          o.Totals.NetValue,
		Taxes:             o.Totals.Taxes,
		TotalWithDiscount: o.Totals.TotalWithDiscount,
		StoreID:           o.Marketplace.StoreID,
		StoreExternalID:   o.Marketplace.StoreExternalID,
		OrderExternalID:   nullableString(o.Marketplace.OrderExternalID),
		StatusID:          o.Status.ID,
		StatusName:        o.Status.Name,
		PlacedAt:          o.PlacedAt,
		ModifiedAt:        o.ModifiedAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Lines:             make([]OrderProductModel, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		m.Lines = append(m.Lines, OrderProductModel{
			ID:                l.ID,
			OrderID:           l.OrderID,
			ProductID:         l.ProductID,
			ExternalProductID: l.ExternalProductID,
			SyncProductID:     l.SyncProductID,
			Name:              l.Name,
			EAN:               l.EAN,
			Quantity:          l.Quantity,
			Price:             l.Price,
			Tax:               l.Tax,
			PriceWithDiscount: l.PriceWithDiscount,
			Lot:               l.Lot,
		})
	}
	return m
}
