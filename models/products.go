package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Stock is informational only; nothing in the cart flow decrements it.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID  uint            `gorm:"not null;index"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
	ImageURL    string          `gorm:"column:image_url"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

func (p *Product) TableName() string {
	return "products"
}
