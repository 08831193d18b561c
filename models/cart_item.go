package models

import "time"

// CartItem is one line of a visitor's cart. The pair (SessionToken, ProductID)
// is unique, so adding the same product twice accumulates quantity on one row.
type CartItem struct {
	ID           uint      `gorm:"primaryKey"`
	SessionToken string    `gorm:"column:session_id;not null;uniqueIndex:idx_cart_session_product,priority:1"`
	ProductID    uint      `gorm:"not null;uniqueIndex:idx_cart_session_product,priority:2"`
	Product      Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity     int       `gorm:"not null;check:quantity > 0"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (c *CartItem) TableName() string {
	return "cart_items"
}
