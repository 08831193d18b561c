package models

import "time"

// Category represents a product category.
// Categories are seeded once and never modified through the API.
type Category struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (c *Category) TableName() string {
	return "categories"
}
