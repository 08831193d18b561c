package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mytheresa/storefront/models"
)

type seedProduct struct {
	name        string
	description string
	price       string
	image       string
	stock       int
}

var seedCatalog = []struct {
	category models.Category
	products []seedProduct
}{
	{
		category: models.Category{Name: "Electronics", Slug: "electronics"},
		products: []seedProduct{
			{"Wireless Headphones", "Over-ear headphones with active noise cancellation.", "149.99", "https://images.unsplash.com/photo-1505740420928-5e560c06d30e", 25},
			{"Smart Watch", "Fitness tracking, notifications and a week of battery.", "199.00", "https://images.unsplash.com/photo-1523275335684-37898b6baf30", 8},
			{"Bluetooth Speaker", "Waterproof portable speaker.", "59.50", "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1", 0},
		},
	},
	{
		category: models.Category{Name: "Clothing", Slug: "clothing"},
		products: []seedProduct{
			{"Denim Jacket", "Classic fit, stonewashed.", "89.00", "https://images.unsplash.com/photo-1551537482-f2075a1d41f2", 15},
			{"Cotton T-Shirt", "Organic cotton crew neck.", "19.99", "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab", 120},
		},
	},
	{
		category: models.Category{Name: "Home", Slug: "home"},
		products: []seedProduct{
			{"Ceramic Mug", "350ml stoneware mug.", "12.00", "https://images.unsplash.com/photo-1514228742587-6b1558fcca3d", 60},
			{"Table Lamp", "Dimmable LED lamp with linen shade.", "45.25", "https://images.unsplash.com/photo-1507473885765-e6ed057f782c", 4},
		},
	},
}

// Seed inserts the demo catalog. Rows that already exist, matched by category
// slug or product name, are left untouched, so Seed can run repeatedly.
func Seed(ctx context.Context, db *gorm.DB) (created int, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range seedCatalog {
			var category models.Category
			res := tx.Where("slug = ?", entry.category.Slug).Limit(1).Find(&category)
			if res.Error != nil {
				return fmt.Errorf("find category %s: %w", entry.category.Slug, res.Error)
			}
			if res.RowsAffected == 0 {
				category = entry.category
				if err := tx.Create(&category).Error; err != nil {
					return fmt.Errorf("seed category %s: %w", category.Slug, err)
				}
				created++
			}

			for _, sp := range entry.products {
				var n int64
				if err := tx.Model(&models.Product{}).Where("name = ?", sp.name).Count(&n).Error; err != nil {
					return fmt.Errorf("find product %q: %w", sp.name, err)
				}
				if n > 0 {
					continue
				}

				product := models.Product{
					Name:        sp.name,
					Description: sp.description,
					Price:       decimal.RequireFromString(sp.price),
					CategoryID:  category.ID,
					ImageURL:    sp.image,
					Stock:       sp.stock,
				}
				if err := tx.Omit("Category").Create(&product).Error; err != nil {
					return fmt.Errorf("seed product %q: %w", sp.name, err)
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
