package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository stores cart line items partitioned by session token.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// List returns the session's line items with their product and category.
// An unknown token yields an empty slice.
func (r *CartRepository) List(ctx context.Context, token string) ([]CartItem, error) {
	items := []CartItem{}
	if err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Where("session_id = ?", token).
		Order("created_at").
		Order("id").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

// Add inserts a line item or, when the session already holds the product,
// increments its quantity in the same statement.
func (r *CartRepository) Add(ctx context.Context, token string, productID uint, quantity int) error {
	item := CartItem{
		SessionToken: token,
		ProductID:    productID,
		Quantity:     quantity,
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
			DoUpdates: clause.Set{{
				Column: clause.Column{Name: "quantity"},
				Value:  gorm.Expr("cart_items.quantity + excluded.quantity"),
			}},
		}).
		Create(&item).Error
	if err != nil {
		return fmt.Errorf("add product %d to cart: %w", productID, err)
	}
	return nil
}

// UpdateQuantity overwrites the quantity of a line item owned by token.
// A quantity of zero or less removes the item.
func (r *CartRepository) UpdateQuantity(ctx context.Context, token string, itemID uint, quantity int) error {
	if quantity <= 0 {
		return r.Remove(ctx, token, itemID)
	}

	res := r.db.WithContext(ctx).
		Model(&CartItem{}).
		Where("id = ? AND session_id = ?", itemID, token).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("update cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.checkOwnership(ctx, itemID)
	}
	return nil
}

// Remove deletes a line item owned by token. Removing an item that does not
// exist succeeds.
func (r *CartRepository) Remove(ctx context.Context, token string, itemID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", itemID, token).
		Delete(&CartItem{})
	if res.Error != nil {
		return fmt.Errorf("delete cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.checkOwnership(ctx, itemID)
	}
	return nil
}

// Clear deletes every line item of a session and reports how many were removed.
func (r *CartRepository) Clear(ctx context.Context, token string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("session_id = ?", token).
		Delete(&CartItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("clear cart: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// checkOwnership runs after a scoped mutation matched nothing: a row that
// still exists under that id belongs to someone else.
func (r *CartRepository) checkOwnership(ctx context.Context, itemID uint) error {
	var item CartItem
	err := r.db.WithContext(ctx).Select("id").Where("id = ?", itemID).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup cart item %d: %w", itemID, err)
	}
	return ErrForbidden
}
