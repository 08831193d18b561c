package models

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")

	// ErrForbidden is returned when a cart item exists but belongs to another session.
	ErrForbidden = errors.New("cart item belongs to another session")
)
