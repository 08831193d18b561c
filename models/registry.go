package models

// All returns every persisted model in foreign-key order, for migrations.
func All() []any {
	return []any{&Category{}, &Product{}, &CartItem{}}
}
