// Package pricing derives cart totals from current product prices.
package pricing

import (
	"github.com/mytheresa/storefront/models"
	"github.com/shopspring/decimal"
)

// TaxRate is the flat sales tax applied to every order.
var TaxRate = decimal.New(10, -2)

// Line is one priced entry of a cart.
type Line struct {
	Price    decimal.Decimal
	Quantity int
}

// Amount is the line's price times its quantity.
func (l Line) Amount() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	ItemCount   int
	UniqueItems int
}

// Compute sums the lines and applies TaxRate. Values are exact and are
// rounded to cents only when rendered.
func Compute(lines []Line) Totals {
	t := Totals{
		Subtotal:    decimal.Zero,
		UniqueItems: len(lines),
	}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Amount())
		t.ItemCount += l.Quantity
	}
	t.Tax = t.Subtotal.Mul(TaxRate)
	t.Total = t.Subtotal.Add(t.Tax)
	return t
}

// FromCart prices cart items at their product's current price.
func FromCart(items []models.CartItem) []Line {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{Price: it.Product.Price, Quantity: it.Quantity}
	}
	return lines
}
