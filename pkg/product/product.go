// Package product defines catalog products and the product cache.
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item keyed by its user-supplied code.
type Product struct {
	Code        string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time

	// CategoryID is nil for unclassified products. It may point at a
	// category that no longer exists; readers treat that as nil too.
	CategoryID *int
}

// InCategory reports whether p is directly assigned to category id.
func (p Product) InCategory(id int) bool {
	return p.CategoryID != nil && *p.CategoryID == id
}

// Source exposes the backing product collection.
type Source interface {
	Products() []Product
}
