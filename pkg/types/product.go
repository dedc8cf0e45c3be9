package types

import "github.com/shopspring/decimal"

// Product is a catalog entry. Names are not unique; lookups take the first
// match in catalog order.
type Product struct {
	Name  string          `json:"name" yaml:"name"`
	Price decimal.Decimal `json:"price" yaml:"price"`
}

// LineItem is one entry of the shopping list. Product references a catalog
// name by value and Price is a copy taken when the item was added, so later
// catalog changes never reach existing items.
type LineItem struct {
	ID      string          `json:"id"` // UUID v7, generated on add.
	Product string          `json:"product"`
	Price   decimal.Decimal `json:"price"`
}

// FindProduct returns the first product in catalog with the given name.
func FindProduct(catalog []Product, name string) (Product, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}
