package shopping

import (
	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/tabletop/pkg/types"
)

// DefaultProducts returns the catalog a fresh shopping list starts with.
func DefaultProducts() []types.Product {
	return []types.Product{
		{Name: "Apple", Price: decimal.RequireFromString("1.50")},
		{Name: "Banana", Price: decimal.RequireFromString("0.75")},
		{Name: "Bread", Price: decimal.RequireFromString("2.50")},
		{Name: "Milk", Price: decimal.RequireFromString("3.20")},
		{Name: "Eggs", Price: decimal.RequireFromString("4.00")},
	}
}
