package shopping

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/tabletop/pkg/types"
)

// Filter returns the items matching term, in order. An item matches when its
// product name contains term ignoring case, or when the plain decimal form of
// its price (1.5, not 1.50) contains term as typed. An empty term matches
// every item.
func Filter(items []types.LineItem, term string) []types.LineItem {
	lower := strings.ToLower(term)
	out := make([]types.LineItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Product), lower) ||
			strings.Contains(it.Price.String(), term) {
			out = append(out, it)
		}
	}
	return out
}

// Summarize sums the item prices and applies rate as tax.
func Summarize(items []types.LineItem, rate decimal.Decimal) types.Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price)
	}
	tax := subtotal.Mul(rate)
	return types.Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
	}
}
