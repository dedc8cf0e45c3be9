package types

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of fractional digits shown for amounts.
const DisplayPlaces = 2

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// Totals holds the aggregates derived from a set of line items. Values are
// exact; rounding happens only in FormatUSD.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// FormatUSD renders an amount in US dollars, rounded half away from zero to
// two places: 0.245 becomes "$0.25".
func FormatUSD(amount decimal.Decimal) string {
	cents := amount.Round(DisplayPlaces).Shift(DisplayPlaces)
	if cents.LessThan(minCents) || cents.GreaterThan(maxCents) {
		return formatLargeUSD(amount)
	}
	return money.New(cents.IntPart(), money.USD).Display()
}

// formatLargeUSD renders amounts whose cents overflow int64 in the same
// layout go-money uses for USD.
func formatLargeUSD(amount decimal.Decimal) string {
	currency := money.GetCurrency(money.USD)
	digits := amount.Abs().StringFixed(DisplayPlaces)
	whole, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(currency.Grapheme)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(currency.Thousand)
		}
		b.WriteRune(r)
	}
	b.WriteString(currency.Decimal)
	b.WriteString(frac)
	return b.String()
}
