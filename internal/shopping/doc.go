// Package shopping implements the shopping list: a product catalog, an
// ordered list of line items, a search filter and the totals derived from
// the filtered items.
//
// Deleting an item asks a Confirmer first and then removes the item after a
// fixed delay scheduled through a Scheduler. Both are injected so the
// package can be driven without a terminal or a real clock.
package shopping
