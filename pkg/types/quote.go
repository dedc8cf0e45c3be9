package types

// Quote is one row of the quotation table.
type Quote struct {
	ID     int    `json:"id" yaml:"id"`         // Positive, assigned as max(existing)+1.
	Author string `json:"author" yaml:"author"` // Stored as entered.
	Text   string `json:"text" yaml:"text"`
}

// NextQuoteID returns the id a newly added quote receives: one more than the
// largest existing id, or 1 for an empty collection.
func NextQuoteID(quotes []Quote) int {
	highest := 0
	for _, q := range quotes {
		if q.ID > highest {
			highest = q.ID
		}
	}
	return highest + 1
}
