// Package quotes implements the quotation table: an ordered, in-memory list
// of quotes with an add form and single-row inline editing.
package quotes

import (
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/tabletop/pkg/types"
)

// DefaultQuotes returns the rows a fresh table starts with.
func DefaultQuotes() []types.Quote {
	return []types.Quote{
		{ID: 1, Author: "Albert Einstein", Text: "Imagination is more important than knowledge."},
		{ID: 2, Author: "Oscar Wilde", Text: "Be yourself; everyone else is already taken."},
	}
}

// Manager holds the quotation table state. It is not safe for concurrent use;
// callers drive it from a single event loop.
type Manager struct {
	quotes []types.Quote

	editing    bool
	editingID  int
	editAuthor string
	editText   string

	newAuthor string
	newText   string

	log *slog.Logger
}

// New creates a Manager holding a copy of seed in the given order.
func New(seed []types.Quote, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	quotes := make([]types.Quote, len(seed))
	copy(quotes, seed)
	return &Manager{quotes: quotes, log: logger}
}

// NewDefault creates a Manager seeded with DefaultQuotes.
func NewDefault(logger *slog.Logger) *Manager {
	return New(DefaultQuotes(), logger)
}

// Quotes returns a copy of the table in insertion order.
func (m *Manager) Quotes() []types.Quote {
	out := make([]types.Quote, len(m.quotes))
	copy(out, m.quotes)
	return out
}

// Find returns the quote with the given id.
func (m *Manager) Find(id int) (types.Quote, bool) {
	for _, q := range m.quotes {
		if q.ID == id {
			return q, true
		}
	}
	return types.Quote{}, false
}

// SetNewAuthor updates the author field of the add form.
func (m *Manager) SetNewAuthor(author string) { m.newAuthor = author }

// SetNewText updates the quote field of the add form.
func (m *Manager) SetNewText(text string) { m.newText = text }

// NewAuthor returns the author field of the add form.
func (m *Manager) NewAuthor() string { return m.newAuthor }

// NewText returns the quote field of the add form.
func (m *Manager) NewText() string { return m.newText }

// Add appends the add form as a new quote and clears the form. It does
// nothing unless both fields contain non-whitespace text, in which case the
// form keeps its values. Fields are stored as entered. Add reports whether a
// quote was appended.
func (m *Manager) Add() bool {
	if strings.TrimSpace(m.newAuthor) == "" || strings.TrimSpace(m.newText) == "" {
		m.log.Debug("add ignored: author and text are required")
		return false
	}
	q := types.Quote{
		ID:     types.NextQuoteID(m.quotes),
		Author: m.newAuthor,
		Text:   m.newText,
	}
	m.quotes = append(m.quotes, q)
	m.newAuthor = ""
	m.newText = ""
	m.log.Info("quote added", slog.Int("id", q.ID), slog.String("author", q.Author))
	return true
}

// BeginEdit makes q the row under edit and loads its fields into the edit
// buffers. Any edit already in progress is discarded.
func (m *Manager) BeginEdit(q types.Quote) {
	m.editing = true
	m.editingID = q.ID
	m.editAuthor = q.Author
	m.editText = q.Text
}

// Editing returns the id of the row under edit.
func (m *Manager) Editing() (int, bool) {
	return m.editingID, m.editing
}

// SetEditAuthor updates the author edit buffer.
func (m *Manager) SetEditAuthor(author string) { m.editAuthor = author }

// SetEditText updates the quote edit buffer.
func (m *Manager) SetEditText(text string) { m.editText = text }

// EditAuthor returns the author edit buffer.
func (m *Manager) EditAuthor() string { return m.editAuthor }

// EditText returns the quote edit buffer.
func (m *Manager) EditText() string { return m.editText }

// SaveEdit copies the edit buffers into the quote with the given id and ends
// editing. Empty buffers are saved as empty fields.
func (m *Manager) SaveEdit(id int) {
	for i := range m.quotes {
		if m.quotes[i].ID == id {
			m.quotes[i].Author = m.editAuthor
			m.quotes[i].Text = m.editText
			m.log.Info("quote updated", slog.Int("id", id))
			break
		}
	}
	m.clearEdit()
}

// CancelEdit ends editing without touching the table.
func (m *Manager) CancelEdit() {
	m.clearEdit()
}

// Delete removes the quote with the given id. Unknown ids are ignored.
func (m *Manager) Delete(id int) {
	for i, q := range m.quotes {
		if q.ID == id {
			m.quotes = append(m.quotes[:i:i], m.quotes[i+1:]...)
			m.log.Info("quote deleted", slog.Int("id", id))
			return
		}
	}
	m.log.Debug("delete ignored: no such quote", slog.Int("id", id))
}

func (m *Manager) clearEdit() {
	m.editing = false
	m.editingID = 0
}
