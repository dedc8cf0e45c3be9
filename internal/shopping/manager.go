package shopping

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/tabletop/pkg/types"
)

// Edit is the state of the row under edit.
type Edit struct {
	ID      string
	Product string
	Price   decimal.Decimal
}

// Manager holds the shopping list state. Every method is one user event and
// runs atomically; the mutex exists because delayed deletes complete on a
// timer goroutine.
type Manager struct {
	mu sync.Mutex

	products []types.Product
	items    []types.LineItem

	selectedProduct string
	selectedPrice   decimal.Decimal

	editing bool
	edit    Edit

	addingNew       bool
	newProductName  string
	newProductPrice string

	searchTerm string
	loading    bool

	taxRate     decimal.Decimal
	deleteDelay time.Duration
	confirm     Confirmer
	scheduler   Scheduler
	newID       func() string
	log         *slog.Logger

	pending sync.WaitGroup
}

// New creates a Manager with the default catalog, no items, and the first
// product selected.
func New(opts ...Option) *Manager {
	m := &Manager{
		products:    DefaultProducts(),
		taxRate:     DefaultTaxRate,
		deleteDelay: DefaultDeleteDelay,
		confirm:     declineAll,
		scheduler:   TimerScheduler{},
		newID:       generateUUID,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if len(m.products) > 0 {
		m.selectedProduct = m.products[0].Name
		m.selectedPrice = m.products[0].Price
	}
	return m
}

// generateUUID generates a new UUID v7 for line-item IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// Products returns a copy of the catalog.
func (m *Manager) Products() []types.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Product, len(m.products))
	copy(out, m.products)
	return out
}

// Items returns a copy of every line item, ignoring the search filter.
func (m *Manager) Items() []types.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.LineItem, len(m.items))
	copy(out, m.items)
	return out
}

// FilteredItems returns the items visible under the current search term.
func (m *Manager) FilteredItems() []types.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Filter(m.items, m.searchTerm)
}

// Totals returns the totals of the visible items only.
func (m *Manager) Totals() types.Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Summarize(Filter(m.items, m.searchTerm), m.taxRate)
}

// Snapshot is everything a list view shows, read in one step.
type Snapshot struct {
	Items      []types.LineItem
	Totals     types.Totals
	TaxRate    decimal.Decimal
	SearchTerm string
	Loading    bool
	Edit       Edit
	Editing    bool
}

// Snapshot returns the visible items with their totals and the flags around
// them under a single lock, so a delete landing on the timer goroutine
// cannot split one view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	visible := Filter(m.items, m.searchTerm)
	return Snapshot{
		Items:      visible,
		Totals:     Summarize(visible, m.taxRate),
		TaxRate:    m.taxRate,
		SearchTerm: m.searchTerm,
		Loading:    m.loading,
		Edit:       m.edit,
		Editing:    m.editing,
	}
}

// TaxRate returns the rate applied by Totals.
func (m *Manager) TaxRate() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.taxRate
}

// Selected returns the product and price the next normal add will use.
func (m *Manager) Selected() (string, decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectedProduct, m.selectedPrice
}

// SelectProduct selects a catalog product for the next add. Outside
// define-mode the selection price follows the product's catalog price; an
// unknown name keeps the previous price.
func (m *Manager) SelectProduct(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectedProduct = name
	if m.addingNew {
		return
	}
	if p, ok := types.FindProduct(m.products, name); ok {
		m.selectedPrice = p.Price
	}
}

// SetSelectedPrice overrides the price the next normal add will use.
func (m *Manager) SetSelectedPrice(price decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectedPrice = price
}

// AddingNew reports whether the add form defines a new product.
func (m *Manager) AddingNew() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addingNew
}

// SetAddingNew switches the add form between selecting a catalog product and
// defining a new one.
func (m *Manager) SetAddingNew(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addingNew = on
}

// SetNewProductName updates the name field of the new-product draft.
func (m *Manager) SetNewProductName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newProductName = name
}

// SetNewProductPrice updates the price field of the new-product draft. The
// text is parsed only when the draft is added.
func (m *Manager) SetNewProductPrice(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newProductPrice = raw
}

// Draft returns the new-product draft fields as entered.
func (m *Manager) Draft() (name, price string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.newProductName, m.newProductPrice
}

// Add appends a line item and reports whether it did.
//
// Outside define-mode the item copies the current selection and always
// succeeds. In define-mode the draft must have a non-blank name and a price
// that parses as a number; otherwise nothing changes. A valid draft is
// appended to the catalog and to the list, the draft is cleared, define-mode
// ends, and the new product becomes the selection.
func (m *Manager) Add() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.addingNew {
		item := types.LineItem{ID: m.newID(), Product: m.selectedProduct, Price: m.selectedPrice}
		m.items = append(m.items, item)
		m.log.Info("item added", slog.String("id", item.ID), slog.String("product", item.Product))
		return true
	}

	name := strings.TrimSpace(m.newProductName)
	if name == "" {
		m.log.Debug("add ignored: product name is required")
		return false
	}
	price, err := decimal.NewFromString(strings.TrimSpace(m.newProductPrice))
	if err != nil {
		m.log.Debug("add ignored: price is not a number", slog.String("price", m.newProductPrice))
		return false
	}

	product := types.Product{Name: name, Price: price}
	item := types.LineItem{ID: m.newID(), Product: name, Price: price}
	m.products = append(m.products, product)
	m.items = append(m.items, item)

	m.newProductName = ""
	m.newProductPrice = ""
	m.addingNew = false
	m.selectedProduct = name
	m.selectedPrice = price

	m.log.Info("product defined", slog.String("product", name), slog.String("price", price.String()))
	m.log.Info("item added", slog.String("id", item.ID), slog.String("product", item.Product))
	return true
}

// Editing returns the row under edit.
func (m *Manager) Editing() (Edit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edit, m.editing
}

// BeginEdit loads item into the edit buffers. The price comes from the item,
// not the catalog, since the two may have diverged. Ignored while a delete is
// pending.
func (m *Manager) BeginEdit(item types.LineItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading {
		m.log.Debug("edit ignored: delete in progress")
		return
	}
	m.editing = true
	m.edit = Edit{ID: item.ID, Product: item.Product, Price: item.Price}
}

// SetEditProduct changes the product in the edit buffer. While editing, the
// buffered price follows the catalog price of the chosen product.
func (m *Manager) SetEditProduct(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edit.Product = name
	if !m.editing {
		return
	}
	if p, ok := types.FindProduct(m.products, name); ok {
		m.edit.Price = p.Price
	}
}

// SetEditPrice changes the price in the edit buffer.
func (m *Manager) SetEditPrice(price decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edit.Price = price
}

// SaveEdit writes the edit buffers to the item with the given id and ends
// editing. Ignored while a delete is pending.
func (m *Manager) SaveEdit(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading {
		m.log.Debug("save ignored: delete in progress")
		return
	}
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Product = m.edit.Product
			m.items[i].Price = m.edit.Price
			m.log.Info("item updated", slog.String("id", id))
			break
		}
	}
	m.editing = false
	m.edit = Edit{}
}

// CancelEdit ends editing without touching the list.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editing = false
	m.edit = Edit{}
}

// Loading reports whether a confirmed delete is waiting to complete.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Delete asks for confirmation and, if given, removes the item with the given
// id once the delete delay has passed. Until then Loading reports true and
// edits and further deletes are ignored. A declined prompt changes nothing.
// A confirmed delete cannot be cancelled.
// The id is not checked up front: a confirmed delete of an id that is not in
// the list still holds Loading for the full delay and then removes nothing.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	if m.loading {
		m.mu.Unlock()
		m.log.Debug("delete ignored: delete in progress", slog.String("id", id))
		return
	}
	confirm := m.confirm
	m.mu.Unlock()

	if !confirm.Confirm("Delete this item?") {
		m.log.Debug("delete declined", slog.String("id", id))
		return
	}

	m.mu.Lock()
	if m.loading {
		m.mu.Unlock()
		return
	}
	m.loading = true
	m.pending.Add(1)
	delay, scheduler := m.deleteDelay, m.scheduler
	m.mu.Unlock()

	m.log.Info("delete scheduled", slog.String("id", id), slog.Duration("delay", delay))
	scheduler.AfterFunc(delay, func() {
		defer m.pending.Done()
		m.remove(id)
	})
}

// remove drops the item with the given id and clears the loading flag.
func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i:i], m.items[i+1:]...)
			m.log.Info("item deleted", slog.String("id", id))
			break
		}
	}
	m.loading = false
}

// Wait blocks until every confirmed delete has completed.
func (m *Manager) Wait() {
	m.pending.Wait()
}

// SearchTerm returns the current search filter.
func (m *Manager) SearchTerm() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchTerm
}

// SetSearchTerm replaces the search filter. FilteredItems and Totals reflect
// it immediately.
func (m *Manager) SetSearchTerm(term string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchTerm = term
}
