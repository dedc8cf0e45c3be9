package shopping

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/tabletop/pkg/types"
)

// Defaults applied by New.
var (
	DefaultTaxRate     = decimal.RequireFromString("0.07")
	DefaultDeleteDelay = 300 * time.Millisecond
)

// Option configures a Manager.
type Option func(*Manager)

// WithProducts replaces the default catalog. The first product becomes the
// initial selection.
func WithProducts(products []types.Product) Option {
	return func(m *Manager) {
		m.products = make([]types.Product, len(products))
		copy(m.products, products)
	}
}

// WithTaxRate sets the rate applied to the subtotal.
func WithTaxRate(rate decimal.Decimal) Option {
	return func(m *Manager) { m.taxRate = rate }
}

// WithDeleteDelay sets how long a confirmed delete waits before removing the
// item.
func WithDeleteDelay(d time.Duration) Option {
	return func(m *Manager) { m.deleteDelay = d }
}

// WithConfirmer sets the prompt asked before deleting. Without one every
// delete is declined.
func WithConfirmer(c Confirmer) Option {
	return func(m *Manager) { m.confirm = c }
}

// WithScheduler replaces the runtime timer used for delayed deletes.
func WithScheduler(s Scheduler) Option {
	return func(m *Manager) { m.scheduler = s }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithIDFunc replaces the line-item id generator.
func WithIDFunc(f func() string) Option {
	return func(m *Manager) { m.newID = f }
}
