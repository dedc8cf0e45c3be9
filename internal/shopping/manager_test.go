package shopping

import (
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabletop/pkg/types"
)

// manualScheduler queues scheduled work until the test runs it.
type manualScheduler struct {
	mu     sync.Mutex
	delays []time.Duration
	tasks  []func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	s.tasks = append(s.tasks, f)
}

// RunAll runs every queued task in scheduling order.
func (s *manualScheduler) RunAll() {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, f := range tasks {
		f()
	}
}

func (s *manualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// sequentialIDs returns an id generator yielding item-1, item-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "item-" + strconv.Itoa(n)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func answer(yes bool) Confirmer {
	return ConfirmFunc(func(string) bool { return yes })
}

// newTestManager returns a Manager with sequential ids, a manual scheduler
// and a confirmer that accepts.
func newTestManager(t *testing.T, opts ...Option) (*Manager, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	base := []Option{
		WithIDFunc(sequentialIDs()),
		WithScheduler(sched),
		WithConfirmer(answer(true)),
		WithLogger(quietLogger()),
	}
	return New(append(base, opts...)...), sched
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewDefaults(t *testing.T) {
	m, _ := newTestManager(t)

	assert.Len(t, m.Products(), 5)
	assert.Empty(t, m.Items())
	name, price := m.Selected()
	assert.Equal(t, "Apple", name)
	assert.True(t, price.Equal(dec("1.50")))
	assert.True(t, m.TaxRate().Equal(dec("0.07")))
	assert.False(t, m.Loading())
	assert.False(t, m.AddingNew())
}

func TestNewWithEmptyCatalog(t *testing.T) {
	m, _ := newTestManager(t, WithProducts(nil))
	name, price := m.Selected()
	assert.Empty(t, name)
	assert.True(t, price.IsZero())

	assert.True(t, m.Add(), "normal add always succeeds")
	require.Len(t, m.Items(), 1)
}

func TestAddNormalMode(t *testing.T) {
	m, _ := newTestManager(t)

	require.True(t, m.Add())
	m.SelectProduct("Milk")
	require.True(t, m.Add())

	got := m.Items()
	require.Len(t, got, 2)
	assert.Equal(t, "item-1", got[0].ID)
	assert.Equal(t, "Apple", got[0].Product)
	assert.True(t, got[0].Price.Equal(dec("1.50")))
	assert.Equal(t, "Milk", got[1].Product)
	assert.True(t, got[1].Price.Equal(dec("3.20")))
}

func TestAddUsesOverriddenSelectionPrice(t *testing.T) {
	m, _ := newTestManager(t)
	m.SelectProduct("Bread")
	m.SetSelectedPrice(dec("1.99"))
	require.True(t, m.Add())

	got := m.Items()[0]
	assert.Equal(t, "Bread", got.Product)
	assert.True(t, got.Price.Equal(dec("1.99")))
	catalog, _ := types.FindProduct(m.Products(), "Bread")
	assert.True(t, catalog.Price.Equal(dec("2.50")), "catalog price is untouched")
}

func TestSelectProductPriceSync(t *testing.T) {
	t.Run("outside define-mode price follows catalog", func(t *testing.T) {
		m, _ := newTestManager(t)
		m.SelectProduct("Eggs")
		name, price := m.Selected()
		assert.Equal(t, "Eggs", name)
		assert.True(t, price.Equal(dec("4.00")))
	})

	t.Run("unknown product keeps previous price", func(t *testing.T) {
		m, _ := newTestManager(t)
		m.SelectProduct("Caviar")
		name, price := m.Selected()
		assert.Equal(t, "Caviar", name)
		assert.True(t, price.Equal(dec("1.50")))
	})

	t.Run("define-mode does not sync", func(t *testing.T) {
		m, _ := newTestManager(t)
		m.SetAddingNew(true)
		m.SelectProduct("Eggs")
		_, price := m.Selected()
		assert.True(t, price.Equal(dec("1.50")))
	})

	t.Run("duplicate names use the first product", func(t *testing.T) {
		m, _ := newTestManager(t, WithProducts([]types.Product{
			{Name: "Tea", Price: dec("2")},
			{Name: "Tea", Price: dec("5")},
		}))
		m.SelectProduct("Tea")
		_, price := m.Selected()
		assert.True(t, price.Equal(dec("2")))
	})
}

func TestAddDefineMode(t *testing.T) {
	t.Run("new product joins catalog and list", func(t *testing.T) {
		m, _ := newTestManager(t)
		productsBefore := len(m.Products())

		m.SetAddingNew(true)
		m.SetNewProductName("  Grapes ")
		m.SetNewProductPrice("3.0")
		require.True(t, m.Add())

		products := m.Products()
		require.Len(t, products, productsBefore+1)
		assert.Equal(t, "Grapes", products[len(products)-1].Name)
		assert.True(t, products[len(products)-1].Price.Equal(dec("3")))

		items := m.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Grapes", items[0].Product)
		assert.True(t, items[0].Price.Equal(dec("3.0")))

		assert.False(t, m.AddingNew())
		name, price := m.Draft()
		assert.Empty(t, name)
		assert.Empty(t, price)

		selName, selPrice := m.Selected()
		assert.Equal(t, "Grapes", selName)
		assert.True(t, selPrice.Equal(dec("3")))

		require.True(t, m.Add(), "next normal add defaults to the new product")
		assert.Equal(t, "Grapes", m.Items()[1].Product)
	})

	invalid := []struct {
		name  string
		pname string
		price string
	}{
		{name: "blank name", pname: "   ", price: "3"},
		{name: "empty price", pname: "Kiwi", price: ""},
		{name: "non numeric price", pname: "Kiwi", price: "cheap"},
		{name: "trailing garbage", pname: "Kiwi", price: "3abc"},
	}
	for _, tt := range invalid {
		t.Run("ignored: "+tt.name, func(t *testing.T) {
			m, _ := newTestManager(t)
			m.SetAddingNew(true)
			m.SetNewProductName(tt.pname)
			m.SetNewProductPrice(tt.price)

			assert.False(t, m.Add())
			assert.Len(t, m.Products(), 5)
			assert.Empty(t, m.Items())
			assert.True(t, m.AddingNew(), "define-mode is kept")
			name, price := m.Draft()
			assert.Equal(t, tt.pname, name, "draft keeps its values")
			assert.Equal(t, tt.price, price)
		})
	}
}

func TestEdit(t *testing.T) {
	t.Run("save replaces only the target item", func(t *testing.T) {
		m, _ := newTestManager(t)
		m.Add()
		m.SelectProduct("Banana")
		m.Add()

		target := m.Items()[0]
		m.BeginEdit(target)
		edit, editing := m.Editing()
		require.True(t, editing)
		assert.Equal(t, Edit{ID: "item-1", Product: "Apple", Price: dec("1.50")}, edit)

		m.SetEditProduct("Milk")
		edit, _ = m.Editing()
		assert.True(t, edit.Price.Equal(dec("3.20")), "price follows the chosen product")

		m.SetEditPrice(dec("2.99"))
		m.SaveEdit(target.ID)

		_, editing = m.Editing()
		assert.False(t, editing)
		items := m.Items()
		assert.Equal(t, "Milk", items[0].Product)
		assert.True(t, items[0].Price.Equal(dec("2.99")))
		assert.Equal(t, "Banana", items[1].Product)
	})

	t.Run("begin edit loads the item price not the catalog price", func(t *testing.T) {
		m, _ := newTestManager(t)
		m.SetSelectedPrice(dec("9.00"))
		m.Add()

		m.BeginEdit(m.Items()[0])
		edit, _ := m.Editing()
		assert.True(t, edit.Price.Equal(dec("9.00")))
	})

	t.Run("cancel leaves items unchanged", func(t *testing.T) {
		m, _ := newTestManager(t)
		m.Add()
		before := m.Items()

		m.BeginEdit(before[0])
		m.SetEditProduct("Eggs")
		m.CancelEdit()

		_, editing := m.Editing()
		assert.False(t, editing)
		assert.Equal(t, before, m.Items())
	})

	t.Run("edit product outside editing does not sync price", func(t *testing.T) {
		m, _ := newTestManager(t)
		m.SetEditProduct("Eggs")
		edit, editing := m.Editing()
		assert.False(t, editing)
		assert.True(t, edit.Price.IsZero())
	})
}

func TestDelete(t *testing.T) {
	t.Run("confirmed delete waits for the delay", func(t *testing.T) {
		m, sched := newTestManager(t)
		m.Add()
		m.Add()
		target := m.Items()[0]

		m.Delete(target.ID)

		assert.True(t, m.Loading())
		assert.Len(t, m.Items(), 2, "item is still present before the delay")
		require.Equal(t, 1, sched.Len())
		assert.Equal(t, DefaultDeleteDelay, sched.delays[0])

		sched.RunAll()
		m.Wait()

		assert.False(t, m.Loading())
		items := m.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "item-2", items[0].ID)
	})

	t.Run("declined delete changes nothing", func(t *testing.T) {
		m, sched := newTestManager(t, WithConfirmer(answer(false)))
		m.Add()

		m.Delete(m.Items()[0].ID)

		assert.False(t, m.Loading())
		assert.Len(t, m.Items(), 1)
		assert.Zero(t, sched.Len())
	})

	t.Run("no confirmer declines", func(t *testing.T) {
		sched := &manualScheduler{}
		m := New(WithScheduler(sched), WithLogger(quietLogger()))
		m.Add()
		m.Delete(m.Items()[0].ID)
		assert.False(t, m.Loading())
		assert.Zero(t, sched.Len())
	})

	t.Run("absent id completes without removing anything", func(t *testing.T) {
		m, sched := newTestManager(t)
		m.Add()

		m.Delete("missing")
		assert.True(t, m.Loading(), "loading holds for the full delay")
		require.Equal(t, 1, sched.Len())
		assert.Equal(t, DefaultDeleteDelay, sched.delays[0])

		m.Delete(m.Items()[0].ID)
		assert.Equal(t, 1, sched.Len(), "a real delete is ignored meanwhile")
		sched.RunAll()

		assert.False(t, m.Loading())
		assert.Len(t, m.Items(), 1)
	})

	t.Run("prompt text", func(t *testing.T) {
		var asked string
		m, _ := newTestManager(t, WithConfirmer(ConfirmFunc(func(p string) bool {
			asked = p
			return false
		})))
		m.Add()
		m.Delete(m.Items()[0].ID)
		assert.Equal(t, "Delete this item?", asked)
	})
}

func TestOperationsIgnoredWhileLoading(t *testing.T) {
	m, sched := newTestManager(t)
	m.Add()
	m.Add()
	items := m.Items()

	m.Delete(items[0].ID)
	require.True(t, m.Loading())

	m.BeginEdit(items[1])
	_, editing := m.Editing()
	assert.False(t, editing, "edit is disabled")

	m.Delete(items[1].ID)
	assert.Equal(t, 1, sched.Len(), "second delete is disabled")

	sched.RunAll()
	assert.Equal(t, []string{"item-2"}, ids(m.Items()))

	m.BeginEdit(m.Items()[0])
	_, editing = m.Editing()
	assert.True(t, editing, "edit is enabled again")
}

func TestSaveIgnoredWhileLoading(t *testing.T) {
	m, sched := newTestManager(t)
	m.Add()
	m.Add()
	items := m.Items()

	m.BeginEdit(items[1])
	m.SetEditPrice(dec("0.01"))
	m.Delete(items[0].ID)
	m.SaveEdit(items[1].ID)

	_, editing := m.Editing()
	assert.True(t, editing, "edit stays open")
	sched.RunAll()
	assert.True(t, m.Items()[0].Price.Equal(dec("1.50")))
}

func TestDeleteWithTimer(t *testing.T) {
	m := New(
		WithConfirmer(answer(true)),
		WithDeleteDelay(10*time.Millisecond),
		WithLogger(quietLogger()),
	)
	m.Add()
	m.Delete(m.Items()[0].ID)
	assert.True(t, m.Loading())

	assert.Eventually(t, func() bool {
		return !m.Loading() && len(m.Items()) == 0
	}, time.Second, 5*time.Millisecond)
	m.Wait()
}

func TestSearchAndTotals(t *testing.T) {
	m, _ := newTestManager(t, WithProducts([]types.Product{
		{Name: "Apple", Price: dec("1.5")},
		{Name: "Banana", Price: dec("1.0")},
	}))
	m.Add()
	m.SelectProduct("Banana")
	m.Add()

	m.SetSearchTerm("an")
	assert.Equal(t, "an", m.SearchTerm())
	filtered := m.FilteredItems()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Banana", filtered[0].Product)

	totals := m.Totals()
	assert.True(t, totals.Subtotal.Equal(dec("1.0")), "totals cover the filtered view only")
	assert.True(t, totals.Tax.Equal(dec("0.07")))

	m.SetSearchTerm("")
	assert.Len(t, m.FilteredItems(), 2)
	assert.True(t, m.Totals().Subtotal.Equal(dec("2.5")))
	assert.Len(t, m.Items(), 2, "search never changes the stored items")
}

func TestSnapshot(t *testing.T) {
	m, sched := newTestManager(t)
	m.Add()
	m.SelectProduct("Milk")
	m.Add()
	m.Add()
	m.SetSearchTerm("m")
	m.BeginEdit(m.FilteredItems()[0])
	m.CancelEdit()
	m.BeginEdit(m.FilteredItems()[1])

	snap := m.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Milk", snap.Items[0].Product)
	assert.Equal(t, "Milk", snap.Items[1].Product)
	assert.True(t, snap.Totals.Subtotal.Equal(dec("6.4")))
	assert.True(t, snap.TaxRate.Equal(dec("0.07")))
	assert.Equal(t, "m", snap.SearchTerm)
	assert.True(t, snap.Editing)
	assert.Equal(t, "item-3", snap.Edit.ID)
	assert.False(t, snap.Loading)

	m.CancelEdit()
	m.Delete(snap.Items[0].ID)
	pending := m.Snapshot()
	assert.True(t, pending.Loading)
	assert.Len(t, pending.Items, 2)
	assert.True(t, pending.Totals.Subtotal.Equal(dec("6.4")), "totals match the rows shown")

	sched.RunAll()
	done := m.Snapshot()
	assert.False(t, done.Loading)
	require.Len(t, done.Items, 1)
	assert.True(t, done.Totals.Subtotal.Equal(dec("3.2")), "totals match the rows shown")

	snap.Items[0].Product = "changed"
	assert.Equal(t, "Milk", m.FilteredItems()[0].Product, "snapshot items are copies")
}

func TestCustomTaxRate(t *testing.T) {
	m, _ := newTestManager(t, WithTaxRate(dec("0.2")))
	m.SelectProduct("Eggs")
	m.Add()
	totals := m.Totals()
	assert.True(t, totals.Tax.Equal(dec("0.8")))
	assert.True(t, totals.GrandTotal.Equal(dec("4.8")))
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	m := New(WithLogger(quietLogger()))
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		m.Add()
	}
	for _, it := range m.Items() {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
	assert.Len(t, seen, 1000)
}
