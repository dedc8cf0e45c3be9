// Shop command runs the interactive shopping list.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabletop/internal/logging"
	"github.com/mesh-intelligence/tabletop/internal/shopping"
	"github.com/mesh-intelligence/tabletop/pkg/types"
)

const shopHelp = `Commands:
  list                      show the visible items and totals
  products                  show the product catalog
  select <product>          choose the product for the next add
  price <amount>            override the price for the next add
  new on|off                define a new product instead of selecting one
  name <text>               name of the new product
  cost <amount>             price of the new product
  add                       add an item
  edit <row>                start editing a visible row
  set product|price <value> change the row under edit
  save                      save the row under edit
  cancel                    stop editing without saving
  delete <row>              delete a visible row (asks first)
  search [term]             filter by product or price; empty clears
  totals                    show subtotal, tax and total
  wait                      wait for pending deletes
  help                      show this help
  quit                      leave the list`

func newShopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Edit the shopping list",
		Long: `Shop opens the shopping list and reads one command per line.

Totals cover the rows visible under the current search only.

Example:
  tabletop shop
  printf 'select Milk\nadd\nsearch mil\ntotals\n' | tabletop shop`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession("shop", cmd.InOrStdin(), cmd.OutOrStdout())
			ss := &shopSession{
				m: shopping.New(
					shopping.WithProducts(a.cfg.Products),
					shopping.WithTaxRate(a.cfg.TaxRate),
					shopping.WithDeleteDelay(a.cfg.DeleteDelay),
					shopping.WithConfirmer(s),
					shopping.WithLogger(logging.FromContext(cmd.Context())),
				),
				out:      cmd.OutOrStdout(),
				jsonMode: a.flags.jsonMode,
			}
			ss.render()
			err := s.run(ss.handle)
			// Confirmed deletes cannot be cancelled; let them land.
			ss.m.Wait()
			return err
		},
	}
}

type shopSession struct {
	m        *shopping.Manager
	out      io.Writer
	jsonMode bool
}

// shopState is the --json rendering of the list.
type shopState struct {
	Items   []types.LineItem `json:"items"`
	Totals  types.Totals     `json:"totals"`
	Search  string           `json:"search"`
	Loading bool             `json:"loading"`
}

func (s *shopSession) handle(verb, arg string) (bool, error) {
	switch verb {
	case "list", "ls":
	case "products":
		s.renderProducts()
		return false, nil
	case "select":
		s.m.SelectProduct(arg)
		s.renderSelection()
		return false, nil
	case "price":
		price, err := parseAmount(arg)
		if err != nil {
			return false, err
		}
		s.m.SetSelectedPrice(price)
		s.renderSelection()
		return false, nil
	case "new":
		switch strings.ToLower(arg) {
		case "on", "":
			s.m.SetAddingNew(true)
		case "off":
			s.m.SetAddingNew(false)
		default:
			return false, fmt.Errorf("%w: new expects on or off, got %q", types.ErrInvalidArgument, arg)
		}
		return false, nil
	case "name":
		s.m.SetNewProductName(arg)
		return false, nil
	case "cost":
		s.m.SetNewProductPrice(arg)
		return false, nil
	case "add":
		s.m.Add()
	case "edit":
		item, ok, err := s.row(arg)
		if err != nil {
			return false, err
		}
		if ok {
			s.m.BeginEdit(item)
		}
	case "set":
		field, value, _ := strings.Cut(arg, " ")
		value = strings.TrimSpace(value)
		switch strings.ToLower(field) {
		case "product":
			s.m.SetEditProduct(value)
		case "price":
			price, err := parseAmount(value)
			if err != nil {
				return false, err
			}
			s.m.SetEditPrice(price)
		default:
			return false, fmt.Errorf("%w: set expects product or price, got %q", types.ErrInvalidArgument, field)
		}
	case "save":
		if edit, ok := s.m.Editing(); ok {
			s.m.SaveEdit(edit.ID)
		}
	case "cancel":
		s.m.CancelEdit()
	case "delete", "rm":
		item, ok, err := s.row(arg)
		if err != nil {
			return false, err
		}
		if ok {
			s.m.Delete(item.ID)
		}
	case "search", "find":
		s.m.SetSearchTerm(arg)
	case "totals":
		s.renderTotals(s.m.Snapshot())
		return false, nil
	case "wait":
		s.m.Wait()
	case "help", "?":
		fmt.Fprintln(s.out, shopHelp)
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, unknownCommand(verb)
	}
	s.render()
	return false, nil
}

// row returns the item shown at the 1-based position arg of the filtered
// view. Positions outside the view report ok=false.
func (s *shopSession) row(arg string) (types.LineItem, bool, error) {
	n, err := parseNumber(arg, "row")
	if err != nil {
		return types.LineItem{}, false, err
	}
	visible := s.m.FilteredItems()
	if n < 1 || n > len(visible) {
		return types.LineItem{}, false, nil
	}
	return visible[n-1], true, nil
}

func (s *shopSession) render() {
	snap := s.m.Snapshot()

	if s.jsonMode {
		_ = writeJSON(s.out, shopState{Items: snap.Items, Totals: snap.Totals, Search: snap.SearchTerm, Loading: snap.Loading})
		return
	}

	rows := make([][]string, 0, len(snap.Items))
	for i, it := range snap.Items {
		product, price, status := it.Product, it.Price, ""
		if snap.Editing && it.ID == snap.Edit.ID {
			product, price, status = snap.Edit.Product, snap.Edit.Price, "editing"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), truncate(product, 32), types.FormatUSD(price), status})
	}

	if snap.SearchTerm != "" {
		fmt.Fprintf(s.out, "Search: %q\n", snap.SearchTerm)
	}
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "No items found.")
	} else {
		printTable(s.out, []string{"ROW", "PRODUCT", "PRICE", "STATUS"}, rows)
	}
	s.renderTotals(snap)
	if snap.Loading {
		fmt.Fprintln(s.out, "Deleting...")
	}
}

func (s *shopSession) renderTotals(snap shopping.Snapshot) {
	if s.jsonMode {
		_ = writeJSON(s.out, snap.Totals)
		return
	}
	fmt.Fprintf(s.out, "Subtotal: %s\n", types.FormatUSD(snap.Totals.Subtotal))
	fmt.Fprintf(s.out, "Tax (%s%%): %s\n", snap.TaxRate.Shift(2).String(), types.FormatUSD(snap.Totals.Tax))
	fmt.Fprintf(s.out, "Total: %s\n", types.FormatUSD(snap.Totals.GrandTotal))
}

func (s *shopSession) renderProducts() {
	products := s.m.Products()
	if s.jsonMode {
		_ = writeJSON(s.out, products)
		return
	}
	if len(products) == 0 {
		fmt.Fprintln(s.out, "No products found.")
		return
	}
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{truncate(p.Name, 32), types.FormatUSD(p.Price)}
	}
	printTable(s.out, []string{"PRODUCT", "PRICE"}, rows)
}

func (s *shopSession) renderSelection() {
	name, price := s.m.Selected()
	if s.jsonMode {
		_ = writeJSON(s.out, types.Product{Name: name, Price: price})
		return
	}
	fmt.Fprintf(s.out, "Selected: %s at %s\n", name, types.FormatUSD(price))
}
