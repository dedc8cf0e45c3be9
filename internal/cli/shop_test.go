package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopSession(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "empty list",
			input:    "",
			contains: []string{"No items found.", "Subtotal: $0.00", "Total: $0.00"},
		},
		{
			name:     "add selected product",
			input:    "select Milk\nadd\n",
			contains: []string{"Selected: Milk at $3.20", "1    Milk", "Subtotal: $3.20", "Tax (7%): $0.22", "Total: $3.42"},
		},
		{
			name:     "price override",
			input:    "price $2.00\nadd\nselect Apple\nadd\n",
			contains: []string{"Subtotal: $3.50", "Tax (7%): $0.25", "Total: $3.75"},
		},
		{
			name:     "define new product",
			input:    "new on\nname Grapes\ncost 3.0\nadd\nproducts\n",
			contains: []string{"Grapes   $3.00", "Subtotal: $3.00"},
		},
		{
			name:        "define new product with bad price is ignored",
			input:       "new on\nname Grapes\ncost cheap\nadd\n",
			notContains: []string{"Grapes", "error:"},
		},
		{
			name:     "search filters rows and totals",
			input:    "add\nselect Banana\nadd\nsearch an\n",
			contains: []string{`Search: "an"`, "Subtotal: $0.75"},
		},
		{
			name:     "edit and save",
			input:    "add\nedit 1\nset product Eggs\nsave\n",
			contains: []string{"Eggs", "Subtotal: $4.00"},
		},
		{
			name:        "declined delete keeps the item",
			input:       "add\ndelete 1\nn\nlist\n",
			contains:    []string{"Delete this item? [y/N]", "Apple"},
			notContains: []string{"Deleting..."},
		},
		{
			name:     "confirmed delete removes after the delay",
			input:    "add\ndelete 1\ny\nwait\n",
			contains: []string{"Deleting...", "No items found."},
		},
		{
			name:        "row outside the view is ignored",
			input:       "add\ndelete 5\n",
			notContains: []string{"Delete this item?"},
		},
		{
			name:     "bad price argument",
			input:    "price lots\n",
			contains: []string{"error: invalid argument"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TABLETOP_DELETE_DELAY", "200ms")
			out, err := runCLI(t, t.TempDir(), tt.input, "shop")
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestShopSessionJSON(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "select Eggs\nadd\n", "shop", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"product": "Eggs"`)
	assert.Contains(t, out, `"subtotal": "4"`)
	assert.Contains(t, out, `"loading": false`)
}
