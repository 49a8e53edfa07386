package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimart/pos/internal/domain/cart"
	"github.com/minimart/pos/internal/domain/catalog"
	"github.com/minimart/pos/internal/domain/checkout"
	"github.com/minimart/pos/internal/domain/product"
	"github.com/minimart/pos/internal/domain/report"
	"github.com/minimart/pos/internal/domain/sale"
)

type nopCatalogStore struct{}

func (nopCatalogStore) Load(_ context.Context) ([]product.Product, error) { return nil, nil }
func (nopCatalogStore) Save(_ context.Context, _ []product.Product) error { return nil }

type nopLedgerStore struct{}

func (nopLedgerStore) Load(_ context.Context) ([]sale.Sale, error) { return nil, nil }
func (nopLedgerStore) Save(_ context.Context, _ []sale.Sale) error { return nil }

// runSession feeds scripted operator input through a full wiring of the core
// and returns the rendered output.
func runSession(t *testing.T, script ...string) (string, *catalog.Catalog) {
	t.Helper()
	ctx := context.Background()

	cat, err := catalog.New(ctx, nopCatalogStore{})
	require.NoError(t, err)
	ledger, err := sale.NewLedger(ctx, nopLedgerStore{})
	require.NoError(t, err)

	m := New(Config{BillDir: t.TempDir(), LowStockThreshold: 5, ValuationTop: 5},
		cat,
		cart.New(cat),
		checkout.NewEngine(cat, ledger),
		report.NewService(cat, ledger),
	)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	require.NoError(t, m.Run(ctx, in, &out))
	return out.String(), cat
}

func TestSession_AddProductAndCheckout(t *testing.T) {
	out, cat := runSession(t,
		"1", // inventory
		"1", // add product
		"P001", "Milk", "2.50", "10",
		"2", // billing
		"1", // add to cart
		"P001", "4",
		"2", // billing
		"6", // checkout
		"no", // skip the bill
		"4", // exit
	)

	assert.Contains(t, out, "Product added successfully!")
	assert.Contains(t, out, "Item added to cart!")
	assert.Contains(t, out, "Checkout completed successfully! Total: $10.00")
	assert.Contains(t, out, "Goodbye!")

	p, ok := cat.Get("P001")
	require.True(t, ok)
	assert.Equal(t, 6, p.Stock)
}

func TestSession_InvalidChoice(t *testing.T) {
	out, _ := runSession(t, "9", "4")
	assert.Contains(t, out, "Invalid choice!")
}

func TestSession_ErrorsAreRenderedNotFatal(t *testing.T) {
	out, _ := runSession(t,
		"2", "1", "P404", "1", // add unknown product to cart
		"4",
	)
	assert.Contains(t, out, "Error: product not found")
	assert.Contains(t, out, "Goodbye!")
}
