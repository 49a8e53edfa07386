package catalog

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimart/pos/internal/domain/product"
)

// --- Mock store ---

type mockStore struct {
	loaded  []product.Product
	loadErr error
	saveErr error
	saved   [][]product.Product
}

func (m *mockStore) Load(_ context.Context) ([]product.Product, error) {
	return m.loaded, m.loadErr
}

func (m *mockStore) Save(_ context.Context, products []product.Product) error {
	m.saved = append(m.saved, products)
	return m.saveErr
}

func newCatalog(t *testing.T) (*Catalog, *mockStore) {
	t.Helper()
	store := &mockStore{}
	c, err := New(context.Background(), store)
	require.NoError(t, err)
	return c, store
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Tests ---

func TestAdd_RoundTrip(t *testing.T) {
	c, store := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, "P001", "Milk", price("2.50"), 10))

	got, ok := c.Get("P001")
	require.True(t, ok)
	assert.Equal(t, "P001", got.ID)
	assert.Equal(t, "Milk", got.Name)
	assert.True(t, got.Price.Equal(price("2.50")))
	assert.Equal(t, 10, got.Stock)
	assert.Len(t, store.saved, 1)
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
		stock int
	}{
		{name: "zero price", price: decimal.Zero, stock: 1},
		{name: "negative price", price: price("-1"), stock: 1},
		{name: "negative stock", price: price("1"), stock: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := newCatalog(t)

			err := c.Add(context.Background(), "P001", "Milk", tt.price, tt.stock)

			var invErr *product.InvalidValueError
			require.ErrorAs(t, err, &invErr)
			assert.Equal(t, 0, c.Len())
			assert.Empty(t, store.saved)
		})
	}
}

func TestAdd_DuplicateKeepsExisting(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, "P001", "Milk", price("2.50"), 10))
	err := c.Add(ctx, "P001", "Bread", price("1.00"), 3)
	require.ErrorIs(t, err, product.ErrDuplicateID)

	got, ok := c.Get("P001")
	require.True(t, ok)
	assert.Equal(t, "Milk", got.Name)
	assert.True(t, got.Price.Equal(price("2.50")))
	assert.Equal(t, 10, got.Stock)
}

func TestAdd_PersistFailureKeepsInMemory(t *testing.T) {
	c, store := newCatalog(t)
	store.saveErr = errors.New("disk full")

	err := c.Add(context.Background(), "P001", "Milk", price("2.50"), 10)
	require.Error(t, err)

	// Best-effort persistence: the insert survives the failed save.
	_, ok := c.Get("P001")
	assert.True(t, ok)
}

func TestUpdate(t *testing.T) {
	newName := "Whole Milk"
	newPrice := price("3.00")
	newStock := 7
	badPrice := decimal.Zero
	badStock := -1

	tests := []struct {
		name    string
		id      string
		params  UpdateParams
		wantErr bool
	}{
		{name: "name only", id: "P001", params: UpdateParams{Name: &newName}},
		{name: "price only", id: "P001", params: UpdateParams{Price: &newPrice}},
		{name: "all fields", id: "P001", params: UpdateParams{Name: &newName, Price: &newPrice, Stock: &newStock}},
		{name: "unknown id", id: "P999", params: UpdateParams{Name: &newName}, wantErr: true},
		{name: "invalid price aborts", id: "P001", params: UpdateParams{Name: &newName, Price: &badPrice}, wantErr: true},
		{name: "invalid stock aborts", id: "P001", params: UpdateParams{Name: &newName, Stock: &badStock}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newCatalog(t)
			ctx := context.Background()
			require.NoError(t, c.Add(ctx, "P001", "Milk", price("2.50"), 10))

			err := c.Update(ctx, tt.id, tt.params)
			got, _ := c.Get("P001")

			if tt.wantErr {
				require.Error(t, err)
				// A failed update applies nothing, even fields that were valid.
				assert.Equal(t, "Milk", got.Name)
				assert.True(t, got.Price.Equal(price("2.50")))
				assert.Equal(t, 10, got.Stock)
				return
			}
			require.NoError(t, err)
			if tt.params.Name != nil {
				assert.Equal(t, *tt.params.Name, got.Name)
			}
			if tt.params.Price != nil {
				assert.True(t, got.Price.Equal(*tt.params.Price))
			}
			if tt.params.Stock != nil {
				assert.Equal(t, *tt.params.Stock, got.Stock)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, "P001", "Milk", price("2.50"), 10))

	require.ErrorIs(t, c.Delete(ctx, "P999"), product.ErrNotFound)
	require.NoError(t, c.Delete(ctx, "P001"))

	_, ok := c.Get("P001")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSearch(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, "P001", "Whole Milk", price("2.50"), 10))
	require.NoError(t, c.Add(ctx, "P002", "Bread", price("1.20"), 5))
	require.NoError(t, c.Add(ctx, "P003", "Milk Chocolate", price("3.10"), 2))

	tests := []struct {
		name    string
		keyword string
		wantIDs []string
	}{
		{name: "substring match", keyword: "milk", wantIDs: []string{"P001", "P003"}},
		{name: "exact id match", keyword: "p002", wantIDs: []string{"P002"}},
		{name: "no match is empty not error", keyword: "cheese", wantIDs: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, p := range c.Search(tt.keyword) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestImport(t *testing.T) {
	c, store := newCatalog(t)
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, "P001", "Milk", price("2.50"), 10))
	savesBefore := len(store.saved)

	res, err := c.Import(ctx, []product.Product{
		{ID: "P002", Name: "Bread", Price: price("1.20"), Stock: 5},
		{ID: "P001", Name: "Milk Again", Price: price("9.99"), Stock: 1}, // duplicate
		{ID: "P003", Name: "Free Stuff", Price: decimal.Zero, Stock: 1}, // invalid price
		{ID: "P004", Name: "Eggs", Price: price("4.00"), Stock: 12},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Imported)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, "P001", res.Skipped[0].ProductID)
	assert.Equal(t, "P003", res.Skipped[1].ProductID)

	// The duplicate never mutates the existing product.
	got, _ := c.Get("P001")
	assert.Equal(t, "Milk", got.Name)

	// One save for the whole batch, not one per row.
	assert.Len(t, store.saved, savesBefore+1)
}

func TestDeduct_AllOrNothing(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, "P001", "Milk", price("2.50"), 10))
	require.NoError(t, c.Add(ctx, "P002", "Bread", price("1.20"), 2))

	err := c.Deduct([]Deduction{
		{ProductID: "P001", Quantity: 3},
		{ProductID: "P002", Quantity: 5},
	})

	var stockErr *product.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "P002", stockErr.ProductID)
	assert.Equal(t, 2, stockErr.Available)

	// The valid first line was not decremented.
	got, _ := c.Get("P001")
	assert.Equal(t, 10, got.Stock)

	require.NoError(t, c.Deduct([]Deduction{{ProductID: "P001", Quantity: 3}}))
	got, _ = c.Get("P001")
	assert.Equal(t, 7, got.Stock)
}

func TestNew_LoadsInsertionOrder(t *testing.T) {
	store := &mockStore{loaded: []product.Product{
		{ID: "B", Name: "Second", Price: price("1"), Stock: 1},
		{ID: "A", Name: "First", Price: price("1"), Stock: 1},
	}}
	c, err := New(context.Background(), store)
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "B", all[0].ID)
	assert.Equal(t, "A", all[1].ID)
}
