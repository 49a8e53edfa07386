// Package catalog owns the set of products and their stock levels.
//
// The catalog is an in-memory map with stable insertion order, backed by a
// Store that rewrites the full file on every mutation. Persistence is
// best-effort: a failed save is reported to the caller but the in-memory
// change is kept.
package catalog

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/minimart/pos/internal/domain/product"
)

// Store defines persistence operations for the product catalog.
type Store interface {
	Load(ctx context.Context) ([]product.Product, error)
	Save(ctx context.Context, products []product.Product) error
}

// Catalog holds all known products keyed by ID, preserving insertion order
// for iteration.
type Catalog struct {
	store Store
	byID  map[string]*product.Product
	order []string
}

// New creates a Catalog and loads its initial contents from the store.
// A missing backing file is treated as an empty catalog by the store.
func New(ctx context.Context, store Store) (*Catalog, error) {
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	c := &Catalog{
		store: store,
		byID:  make(map[string]*product.Product, len(loaded)),
		order: make([]string, 0, len(loaded)),
	}
	for i := range loaded {
		c.insert(loaded[i])
	}
	return c, nil
}

func (c *Catalog) insert(p product.Product) {
	cp := p
	c.byID[p.ID] = &cp
	c.order = append(c.order, p.ID)
}

func (c *Catalog) remove(id string) {
	delete(c.byID, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Add validates and inserts a new product, then persists the catalog.
// It fails with product.ErrDuplicateID when the ID is taken and with a
// product.InvalidValueError when price or stock are out of bounds.
func (c *Catalog) Add(ctx context.Context, id, name string, price decimal.Decimal, stock int) error {
	if _, ok := c.byID[id]; ok {
		return product.ErrDuplicateID
	}

	p := product.Product{ID: id, Name: name, Price: price, Stock: stock}
	if err := p.Validate(); err != nil {
		return err
	}

	c.insert(p)
	return c.Save(ctx)
}

// UpdateParams carries the optional fields of an update. A nil field is left
// unchanged; a set field is validated before any of them is applied.
type UpdateParams struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

// Update applies the set fields of params to an existing product and persists
// the catalog. A validation failure on any provided field aborts the whole
// update, leaving the product untouched.
func (c *Catalog) Update(ctx context.Context, id string, params UpdateParams) error {
	p, ok := c.byID[id]
	if !ok {
		return product.ErrNotFound
	}

	if params.Price != nil && !params.Price.IsPositive() {
		return &product.InvalidValueError{Field: "price", Reason: "must be greater than zero"}
	}
	if params.Stock != nil && *params.Stock < 0 {
		return &product.InvalidValueError{Field: "stock_quantity", Reason: "cannot be negative"}
	}

	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}

	return c.Save(ctx)
}

// Delete removes a product and persists the catalog. It fails with
// product.ErrNotFound when the ID is unknown.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	if _, ok := c.byID[id]; !ok {
		return product.ErrNotFound
	}

	c.remove(id)
	return c.Save(ctx)
}

// Get returns a copy of the product with the given ID. Lookups never fail;
// absence is reported through the second return value.
func (c *Catalog) Get(id string) (product.Product, bool) {
	p, ok := c.byID[id]
	if !ok {
		return product.Product{}, false
	}
	return *p, true
}

// Search returns all products whose name contains the keyword
// (case-insensitive) or whose ID matches it exactly (case-insensitive).
// No match yields an empty slice, not an error.
func (c *Catalog) Search(keyword string) []product.Product {
	needle := strings.ToLower(keyword)

	var results []product.Product
	for _, id := range c.order {
		p := c.byID[id]
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.EqualFold(p.ID, keyword) {
			results = append(results, *p)
		}
	}
	return results
}

// All returns copies of every product in insertion order.
func (c *Catalog) All() []product.Product {
	products := make([]product.Product, 0, len(c.order))
	for _, id := range c.order {
		products = append(products, *c.byID[id])
	}
	return products
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Deduction is one product's stock decrement within a checkout commit.
type Deduction struct {
	ProductID string
	Quantity  int
}

// Deduct decrements stock for every deduction, all or nothing: every product
// is validated against its live stock before any decrement happens, so a
// single failing line leaves the whole catalog unchanged. It does not
// persist; the caller saves once the full transaction is assembled.
func (c *Catalog) Deduct(deductions []Deduction) error {
	for _, d := range deductions {
		p, ok := c.byID[d.ProductID]
		if !ok {
			return product.ErrNotFound
		}
		if p.Stock < d.Quantity {
			return &product.InsufficientStockError{
				ProductID: d.ProductID,
				Requested: d.Quantity,
				Available: p.Stock,
			}
		}
	}

	for _, d := range deductions {
		c.byID[d.ProductID].Stock -= d.Quantity
	}
	return nil
}

// Save rewrites the full backing store from the current in-memory state.
func (c *Catalog) Save(ctx context.Context) error {
	if err := c.store.Save(ctx, c.All()); err != nil {
		return errors.Wrap(err, "save catalog")
	}
	return nil
}
