// Package cart implements the mutable staging area for one pending
// transaction. A cart is exclusively owned by the active session and is
// discarded on checkout or cancellation.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/minimart/pos/internal/domain/product"
)

// ErrEmptyCart is returned when an operation requires at least one line item.
var ErrEmptyCart = errors.New("cart is empty")

// StockReader provides the live catalog view the cart validates against.
type StockReader interface {
	Get(id string) (product.Product, bool)
}

// LineItem is one product-quantity pairing within the cart. Product is a
// snapshot captured when the line was first added, so the unit price stays
// stable even if the catalog price changes while the cart is open.
type LineItem struct {
	Product  product.Product
	Quantity int
}

// LineTotal returns unit price * quantity for this line.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart holds the line items and pending discount of the transaction being
// assembled. Lines keep insertion order; a product appears at most once.
type Cart struct {
	products StockReader
	items    []LineItem
	discount decimal.Decimal
}

// New creates an empty Cart validating stock against the given catalog view.
func New(products StockReader) *Cart {
	return &Cart{products: products}
}

func (c *Cart) find(productID string) *LineItem {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return &c.items[i]
		}
	}
	return nil
}

// AddItem stages qty units of a product. The stock check runs against the
// live catalog minus whatever this cart already holds for the product, so
// the merged quantity can never exceed what is actually available. Re-adding
// a product merges quantities and keeps the original price snapshot.
func (c *Cart) AddItem(productID string, qty int) error {
	p, ok := c.products.Get(productID)
	if !ok {
		return product.ErrNotFound
	}
	if qty <= 0 {
		return &product.InvalidValueError{Field: "quantity", Reason: "must be greater than zero"}
	}

	line := c.find(productID)
	reserved := 0
	if line != nil {
		reserved = line.Quantity
	}
	if available := p.Stock - reserved; qty > available {
		return &product.InsufficientStockError{
			ProductID: productID,
			Requested: qty,
			Available: available,
		}
	}

	if line != nil {
		line.Quantity += qty
		return nil
	}
	c.items = append(c.items, LineItem{Product: p, Quantity: qty})
	return nil
}

// RemoveItem drops a product's line entirely. It fails with
// product.ErrNotInCart when the product is not staged.
func (c *Cart) RemoveItem(productID string) error {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return product.ErrNotInCart
}

// ReduceItem decrements a line's quantity by qty, removing the line when qty
// reaches or exceeds the staged quantity.
func (c *Cart) ReduceItem(productID string, qty int) error {
	if qty <= 0 {
		return &product.InvalidValueError{Field: "quantity", Reason: "must be greater than zero"}
	}

	line := c.find(productID)
	if line == nil {
		return product.ErrNotInCart
	}
	if qty >= line.Quantity {
		return c.RemoveItem(productID)
	}
	line.Quantity -= qty
	return nil
}

// Items returns a copy of the staged line items in insertion order.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Subtotal returns the sum of all line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.items {
		sum = sum.Add(c.items[i].LineTotal())
	}
	return sum
}

// Discount returns the pending discount amount.
func (c *Cart) Discount() decimal.Decimal {
	return c.discount
}

// ClearDiscount resets the pending discount to zero.
func (c *Cart) ClearDiscount() {
	c.discount = decimal.Zero
}

// Clear empties the cart and clears its discount.
func (c *Cart) Clear() {
	c.items = nil
	c.discount = decimal.Zero
}
