// Package checkout commits a cart into an immutable sale. It is the only
// writer that couples the cart, the catalog, and the ledger.
package checkout

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/minimart/pos/internal/domain/cart"
	"github.com/minimart/pos/internal/domain/catalog"
	"github.com/minimart/pos/internal/domain/sale"
)

// ErrInvalidDiscount is returned when the cart's stored discount no longer
// fits the recomputed subtotal, typically because the cart was mutated after
// the discount was applied. Checkout never clamps a stale discount.
var ErrInvalidDiscount = errors.New("discount no longer valid for cart subtotal")

// Engine validates a cart against the catalog and atomically converts it
// into a sale: snapshot, stock decrement, ledger append, catalog save.
type Engine struct {
	catalog *catalog.Catalog
	ledger  *sale.Ledger
	now     func() time.Time
}

// NewEngine creates a checkout Engine over the given catalog and ledger.
func NewEngine(c *catalog.Catalog, l *sale.Ledger) *Engine {
	return &Engine{catalog: c, ledger: l, now: time.Now}
}

// Checkout commits the cart. On success the cart is emptied, every involved
// product's stock is decremented by its committed quantity, and the sale is
// appended to the ledger.
//
// The in-memory commit is all-or-nothing: stock is validated for every line
// before any decrement, and any validation failure leaves catalog, ledger,
// and cart untouched. Persistence that follows is best-effort: when saving
// the ledger or catalog fails the committed sale is still returned alongside
// the error, and the in-memory state is not rolled back.
func (e *Engine) Checkout(ctx context.Context, c *cart.Cart) (*sale.Sale, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, cart.ErrEmptyCart
	}

	subtotal := c.Subtotal()
	discount := c.Discount()
	if discount.IsNegative() || discount.GreaterThan(subtotal) {
		return nil, ErrInvalidDiscount
	}

	s := sale.Sale{
		ID:        uuid.New().String(),
		Items:     make([]sale.Item, len(items)),
		Subtotal:  subtotal,
		Discount:  discount,
		Final:     subtotal.Sub(discount),
		CreatedAt: e.now(),
	}
	deductions := make([]catalog.Deduction, len(items))
	for i, li := range items {
		s.Items[i] = sale.Item{
			ProductID: li.Product.ID,
			Name:      li.Product.Name,
			UnitPrice: li.Product.Price,
			Quantity:  li.Quantity,
			LineTotal: li.LineTotal(),
		}
		deductions[i] = catalog.Deduction{ProductID: li.Product.ID, Quantity: li.Quantity}
	}

	// Live stock may have dropped below a committed quantity since the item
	// was staged; Deduct validates every line before decrementing any.
	if err := e.catalog.Deduct(deductions); err != nil {
		return nil, err
	}

	c.Clear()

	// Both saves are attempted even when the first fails: the in-memory
	// commit already happened, so each store gets its chance to catch up.
	persistErr := e.ledger.Append(ctx, s)
	if err := e.catalog.Save(ctx); err != nil && persistErr == nil {
		persistErr = err
	}
	return &s, persistErr
}
