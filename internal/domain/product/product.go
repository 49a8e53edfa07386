package product

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors shared across the catalog and cart.
var (
	// ErrNotFound is returned when a requested product does not exist in the catalog.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateID is returned when adding a product whose ID already exists.
	ErrDuplicateID = errors.New("product ID already exists")
	// ErrNotInCart is returned when removing a product that is not in the cart.
	ErrNotInCart = errors.New("product not in cart")
)

// InvalidValueError indicates a field failed validation. Validation happens
// before any mutation, so the failing operation applies nothing.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientStockError indicates a requested quantity exceeds the stock
// effectively available for a product.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// Product represents a catalog item available for sale.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int
}

// Validate checks the invariants every catalog product must satisfy:
// positive price, non-negative stock.
func (p Product) Validate() error {
	if !p.Price.IsPositive() {
		return &InvalidValueError{Field: "price", Reason: "must be greater than zero"}
	}
	if p.Stock < 0 {
		return &InvalidValueError{Field: "stock_quantity", Reason: "cannot be negative"}
	}
	return nil
}

// StockValue returns price * stock, the product's contribution to the
// catalog valuation.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}
