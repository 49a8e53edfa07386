package cart

import (
	"github.com/shopspring/decimal"

	"github.com/minimart/pos/internal/domain/product"
)

// DiscountKind enumerates the supported discount strategies.
type DiscountKind string

const (
	// DiscountPercentage applies a percentage of the subtotal, in [0,100].
	DiscountPercentage DiscountKind = "percentage"
	// DiscountFixed applies a fixed amount, capped at the subtotal.
	DiscountFixed DiscountKind = "fixed"
)

var hundred = decimal.NewFromInt(100)

// ApplyDiscount resolves a discount against the current subtotal and stores
// the resulting amount, replacing any previously pending discount. The
// amount is fixed at apply time: if the cart changes afterwards the stored
// amount goes stale, and checkout re-validates it instead of clamping.
func (c *Cart) ApplyDiscount(kind DiscountKind, value decimal.Decimal) error {
	if c.IsEmpty() {
		return ErrEmptyCart
	}

	subtotal := c.Subtotal()

	var amount decimal.Decimal
	switch kind {
	case DiscountPercentage:
		if value.IsNegative() || value.GreaterThan(hundred) {
			return &product.InvalidValueError{
				Field:  "discount",
				Reason: "percentage must be between 0 and 100",
			}
		}
		amount = subtotal.Mul(value).Div(hundred).Round(2)
	case DiscountFixed:
		if value.IsNegative() || value.GreaterThan(subtotal) {
			return &product.InvalidValueError{
				Field:  "discount",
				Reason: "fixed amount must be between 0 and the cart subtotal",
			}
		}
		amount = value.Round(2)
	default:
		return &product.InvalidValueError{
			Field:  "discount",
			Reason: "kind must be percentage or fixed",
		}
	}

	c.discount = amount
	return nil
}
