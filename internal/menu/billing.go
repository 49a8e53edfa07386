package menu

import (
	"context"

	"github.com/minimart/pos/internal/bill"
	"github.com/minimart/pos/internal/domain/cart"
)

func (m *Menu) billingMenu(ctx context.Context) {
	m.printf("\n--- Billing ---\n")
	m.printf("1. Add to cart\n2. Remove from cart\n3. View cart\n4. Apply discount\n5. Clear discount\n6. Checkout\n7. Back\n")

	choice, ok := m.prompt("Choice: ")
	if !ok {
		return
	}
	switch choice {
	case "1":
		m.addToCart()
	case "2":
		m.removeFromCart()
	case "3":
		m.viewCart()
	case "4":
		m.applyDiscount()
	case "5":
		m.cart.ClearDiscount()
		m.printf("Discount cleared!\n")
	case "6":
		m.doCheckout(ctx)
	case "7":
	default:
		m.printf("Invalid choice! Please try again.\n")
	}
}

func (m *Menu) addToCart() {
	id, ok := m.prompt("Product ID: ")
	if !ok || id == "" {
		return
	}
	qty, ok := m.promptInt("Quantity: ", 0)
	if !ok {
		return
	}
	if err := m.cart.AddItem(id, qty); err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Item added to cart!\n")
}

func (m *Menu) removeFromCart() {
	id, ok := m.prompt("Product ID: ")
	if !ok || id == "" {
		return
	}
	qty, ok := m.promptInt("Quantity (blank for all): ", 0)
	if !ok {
		return
	}

	var err error
	if qty <= 0 {
		err = m.cart.RemoveItem(id)
	} else {
		err = m.cart.ReduceItem(id, qty)
	}
	if err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Cart updated!\n")
}

func (m *Menu) viewCart() {
	items := m.cart.Items()
	if len(items) == 0 {
		m.printf("Cart is empty!\n")
		return
	}

	m.printf("\n--- SHOPPING CART ---\n")
	for i, item := range items {
		m.printf("%d. %s - %d x $%s = $%s\n",
			i+1, item.Product.Name, item.Quantity,
			item.Product.Price.StringFixed(2), item.LineTotal().StringFixed(2))
	}

	subtotal := m.cart.Subtotal()
	discount := m.cart.Discount()
	m.printf("Subtotal: $%s\n", subtotal.StringFixed(2))
	if discount.IsPositive() {
		m.printf("Discount: -$%s\n", discount.StringFixed(2))
		m.printf("Final Total: $%s\n", subtotal.Sub(discount).StringFixed(2))
	} else {
		m.printf("Total: $%s\n", subtotal.StringFixed(2))
	}
}

func (m *Menu) applyDiscount() {
	kindStr, ok := m.prompt("Discount type (percentage/fixed): ")
	if !ok {
		return
	}
	value, ok := m.promptDecimal("Value: ")
	if !ok {
		return
	}
	if err := m.cart.ApplyDiscount(cart.DiscountKind(kindStr), value); err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Discount applied: $%s\n", m.cart.Discount().StringFixed(2))
}

func (m *Menu) doCheckout(ctx context.Context) {
	s, err := m.engine.Checkout(ctx, m.cart)
	if err != nil {
		if s == nil {
			m.printf("Checkout failed: %v\n", err)
			return
		}
		// Best-effort persistence: the sale is committed in memory even
		// though saving it to disk failed.
		m.printf("Warning: sale committed but not saved: %v\n", err)
	}
	m.printf("Checkout completed successfully! Total: $%s\n", s.Final.StringFixed(2))

	format, ok := m.prompt("Export bill? (txt/csv/no): ")
	if !ok || format == "" || format == "no" {
		return
	}
	path, err := bill.Export(m.cfg.BillDir, s, bill.Format(format))
	if err != nil {
		m.printf("Error generating bill: %v\n", err)
		return
	}
	m.printf("Bill saved as %s\n", path)
}
