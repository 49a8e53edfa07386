// Package menu implements the interactive console session. It is a thin
// presentation layer: it parses operator input, calls into the core, and
// renders results. It never holds domain state of its own.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/minimart/pos/internal/domain/cart"
	"github.com/minimart/pos/internal/domain/catalog"
	"github.com/minimart/pos/internal/domain/checkout"
	"github.com/minimart/pos/internal/domain/report"
	"github.com/minimart/pos/internal/storage/csvfile"
)

// Config holds the presentation-level settings of the session.
type Config struct {
	BillDir           string
	LowStockThreshold int
	ValuationTop      int
}

// Menu drives one operator session over a line-based console.
type Menu struct {
	cfg     Config
	catalog *catalog.Catalog
	cart    *cart.Cart
	engine  *checkout.Engine
	reports *report.Service

	in  *bufio.Scanner
	out io.Writer
}

// New creates a Menu over the given core services.
func New(cfg Config, c *catalog.Catalog, basket *cart.Cart, e *checkout.Engine, r *report.Service) *Menu {
	return &Menu{cfg: cfg, catalog: c, cart: basket, engine: e, reports: r}
}

// Run reads operator choices from in and renders to out until the operator
// exits or ctx is cancelled. Every core operation completes before the next
// prompt; the loop itself never mutates domain state.
func (m *Menu) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	m.in = bufio.NewScanner(in)
	m.out = out

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.printf("\n===== RETAIL POS =====\n")
		m.printf("1. Inventory\n2. Billing\n3. Reports\n4. Exit\n")

		choice, ok := m.prompt("Choice: ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			m.inventoryMenu(ctx)
		case "2":
			m.billingMenu(ctx)
		case "3":
			m.reportsMenu()
		case "4":
			m.printf("Goodbye!\n")
			return nil
		default:
			m.printf("Invalid choice! Please try again.\n")
		}
	}
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// prompt prints the label and returns the next trimmed input line. The
// second return value is false once input is exhausted.
func (m *Menu) prompt(label string) (string, bool) {
	m.printf("%s", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptInt(label string, fallback int) (int, bool) {
	s, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	if s == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		m.printf("Invalid number: %q\n", s)
		return 0, false
	}
	return n, true
}

func (m *Menu) promptDecimal(label string) (decimal.Decimal, bool) {
	s, ok := m.prompt(label)
	if !ok || s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		m.printf("Invalid amount: %q\n", s)
		return decimal.Zero, false
	}
	return d, true
}

func (m *Menu) listProducts() {
	products := m.catalog.All()
	if len(products) == 0 {
		m.printf("No products available!\n")
		return
	}

	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t$%s\t%d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	}
	w.Flush()
}

func (m *Menu) inventoryMenu(ctx context.Context) {
	m.printf("\n--- Inventory ---\n")
	m.printf("1. Add product\n2. Update product\n3. Delete product\n4. Search\n5. View all\n6. Import from CSV\n7. Back\n")

	choice, ok := m.prompt("Choice: ")
	if !ok {
		return
	}
	switch choice {
	case "1":
		m.addProduct(ctx)
	case "2":
		m.updateProduct(ctx)
	case "3":
		m.deleteProduct(ctx)
	case "4":
		m.searchProducts()
	case "5":
		m.listProducts()
	case "6":
		m.importProducts(ctx)
	case "7":
	default:
		m.printf("Invalid choice! Please try again.\n")
	}
}

func (m *Menu) addProduct(ctx context.Context) {
	id, ok := m.prompt("Product ID: ")
	if !ok || id == "" {
		return
	}
	name, ok := m.prompt("Name: ")
	if !ok {
		return
	}
	price, ok := m.promptDecimal("Price: ")
	if !ok {
		return
	}
	stock, ok := m.promptInt("Stock quantity: ", 0)
	if !ok {
		return
	}

	if err := m.catalog.Add(ctx, id, name, price, stock); err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Product added successfully!\n")
}

func (m *Menu) updateProduct(ctx context.Context) {
	id, ok := m.prompt("Product ID: ")
	if !ok || id == "" {
		return
	}

	var params catalog.UpdateParams
	if name, ok := m.prompt("New name (blank to keep): "); ok && name != "" {
		params.Name = &name
	}
	if s, ok := m.prompt("New price (blank to keep): "); ok && s != "" {
		price, err := decimal.NewFromString(s)
		if err != nil {
			m.printf("Invalid amount: %q\n", s)
			return
		}
		params.Price = &price
	}
	if s, ok := m.prompt("New stock (blank to keep): "); ok && s != "" {
		stock, err := strconv.Atoi(s)
		if err != nil {
			m.printf("Invalid number: %q\n", s)
			return
		}
		params.Stock = &stock
	}

	if err := m.catalog.Update(ctx, id, params); err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Product updated successfully!\n")
}

func (m *Menu) deleteProduct(ctx context.Context) {
	id, ok := m.prompt("Product ID: ")
	if !ok || id == "" {
		return
	}
	if err := m.catalog.Delete(ctx, id); err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Product deleted successfully!\n")
}

func (m *Menu) searchProducts() {
	keyword, ok := m.prompt("Keyword: ")
	if !ok {
		return
	}
	results := m.catalog.Search(keyword)
	if len(results) == 0 {
		m.printf("No products found!\n")
		return
	}
	for _, p := range results {
		m.printf("%s: %s - $%s (Stock: %d)\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	}
}

func (m *Menu) importProducts(ctx context.Context) {
	path, ok := m.prompt("Import file path: ")
	if !ok || path == "" {
		return
	}

	rows, err := csvfile.NewCatalogStore(path).Load(ctx)
	if err != nil {
		m.printf("Error reading %s: %v\n", path, err)
		return
	}

	res, err := m.catalog.Import(ctx, rows)
	for _, skipped := range res.Skipped {
		m.printf("Skipping %s: %s\n", skipped.ProductID, skipped.Reason)
	}
	if err != nil {
		m.printf("Imported %d products, but saving failed: %v\n", res.Imported, err)
		return
	}
	m.printf("Successfully imported %d products from %s\n", res.Imported, path)
}
