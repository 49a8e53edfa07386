package menu

import (
	"time"

	"github.com/minimart/pos/internal/domain/report"
)

const dateLayout = "2006-01-02"

func (m *Menu) reportsMenu() {
	m.printf("\n--- Reports ---\n")
	m.printf("1. Sales report\n2. Daily sales\n3. Low stock\n4. Product statistics\n5. Back\n")

	choice, ok := m.prompt("Choice: ")
	if !ok {
		return
	}
	switch choice {
	case "1":
		m.salesReport()
	case "2":
		m.dailySales()
	case "3":
		m.lowStock()
	case "4":
		m.statistics()
	case "5":
	default:
		m.printf("Invalid choice! Please try again.\n")
	}
}

// promptDate returns the parsed date, or fallback when the operator leaves
// the field blank.
func (m *Menu) promptDate(label string, fallback time.Time) (time.Time, bool) {
	s, ok := m.prompt(label)
	if !ok {
		return time.Time{}, false
	}
	if s == "" {
		return fallback, true
	}
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		m.printf("Invalid date format! Please use YYYY-MM-DD.\n")
		return time.Time{}, false
	}
	return d, true
}

func (m *Menu) salesReport() {
	def := report.DefaultPeriod(time.Now())
	start, ok := m.promptDate("Start date (blank for 7 days ago): ", def.Start)
	if !ok {
		return
	}
	end, ok := m.promptDate("End date (blank for today): ", def.End)
	if !ok {
		return
	}

	rep := m.reports.SalesReport(report.Period{Start: start, End: end})
	m.printf("\nSales report %s to %s\n", rep.Period.Start.Format(dateLayout), rep.Period.End.Format(dateLayout))
	m.printf("Transactions: %d\nTotal: $%s\n", rep.Count, rep.Total.StringFixed(2))
	for i, s := range rep.Sales {
		m.printf("%d. %s - $%s\n", i+1, s.CreatedAt.Format("2006-01-02 15:04"), s.Final.StringFixed(2))
	}
}

func (m *Menu) dailySales() {
	day, ok := m.promptDate("Date (blank for today): ", time.Now())
	if !ok {
		return
	}

	sales := m.reports.DailySales(day)
	if len(sales) == 0 {
		m.printf("No sales on %s.\n", day.Format(dateLayout))
		return
	}
	for i, s := range sales {
		m.printf("%d. %s - $%s\n", i+1, s.CreatedAt.Format("15:04"), s.Final.StringFixed(2))
	}
}

func (m *Menu) lowStock() {
	threshold, ok := m.promptInt("Threshold (blank for default): ", m.cfg.LowStockThreshold)
	if !ok {
		return
	}

	low := m.reports.LowStock(threshold)
	if len(low) == 0 {
		m.printf("No low stock products found!\n")
		return
	}
	m.printf("\nLow Stock Products (threshold: %d):\n", threshold)
	for _, p := range low {
		m.printf("%s: %s - Stock: %d\n", p.ID, p.Name, p.Stock)
	}
}

func (m *Menu) statistics() {
	st := m.reports.Stats()
	m.printf("\n--- PRODUCT STATISTICS ---\n")
	m.printf("Total Products: %d\n", st.TotalProducts)
	m.printf("Total Stock Value: $%s\n", st.StockValue.StringFixed(2))
	m.printf("Low Stock Items: %d\n", st.LowStock)
	m.printf("Out of Stock Items: %d\n", st.OutOfStock)

	top := m.reports.Valuation(m.cfg.ValuationTop)
	if len(top) == 0 {
		return
	}
	m.printf("\nTop %d Most Valuable Products (by stock value):\n", len(top))
	for i, pv := range top {
		m.printf("%d. %s - $%s\n", i+1, pv.Product.Name, pv.Value.StringFixed(2))
	}
}
