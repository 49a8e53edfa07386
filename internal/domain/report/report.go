// Package report provides read-only aggregations over the catalog and the
// sales ledger.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minimart/pos/internal/domain/catalog"
	"github.com/minimart/pos/internal/domain/product"
	"github.com/minimart/pos/internal/domain/sale"
)

// Service runs reporting queries. It never mutates catalog or ledger state.
type Service struct {
	catalog *catalog.Catalog
	ledger  *sale.Ledger
	now     func() time.Time
}

// NewService creates a reporting Service over the given catalog and ledger.
func NewService(c *catalog.Catalog, l *sale.Ledger) *Service {
	return &Service{catalog: c, ledger: l, now: time.Now}
}

// sameDay reports whether two instants fall on the same local calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DailySales returns all sales whose timestamp falls on the given local
// calendar day. A day with no sales yields an empty slice, not an error.
func (s *Service) DailySales(day time.Time) []sale.Sale {
	var sales []sale.Sale
	for _, rec := range s.ledger.All() {
		if sameDay(rec.CreatedAt, day) {
			sales = append(sales, rec)
		}
	}
	return sales
}

// Period is an inclusive range of calendar days.
type Period struct {
	Start time.Time
	End   time.Time
}

// DefaultPeriod returns the trailing 7 calendar days ending on now's day.
func DefaultPeriod(now time.Time) Period {
	return Period{Start: now.AddDate(0, 0, -7), End: now}
}

// Report summarizes the sales within a period.
type Report struct {
	Period Period
	Count  int
	Total  decimal.Decimal
	Sales  []sale.Sale
}

// SalesReport returns the count, total final amount, and matching sales of
// the period, inclusive of both bounds at calendar-day granularity.
func (s *Service) SalesReport(p Period) Report {
	rep := Report{Period: p, Total: decimal.Zero}
	for _, rec := range s.ledger.All() {
		if inPeriod(rec.CreatedAt, p) {
			rep.Sales = append(rep.Sales, rec)
			rep.Count++
			rep.Total = rep.Total.Add(rec.Final)
		}
	}
	return rep
}

func inPeriod(t time.Time, p Period) bool {
	day := truncateDay(t)
	return !day.Before(truncateDay(p.Start)) && !day.After(truncateDay(p.End))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LowStock returns the products whose stock is at or below the threshold,
// in catalog insertion order.
func (s *Service) LowStock(threshold int) []product.Product {
	var low []product.Product
	for _, p := range s.catalog.All() {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}
	return low
}

// ProductValue pairs a product with its stock value (price * stock).
type ProductValue struct {
	Product product.Product
	Value   decimal.Decimal
}

// Valuation returns the top-n products by stock value, descending. Ties keep
// catalog insertion order (stable sort).
func (s *Service) Valuation(n int) []ProductValue {
	values := make([]ProductValue, 0, s.catalog.Len())
	for _, p := range s.catalog.All() {
		values = append(values, ProductValue{Product: p, Value: p.StockValue()})
	}

	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Value.GreaterThan(values[j].Value)
	})

	if n > 0 && len(values) > n {
		values = values[:n]
	}
	return values
}

// Stats aggregates catalog-wide product statistics.
type Stats struct {
	TotalProducts int
	StockValue    decimal.Decimal
	LowStock      int
	OutOfStock    int
}

// Stats returns catalog-wide totals. Low stock counts products at or below
// a stock of 5, matching the default reporting threshold.
func (s *Service) Stats() Stats {
	st := Stats{StockValue: decimal.Zero}
	for _, p := range s.catalog.All() {
		st.TotalProducts++
		st.StockValue = st.StockValue.Add(p.StockValue())
		if p.Stock <= 5 {
			st.LowStock++
		}
		if p.Stock == 0 {
			st.OutOfStock++
		}
	}
	return st
}
