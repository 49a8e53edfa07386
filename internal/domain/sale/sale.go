// Package sale defines the immutable sale record and the append-only ledger
// of completed transactions.
package sale

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Item is one committed line within a sale: a product snapshot taken at
// commit time, never re-read from the catalog afterwards.
type Item struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

// Sale is an immutable record of one completed checkout. It is created only
// by the checkout engine and never mutated or deleted after append.
//
// Sales reloaded from the ledger store carry an empty ID and no Items: the
// ledger format persists only the monetary summary, so itemization is lost
// across restarts.
type Sale struct {
	ID        string
	Items     []Item
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Final     decimal.Decimal
	CreatedAt time.Time
}

// Store defines persistence operations for the sales ledger.
type Store interface {
	Load(ctx context.Context) ([]Sale, error)
	Save(ctx context.Context, sales []Sale) error
}

// Ledger is the append-only history of sales, ordered by insertion. Every
// append rewrites the full backing store.
type Ledger struct {
	store Store
	sales []Sale
}

// NewLedger creates a Ledger and loads its history from the store. A missing
// backing file is treated as an empty history by the store.
func NewLedger(ctx context.Context, store Store) (*Ledger, error) {
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load ledger")
	}
	return &Ledger{store: store, sales: loaded}, nil
}

// Append adds a sale to the history and persists the full ledger. On a
// persistence failure the in-memory append is kept and the error surfaced.
func (l *Ledger) Append(ctx context.Context, s Sale) error {
	l.sales = append(l.sales, s)
	if err := l.store.Save(ctx, l.sales); err != nil {
		return errors.Wrap(err, "save ledger")
	}
	return nil
}

// All returns a copy of the full sale history in insertion order.
func (l *Ledger) All() []Sale {
	sales := make([]Sale, len(l.sales))
	copy(sales, l.sales)
	return sales
}

// Len returns the number of recorded sales.
func (l *Ledger) Len() int {
	return len(l.sales)
}
