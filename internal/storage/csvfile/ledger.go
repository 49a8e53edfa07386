package csvfile

import (
	"context"
	"encoding/csv"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/minimart/pos/internal/domain/sale"
)

var ledgerHeader = []string{"datetime", "total_amount", "discount", "final_amount"}

var _ sale.Store = (*LedgerStore)(nil)

// LedgerStore persists the sales ledger as a CSV file with columns
// datetime, total_amount, discount, final_amount.
//
// Line items are not part of the format, so reloaded sales carry an empty
// item list and no ID. That information loss is the store's contract, not an
// accident of this implementation.
type LedgerStore struct {
	path string
}

// NewLedgerStore returns a LedgerStore backed by the file at path.
func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

func parseSale(h header, record []string) (sale.Sale, error) {
	dtStr, err := h.field(record, "datetime")
	if err != nil {
		return sale.Sale{}, err
	}
	totalStr, err := h.field(record, "total_amount")
	if err != nil {
		return sale.Sale{}, err
	}
	discountStr, err := h.field(record, "discount")
	if err != nil {
		return sale.Sale{}, err
	}

	createdAt, err := time.Parse(time.RFC3339, dtStr)
	if err != nil {
		return sale.Sale{}, errors.Wrapf(err, "parse datetime %q", dtStr)
	}
	subtotal, err := decimal.NewFromString(totalStr)
	if err != nil {
		return sale.Sale{}, errors.Wrapf(err, "parse total_amount %q", totalStr)
	}
	discount, err := decimal.NewFromString(discountStr)
	if err != nil {
		return sale.Sale{}, errors.Wrapf(err, "parse discount %q", discountStr)
	}

	return sale.Sale{
		Subtotal:  subtotal,
		Discount:  discount,
		Final:     subtotal.Sub(discount),
		CreatedAt: createdAt,
	}, nil
}

// Load reads the full sale history. A missing file yields an empty history;
// malformed rows are skipped with a logged diagnostic.
func (s *LedgerStore) Load(ctx context.Context) ([]sale.Sale, error) {
	lg := zctx.From(ctx)

	f, err := openOrEmpty(s.path)
	if err != nil {
		return nil, err
	}
	if f == nil {
		lg.Info("No sales file found, starting empty", zap.String("path", s.path))
		return nil, nil
	}
	defer f.Close()

	var sales []sale.Sale
	err = readRows(csv.NewReader(f),
		func(h header, record []string) error {
			rec, err := parseSale(h, record)
			if err != nil {
				return err
			}
			sales = append(sales, rec)
			return nil
		},
		func(line int, err error) {
			lg.Warn("Skipping malformed ledger row",
				zap.String("path", s.path), zap.Int("line", line), zap.Error(err))
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "read ledger")
	}

	lg.Info("Loaded sales history", zap.String("path", s.path), zap.Int("sales", len(sales)))
	return sales, nil
}

// Save rewrites the full ledger file.
func (s *LedgerStore) Save(_ context.Context, sales []sale.Sale) error {
	rows := make([][]string, len(sales))
	for i, rec := range sales {
		rows[i] = []string{
			rec.CreatedAt.Format(time.RFC3339),
			rec.Subtotal.String(),
			rec.Discount.String(),
			rec.Final.String(),
		}
	}
	return writeAll(s.path, ledgerHeader, rows)
}
