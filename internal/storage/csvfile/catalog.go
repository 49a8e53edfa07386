package csvfile

import (
	"context"
	"encoding/csv"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/minimart/pos/internal/domain/catalog"
	"github.com/minimart/pos/internal/domain/product"
)

var catalogHeader = []string{"product_id", "name", "price", "stock_quantity"}

var _ catalog.Store = (*CatalogStore)(nil)

// CatalogStore persists the product catalog as a CSV file with columns
// product_id, name, price, stock_quantity.
type CatalogStore struct {
	path string
}

// NewCatalogStore returns a CatalogStore backed by the file at path.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// parseProduct converts one header-keyed CSV record into a Product,
// validating domain invariants along the way.
func parseProduct(h header, record []string) (product.Product, error) {
	id, err := h.field(record, "product_id")
	if err != nil {
		return product.Product{}, err
	}
	name, err := h.field(record, "name")
	if err != nil {
		return product.Product{}, err
	}
	priceStr, err := h.field(record, "price")
	if err != nil {
		return product.Product{}, err
	}
	stockStr, err := h.field(record, "stock_quantity")
	if err != nil {
		return product.Product{}, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return product.Product{}, errors.Wrapf(err, "parse price %q", priceStr)
	}
	stock, err := strconv.Atoi(stockStr)
	if err != nil {
		return product.Product{}, errors.Wrapf(err, "parse stock_quantity %q", stockStr)
	}

	p := product.Product{ID: id, Name: name, Price: price, Stock: stock}
	if err := p.Validate(); err != nil {
		return product.Product{}, err
	}
	return p, nil
}

// Load reads the full catalog. A missing file yields an empty catalog;
// malformed rows are skipped with a logged diagnostic.
func (s *CatalogStore) Load(ctx context.Context) ([]product.Product, error) {
	lg := zctx.From(ctx)

	f, err := openOrEmpty(s.path)
	if err != nil {
		return nil, err
	}
	if f == nil {
		lg.Info("No catalog file found, starting empty", zap.String("path", s.path))
		return nil, nil
	}
	defer f.Close()

	var products []product.Product
	err = readRows(csv.NewReader(f),
		func(h header, record []string) error {
			p, err := parseProduct(h, record)
			if err != nil {
				return err
			}
			products = append(products, p)
			return nil
		},
		func(line int, err error) {
			lg.Warn("Skipping malformed catalog row",
				zap.String("path", s.path), zap.Int("line", line), zap.Error(err))
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}

	lg.Info("Loaded catalog", zap.String("path", s.path), zap.Int("products", len(products)))
	return products, nil
}

// Save rewrites the full catalog file.
func (s *CatalogStore) Save(_ context.Context, products []product.Product) error {
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{p.ID, p.Name, p.Price.String(), strconv.Itoa(p.Stock)}
	}
	return writeAll(s.path, catalogHeader, rows)
}
