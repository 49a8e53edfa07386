package catalog

import (
	"context"

	"github.com/minimart/pos/internal/domain/product"
)

// SkippedRow records why one import row was not applied.
type SkippedRow struct {
	ProductID string
	Reason    string
}

// ImportResult summarizes a batch import.
type ImportResult struct {
	Imported int
	Skipped  []SkippedRow
}

// Import inserts a batch of products, applying the same validation as Add.
// Rows that fail validation or collide with an existing ID are skipped with
// a per-row diagnostic; they never abort the batch. The catalog is persisted
// once at the end, not per row.
func (c *Catalog) Import(ctx context.Context, rows []product.Product) (ImportResult, error) {
	var res ImportResult
	for _, row := range rows {
		if _, ok := c.byID[row.ID]; ok {
			res.Skipped = append(res.Skipped, SkippedRow{ProductID: row.ID, Reason: "product ID already exists"})
			continue
		}
		if err := row.Validate(); err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{ProductID: row.ID, Reason: err.Error()})
			continue
		}

		c.insert(row)
		res.Imported++
	}

	return res, c.Save(ctx)
}
