// Command pos-import loads a CSV of products into the catalog store without
// starting an interactive session. Rows that fail validation or collide with
// existing products are skipped and reported, never aborting the batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/minimart/pos/internal/domain/catalog"
	"github.com/minimart/pos/internal/storage/csvfile"
)

func main() {
	var (
		importFile    string
		inventoryFile string
	)
	flag.StringVar(&importFile, "file", "", "CSV file to import (product_id,name,price,stock_quantity)")
	flag.StringVar(&inventoryFile, "inventory", "data/inventory.csv", "catalog store file")
	flag.Parse()

	if importFile == "" {
		fmt.Fprintln(os.Stderr, "usage: pos-import -file products.csv [-inventory data/inventory.csv]")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lg, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()
	ctx = zctx.Base(ctx, lg)

	if err := run(ctx, lg, importFile, inventoryFile); err != nil {
		lg.Fatal("Import failed", zap.Error(err))
	}
}

func run(ctx context.Context, lg *zap.Logger, importFile, inventoryFile string) error {
	cat, err := catalog.New(ctx, csvfile.NewCatalogStore(inventoryFile))
	if err != nil {
		return err
	}

	// The import file uses the same format as the catalog store, so the
	// store's tolerant parser handles malformed rows for us.
	rows, err := csvfile.NewCatalogStore(importFile).Load(ctx)
	if err != nil {
		return err
	}

	res, err := cat.Import(ctx, rows)
	for _, skipped := range res.Skipped {
		lg.Warn("Skipped row", zap.String("product_id", skipped.ProductID), zap.String("reason", skipped.Reason))
	}
	if err != nil {
		return err
	}

	lg.Info("Import complete",
		zap.Int("imported", res.Imported),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("catalog_size", cat.Len()))
	return nil
}
