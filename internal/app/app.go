// Package app wires the POS core together: configuration, file stores,
// domain services, and the interactive menu.
package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/minimart/pos/internal/domain/cart"
	"github.com/minimart/pos/internal/domain/catalog"
	"github.com/minimart/pos/internal/domain/checkout"
	"github.com/minimart/pos/internal/domain/report"
	"github.com/minimart/pos/internal/domain/sale"
	"github.com/minimart/pos/internal/menu"
	"github.com/minimart/pos/internal/storage/csvfile"
)

// Run creates all dependencies and drives the interactive session until the
// operator exits or the context is cancelled. It is the single wiring point
// for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	ctx = zctx.Base(ctx, lg)
	lg.Info("Initializing",
		zap.String("inventory", cfg.InventoryPath()),
		zap.String("sales", cfg.SalesPath()))

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return errors.Wrap(err, "create data dir")
	}

	// Both stores tolerate missing files, so a first run starts empty.
	var (
		cat    *catalog.Catalog
		ledger *sale.Ledger
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cat, err = catalog.New(gctx, csvfile.NewCatalogStore(cfg.InventoryPath()))
		return err
	})
	g.Go(func() (err error) {
		ledger, err = sale.NewLedger(gctx, csvfile.NewLedgerStore(cfg.SalesPath()))
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	engine := checkout.NewEngine(cat, ledger)
	reports := report.NewService(cat, ledger)
	basket := cart.New(cat)

	m := menu.New(menu.Config{
		BillDir:           cfg.BillDir,
		LowStockThreshold: cfg.LowStockThreshold,
		ValuationTop:      cfg.ValuationTop,
	}, cat, basket, engine, reports)

	return m.Run(ctx, os.Stdin, os.Stdout)
}
