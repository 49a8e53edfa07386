package app

import (
	"path/filepath"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (POS_ prefix), flags, or a YAML config file.
type Config struct {
	DataDir           string `default:"data" usage:"Directory holding the catalog and ledger files" flag:"data-dir"`
	InventoryFile     string `default:"inventory.csv" usage:"Catalog store file name" flag:"inventory-file"`
	SalesFile         string `default:"sales.csv" usage:"Sales ledger store file name" flag:"sales-file"`
	BillDir           string `default:"." usage:"Directory where exported bills are written" flag:"bill-dir"`
	LowStockThreshold int    `default:"5" usage:"Default threshold for the low stock report" flag:"low-stock-threshold"`
	ValuationTop      int    `default:"5" usage:"Number of products shown in the valuation report" flag:"valuation-top"`
}

// InventoryPath returns the catalog store path under DataDir.
func (c *Config) InventoryPath() string {
	return filepath.Join(c.DataDir, c.InventoryFile)
}

// SalesPath returns the ledger store path under DataDir.
func (c *Config) SalesPath() string {
	return filepath.Join(c.DataDir, c.SalesFile)
}

// LoadConfig loads configuration from environment variables, flags, and an
// optional pos.yaml config file.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "POS",
		Files:     []string{"pos.yaml", "/etc/pos/pos.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}
