package bill

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimart/pos/internal/domain/sale"
)

func testSale(discount string) *sale.Sale {
	d := decimal.RequireFromString(discount)
	return &sale.Sale{
		ID: "abc-123",
		Items: []sale.Item{
			{ProductID: "P001", Name: "Milk", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 2, LineTotal: decimal.RequireFromString("5.00")},
			{ProductID: "P002", Name: "Bread", UnitPrice: decimal.RequireFromString("1.20"), Quantity: 1, LineTotal: decimal.RequireFromString("1.20")},
		},
		Subtotal:  decimal.RequireFromString("6.20"),
		Discount:  d,
		Final:     decimal.RequireFromString("6.20").Sub(d),
		CreatedAt: time.Date(2025, 3, 10, 14, 30, 5, 0, time.UTC),
	}
}

func TestFilename(t *testing.T) {
	s := testSale("0")
	assert.Equal(t, "bill_20250310_143005.txt", Filename(s, FormatTXT))
	assert.Equal(t, "bill_20250310_143005.csv", Filename(s, FormatCSV))
}

func TestWriteTXT(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteTXT(&b, testSale("1.00")))
	out := b.String()

	assert.Contains(t, out, "Date: 2025-03-10 14:30:05")
	assert.Contains(t, out, "Milk - 2 x $2.50 = $5.00")
	assert.Contains(t, out, "Bread - 1 x $1.20 = $1.20")
	assert.Contains(t, out, "Subtotal: $6.20")
	assert.Contains(t, out, "Discount: -$1.00")
	assert.Contains(t, out, "Total: $5.20")
}

func TestWriteTXT_NoDiscountLineWhenZero(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteTXT(&b, testSale("0")))

	assert.NotContains(t, b.String(), "Discount")
	assert.Contains(t, b.String(), "Total: $6.20")
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteCSV(&b, testSale("1.00")))
	out := b.String()

	assert.Contains(t, out, "Product,Quantity,Unit Price,Total")
	assert.Contains(t, out, "Milk,2,$2.50,$5.00")
	assert.Contains(t, out, "Discount,,,-$1.00")
	assert.Contains(t, out, "Total,,,$5.20")
}

func TestExport(t *testing.T) {
	dir := t.TempDir()

	path, err := Export(dir, testSale("0"), FormatTXT)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bill_20250310_143005.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "BILL")
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(t.TempDir(), testSale("0"), Format("pdf"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}
