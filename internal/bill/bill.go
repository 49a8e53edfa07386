// Package bill renders a committed sale into a human-readable or tabular
// file for the customer. Bills are write-once exports and play no role in
// core correctness.
package bill

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/minimart/pos/internal/domain/sale"
)

// Format selects the bill file rendering.
type Format string

const (
	// FormatTXT writes a plain-text receipt.
	FormatTXT Format = "txt"
	// FormatCSV writes a tabular rendering.
	FormatCSV Format = "csv"
)

// ErrUnknownFormat is returned for formats other than txt and csv.
var ErrUnknownFormat = errors.New("unknown bill format")

// Filename returns the export file name for a sale, unique to the second:
// bill_YYYYMMDD_HHMMSS.<ext>.
func Filename(s *sale.Sale, format Format) string {
	return fmt.Sprintf("bill_%s.%s", s.CreatedAt.Format("20060102_150405"), format)
}

// Export writes the sale's bill into dir and returns the written path.
func Export(dir string, s *sale.Sale, format Format) (string, error) {
	path := filepath.Join(dir, Filename(s, format))

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create bill file")
	}
	defer f.Close()

	switch format {
	case FormatTXT:
		err = WriteTXT(f, s)
	case FormatCSV:
		err = WriteCSV(f, s)
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return "", errors.Wrap(err, "write bill")
	}
	return path, nil
}

// WriteTXT renders a plain-text receipt: date, one line per item with unit
// price and line total, subtotal, discount when nonzero, final total.
func WriteTXT(w io.Writer, s *sale.Sale) error {
	rule := strings.Repeat("=", 50)
	thin := strings.Repeat("-", 50)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nBILL\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Date: %s\n%s\n", s.CreatedAt.Format("2006-01-02 15:04:05"), thin)
	b.WriteString("Items:\n")
	for _, item := range s.Items {
		fmt.Fprintf(&b, "  %s - %d x $%s = $%s\n",
			item.Name, item.Quantity, item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "%s\nSubtotal: $%s\n", thin, s.Subtotal.StringFixed(2))
	if s.Discount.IsPositive() {
		fmt.Fprintf(&b, "Discount: -$%s\n", s.Discount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s\n%s\n", s.Final.StringFixed(2), rule)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCSV renders the tabular bill variant.
func WriteCSV(w io.Writer, s *sale.Sale) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"BILL"},
		{"Date", s.CreatedAt.Format("2006-01-02 15:04:05")},
		{},
		{"Product", "Quantity", "Unit Price", "Total"},
	}
	for _, item := range s.Items {
		records = append(records, []string{
			item.Name,
			strconv.Itoa(item.Quantity),
			"$" + item.UnitPrice.StringFixed(2),
			"$" + item.LineTotal.StringFixed(2),
		})
	}
	records = append(records, []string{}, []string{"Subtotal", "", "", "$" + s.Subtotal.StringFixed(2)})
	if s.Discount.IsPositive() {
		records = append(records, []string{"Discount", "", "", "-$" + s.Discount.StringFixed(2)})
	}
	records = append(records, []string{"Total", "", "", "$" + s.Final.StringFixed(2)})

	if err := cw.WriteAll(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
