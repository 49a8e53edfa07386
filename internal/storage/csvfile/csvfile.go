// Package csvfile implements the flat-file stores backing the catalog and
// the sales ledger: header-keyed CSV, UTF-8, rewritten in full on every save.
//
// Loads are tolerant: a missing file is an empty store, and malformed rows
// are skipped individually with a logged diagnostic instead of aborting the
// load. Saves are plain rewrites and not crash-atomic, which is acceptable
// for a single-user single-process store.
package csvfile

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/go-faster/errors"
)

// header maps column names to their index in the file's header row.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	record, err := r.Read()
	if err != nil {
		return nil, err
	}

	h := make(header, len(record))
	for i, name := range record {
		h[name] = i
	}
	return h, nil
}

// field returns the named column of a record, or an error naming the
// missing column so row diagnostics stay readable.
func (h header) field(record []string, name string) (string, error) {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return "", errors.Errorf("missing column %q", name)
	}
	return record[i], nil
}

// openOrEmpty opens the file for reading, mapping a missing file to a nil
// reader so callers can treat it as an empty store.
func openOrEmpty(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "open store")
	}
	return f, nil
}

// writeAll rewrites path with the given header and rows.
func writeAll(path string, head []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create store")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(head); err != nil {
		return errors.Wrap(err, "write header")
	}
	if err := w.WriteAll(rows); err != nil {
		return errors.Wrap(err, "write rows")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flush store")
	}
	return nil
}

// readRows reads every data row after the header, invoking parse per row.
// parse errors are reported through skip; read continues.
func readRows(r *csv.Reader, parse func(header, []string) error, skip func(line int, err error)) error {
	h, err := readHeader(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrap(err, "read header")
	}

	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			skip(line, err)
			continue
		}
		if err := parse(h, record); err != nil {
			skip(line, err)
		}
	}
}
