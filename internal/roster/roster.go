// Package roster reads the participant table a batch is generated from.
// The first CSV record is the header; every following record becomes a Row
// keyed by those column names.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row maps a column name to the value of that column in one record.
type Row map[string]string

// Lookup returns the value for column and whether the column was present.
func (r Row) Lookup(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// Reader yields roster rows one at a time.
type Reader struct {
	csv    *csv.Reader
	header []string
	line   int
	closer io.Closer
}

// NewReader reads the header record from r and returns a Reader positioned
// at the first data row. Rows may be shorter or longer than the header, and
// bare quotes inside unquoted fields are kept literally.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("roster is empty: missing header row")
		}
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	// Spreadsheet exports often prefix the first column with a UTF-8 BOM.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	return &Reader{csv: cr, header: header}, nil
}

// Open opens the CSV file at path. The caller must Close the returned Reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f
	return r, nil
}

// Header returns the column names in file order.
func (r *Reader) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

// Next returns the next row, or io.EOF once the roster is exhausted.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read roster row %d: %w", r.line+1, err)
	}
	r.line++

	// Columns past the end of a short record stay absent; fields past the
	// end of the header are dropped.
	row := make(Row, len(r.header))
	for i, col := range r.header {
		if i >= len(record) {
			break
		}
		row[col] = record[i]
	}
	return row, nil
}

// Close releases the underlying file, if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
