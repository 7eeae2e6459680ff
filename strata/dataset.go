package strata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrNotTabular    = errors.New("not tabular")
	ErrUnknownColumn = errors.New("unknown column")
	ErrUnknownMode   = errors.New("unknown combination mode")
	ErrShape         = errors.New("mismatched stratum tables")
)

// Dataset is a rectangular, in-memory data set: named columns and
// string-valued rows indexed positionally against Columns.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of rows.
func (d Dataset) NumRows() int { return len(d.Rows) }

// ColumnIndex returns the position of name in Columns, or -1.
func (d Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of one column in row order.
func (d Dataset) Column(name string) ([]string, error) {
	i := d.ColumnIndex(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]string, len(d.Rows))
	for r, row := range d.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// validate rejects non-tabular input: no columns, or rows whose length
// disagrees with the column count.
func (d Dataset) validate() error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrNotTabular)
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Columns) {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrNotTabular, i, len(row), len(d.Columns))
		}
	}
	return nil
}

// FromCSV reads a dataset from CSV. The first record is the header.
func FromCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Dataset{}, fmt.Errorf("%w: empty input", ErrNotTabular)
	}
	return Dataset{Columns: records[0], Rows: records[1:]}, nil
}
