// Package strata partitions a dataset, applies a table-building function to
// each partition, and recombines the per-stratum tables into one.
//
// [Build] is the entry point: it splits the dataset by the unique value
// combinations of one or more stratifying columns, runs a [BuildFunc] over
// each stratum, and combines the resulting tables either side by side
// ([Merge], under spanning headers) or vertically ([Stack], with group
// header rows). The stratum keys and their synthesized labels travel with
// the result as metadata.
package strata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/averden/sumtab"
)

// Mode selects how per-stratum tables combine.
type Mode int

const (
	// Merge lays stratum tables side by side under spanning headers.
	Merge Mode = iota
	// Stack concatenates stratum tables vertically with group header rows.
	Stack
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Merge:
		return "merge"
	case Stack:
		return "stack"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a combination-mode string.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "merge":
		return Merge, nil
	case "stack":
		return Stack, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// BuildFunc constructs a styled table from one stratum of the dataset.
// Extra caller-supplied arguments close over the function.
type BuildFunc func(Dataset) (sumtab.StyledTable, error)

// Option configures [Build].
type Option func(*options)

type options struct {
	separator string
}

// WithSeparator sets the string joining stratum key values into labels.
// Default ", ".
func WithSeparator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// Stratum is the metadata for one partition: its key values, one per
// stratifying column, and the synthesized header label.
type Stratum struct {
	Keys  []string
	Label string
}

// Result is the combined table plus the stratum-key metadata, tagged with
// the combination mode that produced it.
type Result struct {
	Table  sumtab.StyledTable
	Mode   Mode
	Strata []Stratum
}

// Build stratifies ds by the named columns, applies fn to each stratum, and
// combines the per-stratum tables according to mode.
//
// Partitions follow ascending stratifying-column values, lexicographic
// across multiple columns. In merge mode the stratum labels are wrapped in
// **bold** emphasis markup before becoming spanning headers.
func Build(ds Dataset, by []string, fn BuildFunc, mode Mode, opts ...Option) (*Result, error) {
	if mode != Merge && mode != Stack {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	if len(by) == 0 {
		return nil, fmt.Errorf("%w: no stratifying columns", ErrUnknownColumn)
	}
	byIdx := make([]int, len(by))
	for i, name := range by {
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		byIdx[i] = idx
	}

	o := options{separator: ", "}
	for _, opt := range opts {
		opt(&o)
	}

	parts := partition(ds, byIdx)

	tables := make([]sumtab.StyledTable, len(parts))
	strata := make([]Stratum, len(parts))
	labels := make([]string, len(parts))
	for i, p := range parts {
		tbl, err := fn(Dataset{Columns: ds.Columns, Rows: p.rows})
		if err != nil {
			return nil, fmt.Errorf("stratum %q: %w", strings.Join(p.keys, o.separator), err)
		}
		tables[i] = tbl
		label := strings.Join(p.keys, o.separator)
		if mode == Merge {
			label = "**" + label + "**"
		}
		labels[i] = label
		strata[i] = Stratum{Keys: p.keys, Label: label}
	}

	var combined sumtab.StyledTable
	var err error
	if mode == Merge {
		combined, err = merge(tables, labels)
	} else {
		combined, err = stack(tables, labels)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Table: combined, Mode: mode, Strata: strata}, nil
}

type part struct {
	keys []string
	rows [][]string
}

// partition groups rows by the stratifying columns' value combinations and
// orders the groups ascending, lexicographic across columns.
func partition(ds Dataset, byIdx []int) []part {
	var parts []part
	index := make(map[string]int)
	for _, row := range ds.Rows {
		keys := make([]string, len(byIdx))
		for i, bi := range byIdx {
			keys[i] = row[bi]
		}
		id := strings.Join(keys, "\x00")
		pi, ok := index[id]
		if !ok {
			pi = len(parts)
			index[id] = pi
			parts = append(parts, part{keys: keys})
		}
		parts[pi].rows = append(parts[pi].rows, row)
	}
	sort.SliceStable(parts, func(a, b int) bool {
		return lessKeys(parts[a].keys, parts[b].keys)
	})
	return parts
}

func lessKeys(a, b []string) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
