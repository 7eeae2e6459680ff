package cli

import (
	"strconv"

	"github.com/averden/sumtab"
	"github.com/averden/sumtab/strata"
)

// summarize is the demo table-construction function: a two-column
// characteristic/value summary of ds. The first row is the row count; each
// remaining row describes one column — the mean for numeric columns, the
// number of distinct values otherwise. Columns named in skip are left out.
func summarize(ds strata.Dataset, skip map[string]bool) (sumtab.StyledTable, error) {
	rows := [][]string{{"N", strconv.Itoa(ds.NumRows())}}
	for _, col := range ds.Columns {
		if skip[col] {
			continue
		}
		values, err := ds.Column(col)
		if err != nil {
			return sumtab.StyledTable{}, err
		}
		rows = append(rows, []string{col, describe(values)})
	}

	return sumtab.StyledTable{
		Body: sumtab.Table{
			Columns: []string{"characteristic", "value"},
			Rows:    rows,
		},
		Style: sumtab.Styling{
			Labels: map[string]string{
				"characteristic": "**Characteristic**",
				"value":          "**Value**",
			},
			Aligns: []sumtab.AlignRule{
				{Columns: []string{"value"}, Align: sumtab.AlignRight},
			},
			Abbreviations: []sumtab.FootnoteRule{
				{
					Text:     "Mean for numeric columns; distinct levels otherwise",
					Location: sumtab.LocHeader,
					Columns:  []string{"value"},
				},
			},
		},
	}, nil
}

// describe reduces one column to a single display value. Empty cells do not
// count toward the mean.
func describe(values []string) string {
	var sum float64
	var n int
	numeric := true
	for _, v := range values {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			numeric = false
			break
		}
		sum += f
		n++
	}
	if numeric && n > 0 {
		return strconv.FormatFloat(sum/float64(n), 'f', 1, 64)
	}

	distinct := make(map[string]bool)
	for _, v := range values {
		if v != "" {
			distinct[v] = true
		}
	}
	return strconv.Itoa(len(distinct)) + " levels"
}
