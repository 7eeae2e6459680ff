package strata

import (
	"fmt"

	"github.com/averden/sumtab"
)

// stratumColumn is the synthetic grouping column appended by stack. It is
// hidden from the output and only feeds the grouping hint.
const stratumColumn = "_stratum"

// stack concatenates stratum tables vertically. Every table must carry the
// same columns. Each stratum contributes a bold group-header row holding
// its label, followed by its body rows indented under it; row-based styling
// rules shift with their rows.
func stack(tables []sumtab.StyledTable, labels []string) (sumtab.StyledTable, error) {
	if len(tables) == 0 {
		return sumtab.StyledTable{}, fmt.Errorf("%w: no strata", ErrShape)
	}
	base := tables[0]
	cols := base.Body.Columns
	if len(cols) == 0 {
		return sumtab.StyledTable{}, fmt.Errorf("%w: empty stratum table", ErrShape)
	}
	for i, t := range tables[1:] {
		if !equalColumns(cols, t.Body.Columns) {
			return sumtab.StyledTable{}, fmt.Errorf("%w: stratum %d columns differ", ErrShape, i+1)
		}
	}
	stub := cols[0]

	outCols := make([]string, 0, len(cols)+1)
	outCols = append(outCols, cols...)
	outCols = append(outCols, stratumColumn)

	out := sumtab.StyledTable{Body: sumtab.Table{Columns: outCols}}
	st := &out.Style
	st.GroupColumn = stratumColumn
	st.Caption = base.Style.Caption
	st.Labels = copyLabels(base.Style.Labels)
	st.Aligns = append(st.Aligns, base.Style.Aligns...)
	st.Spanners = append(st.Spanners, base.Style.Spanners...)
	show := base.Style.Show
	if show == nil {
		show = cols
	}
	st.Show = append([]string(nil), show...)

	for i, t := range tables {
		labelRow := len(out.Body.Rows)
		row := make([]string, len(outCols))
		row[0] = labels[i]
		row[len(row)-1] = labels[i]
		out.Body.Rows = append(out.Body.Rows, row)
		st.Emphases = append(st.Emphases, sumtab.EmphasisRule{
			Columns: []string{stub},
			Rows:    []int{labelRow},
			Bold:    true,
		})

		offset := len(out.Body.Rows)
		dataRows := make([]int, t.Body.NumRows())
		for r, brow := range t.Body.Rows {
			row := make([]string, len(outCols))
			copy(row, brow)
			row[len(row)-1] = labels[i]
			out.Body.Rows = append(out.Body.Rows, row)
			dataRows[r] = offset + r
		}
		if len(dataRows) > 0 {
			st.Indents = append(st.Indents, sumtab.IndentRule{
				Columns: []string{stub},
				Rows:    dataRows,
			})
		}

		shift := func(rows []int) []int { return shiftRows(rows, t.Body.NumRows(), offset, dataRows) }
		for _, r := range t.Style.Missing {
			st.Missing = append(st.Missing, sumtab.MissingRule{Columns: r.Columns, Rows: shift(r.Rows), Symbol: r.Symbol})
		}
		for _, r := range t.Style.Indents {
			st.Indents = append(st.Indents, sumtab.IndentRule{Columns: r.Columns, Rows: shift(r.Rows)})
		}
		for _, r := range t.Style.Formats {
			st.Formats = append(st.Formats, sumtab.FormatRule{Column: r.Column, Rows: shift(r.Rows), Fn: r.Fn})
		}
		for _, r := range t.Style.Emphases {
			st.Emphases = append(st.Emphases, sumtab.EmphasisRule{Columns: r.Columns, Rows: shift(r.Rows), Bold: r.Bold, Italic: r.Italic})
		}
		for _, r := range t.Style.Footnotes {
			st.Footnotes = append(st.Footnotes, shiftFootnote(r, shift))
		}
		for _, r := range t.Style.Abbreviations {
			st.Abbreviations = append(st.Abbreviations, shiftFootnote(r, shift))
		}
	}
	return out, nil
}

// merge lays stratum tables side by side. Each table's first column is its
// stub; rows match across strata by stub value, union in first-appearance
// order. Non-stub columns rename with a _<n> stratum suffix and sit under a
// spanning header holding that stratum's (bold) label.
func merge(tables []sumtab.StyledTable, labels []string) (sumtab.StyledTable, error) {
	if len(tables) == 0 {
		return sumtab.StyledTable{}, fmt.Errorf("%w: no strata", ErrShape)
	}
	totalCols := 1
	for i, t := range tables {
		if t.Body.NumCols() == 0 {
			return sumtab.StyledTable{}, fmt.Errorf("%w: stratum %d table is empty", ErrShape, i)
		}
		totalCols += t.Body.NumCols() - 1
	}
	stub := tables[0].Body.Columns[0]

	// Stub values, union in order of first appearance.
	var keys []string
	pos := make(map[string]int)
	for _, t := range tables {
		for _, row := range t.Body.Rows {
			if _, ok := pos[row[0]]; !ok {
				pos[row[0]] = len(keys)
				keys = append(keys, row[0])
			}
		}
	}

	rows := make([][]string, len(keys))
	for k := range rows {
		rows[k] = make([]string, totalCols)
		rows[k][0] = keys[k]
	}

	out := sumtab.StyledTable{Body: sumtab.Table{Columns: []string{stub}, Rows: rows}}
	st := &out.Style
	st.Caption = tables[0].Style.Caption
	st.Labels = map[string]string{}
	if l, ok := tables[0].Style.Labels[tables[0].Body.Columns[0]]; ok {
		st.Labels[stub] = l
	}
	show := []string{stub}

	colOffset := 1
	for i, t := range tables {
		suffix := fmt.Sprintf("_%d", i+1)
		tCols := t.Body.Columns
		tStub := tCols[0]

		rename := func(c string) (string, bool) {
			if c == tStub {
				// Stub styling carries over from the first stratum only;
				// later stubs merged away.
				if i == 0 {
					return stub, true
				}
				return "", false
			}
			return c + suffix, true
		}
		renameAll := func(cols []string) []string {
			if cols == nil {
				cols = tCols
			}
			var out []string
			for _, c := range cols {
				if rc, ok := rename(c); ok {
					out = append(out, rc)
				}
			}
			return out
		}

		// Merged row index per stratum row.
		rowMap := make([]int, t.Body.NumRows())
		for r, row := range t.Body.Rows {
			rowMap[r] = pos[row[0]]
		}
		remap := func(ruleRows []int) []int { return remapRows(ruleRows, rowMap) }

		visible := t.Style.Show
		if visible == nil {
			visible = tCols
		}
		visSet := make(map[string]bool, len(visible))
		for _, c := range visible {
			visSet[c] = true
		}

		var spanCols []string
		for j, c := range tCols[1:] {
			rc := c + suffix
			out.Body.Columns = append(out.Body.Columns, rc)
			label := c
			if l, ok := t.Style.Labels[c]; ok {
				label = l
			}
			st.Labels[rc] = label
			if visSet[c] {
				show = append(show, rc)
				spanCols = append(spanCols, rc)
			}
			for r, row := range t.Body.Rows {
				rows[rowMap[r]][colOffset+j] = row[j+1]
			}
		}
		st.Spanners = append(st.Spanners, sumtab.SpannerRule{Text: labels[i], Columns: spanCols})

		for _, r := range t.Style.Aligns {
			if cols := renameAll(r.Columns); len(cols) > 0 {
				st.Aligns = append(st.Aligns, sumtab.AlignRule{Columns: cols, Align: r.Align})
			}
		}
		for _, r := range t.Style.Missing {
			if cols := renameAll(r.Columns); len(cols) > 0 {
				st.Missing = append(st.Missing, sumtab.MissingRule{Columns: cols, Rows: remap(r.Rows), Symbol: r.Symbol})
			}
		}
		for _, r := range t.Style.Indents {
			if cols := renameAll(r.Columns); len(cols) > 0 {
				st.Indents = append(st.Indents, sumtab.IndentRule{Columns: cols, Rows: remap(r.Rows)})
			}
		}
		for _, r := range t.Style.Formats {
			if rc, ok := rename(r.Column); ok {
				st.Formats = append(st.Formats, sumtab.FormatRule{Column: rc, Rows: remap(r.Rows), Fn: r.Fn})
			}
		}
		for _, r := range t.Style.Emphases {
			if cols := renameAll(r.Columns); len(cols) > 0 {
				st.Emphases = append(st.Emphases, sumtab.EmphasisRule{Columns: cols, Rows: remap(r.Rows), Bold: r.Bold, Italic: r.Italic})
			}
		}
		for _, r := range t.Style.Footnotes {
			st.Footnotes = append(st.Footnotes, remapFootnote(r, renameAll, remap))
		}
		for _, r := range t.Style.Abbreviations {
			st.Abbreviations = append(st.Abbreviations, remapFootnote(r, renameAll, remap))
		}

		colOffset += len(tCols) - 1
	}
	st.Show = show
	return out, nil
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func copyLabels(labels map[string]string) map[string]string {
	if labels == nil {
		return nil
	}
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}

// shiftRows moves a stratum-local row set into stacked coordinates. A nil
// set means every row of the stratum, which must stay bounded to the
// stratum rather than widening to the whole combined table.
func shiftRows(rows []int, nRows, offset int, all []int) []int {
	if rows == nil {
		return append([]int(nil), all...)
	}
	var out []int
	for _, r := range rows {
		if r >= 0 && r < nRows {
			out = append(out, offset+r)
		}
	}
	return out
}

// remapRows moves a stratum-local row set into merged coordinates via the
// stub-match row map. nil keeps the stratum-wide meaning by materializing
// every mapped row.
func remapRows(rows []int, rowMap []int) []int {
	if rows == nil {
		out := make([]int, len(rowMap))
		copy(out, rowMap)
		return out
	}
	var out []int
	for _, r := range rows {
		if r >= 0 && r < len(rowMap) {
			out = append(out, rowMap[r])
		}
	}
	return out
}

func shiftFootnote(r sumtab.FootnoteRule, shift func([]int) []int) sumtab.FootnoteRule {
	if r.Location == sumtab.LocHeader {
		return r
	}
	return sumtab.FootnoteRule{Text: r.Text, Location: r.Location, Columns: r.Columns, Rows: shift(r.Rows)}
}

func remapFootnote(r sumtab.FootnoteRule, renameAll func([]string) []string, remap func([]int) []int) sumtab.FootnoteRule {
	out := sumtab.FootnoteRule{Text: r.Text, Location: r.Location, Columns: renameAll(r.Columns)}
	if r.Location != sumtab.LocHeader {
		out.Rows = remap(r.Rows)
	}
	return out
}
