package sumtab

import (
	"strconv"
	"strings"
)

// tableState is the shared recording half of the concrete builders. Builder
// methods append edits; resolve replays them into a flat grid the renderers
// lay out.
type tableState struct {
	body        Table
	groupColumn string
	caption     string

	labels map[string]string
	hidden []string
	aligns map[string]Alignment

	missing   []missingEdit
	indents   []rangeEdit
	formats   []formatEdit
	emphases  []emphasisEdit
	footnotes []footnoteEdit
	spanners  []spannerEdit
}

type missingEdit struct {
	columns []string
	rows    []int
	symbol  string
}

type rangeEdit struct {
	columns []string
	rows    []int
}

type formatEdit struct {
	column string
	rows   []int
	fn     FormatFunc
}

type emphasisEdit struct {
	columns []string
	rows    []int
	bold    bool
	italic  bool
}

type footnoteEdit struct {
	text    string
	loc     Location
	columns []string
	rows    []int
}

type spannerEdit struct {
	text    string
	columns []string
}

func (s *tableState) init(body Table, groupColumn, caption string) {
	s.body = body
	s.groupColumn = groupColumn
	s.caption = caption
}

func (s *tableState) formatMissing(columns []string, rows []int, symbol string) {
	s.missing = append(s.missing, missingEdit{columns: columns, rows: rows, symbol: symbol})
}

func (s *tableState) alignColumns(columns []string, align Alignment) {
	if s.aligns == nil {
		s.aligns = make(map[string]Alignment)
	}
	for _, c := range columns {
		s.aligns[c] = align
	}
}

func (s *tableState) indentCells(columns []string, rows []int) {
	s.indents = append(s.indents, rangeEdit{columns: columns, rows: rows})
}

func (s *tableState) formatCells(column string, rows []int, fn FormatFunc) {
	s.formats = append(s.formats, formatEdit{column: column, rows: rows, fn: fn})
}

func (s *tableState) emphasizeCells(columns []string, rows []int, bold, italic bool) {
	s.emphases = append(s.emphases, emphasisEdit{columns: columns, rows: rows, bold: bold, italic: italic})
}

func (s *tableState) labelColumns(labels map[string]string) {
	if s.labels == nil {
		s.labels = make(map[string]string, len(labels))
	}
	for k, v := range labels {
		s.labels[k] = v
	}
}

func (s *tableState) addFootnote(text string, loc Location, columns []string, rows []int) {
	s.footnotes = append(s.footnotes, footnoteEdit{text: text, loc: loc, columns: columns, rows: rows})
}

func (s *tableState) addSpanner(text string, columns []string) {
	s.spanners = append(s.spanners, spannerEdit{text: text, columns: columns})
}

func (s *tableState) hideColumns(columns []string) {
	s.hidden = append(s.hidden, columns...)
}

// grid is the fully resolved table: visible columns only, all edits applied,
// ready for a renderer to lay out. Emphasis flags are kept separate so
// renderers can style after width computation.
type grid struct {
	columns   []string
	header    []cell
	rows      [][]cell
	aligns    []Alignment
	spanners  []string // per column, "" when uncovered
	footnotes []string // distinct texts in marker order
	caption   string
	groups    []string // per row, nil when no group column
}

type cell struct {
	text   string
	marker int // footnote marker, 0 = none
	bold   bool
	italic bool
	indent bool
}

// resolve replays the recorded edits into a grid. Edit order matters: later
// edits override earlier ones for overlapping ranges, mirroring the call
// order of the plan that produced them.
func (s *tableState) resolve() grid {
	visible := s.visibleColumns()
	nRows := s.body.NumRows()

	// Column-name → visible index, and visible index → body index.
	visIdx := make(map[string]int, len(visible))
	bodyIdx := make([]int, len(visible))
	for i, c := range visible {
		visIdx[c] = i
		bodyIdx[i] = s.body.ColumnIndex(c)
	}

	rows := make([][]cell, nRows)
	for r := range rows {
		rows[r] = make([]cell, len(visible))
		for i, bi := range bodyIdx {
			if bi >= 0 && bi < len(s.body.Rows[r]) {
				rows[r][i].text = s.body.Rows[r][bi]
			}
		}
	}

	// Formatting functions rewrite non-empty cells first.
	for _, e := range s.formats {
		ci, ok := visIdx[e.column]
		if !ok || e.fn == nil {
			continue
		}
		for _, r := range expandRows(e.rows, nRows) {
			if rows[r][ci].text != "" {
				rows[r][ci].text = e.fn(rows[r][ci].text)
			}
		}
	}

	// Missing-value rules target the cells that were empty after
	// formatting. Later rules win over earlier substitutions.
	empty := make([][]bool, nRows)
	for r := range rows {
		empty[r] = make([]bool, len(visible))
		for i := range rows[r] {
			empty[r][i] = rows[r][i].text == ""
		}
	}
	for _, e := range s.missing {
		cols := expandCols(e.columns, visible)
		for _, r := range expandRows(e.rows, nRows) {
			for _, c := range cols {
				ci := visIdx[c]
				if empty[r][ci] {
					rows[r][ci].text = e.symbol
				}
			}
		}
	}

	for _, e := range s.indents {
		cols := expandCols(e.columns, visible)
		for _, r := range expandRows(e.rows, nRows) {
			for _, c := range cols {
				rows[r][visIdx[c]].indent = true
			}
		}
	}

	for _, e := range s.emphases {
		cols := expandCols(e.columns, visible)
		for _, r := range expandRows(e.rows, nRows) {
			for _, c := range cols {
				ci := visIdx[c]
				rows[r][ci].bold = rows[r][ci].bold || e.bold
				rows[r][ci].italic = rows[r][ci].italic || e.italic
			}
		}
	}

	header := make([]cell, len(visible))
	for i, c := range visible {
		label := c
		if l, ok := s.labels[c]; ok {
			label = l
		}
		text, bold, italic := splitEmphasis(label)
		header[i] = cell{text: text, bold: bold, italic: italic}
	}

	// Footnotes: one marker per distinct text, in recorded order. Header
	// footnotes mark labels; body footnotes mark cells.
	var texts []string
	markers := make(map[string]int)
	for _, e := range s.footnotes {
		marker, ok := markers[e.text]
		if !ok {
			texts = append(texts, e.text)
			marker = len(texts)
			markers[e.text] = marker
		}
		cols := expandCols(e.columns, visible)
		if e.loc == LocHeader {
			for _, c := range cols {
				header[visIdx[c]].marker = marker
			}
			continue
		}
		for _, r := range expandRows(e.rows, nRows) {
			for _, c := range cols {
				rows[r][visIdx[c]].marker = marker
			}
		}
	}

	spanners := make([]string, len(visible))
	for _, e := range s.spanners {
		for _, c := range e.columns {
			if i, ok := visIdx[c]; ok {
				spanners[i] = e.text
			}
		}
	}
	spanned := false
	for _, t := range spanners {
		if t != "" {
			spanned = true
			break
		}
	}
	if !spanned {
		spanners = nil
	}

	aligns := make([]Alignment, len(visible))
	for i, c := range visible {
		aligns[i] = s.aligns[c]
	}

	var groups []string
	if gi := s.body.ColumnIndex(s.groupColumn); s.groupColumn != "" && gi >= 0 {
		groups = make([]string, nRows)
		for r := range groups {
			if gi < len(s.body.Rows[r]) {
				groups[r] = s.body.Rows[r][gi]
			}
		}
	}

	return grid{
		columns:   visible,
		header:    header,
		rows:      rows,
		aligns:    aligns,
		spanners:  spanners,
		footnotes: texts,
		caption:   s.caption,
		groups:    groups,
	}
}

func (s *tableState) visibleColumns() []string {
	hidden := make(map[string]bool, len(s.hidden))
	for _, c := range s.hidden {
		hidden[c] = true
	}
	var visible []string
	for _, c := range s.body.Columns {
		if !hidden[c] {
			visible = append(visible, c)
		}
	}
	return visible
}

// expandRows maps a nil row set to every body row and drops out-of-bounds
// indices.
func expandRows(rows []int, nRows int) []int {
	if rows == nil {
		all := make([]int, nRows)
		for i := range all {
			all[i] = i
		}
		return all
	}
	var out []int
	for _, r := range rows {
		if r >= 0 && r < nRows {
			out = append(out, r)
		}
	}
	return out
}

// expandCols maps a nil column set to every visible column and drops names
// that are not visible.
func expandCols(columns []string, visible []string) []string {
	if columns == nil {
		return visible
	}
	ok := make(map[string]bool, len(visible))
	for _, c := range visible {
		ok[c] = true
	}
	var out []string
	for _, c := range columns {
		if ok[c] {
			out = append(out, c)
		}
	}
	return out
}

// splitEmphasis strips **bold** / *italic* emphasis markup from label and
// spanner text, reporting what it found.
func splitEmphasis(s string) (text string, bold, italic bool) {
	if strings.HasPrefix(s, "**") && strings.HasSuffix(s, "**") && len(s) > 4 {
		return s[2 : len(s)-2], true, false
	}
	if strings.HasPrefix(s, "*") && strings.HasSuffix(s, "*") && len(s) > 2 {
		return s[1 : len(s)-1], false, true
	}
	return s, false, false
}

// superscript renders a footnote marker as Unicode superscript digits.
func superscript(n int) string {
	if n <= 0 {
		return ""
	}
	const digits = "⁰¹²³⁴⁵⁶⁷⁸⁹"
	runes := []rune(digits)
	var sb strings.Builder
	for _, d := range []byte(strconv.Itoa(n)) {
		sb.WriteRune(runes[d-'0'])
	}
	return sb.String()
}
