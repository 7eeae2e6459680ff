package sumtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitEmphasis(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input  string
		text   string
		bold   bool
		italic bool
	}{
		"plain":        {input: "Age", text: "Age"},
		"bold":         {input: "**Age**", text: "Age", bold: true},
		"italic":       {input: "*Age*", text: "Age", italic: true},
		"bare stars":   {input: "**", text: "**"},
		"empty":        {input: "", text: ""},
		"inner stars":  {input: "a*b", text: "a*b"},
		"bold phrase":  {input: "**Overall, N = 10**", text: "Overall, N = 10", bold: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			text, bold, italic := splitEmphasis(tt.input)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.bold, bold)
			assert.Equal(t, tt.italic, italic)
		})
	}
}

func TestSuperscript(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "¹", superscript(1))
	assert.Equal(t, "¹²", superscript(12))
	assert.Equal(t, "¹⁰", superscript(10))
	assert.Empty(t, superscript(0))
}

func TestExpandRows(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int{0, 1, 2}, expandRows(nil, 3))
	assert.Equal(t, []int{1}, expandRows([]int{1, 5, -1}, 3))
	assert.Nil(t, expandRows([]int{9}, 3))
}

func TestExpandCols(t *testing.T) {
	t.Parallel()
	visible := []string{"a", "b"}
	assert.Equal(t, visible, expandCols(nil, visible))
	assert.Equal(t, []string{"b"}, expandCols([]string{"b", "z"}, visible))
}

func TestSpannerBoundary(t *testing.T) {
	t.Parallel()
	spanners := []string{"", "grp", "grp", "other"}
	assert.True(t, spannerBoundary(spanners, 0))  // uncovered column
	assert.False(t, spannerBoundary(spanners, 1)) // same group
	assert.True(t, spannerBoundary(spanners, 2))  // group change
}

func TestResolveMissingLaterRuleWins(t *testing.T) {
	t.Parallel()
	var s tableState
	s.init(Table{Columns: []string{"a"}, Rows: [][]string{{""}}}, "", "")
	s.formatMissing(nil, nil, "x")
	s.formatMissing([]string{"a"}, []int{0}, "y")

	g := s.resolve()
	assert.Equal(t, "y", g.rows[0][0].text)
}

func TestResolveFormatSkipsEmptyCells(t *testing.T) {
	t.Parallel()
	var s tableState
	s.init(Table{Columns: []string{"a"}, Rows: [][]string{{"1"}, {""}}}, "", "")
	s.formatCells("a", nil, func(v string) string { return v + "%" })
	s.formatMissing(nil, nil, "—")

	g := s.resolve()
	assert.Equal(t, "1%", g.rows[0][0].text)
	assert.Equal(t, "—", g.rows[1][0].text)
}

func TestResolveHiddenColumnsDropEverywhere(t *testing.T) {
	t.Parallel()
	var s tableState
	s.init(Table{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "2"}},
	}, "", "")
	s.hideColumns([]string{"b"})
	s.addSpanner("grp", []string{"a", "b"})

	g := s.resolve()
	assert.Equal(t, []string{"a"}, g.columns)
	assert.Equal(t, []string{"grp"}, g.spanners)
	assert.Len(t, g.rows[0], 1)
}

func TestResolveFootnoteMarkersShareTextNumber(t *testing.T) {
	t.Parallel()
	var s tableState
	s.init(Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1", "2"}}}, "", "")
	s.addFootnote("note", LocHeader, []string{"a"}, nil)
	s.addFootnote("note", LocHeader, []string{"b"}, nil)
	s.addFootnote("other", LocBody, []string{"a"}, []int{0})

	g := s.resolve()
	assert.Equal(t, []string{"note", "other"}, g.footnotes)
	assert.Equal(t, 1, g.header[0].marker)
	assert.Equal(t, 1, g.header[1].marker)
	assert.Equal(t, 2, g.rows[0][0].marker)
}

func TestHiddenColumnsSetDifference(t *testing.T) {
	t.Parallel()
	body := Table{Columns: []string{"a", "b", "c"}}
	assert.Nil(t, hiddenColumns(body, nil))
	assert.Equal(t, []string{"b", "c"}, hiddenColumns(body, []string{"a"}))
	assert.Nil(t, hiddenColumns(body, []string{"a", "b", "c"}))
}
