package sumtab_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averden/sumtab"
)

func smallStyled() sumtab.StyledTable {
	return sumtab.StyledTable{
		Body: sumtab.Table{
			Columns: []string{"name", "n"},
			Rows: [][]string{
				{"Alice", "1"},
				{"Bob", ""},
			},
		},
		Style: sumtab.Styling{
			Labels: map[string]string{"n": "Count"},
			Aligns: []sumtab.AlignRule{{Columns: []string{"n"}, Align: sumtab.AlignRight}},
		},
	}
}

// --- Text ---

func TestTextBuilderRendersBorderedTable(t *testing.T) {
	t.Parallel()
	got, err := sumtab.Render(fullStyled(), sumtab.NewTextBuilder())
	require.NoError(t, err)
	out := got.(*sumtab.TextBuilder).String()

	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╰")
	assert.Contains(t, out, "│")
	// Spanner text sits above the header.
	assert.Contains(t, out, "Treatment")
	assert.Less(t, strings.Index(out, "Treatment"), strings.Index(out, "Characteristic"))
	// Label markup is stripped for display.
	assert.Contains(t, out, "Characteristic")
	assert.NotContains(t, out, "**Characteristic**")
	// Hidden column never renders.
	assert.NotContains(t, out, "p_value")
	// Header footnote marker plus the footnote line.
	assert.Contains(t, out, "Group A¹")
	assert.Contains(t, out, "¹ n (%)")
	// Indented row.
	assert.Contains(t, out, "    Female")
}

func TestTextBuilderBorderStyles(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		border sumtab.BorderStyle
		want   string
	}{
		"ascii":  {border: sumtab.BorderASCII, want: "+"},
		"heavy":  {border: sumtab.BorderHeavy, want: "┏"},
		"double": {border: sumtab.BorderDouble, want: "╔"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			b := sumtab.NewTextBuilder().WithBorder(tt.border)
			got, err := sumtab.Render(smallStyled(), b)
			require.NoError(t, err)
			assert.Contains(t, got.(*sumtab.TextBuilder).String(), tt.want)
		})
	}
}

func TestTextBuilderBorderNone(t *testing.T) {
	t.Parallel()
	b := sumtab.NewTextBuilder().WithBorder(sumtab.BorderNone)
	got, err := sumtab.Render(smallStyled(), b)
	require.NoError(t, err)
	out := got.(*sumtab.TextBuilder).String()
	assert.NotContains(t, out, "│")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Alice")
}

func TestTextBuilderMissingSymbolAndCaption(t *testing.T) {
	t.Parallel()
	st := smallStyled()
	st.Style.Caption = "two rows"
	theme := sumtab.DefaultTheme()
	theme.MissingSymbol = "—"

	got, err := sumtab.Render(st, sumtab.NewTextBuilder(), sumtab.WithTheme(theme))
	require.NoError(t, err)
	out := got.(*sumtab.TextBuilder).String()
	assert.Contains(t, out, "—")
	assert.Contains(t, out, "two rows")
}

func TestTextBuilderGroupSeparators(t *testing.T) {
	t.Parallel()
	st := sumtab.StyledTable{
		Body: sumtab.Table{
			Columns: []string{"name", "team"},
			Rows: [][]string{
				{"Alice", "red"},
				{"Bob", "red"},
				{"Carol", "blue"},
			},
		},
		Style: sumtab.Styling{GroupColumn: "team"},
	}
	got, err := sumtab.Render(st, sumtab.NewTextBuilder(), sumtab.WithTheme(sumtab.DefaultTheme()))
	require.NoError(t, err)
	out := got.(*sumtab.TextBuilder).String()

	// Header separator plus one group boundary between Bob and Carol.
	assert.Equal(t, 2, strings.Count(out, "├"))
}

func TestTextBuilderEmptyWithoutInit(t *testing.T) {
	t.Parallel()
	assert.Empty(t, sumtab.NewTextBuilder().String())
}

// --- Markdown ---

func TestMarkdownBuilderOutput(t *testing.T) {
	t.Parallel()
	theme := sumtab.DefaultTheme()
	theme.MissingSymbol = "—"
	got, err := sumtab.Render(smallStyled(), sumtab.NewMarkdownBuilder(), sumtab.WithTheme(theme))
	require.NoError(t, err)

	want := strings.Join([]string{
		"| name  | Count |",
		"| ----- | ----: |",
		"| Alice |     1 |",
		"| Bob   |     — |",
		"",
	}, "\n")
	assert.Equal(t, want, got.(*sumtab.MarkdownBuilder).String())
}

func TestMarkdownBuilderEmphasisAndFootnotes(t *testing.T) {
	t.Parallel()
	st := smallStyled()
	st.Style.Labels["name"] = "**Name**"
	st.Style.Emphases = []sumtab.EmphasisRule{
		{Columns: []string{"name"}, Rows: []int{0}, Italic: true},
	}
	st.Style.Footnotes = []sumtab.FootnoteRule{
		{Text: "first seen", Location: sumtab.LocBody, Columns: []string{"name"}, Rows: []int{1}},
	}

	got, err := sumtab.Render(st, sumtab.NewMarkdownBuilder())
	require.NoError(t, err)
	out := got.(*sumtab.MarkdownBuilder).String()

	assert.Contains(t, out, "**Name**")
	assert.Contains(t, out, "*Alice*")
	assert.Contains(t, out, "Bob¹")
	assert.Contains(t, out, "¹ first seen")
}

// --- HTML ---

func TestHTMLBuilderOutput(t *testing.T) {
	t.Parallel()
	st := smallStyled()
	st.Style.Caption = "cohort"
	st.Style.Spanners = []sumtab.SpannerRule{{Text: "**Totals**", Columns: []string{"n"}}}
	st.Style.Footnotes = []sumtab.FootnoteRule{
		{Text: "recruited < 2020", Location: sumtab.LocHeader, Columns: []string{"n"}},
	}

	got, err := sumtab.Render(st, sumtab.NewHTMLBuilder())
	require.NoError(t, err)
	out := got.(*sumtab.HTMLBuilder).String()

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<caption>cohort</caption>")
	assert.Contains(t, out, "<strong>Totals</strong>")
	assert.Contains(t, out, `<th style="text-align: right">Count<sup>1</sup></th>`)
	assert.Contains(t, out, "<sup>1</sup> recruited &lt; 2020")
	assert.Contains(t, out, "</table>\n")
}

func TestHTMLBuilderEscapesCells(t *testing.T) {
	t.Parallel()
	st := sumtab.StyledTable{
		Body: sumtab.Table{
			Columns: []string{"x"},
			Rows:    [][]string{{"<5 & counting>"}},
		},
	}
	got, err := sumtab.Render(st, sumtab.NewHTMLBuilder())
	require.NoError(t, err)
	assert.Contains(t, got.(*sumtab.HTMLBuilder).String(), "&lt;5 &amp; counting&gt;")
}

func TestHTMLBuilderIndentAndEmphasisStyles(t *testing.T) {
	t.Parallel()
	st := smallStyled()
	st.Style.Indents = []sumtab.IndentRule{{Columns: []string{"name"}, Rows: []int{1}}}
	st.Style.Emphases = []sumtab.EmphasisRule{{Columns: []string{"name"}, Rows: []int{0}, Bold: true}}

	got, err := sumtab.Render(st, sumtab.NewHTMLBuilder())
	require.NoError(t, err)
	out := got.(*sumtab.HTMLBuilder).String()
	assert.Contains(t, out, "padding-left: 2em")
	assert.Contains(t, out, "font-weight: bold")
}

// --- ParseBuilder ---

func TestParseBuilder(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		wantErr require.ErrorAssertionFunc
	}{
		"text":     {input: "text", wantErr: require.NoError},
		"markdown": {input: "markdown", wantErr: require.NoError},
		"html":     {input: "html", wantErr: require.NoError},
		"unknown":  {input: "latex", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			b, err := sumtab.ParseBuilder(tt.input)
			tt.wantErr(t, err)
			if err != nil {
				assert.ErrorIs(t, err, sumtab.ErrUnknownBuilder)
				assert.Nil(t, b)
			} else {
				assert.NotNil(t, b)
			}
		})
	}
}
