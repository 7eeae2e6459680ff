package sumtab

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MarkdownBuilder renders a GitHub-flavored Markdown table. Spanners become
// an extra header row, emphasis becomes ** / * markup, and footnotes are
// superscript-marked with the texts listed after the table.
type MarkdownBuilder struct {
	state tableState
}

// NewMarkdownBuilder returns an empty Markdown builder.
func NewMarkdownBuilder() *MarkdownBuilder { return &MarkdownBuilder{} }

func (b *MarkdownBuilder) Init(body Table, groupColumn, caption string) Builder {
	b.state.init(body, groupColumn, caption)
	return b
}

func (b *MarkdownBuilder) FormatMissing(columns []string, rows []int, symbol string) Builder {
	b.state.formatMissing(columns, rows, symbol)
	return b
}

func (b *MarkdownBuilder) AlignColumns(columns []string, align Alignment) Builder {
	b.state.alignColumns(columns, align)
	return b
}

func (b *MarkdownBuilder) IndentCells(columns []string, rows []int) Builder {
	b.state.indentCells(columns, rows)
	return b
}

func (b *MarkdownBuilder) FormatCells(column string, rows []int, fn FormatFunc) Builder {
	b.state.formatCells(column, rows, fn)
	return b
}

func (b *MarkdownBuilder) EmphasizeCells(columns []string, rows []int, bold, italic bool) Builder {
	b.state.emphasizeCells(columns, rows, bold, italic)
	return b
}

func (b *MarkdownBuilder) LabelColumns(labels map[string]string) Builder {
	b.state.labelColumns(labels)
	return b
}

func (b *MarkdownBuilder) AddFootnote(text string, loc Location, columns []string, rows []int) Builder {
	b.state.addFootnote(text, loc, columns, rows)
	return b
}

func (b *MarkdownBuilder) AddSpanner(text string, columns []string) Builder {
	b.state.addSpanner(text, columns)
	return b
}

func (b *MarkdownBuilder) HideColumns(columns []string) Builder {
	b.state.hideColumns(columns)
	return b
}

// String renders the table.
func (b *MarkdownBuilder) String() string {
	var buf bytes.Buffer
	_ = b.Write(&buf)
	return buf.String()
}

// Write renders the table to w.
func (b *MarkdownBuilder) Write(w io.Writer) error {
	g := b.state.resolve()
	if len(g.columns) == 0 {
		return nil
	}

	header := make([]string, len(g.header))
	for i, c := range g.header {
		header[i] = markdownCell(c)
	}
	rows := make([][]string, len(g.rows))
	for r, row := range g.rows {
		rows[r] = make([]string, len(row))
		for i, c := range row {
			rows[r][i] = markdownCell(c)
		}
	}
	var spanner []string
	if g.spanners != nil {
		spanner = make([]string, len(g.spanners))
		for i, text := range g.spanners {
			t, bold, italic := splitEmphasis(text)
			spanner[i] = emphasisMarkup(t, bold, italic)
		}
	}

	// Column widths, minimum 3 for the alignment markers.
	widths := make([]int, len(g.columns))
	measure := func(cells []string) {
		for i, cell := range cells {
			if wd := runewidth.StringWidth(cell); wd > widths[i] {
				widths[i] = wd
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	if spanner != nil {
		measure(spanner)
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	if spanner != nil {
		if err := writeMarkdownRow(w, spanner, widths, g.aligns); err != nil {
			return err
		}
	}
	if err := writeMarkdownRow(w, header, widths, g.aligns); err != nil {
		return err
	}

	sep := make([]string, len(widths))
	for i, width := range widths {
		switch g.aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths, g.aligns); err != nil {
			return err
		}
	}

	if g.caption != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", g.caption); err != nil {
			return err
		}
	}
	if len(g.footnotes) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		for i, text := range g.footnotes {
			if _, err := fmt.Fprintf(w, "%s %s\n", superscript(i+1), text); err != nil {
				return err
			}
		}
	}
	return nil
}

func markdownCell(c cell) string {
	s := c.text
	if c.marker > 0 {
		s += superscript(c.marker)
	}
	s = emphasisMarkup(s, c.bold, c.italic)
	if c.indent && s != "" {
		s = `&nbsp;&nbsp;&nbsp;&nbsp;` + s
	}
	return s
}

func emphasisMarkup(s string, bold, italic bool) string {
	if s == "" {
		return s
	}
	if italic {
		s = "*" + s + "*"
	}
	if bold {
		s = "**" + s + "**"
	}
	return s
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
