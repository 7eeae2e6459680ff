package sumtab

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
)

// HTMLBuilder renders a styled HTML table: spanners as colspan header
// cells, emphasis and indentation as inline styles, footnotes as a tfoot
// block with superscript markers.
type HTMLBuilder struct {
	state tableState
}

// NewHTMLBuilder returns an empty HTML builder.
func NewHTMLBuilder() *HTMLBuilder { return &HTMLBuilder{} }

func (b *HTMLBuilder) Init(body Table, groupColumn, caption string) Builder {
	b.state.init(body, groupColumn, caption)
	return b
}

func (b *HTMLBuilder) FormatMissing(columns []string, rows []int, symbol string) Builder {
	b.state.formatMissing(columns, rows, symbol)
	return b
}

func (b *HTMLBuilder) AlignColumns(columns []string, align Alignment) Builder {
	b.state.alignColumns(columns, align)
	return b
}

func (b *HTMLBuilder) IndentCells(columns []string, rows []int) Builder {
	b.state.indentCells(columns, rows)
	return b
}

func (b *HTMLBuilder) FormatCells(column string, rows []int, fn FormatFunc) Builder {
	b.state.formatCells(column, rows, fn)
	return b
}

func (b *HTMLBuilder) EmphasizeCells(columns []string, rows []int, bold, italic bool) Builder {
	b.state.emphasizeCells(columns, rows, bold, italic)
	return b
}

func (b *HTMLBuilder) LabelColumns(labels map[string]string) Builder {
	b.state.labelColumns(labels)
	return b
}

func (b *HTMLBuilder) AddFootnote(text string, loc Location, columns []string, rows []int) Builder {
	b.state.addFootnote(text, loc, columns, rows)
	return b
}

func (b *HTMLBuilder) AddSpanner(text string, columns []string) Builder {
	b.state.addSpanner(text, columns)
	return b
}

func (b *HTMLBuilder) HideColumns(columns []string) Builder {
	b.state.hideColumns(columns)
	return b
}

// String renders the table.
func (b *HTMLBuilder) String() string {
	var buf bytes.Buffer
	_ = b.Write(&buf)
	return buf.String()
}

// Write renders the table to w.
func (b *HTMLBuilder) Write(w io.Writer) error {
	g := b.state.resolve()
	if len(g.columns) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if g.caption != "" {
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(g.caption)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
		return err
	}
	if g.spanners != nil {
		if err := writeHTMLSpannerRow(w, g.spanners); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for i, c := range g.header {
		if _, err := fmt.Fprintf(w, "      <th%s>%s</th>\n", cellStyle(c, g.aligns[i]), cellHTML(c)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range g.rows {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for i, c := range row {
			if _, err := fmt.Fprintf(w, "      <td%s>%s</td>\n", cellStyle(c, g.aligns[i]), cellHTML(c)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	if len(g.footnotes) > 0 {
		if _, err := fmt.Fprintln(w, "  <tfoot>"); err != nil {
			return err
		}
		for i, text := range g.footnotes {
			if _, err := fmt.Fprintf(w, "    <tr><td colspan=\"%d\"><sup>%d</sup> %s</td></tr>\n",
				len(g.columns), i+1, html.EscapeString(text)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "  </tfoot>"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

// writeHTMLSpannerRow emits the spanning-header row, merging runs of
// columns that share a spanner into one colspan cell.
func writeHTMLSpannerRow(w io.Writer, spanners []string) error {
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for i := 0; i < len(spanners); {
		j := i
		for j+1 < len(spanners) && !spannerBoundary(spanners, j) {
			j++
		}
		text, bold, italic := splitEmphasis(spanners[i])
		inner := html.EscapeString(text)
		if italic {
			inner = "<em>" + inner + "</em>"
		}
		if bold {
			inner = "<strong>" + inner + "</strong>"
		}
		span := ""
		if j > i {
			span = fmt.Sprintf(` colspan="%d"`, j-i+1)
		}
		if _, err := fmt.Fprintf(w, "      <th%s style=\"text-align: center\">%s</th>\n", span, inner); err != nil {
			return err
		}
		i = j + 1
	}
	_, err := fmt.Fprintln(w, "    </tr>")
	return err
}

func cellHTML(c cell) string {
	s := html.EscapeString(c.text)
	if c.marker > 0 {
		s += fmt.Sprintf("<sup>%d</sup>", c.marker)
	}
	return s
}

func cellStyle(c cell, align Alignment) string {
	var decls []string
	switch align {
	case AlignRight:
		decls = append(decls, "text-align: right")
	case AlignCenter:
		decls = append(decls, "text-align: center")
	}
	if c.indent {
		decls = append(decls, "padding-left: 2em")
	}
	if c.bold {
		decls = append(decls, "font-weight: bold")
	}
	if c.italic {
		decls = append(decls, "font-style: italic")
	}
	if len(decls) == 0 {
		return ""
	}
	return fmt.Sprintf(" style=%q", strings.Join(decls, "; "))
}
