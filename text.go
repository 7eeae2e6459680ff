package sumtab

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

var (
	styleBold   = lipgloss.NewStyle().Bold(true)
	styleItalic = lipgloss.NewStyle().Italic(true)
)

// styleCell wraps an already padded cell. Styling happens after width
// computation so escape sequences never affect layout.
func styleCell(s string, bold, italic bool) string {
	switch {
	case bold && italic:
		return styleBold.Italic(true).Render(s)
	case bold:
		return styleBold.Render(s)
	case italic:
		return styleItalic.Render(s)
	default:
		return s
	}
}

// TextBuilder renders to monospaced terminal text: box-drawing borders,
// width-aware alignment, spanner rows merged across their column groups,
// superscript footnote markers, and lipgloss emphasis.
type TextBuilder struct {
	state  tableState
	border BorderStyle
}

// NewTextBuilder returns a text builder with rounded borders.
func NewTextBuilder() *TextBuilder {
	return &TextBuilder{border: BorderRounded}
}

// WithBorder sets the border style and returns the builder.
func (b *TextBuilder) WithBorder(style BorderStyle) *TextBuilder {
	b.border = style
	return b
}

func (b *TextBuilder) Init(body Table, groupColumn, caption string) Builder {
	b.state.init(body, groupColumn, caption)
	return b
}

func (b *TextBuilder) FormatMissing(columns []string, rows []int, symbol string) Builder {
	b.state.formatMissing(columns, rows, symbol)
	return b
}

func (b *TextBuilder) AlignColumns(columns []string, align Alignment) Builder {
	b.state.alignColumns(columns, align)
	return b
}

func (b *TextBuilder) IndentCells(columns []string, rows []int) Builder {
	b.state.indentCells(columns, rows)
	return b
}

func (b *TextBuilder) FormatCells(column string, rows []int, fn FormatFunc) Builder {
	b.state.formatCells(column, rows, fn)
	return b
}

func (b *TextBuilder) EmphasizeCells(columns []string, rows []int, bold, italic bool) Builder {
	b.state.emphasizeCells(columns, rows, bold, italic)
	return b
}

func (b *TextBuilder) LabelColumns(labels map[string]string) Builder {
	b.state.labelColumns(labels)
	return b
}

func (b *TextBuilder) AddFootnote(text string, loc Location, columns []string, rows []int) Builder {
	b.state.addFootnote(text, loc, columns, rows)
	return b
}

func (b *TextBuilder) AddSpanner(text string, columns []string) Builder {
	b.state.addSpanner(text, columns)
	return b
}

func (b *TextBuilder) HideColumns(columns []string) Builder {
	b.state.hideColumns(columns)
	return b
}

// String renders the table.
func (b *TextBuilder) String() string {
	var buf bytes.Buffer
	_ = b.Write(&buf)
	return buf.String()
}

// Write renders the table to w.
func (b *TextBuilder) Write(w io.Writer) error {
	g := b.state.resolve()
	if len(g.columns) == 0 {
		return nil
	}

	indentPrefix := strings.Repeat(" ", 4)
	display := func(c cell) string {
		s := c.text
		if c.indent {
			s = indentPrefix + s
		}
		if c.marker > 0 {
			s += superscript(c.marker)
		}
		return s
	}

	header := make([]string, len(g.header))
	for i, c := range g.header {
		header[i] = display(c)
	}
	rows := make([][]string, len(g.rows))
	for r, row := range g.rows {
		rows[r] = make([]string, len(row))
		for i, c := range row {
			rows[r][i] = display(c)
		}
	}

	widths := make([]int, len(g.columns))
	for i, h := range header {
		if wd := runewidth.StringWidth(h); wd > widths[i] {
			widths[i] = wd
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if wd := runewidth.StringWidth(cell); wd > widths[i] {
				widths[i] = wd
			}
		}
	}

	var err error
	if b.border == BorderNone {
		err = b.writePlain(w, g, header, rows, widths)
	} else {
		err = b.writeBordered(w, g, header, rows, widths)
	}
	if err != nil {
		return err
	}

	if g.caption != "" {
		if _, err := fmt.Fprintln(w, g.caption); err != nil {
			return err
		}
	}
	for i, text := range g.footnotes {
		if _, err := fmt.Fprintf(w, "%s %s\n", superscript(i+1), text); err != nil {
			return err
		}
	}
	return nil
}

// --- Plain layout (BorderNone) ---

func (b *TextBuilder) writePlain(w io.Writer, g grid, header []string, rows [][]string, widths []int) error {
	if g.spanners != nil {
		parts := make([]string, len(widths))
		for i, width := range widths {
			text, bold, italic := splitEmphasis(g.spanners[i])
			parts[i] = styleCell(alignCell(text, width, AlignCenter), bold, italic)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
			return err
		}
	}
	if err := writePlainCells(w, header, g.header, widths, g.aligns); err != nil {
		return err
	}
	if err := writePlainSep(w, widths); err != nil {
		return err
	}
	for r, row := range rows {
		if g.groups != nil && r > 0 && g.groups[r] != g.groups[r-1] {
			if err := writePlainSep(w, widths); err != nil {
				return err
			}
		}
		if err := writePlainCells(w, row, g.rows[r], widths, g.aligns); err != nil {
			return err
		}
	}
	return nil
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainCells(w io.Writer, texts []string, cells []cell, widths []int, aligns []Alignment) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		padded := alignCell(texts[i], width, aligns[i])
		parts[i] = styleCell(padded, cells[i].bold, cells[i].italic)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

// --- Bordered layout ---

func (b *TextBuilder) writeBordered(w io.Writer, g grid, header []string, rows [][]string, widths []int) error {
	bc := borderSets[b.border]

	if g.spanners != nil {
		// Top border splits only where adjacent columns belong to
		// different spanner groups.
		if err := drawSegLine(w, widths, bc.topLeft, bc.horizontal, bc.topRight, func(i int) string {
			if spannerBoundary(g.spanners, i) {
				return bc.topTee
			}
			return bc.horizontal
		}); err != nil {
			return err
		}
		if err := drawSpannerRow(w, g.spanners, widths, bc.vertical); err != nil {
			return err
		}
		// Transition into the full column set.
		if err := drawSegLine(w, widths, bc.leftTee, bc.horizontal, bc.rightTee, func(i int) string {
			if spannerBoundary(g.spanners, i) {
				return bc.cross
			}
			return bc.topTee
		}); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	if err := drawBorderedCells(w, header, g.header, widths, g.aligns, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}

	for r, row := range rows {
		if g.groups != nil && r > 0 && g.groups[r] != g.groups[r-1] {
			if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
				return err
			}
		}
		if err := drawBorderedCells(w, row, g.rows[r], widths, g.aligns, bc.vertical); err != nil {
			return err
		}
	}

	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// spannerBoundary reports whether a vertical separator belongs between
// columns i and i+1: always, unless both sit under the same spanner.
func spannerBoundary(spanners []string, i int) bool {
	return spanners[i] == "" || spanners[i] != spanners[i+1]
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	return drawSegLine(w, widths, left, fill, right, func(int) string { return mid })
}

// drawSegLine draws a horizontal line whose separator at each interior
// column boundary comes from mid(i).
func drawSegLine(w io.Writer, widths []int, left, fill, right string, mid func(i int) string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid(i))
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// drawSpannerRow renders one row where runs of columns sharing a spanner
// text merge into a single centered cell.
func drawSpannerRow(w io.Writer, spanners []string, widths []int, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i := 0; i < len(widths); {
		j := i
		for j+1 < len(widths) && !spannerBoundary(spanners, j) {
			j++
		}
		inner := 0
		for k := i; k <= j; k++ {
			inner += widths[k]
		}
		inner += 3 * (j - i) // absorbed padding and separators
		text, bold, italic := splitEmphasis(spanners[i])
		sb.WriteString(" ")
		sb.WriteString(styleCell(alignCell(text, inner, AlignCenter), bold, italic))
		sb.WriteString(" ")
		if j < len(widths)-1 {
			sb.WriteString(vert)
		}
		i = j + 1
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedCells(w io.Writer, texts []string, cells []cell, widths []int, aligns []Alignment, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		sb.WriteString(" ")
		padded := alignCell(texts[i], width, aligns[i])
		sb.WriteString(styleCell(padded, cells[i].bold, cells[i].italic))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
