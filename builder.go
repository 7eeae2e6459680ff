package sumtab

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrRemovedOption  = errors.New("removed option")
	ErrUnknownBuilder = errors.New("unknown builder")
)

// Builder is the rendering-library call surface. Each method records one
// styling operation and returns the builder to receive the next call, so a
// [Plan] executes as a left fold. Implementations are free to mutate in
// place and return themselves.
//
// Init is the base construction call and is always invoked first; every
// other method may assume a body is present.
type Builder interface {
	// Init builds the base render object from the table body, with a
	// grouping-column hint and an optional caption.
	Init(body Table, groupColumn, caption string) Builder

	// FormatMissing replaces empty cells in columns × rows with symbol.
	// nil columns or rows target everything.
	FormatMissing(columns []string, rows []int, symbol string) Builder

	// AlignColumns sets the alignment of a set of columns.
	AlignColumns(columns []string, align Alignment) Builder

	// IndentCells indents the cells columns × rows.
	IndentCells(columns []string, rows []int) Builder

	// FormatCells applies fn to one column's cells over a row range.
	FormatCells(column string, rows []int, fn FormatFunc) Builder

	// EmphasizeCells bolds and/or italicizes the cells columns × rows.
	EmphasizeCells(columns []string, rows []int, bold, italic bool) Builder

	// LabelColumns sets display labels for columns.
	LabelColumns(labels map[string]string) Builder

	// AddFootnote attaches one footnote to header cells (loc LocHeader)
	// or body cells columns × rows (loc LocBody).
	AddFootnote(text string, loc Location, columns []string, rows []int) Builder

	// AddSpanner places a spanning header over columns.
	AddSpanner(text string, columns []string) Builder

	// HideColumns removes columns from the rendered output. The columns
	// stay addressable by other calls.
	HideColumns(columns []string) Builder
}

// ParseBuilder returns a fresh builder for a format name. Recognized names
// are "text", "markdown", and "html".
func ParseBuilder(s string) (Builder, error) {
	switch s {
	case "text":
		return NewTextBuilder(), nil
	case "markdown":
		return NewMarkdownBuilder(), nil
	case "html":
		return NewHTMLBuilder(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuilder, s)
	}
}
