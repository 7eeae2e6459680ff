package sumtab

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Location says whether a footnote attaches to header cells or body cells.
type Location int

const (
	LocBody Location = iota
	LocHeader
)

// FormatFunc rewrites a single cell value for display.
type FormatFunc func(string) string

// Table is the table body: ordered column names and string-valued rows.
// Row slices are indexed positionally against Columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of body rows.
func (t Table) NumRows() int { return len(t.Rows) }

// NumCols returns the number of columns.
func (t Table) NumCols() int { return len(t.Columns) }

// ColumnIndex returns the position of name in Columns, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is a body column.
func (t Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// --- Styling rules ---
//
// Rules reference columns by name and rows by zero-based body index. A nil
// Columns or Rows slice means "all columns" / "all rows". Rules naming
// columns absent from the body are not checked here; they surface as errors
// from the rendering calls they generate.

// MissingRule replaces empty cells in its target range with Symbol.
type MissingRule struct {
	Columns []string
	Rows    []int
	Symbol  string
}

// AlignRule sets the alignment for a set of columns.
type AlignRule struct {
	Columns []string
	Align   Alignment
}

// IndentRule indents cells in its target range.
type IndentRule struct {
	Columns []string
	Rows    []int
}

// FormatRule applies Fn to the cells of one column over a row range.
// Empty cells are left alone; missing-value rules handle those.
type FormatRule struct {
	Column string
	Rows   []int
	Fn     FormatFunc
}

// EmphasisRule bolds or italicizes cells in its target range.
type EmphasisRule struct {
	Columns []string
	Rows    []int
	Bold    bool
	Italic  bool
}

// FootnoteRule attaches a footnote to header cells (Location LocHeader,
// Rows ignored) or to the body cells Columns × Rows.
type FootnoteRule struct {
	Text     string
	Location Location
	Columns  []string
	Rows     []int
}

// SpannerRule places a spanning header over a set of columns. Text may carry
// **bold** emphasis markup, which builders interpret.
type SpannerRule struct {
	Text    string
	Columns []string
}

// Styling is the manifest attached to a table body. The zero value styles
// nothing: no labels, no rules, every column shown.
type Styling struct {
	// Labels maps column names to display labels. Columns without an entry
	// label as their own name. Label text may carry **bold** markup.
	Labels map[string]string

	// Show lists the columns to display. nil means every column is shown;
	// a non-nil slice hides everything absent from it.
	Show []string

	// GroupColumn names a body column whose value changes delimit row
	// groups. It is a hint passed to the base construction call.
	GroupColumn string

	Caption string

	Missing       []MissingRule
	Aligns        []AlignRule
	Indents       []IndentRule
	Formats       []FormatRule
	Emphases      []EmphasisRule
	Footnotes     []FootnoteRule
	Abbreviations []FootnoteRule
	Spanners      []SpannerRule
}

// StyledTable pairs a table body with its styling manifest. It is the input
// the summary-table layer hands to [Translate] and [Render].
type StyledTable struct {
	Body  Table
	Style Styling
}
