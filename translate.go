package sumtab

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Option configures [Translate] and [Render].
type Option func(*options)

type options struct {
	theme    Theme
	themeSet bool
	include  Selector
	logger   *log.Logger
	exclude  []string
	omit     []string
	omitSet  bool
}

// WithTheme threads an explicit theme into translation. Without it,
// [DefaultTheme] applies.
func WithTheme(t Theme) Option {
	return func(o *options) {
		o.theme = t
		o.themeSet = true
	}
}

// WithInclude selects which call-name groups survive into the final plan.
// The base construction call is always kept. Selection preserves generation
// order.
func WithInclude(sel Selector) Option {
	return func(o *options) { o.include = sel }
}

// WithExclude drops the named call groups.
//
// Deprecated: use WithInclude with [Except]. A non-empty exclude list still
// works — it warns and behaves exactly as WithInclude(Except(names...)).
func WithExclude(names ...string) Option {
	return func(o *options) { o.exclude = append(o.exclude, names...) }
}

// WithOmit is the removed predecessor of [WithExclude]. Supplying it makes
// [Translate] and [Render] fail with [ErrRemovedOption].
//
// Deprecated: this option was removed; use WithInclude with [Except].
func WithOmit(names ...string) Option {
	return func(o *options) {
		o.omit = append(o.omit, names...)
		o.omitSet = true
	}
}

// WithLogger routes deprecation warnings to l instead of the default logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) (options, error) {
	o := options{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.omitSet {
		return o, fmt.Errorf("%w: omit; use WithInclude(Except(...))", ErrRemovedOption)
	}
	if len(o.exclude) > 0 {
		logger := o.logger
		if logger == nil {
			logger = log.Default()
		}
		logger.Warn("the exclude option is deprecated; use WithInclude(Except(...))",
			"exclude", o.exclude)
		o.include = Except(o.exclude...)
	}
	if o.theme.Anchor == "" {
		o.theme.Anchor = CallTable
	}
	return o, nil
}

// Translate converts a styled table into its ordered plan of rendering
// calls without executing anything. The returned plan already reflects the
// theme's extra calls and the caller's include/exclude selection; inspect
// it, reorder it, or hand it to [Plan.Execute].
func Translate(st StyledTable, opts ...Option) (Plan, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return translate(st, o), nil
}

// Render translates a styled table and executes the resulting plan against
// b, returning the final builder state. The theme's Finalize hook, when
// set, runs last.
func Render(st StyledTable, b Builder, opts ...Option) (Builder, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	b = translate(st, o).Execute(b)
	if o.theme.Finalize != nil {
		b = o.theme.Finalize(b)
	}
	return b, nil
}

func translate(st StyledTable, o options) Plan {
	if o.theme.PreProcess != nil {
		o.theme.PreProcess(&st)
	}
	plan := generate(st, o.theme)
	plan = plan.SpliceAfter(o.theme.Anchor, o.theme.ExtraCalls...)
	return plan.Select(o.include)
}

// generate emits the call list in its fixed order: base construction,
// missing-value rules, alignment, indentation, formatting functions,
// emphasis, column labels, footnotes, spanners, column hiding.
func generate(st StyledTable, theme Theme) Plan {
	body := st.Body
	style := st.Style
	var plan Plan

	// 1. Base construction, mandatory and always first.
	plan = append(plan, Call{Name: CallTable, Apply: func(b Builder) Builder {
		return b.Init(body, style.GroupColumn, style.Caption)
	}})

	// 2. Missing values: the default rule covers every cell, then each
	// explicit rule overrides its own range.
	symbol := theme.MissingSymbol
	plan = append(plan, Call{Name: CallMissing, Apply: func(b Builder) Builder {
		return b.FormatMissing(nil, nil, symbol)
	}})
	for _, r := range style.Missing {
		plan = append(plan, Call{Name: CallMissing, Apply: func(b Builder) Builder {
			return b.FormatMissing(r.Columns, r.Rows, r.Symbol)
		}})
	}

	// 3. Alignment, one call per alignment value over the union of its
	// columns.
	byAlign := make(map[Alignment][]string)
	for _, r := range style.Aligns {
		byAlign[r.Align] = append(byAlign[r.Align], r.Columns...)
	}
	for _, a := range []Alignment{AlignLeft, AlignCenter, AlignRight} {
		cols := byAlign[a]
		if len(cols) == 0 {
			continue
		}
		plan = append(plan, Call{Name: CallAlign, Apply: func(b Builder) Builder {
			return b.AlignColumns(cols, a)
		}})
	}

	// 4. Indentation, one call per rule.
	for _, r := range style.Indents {
		plan = append(plan, Call{Name: CallIndent, Apply: func(b Builder) Builder {
			return b.IndentCells(r.Columns, r.Rows)
		}})
	}

	// 5. Formatting functions, one call per rule.
	for _, r := range style.Formats {
		plan = append(plan, Call{Name: CallFormat, Apply: func(b Builder) Builder {
			return b.FormatCells(r.Column, r.Rows, r.Fn)
		}})
	}

	// 6. Emphasis, one call per rule.
	for _, r := range style.Emphases {
		plan = append(plan, Call{Name: CallEmphasis, Apply: func(b Builder) Builder {
			return b.EmphasizeCells(r.Columns, r.Rows, r.Bold, r.Italic)
		}})
	}

	// 7. Column labels: one call mapping every body column; unlabeled
	// columns map to their own name.
	labels := make(map[string]string, len(body.Columns))
	for _, c := range body.Columns {
		labels[c] = c
		if l, ok := style.Labels[c]; ok {
			labels[c] = l
		}
	}
	plan = append(plan, Call{Name: CallLabel, Apply: func(b Builder) Builder {
		return b.LabelColumns(labels)
	}})

	// 8. Footnotes: rules and abbreviations combined, grouped by literal
	// text. Identical text always merges into a single call, even across
	// logically distinct rules; the first rule's location wins.
	plan = append(plan, footnoteCalls(style)...)

	// 9. Spanning headers grouped by text.
	plan = append(plan, spannerCalls(style)...)

	// 10. Column hiding: everything in the body absent from Show. A nil
	// Show means every column is shown, so nothing hides — but the call is
	// still emitted so the plan shape is stable.
	hidden := hiddenColumns(body, style.Show)
	plan = append(plan, Call{Name: CallHide, Apply: func(b Builder) Builder {
		return b.HideColumns(hidden)
	}})

	return plan
}

func footnoteCalls(style Styling) Plan {
	rules := make([]FootnoteRule, 0, len(style.Footnotes)+len(style.Abbreviations))
	rules = append(rules, style.Footnotes...)
	rules = append(rules, style.Abbreviations...)
	if len(rules) == 0 {
		return nil
	}

	type group struct {
		loc     Location
		columns []string
		rows    []int
	}
	var order []string
	groups := make(map[string]*group)
	for _, r := range rules {
		g, ok := groups[r.Text]
		if !ok {
			g = &group{loc: r.Location}
			groups[r.Text] = g
			order = append(order, r.Text)
		}
		g.columns = append(g.columns, r.Columns...)
		g.rows = append(g.rows, r.Rows...)
	}

	var plan Plan
	for _, text := range order {
		g := groups[text]
		plan = append(plan, Call{Name: CallFootnote, Apply: func(b Builder) Builder {
			return b.AddFootnote(text, g.loc, g.columns, g.rows)
		}})
	}
	return plan
}

func spannerCalls(style Styling) Plan {
	var order []string
	columns := make(map[string][]string)
	for _, r := range style.Spanners {
		if _, ok := columns[r.Text]; !ok {
			order = append(order, r.Text)
		}
		columns[r.Text] = append(columns[r.Text], r.Columns...)
	}

	var plan Plan
	for _, text := range order {
		cols := columns[text]
		plan = append(plan, Call{Name: CallSpanner, Apply: func(b Builder) Builder {
			return b.AddSpanner(text, cols)
		}})
	}
	return plan
}

func hiddenColumns(body Table, show []string) []string {
	if show == nil {
		return nil
	}
	shown := make(map[string]bool, len(show))
	for _, c := range show {
		shown[c] = true
	}
	var hidden []string
	for _, c := range body.Columns {
		if !shown[c] {
			hidden = append(hidden, c)
		}
	}
	return hidden
}
