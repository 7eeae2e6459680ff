// Package sumtab turns styled summary tables into rendering calls.
//
// A [StyledTable] is a table body plus a styling manifest: column labels,
// alignment, missing-value symbols, per-cell formatting functions,
// indentation, bold/italic emphasis, footnotes, spanning headers, and the
// set of columns to show. [Translate] converts the manifest into an ordered
// [Plan] of deferred rendering calls, and [Render] executes that plan
// against a [Builder].
//
// # Call Plan
//
// Each styling concern becomes one group of calls, generated in a fixed
// order: table (base construction), missing, align, indent, format,
// emphasis, label, footnote, spanner, hide. The base construction call is
// mandatory; it survives every selection. Use [Translate] to inspect or
// rework the plan without rendering:
//
//	plan, err := sumtab.Translate(st, sumtab.WithInclude(sumtab.Only(sumtab.CallAlign, sumtab.CallLabel)))
//
// Selection uses [Selector] values — [All], [Only], [Except], [Matching] —
// evaluated eagerly over the plan's call names. Selected calls keep their
// generation order.
//
// # Builders
//
// A [Builder] is the rendering-library surface: every call is a pure step
// from the current builder state to the next, and [Plan.Execute] is a left
// fold over the sequence. Three builders ship with the package:
//
//   - [TextBuilder] — monospaced terminal output with box-drawing borders
//   - [MarkdownBuilder] — GitHub-flavored Markdown
//   - [HTMLBuilder] — styled HTML
//
// [ParseBuilder] converts a CLI flag string into a fresh builder.
//
// # Themes
//
// A [Theme] is an explicit configuration value: the default missing-value
// symbol, the stratum-label separator, extra calls spliced after an anchor,
// and optional pre/post hooks. There is no ambient global theme; pass one
// with [WithTheme] or rely on [DefaultTheme]. [LoadTheme] reads the
// serializable options from YAML.
//
// # Errors
//
// Referential mistakes — a styling rule naming a column the body does not
// have — are not checked here; they surface from the rendering calls.
// Removed options fail fast with [ErrRemovedOption]; soft-deprecated ones
// warn through the configured logger and keep working via their
// replacement semantics.
//
// Stratified tables (split–apply–combine over a dataset) live in the
// strata subpackage.
package sumtab
