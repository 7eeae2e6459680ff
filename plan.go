package sumtab

import "regexp"

// Call names in generation order. A plan may hold several calls sharing one
// name (one per rule); selection always operates on whole name groups.
const (
	CallTable    = "table"
	CallMissing  = "missing"
	CallAlign    = "align"
	CallIndent   = "indent"
	CallFormat   = "format"
	CallEmphasis = "emphasis"
	CallLabel    = "label"
	CallFootnote = "footnote"
	CallSpanner  = "spanner"
	CallHide     = "hide"
)

var callOrder = []string{
	CallTable, CallMissing, CallAlign, CallIndent, CallFormat,
	CallEmphasis, CallLabel, CallFootnote, CallSpanner, CallHide,
}

// Calls returns the call names [Translate] can generate, in generation
// order. Theme extra calls may add names beyond these.
func Calls() []string {
	out := make([]string, len(callOrder))
	copy(out, callOrder)
	return out
}

// Call is one deferred rendering invocation: a pure step from the current
// render state to the next. A nil Apply is an empty entry and is dropped at
// execution time.
type Call struct {
	Name  string
	Apply func(Builder) Builder
}

// Plan is an ordered list of deferred rendering calls. Order is execution
// order; the base construction call is always first.
type Plan []Call

// Names returns the distinct call names in plan order.
func (p Plan) Names() []string {
	var names []string
	seen := make(map[string]bool, len(p))
	for _, c := range p {
		if !seen[c.Name] {
			seen[c.Name] = true
			names = append(names, c.Name)
		}
	}
	return names
}

// Select returns the calls whose names the selector chooses, preserving plan
// order. The base construction call is forced into the result even when the
// selector drops it.
func (p Plan) Select(sel Selector) Plan {
	if sel == nil {
		return p
	}
	chosen := make(map[string]bool)
	for _, name := range sel(p.Names()) {
		chosen[name] = true
	}
	chosen[CallTable] = true
	var out Plan
	for _, c := range p {
		if chosen[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

// SpliceAfter inserts calls after the last call named anchor. When no call
// carries that name the extra calls append at the end.
func (p Plan) SpliceAfter(anchor string, calls ...Call) Plan {
	if len(calls) == 0 {
		return p
	}
	at := len(p)
	for i, c := range p {
		if c.Name == anchor {
			at = i + 1
		}
	}
	out := make(Plan, 0, len(p)+len(calls))
	out = append(out, p[:at]...)
	out = append(out, calls...)
	out = append(out, p[at:]...)
	return out
}

// Execute runs the plan as a left fold over b: each call's result is the
// receiver of the next. Empty entries are skipped.
func (p Plan) Execute(b Builder) Builder {
	for _, c := range p {
		if c.Apply == nil {
			continue
		}
		b = c.Apply(b)
	}
	return b
}

// Selector chooses a subset of call names. It is a pure function from the
// plan's current name sequence to the names to keep; evaluation is eager and
// happens before any call runs. The returned names select whole name groups;
// ordering of the result does not matter because [Plan.Select] keeps plan
// order.
type Selector func(names []string) []string

// All selects every call.
func All() Selector {
	return func(names []string) []string { return names }
}

// Only selects exactly the named calls.
func Only(keep ...string) Selector {
	return func(names []string) []string {
		want := make(map[string]bool, len(keep))
		for _, n := range keep {
			want[n] = true
		}
		var out []string
		for _, n := range names {
			if want[n] {
				out = append(out, n)
			}
		}
		return out
	}
}

// Except selects every call but the named ones.
func Except(drop ...string) Selector {
	return func(names []string) []string {
		skip := make(map[string]bool, len(drop))
		for _, n := range drop {
			skip[n] = true
		}
		var out []string
		for _, n := range names {
			if !skip[n] {
				out = append(out, n)
			}
		}
		return out
	}
}

// Matching selects calls whose name matches the regular expression.
// A pattern that does not compile selects nothing.
func Matching(pattern string) Selector {
	re, err := regexp.Compile(pattern)
	return func(names []string) []string {
		if err != nil {
			return nil
		}
		var out []string
		for _, n := range names {
			if re.MatchString(n) {
				out = append(out, n)
			}
		}
		return out
	}
}
