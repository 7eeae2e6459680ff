package sumtab

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme carries process-level rendering defaults. It is an explicit value
// threaded into [Translate] and [Render] via [WithTheme]; nothing reads it
// from ambient globals. The zero value is not useful — start from
// [DefaultTheme].
type Theme struct {
	// MissingSymbol is what the default missing-value rule shows for empty
	// cells. Default blank.
	MissingSymbol string `yaml:"missing_symbol"`

	// Separator joins stratum key values into labels. Default ", ".
	Separator string `yaml:"separator"`

	// Anchor names the call after which ExtraCalls are spliced.
	// Default the base construction call.
	Anchor string `yaml:"anchor"`

	// ExtraCalls are theme-registered additional calls, spliced into every
	// generated plan after Anchor.
	ExtraCalls []Call `yaml:"-"`

	// PreProcess, when set, may rewrite the styled table before any call
	// is generated.
	PreProcess func(*StyledTable) `yaml:"-"`

	// Finalize, when set, runs after the plan executes. It is the theme's
	// trailing "additional commands" hook.
	Finalize func(Builder) Builder `yaml:"-"`
}

// DefaultTheme returns the documented defaults: blank missing symbol,
// ", " separator, extra calls anchored after the base call, no hooks.
func DefaultTheme() Theme {
	return Theme{
		Separator: ", ",
		Anchor:    CallTable,
	}
}

// LoadTheme reads the serializable theme options from YAML, returning
// [DefaultTheme] values for anything the document omits. Unknown fields are
// an error. Hooks and extra calls cannot come from a file; set them on the
// returned value.
func LoadTheme(r io.Reader) (Theme, error) {
	t := DefaultTheme()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultTheme(), nil
		}
		return Theme{}, fmt.Errorf("load theme: %w", err)
	}
	if t.Anchor == "" {
		t.Anchor = CallTable
	}
	return t, nil
}

// LoadThemeFile is a convenience wrapper around [LoadTheme].
func LoadThemeFile(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme: %w", err)
	}
	defer f.Close()
	return LoadTheme(f)
}
