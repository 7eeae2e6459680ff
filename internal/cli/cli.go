// Package cli implements the sumtab command-line interface.
//
// The CLI is a thin demonstration shell over the library: it reads a CSV
// dataset, optionally stratifies it, summarizes each stratum with a small
// built-in construction function, and renders the combined table with one
// of the shipped builders. Verbose logging goes through charmbracelet/log.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
)

// SetVersion sets the version information displayed by --version.
// Typically called by main with values injected via ldflags.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the sumtab CLI.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "sumtab",
		Short:        "sumtab renders stratified summary tables from CSV data",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("sumtab %s (%s)\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())

	return root.ExecuteContext(ctx)
}
