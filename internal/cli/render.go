package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/averden/sumtab"
	"github.com/averden/sumtab/strata"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	by        []string // stratifying columns; empty means no stratification
	mode      string   // combination mode: "merge" or "stack"
	format    string   // builder name: "text", "markdown", "html"
	separator string   // joins stratum key values into labels
	theme     string   // optional theme YAML path
	title     string   // optional heading above the table
}

// newRenderCmd creates the render command: CSV in, rendered summary table
// out on stdout.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		mode:      "stack",
		format:    "text",
		separator: ", ",
	}

	cmd := &cobra.Command{
		Use:   "render [file.csv]",
		Short: "Summarize a CSV dataset and render it as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.by, "by", nil, "stratify by these columns")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "combination mode: merge or stack")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: text, markdown, or html")
	cmd.Flags().StringVar(&opts.separator, "separator", opts.separator, "separator joining stratum key values")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme YAML file")
	cmd.Flags().StringVar(&opts.title, "title", "", "heading printed above the table")

	return cmd
}

func runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ds, err := strata.FromCSV(f)
	if err != nil {
		return err
	}
	logger.Debug("loaded dataset", "rows", ds.NumRows(), "columns", len(ds.Columns))

	theme := sumtab.DefaultTheme()
	if opts.theme != "" {
		theme, err = sumtab.LoadThemeFile(opts.theme)
		if err != nil {
			return err
		}
	}

	sep := opts.separator
	if opts.theme != "" && !cmd.Flags().Changed("separator") {
		sep = theme.Separator
	}

	skip := make(map[string]bool, len(opts.by))
	for _, c := range opts.by {
		skip[c] = true
	}

	var table sumtab.StyledTable
	var strataCount int
	if len(opts.by) == 0 {
		table, err = summarize(ds, nil)
		if err != nil {
			return err
		}
	} else {
		mode, err := strata.ParseMode(opts.mode)
		if err != nil {
			return err
		}
		result, err := strata.Build(ds, opts.by,
			func(part strata.Dataset) (sumtab.StyledTable, error) { return summarize(part, skip) },
			mode,
			strata.WithSeparator(sep),
		)
		if err != nil {
			return err
		}
		table = result.Table
		strataCount = len(result.Strata)
		logger.Debug("stratified", "by", opts.by, "strata", strataCount, "mode", mode.String())
	}

	builder, err := sumtab.ParseBuilder(opts.format)
	if err != nil {
		return err
	}
	rendered, err := sumtab.Render(table, builder,
		sumtab.WithTheme(theme),
		sumtab.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.title != "" {
		fmt.Fprintln(out, styleTitle.Render(opts.title))
	}
	if s, ok := rendered.(fmt.Stringer); ok {
		fmt.Fprint(out, s.String())
	}
	if strataCount > 0 && opts.format == "text" {
		fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("%d strata", strataCount)))
	}
	return nil
}
