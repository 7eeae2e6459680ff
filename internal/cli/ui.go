package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan = lipgloss.Color("36")
	colorDim  = lipgloss.Color("240")
)

var (
	// styleTitle for the optional heading above a rendered table.
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleDim for secondary trailer lines.
	styleDim = lipgloss.NewStyle().Foreground(colorDim)
)
