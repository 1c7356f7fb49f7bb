package picker

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#A4C639") // android green
	colorWhite  = lipgloss.Color("#FFFFFF")
	colorDim    = lipgloss.Color("#6B7280")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	itemStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			MarginTop(1)
)
