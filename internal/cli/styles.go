package cli

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleGreen    = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow   = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed      = lipgloss.NewStyle().Foreground(colorRed)
	styleBlue     = lipgloss.NewStyle().Foreground(colorBlue)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader   = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleSelected = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
)

func dim(s string) string { return styleDim.Render(s) }
