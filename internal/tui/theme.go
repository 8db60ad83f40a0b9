package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette.
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	pathStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginTop(1)
	summaryStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	pendingStyle = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)
	doneStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	todoStyle    = lipgloss.NewStyle().Foreground(colorPeach)
	linkStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	focusStyle   = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(colorOverlay1).MarginTop(1)
	barStyle     = lipgloss.NewStyle().Foreground(colorMauve)
	trackStyle   = lipgloss.NewStyle().Foreground(colorSurface1)
)
