// ABOUTME: Defines lipgloss styles for the TUI panels, the status bar, and error text.
// ABOUTME: Focused panels get a brighter border so keyboard focus is visible.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// panelStyle returns the border style for a panel given its focus state.
func panelStyle(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorderStyle
	}
	return BorderStyle
}
