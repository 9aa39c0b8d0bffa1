// ABOUTME: Implements a single-line status bar for the bottom of the TUI.
// ABOUTME: Shows the open lesson, its position in the list, the focused panel, and key hints.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel displays browsing state in a single line.
type StatusBarModel struct {
	label    string
	position int // 1-based index of the open lesson
	total    int
	focus    FocusTarget
	width    int
}

// NewStatusBarModel creates a StatusBarModel for a list of total lessons.
func NewStatusBarModel(total int) StatusBarModel {
	return StatusBarModel{total: total}
}

// SetLesson records the open lesson.
func (m *StatusBarModel) SetLesson(label string, position int) {
	m.label = label
	m.position = position
}

// SetFocus records which panel has focus.
func (m *StatusBarModel) SetFocus(f FocusTarget) {
	m.focus = f
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	var content string
	if m.total == 0 {
		content = "Brak lekcji | q: wyjście"
	} else {
		content = fmt.Sprintf("%s | %d/%d | %s | enter: otwórz  tab: przełącz  q: wyjście",
			m.label, m.position, m.total, m.focus)
	}

	style := StatusBarStyle.Width(m.width)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, style.Render(content))
}
