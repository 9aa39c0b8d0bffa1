// ABOUTME: Renders a lesson page to styled terminal text through glamour.
// ABOUTME: The glamour renderer is rebuilt only when the wrap width changes.
package tui

import (
	"fmt"

	"github.com/2389-research/lessonview/lesson"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// LessonRenderer turns lessons into terminal text.
type LessonRenderer struct {
	viewer *lesson.Viewer
	style  string

	term  *glamour.TermRenderer
	width int
}

// NewLessonRenderer creates a renderer using a glamour standard style name.
// An empty style picks one based on the terminal background.
func NewLessonRenderer(viewer *lesson.Viewer, style string) *LessonRenderer {
	if style == "" {
		style = styles.AutoStyle
	}
	return &LessonRenderer{viewer: viewer, style: style}
}

// Render renders lesson id wrapped to width columns.
func (r *LessonRenderer) Render(id lesson.ID, width int) (string, error) {
	var doc TerminalEmitter
	if err := r.viewer.Render(id, &doc); err != nil {
		return "", err
	}

	if r.term == nil || r.width != width {
		term, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err != nil {
			return "", fmt.Errorf("creating markdown renderer: %w", err)
		}
		r.term, r.width = term, width
	}

	out, err := r.term.Render(doc.Document())
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", lesson.Label(id), err)
	}
	return out, nil
}
