// ABOUTME: TerminalEmitter collects a lesson page as one markdown document for glamour to render.
// ABOUTME: Images cannot be drawn in a terminal, so they become a labelled line with their path.
package tui

import (
	"strings"

	"github.com/2389-research/lessonview/lesson"
)

// TerminalEmitter implements lesson.Emitter for terminal output.
type TerminalEmitter struct {
	parts []string
}

var _ lesson.Emitter = (*TerminalEmitter)(nil)

func (e *TerminalEmitter) Markdown(source string) {
	e.parts = append(e.parts, source)
}

func (e *TerminalEmitter) Image(src, alt string) {
	e.parts = append(e.parts, "🖼  *"+alt+"* (`"+src+"`)")
}

// Info quotes every line of text so multi-line captions stay in one blockquote.
func (e *TerminalEmitter) Info(text string) {
	lines := strings.Split(text, "\n")
	lines[0] = "ℹ️ " + lines[0]
	for i, line := range lines {
		lines[i] = "> " + line
	}
	e.parts = append(e.parts, strings.Join(lines, "\n"))
}

// Document joins everything emitted so far into one markdown document.
func (e *TerminalEmitter) Document() string {
	return strings.Join(e.parts, "\n\n")
}
