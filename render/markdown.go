// ABOUTME: Markdown to HTML conversion for lesson pages using goldmark with GFM and emoji shortcodes.
// ABOUTME: Raw HTML in lesson sources is omitted rather than passed through to the page.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Markdown converts markdown source to HTML. A single instance is safe for
// concurrent use by request handlers.
type Markdown struct {
	engine goldmark.Markdown
}

// NewMarkdown builds a converter with GFM (tables, strikethrough, task lists,
// autolinks), :shortcode: emoji, and generated heading IDs.
func NewMarkdown() *Markdown {
	return &Markdown{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				emoji.Emoji,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// HTML converts src and marks the result safe for html/template.
func (m *Markdown) HTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.engine.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
