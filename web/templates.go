// ABOUTME: TemplateEngine loads embedded HTML templates and renders them with Go's html/template.
// ABOUTME: Templates are embedded at compile time via go:embed so the binary needs no asset directory.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/2389-research/lessonview/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates for rendering.
type PageData struct {
	Title    string
	HasLogo  bool
	Labels   []string
	Selected string // label of the displayed lesson; empty when there are none
	Blocks   []render.Block
	Intro    template.HTML
	Sidebar  []SidebarSection
	Error    string
}

// TemplateEngine loads and renders embedded HTML templates.
type TemplateEngine struct {
	templates map[string]*template.Template
}

// NewTemplateEngine parses all embedded templates and returns a ready-to-use engine.
// Each page template is parsed together with the layout so that the layout wraps every page.
func NewTemplateEngine() (*TemplateEngine, error) {
	pages := []string{
		"page.html",
		"error.html",
	}

	engine := &TemplateEngine{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		t, err := template.New("layout.html").ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.templates[page] = t
	}
	return engine, nil
}

// Render executes the named template with the given data and writes the result
// to w. It sets the Content-Type header to text/html.
func (e *TemplateEngine) Render(w http.ResponseWriter, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, "layout.html", data)
}

// RenderTo executes the named template with the given data and writes the
// result to an arbitrary io.Writer.
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
