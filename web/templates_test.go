// ABOUTME: Tests for the embedded template engine.
// ABOUTME: Verifies every page parses with the layout and that block kinds render distinctly.
package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/2389-research/lessonview/render"
)

func TestNewTemplateEngine(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine: %v", err)
	}
	for _, name := range []string{"page.html", "error.html"} {
		if _, ok := engine.templates[name]; !ok {
			t.Errorf("template %s not loaded", name)
		}
	}
}

func TestRenderToUnknownTemplate(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.RenderTo(&bytes.Buffer{}, "nope.html", PageData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestPageRendersBlocks(t *testing.T) {
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatal(err)
	}
	data := PageData{
		Title:    "Kurs",
		Labels:   []string{"Dzień 1"},
		Selected: "Dzień 1",
		Blocks: []render.Block{
			{Kind: render.BlockMarkdown, HTML: "<h1>Witaj</h1>"},
			{Kind: render.BlockImage, Src: "/content/images/a.png", Alt: "Rys. <1>"},
			{Kind: render.BlockInfo, HTML: "<p>Rys. 1: opis</p>"},
		},
	}

	var buf bytes.Buffer
	if err := engine.RenderTo(&buf, "page.html", data); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>Dzień 1 · Kurs</title>",
		"<h1>Witaj</h1>",
		`<img src="/content/images/a.png" alt="Rys. &lt;1&gt;">`,
		`<div class="info"><p>Rys. 1: opis</p></div>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "Brak lekcji") {
		t.Error("empty state shown with lessons present")
	}
}
