// ABOUTME: HTMLBlocks collects emitted lesson content as template-ready blocks in display order.
// ABOUTME: Markdown and info text are converted eagerly; the first conversion error is kept for the caller.
package render

import (
	"html/template"
	"strings"
)

// BlockKind distinguishes the page blocks the template knows how to draw.
type BlockKind string

const (
	BlockMarkdown BlockKind = "markdown"
	BlockImage    BlockKind = "image"
	BlockInfo     BlockKind = "info"
)

// Block is one piece of rendered page content.
type Block struct {
	Kind BlockKind
	HTML template.HTML // markdown and info blocks
	Src  string        // image blocks
	Alt  string        // image blocks
}

// HTMLBlocks implements lesson.Emitter for the web UI.
type HTMLBlocks struct {
	md        *Markdown
	srcPrefix string
	blocks    []Block
	err       error
}

// NewHTMLBlocks creates a collector. srcPrefix is prepended to the
// content-relative image paths (e.g. "/content/").
func NewHTMLBlocks(md *Markdown, srcPrefix string) *HTMLBlocks {
	return &HTMLBlocks{md: md, srcPrefix: srcPrefix}
}

func (b *HTMLBlocks) Markdown(source string) {
	b.appendConverted(BlockMarkdown, source)
}

func (b *HTMLBlocks) Image(src, alt string) {
	b.blocks = append(b.blocks, Block{
		Kind: BlockImage,
		Src:  b.srcPrefix + strings.TrimPrefix(src, "/"),
		Alt:  alt,
	})
}

func (b *HTMLBlocks) Info(text string) {
	b.appendConverted(BlockInfo, text)
}

func (b *HTMLBlocks) appendConverted(kind BlockKind, source string) {
	html, err := b.md.HTML(source)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		html = template.HTML(template.HTMLEscapeString(source))
	}
	b.blocks = append(b.blocks, Block{Kind: kind, HTML: html})
}

// Blocks returns the collected blocks in emission order.
func (b *HTMLBlocks) Blocks() []Block {
	return b.blocks
}

// Err returns the first markdown conversion error, if any.
func (b *HTMLBlocks) Err() error {
	return b.err
}
