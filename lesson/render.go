// ABOUTME: Emits a lesson's page content (heading, markdown body, figures) through a front-end agnostic Emitter.
// ABOUTME: The web UI collects HTML blocks and the TUI collects terminal markdown from the same emission pass.
package lesson

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/2389-research/lessonview/logging"
)

// Emitter receives page content in display order.
type Emitter interface {
	// Markdown emits markdown source to be rendered as formatted text.
	Markdown(source string)
	// Image emits an image by content-relative path.
	Image(src, alt string)
	// Info emits an informational callout.
	Info(text string)
}

// FigurePolicy decides what happens when a figures row names an image that is not on disk.
type FigurePolicy string

const (
	// FiguresSkip omits the image block, keeps the caption, and logs a warning.
	FiguresSkip FigurePolicy = "skip"
	// FiguresStrict fails the render with ErrMissingImage.
	FiguresStrict FigurePolicy = "strict"
)

// ParseFigurePolicy validates a policy name. The empty string means FiguresSkip.
func ParseFigurePolicy(s string) (FigurePolicy, error) {
	switch FigurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", FiguresSkip:
		return FiguresSkip, nil
	case FiguresStrict:
		return FiguresStrict, nil
	default:
		return "", fmt.Errorf("unknown figure policy %q (want skip or strict)", s)
	}
}

// Heading is the markdown heading shown above a lesson body.
func Heading(id ID) string {
	return "# 🗓️ " + Label(id)
}

const (
	figuresDivider = "---"
	figuresHeading = "### Ilustracje"
)

// RenderLesson emits the literal contents of the lesson's markdown file.
func RenderLesson(fsys fs.FS, id ID, e Emitter) error {
	body, err := fs.ReadFile(fsys, BodyPath(id))
	if err != nil {
		return fmt.Errorf("read lesson %d: %w", id, err)
	}
	e.Markdown(string(body))
	return nil
}

// RenderFigures emits the lesson's figures, one image and caption per table
// row in file order, and returns how many rows were emitted. A lesson without
// a figures table emits nothing. Under FiguresSkip a row whose image is
// missing still counts and still emits its caption.
func RenderFigures(fsys fs.FS, id ID, e Emitter, policy FigurePolicy, log *logging.Logger) (int, error) {
	figs, ok, err := LoadFigures(fsys, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	if log == nil {
		log = logging.Nop()
	}

	// Strict mode checks every image before emitting anything so a failed
	// render never leaves half a figures section behind.
	if policy == FiguresStrict {
		for _, fig := range figs {
			if err := imageExists(fsys, fig.Img); err != nil {
				return 0, fmt.Errorf("lesson %d figure %q: %w", id, fig.Img, err)
			}
		}
	}

	e.Markdown(figuresDivider)
	e.Markdown(figuresHeading)
	for _, fig := range figs {
		if err := imageExists(fsys, fig.Img); err != nil {
			log.Warn("figure image missing, skipping image", "lesson", int(id), "img", fig.Img)
		} else {
			e.Image(ImagePath(fig.Img), fig.Figure)
		}
		e.Info(fig.InfoText())
	}
	return len(figs), nil
}

func imageExists(fsys fs.FS, img string) error {
	if img == "" || !fs.ValidPath(ImagePath(img)) {
		return ErrMissingImage
	}
	info, err := fs.Stat(fsys, ImagePath(img))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrMissingImage
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrMissingImage
	}
	return nil
}

// Viewer renders whole lesson pages from one content tree.
type Viewer struct {
	fsys   fs.FS
	policy FigurePolicy
	log    *logging.Logger
}

// NewViewer creates a Viewer. A nil logger discards warnings.
func NewViewer(fsys fs.FS, policy FigurePolicy, log *logging.Logger) *Viewer {
	if log == nil {
		log = logging.Nop()
	}
	if policy == "" {
		policy = FiguresSkip
	}
	return &Viewer{fsys: fsys, policy: policy, log: log}
}

// FS returns the content tree the viewer reads from.
func (v *Viewer) FS() fs.FS {
	return v.fsys
}

// Lessons lists the available lessons. Each call rescans the content tree.
func (v *Viewer) Lessons() ([]ID, error) {
	return ListLessons(v.fsys)
}

// Render emits the heading, body, and figures for id.
func (v *Viewer) Render(id ID, e Emitter) error {
	e.Markdown(Heading(id))
	if err := RenderLesson(v.fsys, id, e); err != nil {
		return err
	}
	if _, err := RenderFigures(v.fsys, id, e, v.policy, v.log); err != nil {
		return err
	}
	return nil
}
