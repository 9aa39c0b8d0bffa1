// ABOUTME: Content tree validation: discovery errors, unreadable lessons, bad figures tables, missing images.
// ABOUTME: Backs the "check" CLI command so curated content can be verified before it is served.
package lesson

import (
	"fmt"
	"io/fs"
)

// Problem is one issue found in a content tree.
type Problem struct {
	Lesson  ID // zero for tree-wide problems
	Path    string
	Message string
}

func (p Problem) String() string {
	if p.Lesson == 0 {
		return fmt.Sprintf("%s: %s", p.Path, p.Message)
	}
	return fmt.Sprintf("%s (%s): %s", p.Path, Label(p.Lesson), p.Message)
}

// Check inspects every lesson in fsys and returns the lessons it found along
// with any problems. A discovery failure is reported as a single problem and
// no lessons, since nothing else can be checked without a lesson list.
func Check(fsys fs.FS) ([]ID, []Problem) {
	ids, err := ListLessons(fsys)
	if err != nil {
		return nil, []Problem{{Path: ".", Message: err.Error()}}
	}

	var problems []Problem
	for _, id := range ids {
		if _, err := fs.Stat(fsys, BodyPath(id)); err != nil {
			problems = append(problems, Problem{Lesson: id, Path: BodyPath(id), Message: err.Error()})
		}

		figs, ok, err := LoadFigures(fsys, id)
		if err != nil {
			problems = append(problems, Problem{Lesson: id, Path: FiguresPath(id), Message: err.Error()})
			continue
		}
		if !ok {
			continue
		}
		for _, fig := range figs {
			if err := imageExists(fsys, fig.Img); err != nil {
				problems = append(problems, Problem{
					Lesson:  id,
					Path:    FiguresPath(id),
					Message: fmt.Sprintf("image %q: %v", fig.Img, err),
				})
			}
		}
	}
	return ids, problems
}
