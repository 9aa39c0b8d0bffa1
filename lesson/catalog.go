// ABOUTME: Lesson discovery from a content directory, by filename convention or an explicit lessons.yaml manifest.
// ABOUTME: Rejects duplicate and non-positive lesson numbers; always returns IDs in ascending numeric order.
package lesson

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional manifest at the content root that lists lessons explicitly.
const ManifestFile = "lessons.yaml"

var bodyPattern = regexp.MustCompile(`^Day([0-9]+)\.md$`)

// Manifest is the on-disk shape of lessons.yaml.
type Manifest struct {
	Lessons []int `yaml:"lessons"`
}

// ListLessons returns the lessons available in fsys, sorted ascending.
//
// When lessons.yaml exists it is authoritative. Otherwise the root directory
// is scanned for Day<N>.md; other files are ignored. No matches yields an
// empty list and no error.
func ListLessons(fsys fs.FS) ([]ID, error) {
	raw, err := fs.ReadFile(fsys, ManifestFile)
	switch {
	case err == nil:
		return fromManifest(fsys, raw)
	case errors.Is(err, fs.ErrNotExist):
		return scanLessons(fsys)
	default:
		return nil, fmt.Errorf("read %s: %w", ManifestFile, err)
	}
}

func scanLessons(fsys fs.FS) ([]ID, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read content directory: %w", err)
	}

	seen := make(map[ID]string)
	ids := make([]ID, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := bodyPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s: %w", entry.Name(), ErrInvalidLesson)
		}
		id := ID(n)
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s and %s are both lesson %d: %w", prev, entry.Name(), n, ErrDuplicateLesson)
		}
		seen[id] = entry.Name()
		ids = append(ids, id)
	}

	sortIDs(ids)
	return ids, nil
}

func fromManifest(fsys fs.FS, raw []byte) ([]ID, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}

	seen := make(map[ID]bool, len(m.Lessons))
	ids := make([]ID, 0, len(m.Lessons))
	for _, n := range m.Lessons {
		if n <= 0 {
			return nil, fmt.Errorf("%s lists %d: %w", ManifestFile, n, ErrInvalidLesson)
		}
		id := ID(n)
		if seen[id] {
			return nil, fmt.Errorf("%s lists %d twice: %w", ManifestFile, n, ErrDuplicateLesson)
		}
		seen[id] = true
		if _, err := fs.Stat(fsys, BodyPath(id)); err != nil {
			return nil, fmt.Errorf("%s lists %d: %w", ManifestFile, n, err)
		}
		ids = append(ids, id)
	}

	sortIDs(ids)
	return ids, nil
}

func sortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
