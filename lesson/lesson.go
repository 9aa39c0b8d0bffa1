// ABOUTME: Lesson identifiers, display labels, and selection resolution shared by the web and terminal UIs.
// ABOUTME: A label ("Dzień N") is both what the selector shows and the value carried in the URL.
package lesson

import (
	"errors"
	"strconv"
	"strings"
)

// QueryParam is the URL query parameter that carries the selected lesson label.
const QueryParam = "challenge"

// labelPrefix precedes the lesson number in every display label.
const labelPrefix = "Dzień "

var (
	// ErrDuplicateLesson is returned when two content files resolve to the same lesson number.
	ErrDuplicateLesson = errors.New("duplicate lesson")
	// ErrInvalidLesson is returned for lesson numbers that are not positive integers.
	ErrInvalidLesson = errors.New("invalid lesson number")
	// ErrMalformedFigures is returned when a figures table cannot be parsed.
	ErrMalformedFigures = errors.New("malformed figures table")
	// ErrMissingImage is returned under FiguresStrict when a figure's image file is absent.
	ErrMissingImage = errors.New("missing figure image")
)

// ID is a lesson number. Valid IDs are positive.
type ID int

// Label returns the display label for id, e.g. "Dzień 3".
func Label(id ID) string {
	return labelPrefix + strconv.Itoa(int(id))
}

// Labels maps ids to their display labels, preserving order.
func Labels(ids []ID) []string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = Label(id)
	}
	return labels
}

// ParseLabel is the inverse of Label. It accepts only the exact form Label
// produces, so "Dzień 03" and "dzień 3" are rejected.
func ParseLabel(s string) (ID, bool) {
	rest, ok := strings.CutPrefix(s, labelPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	if strconv.Itoa(n) != rest {
		return 0, false
	}
	return ID(n), true
}

// ResolveSelection picks the lesson to display.
//
// A param that names one of the lessons' labels wins. Otherwise fallback is
// used when it is one of the lessons, and failing that the first lesson. The
// boolean is false only when lessons is empty. Unknown params are ignored.
func ResolveSelection(param string, lessons []ID, fallback ID) (ID, bool) {
	if len(lessons) == 0 {
		return 0, false
	}
	if param != "" {
		for _, id := range lessons {
			if Label(id) == param {
				return id, true
			}
		}
	}
	if Contains(lessons, fallback) {
		return fallback, true
	}
	return lessons[0], true
}

// Contains reports whether id is one of lessons.
func Contains(lessons []ID, id ID) bool {
	for _, l := range lessons {
		if l == id {
			return true
		}
	}
	return false
}

// BodyPath is the content-relative path of a lesson's markdown file.
func BodyPath(id ID) string {
	return "Day" + strconv.Itoa(int(id)) + ".md"
}

// FiguresPath is the content-relative path of a lesson's figures table.
func FiguresPath(id ID) string {
	return "figures/Day" + strconv.Itoa(int(id)) + ".csv"
}

// ImagePath is the content-relative path of a figure image.
func ImagePath(img string) string {
	return "images/" + img
}
