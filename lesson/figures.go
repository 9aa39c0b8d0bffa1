// ABOUTME: Figures table loading: per-lesson CSV rows of image filename, figure label, and caption.
// ABOUTME: The tables quote with a single quote character, which encoding/csv cannot express, so parsing is local.
package lesson

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// quoteChar is the figures table quote character.
const quoteChar = '\''

// byteOrderMark is written ahead of the header by spreadsheet exports.
const byteOrderMark = '\ufeff'

// Figure is one row of a figures table.
type Figure struct {
	Img     string
	Figure  string
	Caption string
}

// InfoText is the caption line shown under the image.
func (f Figure) InfoText() string {
	return f.Figure + ": " + f.Caption
}

// LoadFigures reads the figures table for id. The boolean is false when the
// lesson has no table, which is not an error.
func LoadFigures(fsys fs.FS, id ID) ([]Figure, bool, error) {
	f, err := fsys.Open(FiguresPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", FiguresPath(id), err)
	}
	defer f.Close()

	figs, err := ParseFigures(f)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", FiguresPath(id), err)
	}
	return figs, true, nil
}

// ParseFigures parses a figures table. The first record is a header that must
// name img, figure and caption columns; other columns are ignored. Blank lines
// are skipped and every data record must have as many fields as the header.
func ParseFigures(r io.Reader) ([]Figure, error) {
	br := bufio.NewReader(r)
	if c, _, err := br.ReadRune(); err == nil && c != byteOrderMark {
		_ = br.UnreadRune()
	}
	records, err := readRecords(br)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table: %w", ErrMalformedFigures)
	}

	header := records[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, want := range []string{"img", "figure", "caption"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", want, ErrMalformedFigures)
		}
	}

	figs := make([]Figure, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d: %w",
				i+1, len(rec), len(header), ErrMalformedFigures)
		}
		figs = append(figs, Figure{
			Img:     rec[col["img"]],
			Figure:  rec[col["figure"]],
			Caption: rec[col["caption"]],
		})
	}
	return figs, nil
}

// readRecords splits comma-separated records. A field starting with a quote
// runs to the matching closing quote, may span lines, and uses a doubled
// quote for a literal one.
func readRecords(br *bufio.Reader) ([][]string, error) {
	var (
		records [][]string
		record  []string
		field   strings.Builder
		quoted  bool // inside a quoted field
		started bool // current field has begun (distinguishes '' from no field)
		line    = 1
	)

	endField := func() {
		record = append(record, field.String())
		field.Reset()
		started = false
	}
	endRecord := func() {
		endField()
		// A record made of a single empty field is a blank line.
		if !(len(record) == 1 && record[0] == "") {
			records = append(records, record)
		}
		record = nil
	}

	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			if quoted {
				return nil, fmt.Errorf("line %d: unterminated quoted field: %w", line, ErrMalformedFigures)
			}
			if started || len(record) > 0 || field.Len() > 0 {
				endRecord()
			}
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read figures: %w", err)
		}

		if quoted {
			if c == quoteChar {
				next, _, err := br.ReadRune()
				if err == nil && next == quoteChar {
					field.WriteRune(quoteChar)
					continue
				}
				if err == nil {
					_ = br.UnreadRune()
				}
				quoted = false
				continue
			}
			if c == '\n' {
				line++
			}
			field.WriteRune(c)
			continue
		}

		switch c {
		case quoteChar:
			if !started && field.Len() == 0 {
				quoted = true
				started = true
				continue
			}
			field.WriteRune(c)
		case ',':
			endField()
		case '\r':
			// Dropped; \n ends the record.
		case '\n':
			endRecord()
			line++
		default:
			started = true
			field.WriteRune(c)
		}
	}
}
