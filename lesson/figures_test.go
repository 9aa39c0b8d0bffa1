// ABOUTME: Tests for figures table parsing with single-quote quoting and for per-lesson loading.
// ABOUTME: Covers quoted commas, doubled quotes, multi-line fields, blank lines, and malformed tables.
package lesson

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestParseFigures(t *testing.T) {
	src := "img,figure,caption\n" +
		"a.png,Rys. 1,'Okno aplikacji, po uruchomieniu'\n" +
		"\n" +
		"b.png,'Rys. 2','Don''t panic'\r\n"
	got, err := ParseFigures(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseFigures: %v", err)
	}
	want := []Figure{
		{Img: "a.png", Figure: "Rys. 1", Caption: "Okno aplikacji, po uruchomieniu"},
		{Img: "b.png", Figure: "Rys. 2", Caption: "Don't panic"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("figures mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFiguresColumnOrderAndExtras(t *testing.T) {
	src := "caption,source,img,figure\nOpis,web,x.jpg,Rys. 9"
	got, err := ParseFigures(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseFigures: %v", err)
	}
	want := []Figure{{Img: "x.jpg", Figure: "Rys. 9", Caption: "Opis"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("figures mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFiguresByteOrderMark(t *testing.T) {
	for name, src := range map[string]string{
		"plain header":  "\ufeffimg,figure,caption\na.png,Rys. 1,x\n",
		"quoted header": "\ufeff'img',figure,caption\na.png,Rys. 1,x\n",
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFigures(strings.NewReader(src))
			if err != nil {
				t.Fatalf("ParseFigures: %v", err)
			}
			want := []Figure{{Img: "a.png", Figure: "Rys. 1", Caption: "x"}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("figures mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFiguresMultilineField(t *testing.T) {
	src := "img,figure,caption\na.png,Rys. 1,'first line\nsecond line'\n"
	got, err := ParseFigures(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseFigures: %v", err)
	}
	if len(got) != 1 || got[0].Caption != "first line\nsecond line" {
		t.Errorf("unexpected figures: %+v", got)
	}
}

func TestParseFiguresDoubleQuotesAreLiteral(t *testing.T) {
	src := "img,figure,caption\na.png,Rys. 1,\"quoted\" text\n"
	got, err := ParseFigures(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseFigures: %v", err)
	}
	if got[0].Caption != `"quoted" text` {
		t.Errorf("caption = %q", got[0].Caption)
	}
}

func TestParseFiguresHeaderOnly(t *testing.T) {
	got, err := ParseFigures(strings.NewReader("img,figure,caption\n"))
	if err != nil {
		t.Fatalf("ParseFigures: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no figures, got %v", got)
	}
}

func TestParseFiguresMalformed(t *testing.T) {
	tests := map[string]string{
		"empty":           "",
		"missing column":  "img,caption\na.png,x\n",
		"too many fields": "img,figure,caption\na.png,b,c,d\n",
		"too few fields":  "img,figure,caption\na.png,b\n",
		"unterminated":    "img,figure,caption\na.png,b,'never closed\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFigures(strings.NewReader(src))
			if !errors.Is(err, ErrMalformedFigures) {
				t.Fatalf("expected ErrMalformedFigures, got %v", err)
			}
		})
	}
}

func TestLoadFigures(t *testing.T) {
	fsys := fstest.MapFS{
		"figures/Day2.csv": file("img,figure,caption\na.png,Rys. 1,Pierwszy\n"),
		"figures/Day3.csv": file("img,caption\n"),
	}

	figs, ok, err := LoadFigures(fsys, 2)
	if err != nil || !ok {
		t.Fatalf("LoadFigures(2) = (%v, %v, %v)", figs, ok, err)
	}
	if len(figs) != 1 || figs[0].InfoText() != "Rys. 1: Pierwszy" {
		t.Errorf("unexpected figures: %+v", figs)
	}

	figs, ok, err = LoadFigures(fsys, 5)
	if err != nil || ok || figs != nil {
		t.Errorf("LoadFigures(5) = (%v, %v, %v), want no table", figs, ok, err)
	}

	_, ok, err = LoadFigures(fsys, 3)
	if !ok || !errors.Is(err, ErrMalformedFigures) {
		t.Errorf("LoadFigures(3) = (%v, %v), want malformed error", ok, err)
	}
}
