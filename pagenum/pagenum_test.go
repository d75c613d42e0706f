package pagenum

import (
	"testing"

	"github.com/quirelab/quire/layout"
)

func TestToRoman(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "i"},
		{4, "iv"},
		{9, "ix"},
		{14, "xiv"},
		{40, "xl"},
		{90, "xc"},
		{400, "cd"},
		{900, "cm"},
		{1984, "mcmlxxxiv"},
		{3999, "mmmcmxcix"},
		{0, "0"},
		{-7, "-7"},
	}
	for _, c := range cases {
		if got := ToRoman(c.n); got != c.want {
			t.Fatalf("ToRoman(%d): got=%q want=%q", c.n, got, c.want)
		}
	}
}

func TestNumberingFormat(t *testing.T) {
	n := Numbering{Style: RomanUpper, Start: 1}
	if got := n.Format(3); got != "IV" {
		t.Fatalf("roman upper: got=%q want=\"IV\"", got)
	}
	n = Numbering{Style: Arabic, Start: 10}
	if got := n.Format(0); got != "10" {
		t.Fatalf("arabic with offset: got=%q want=\"10\"", got)
	}
}

func TestCalculateSectionTotals(t *testing.T) {
	meta := []PageMetadata{
		{Section: Frontmatter, PageInSection: 0},
		{Section: Frontmatter, PageInSection: 1},
		{Section: Source, PageInSection: 0, FilePath: "main.go"},
		{Section: Source, PageInSection: 1, FilePath: "main.go"},
		{Section: Source, PageInSection: 2, FilePath: "util.go"},
		{Section: Appendix, PageInSection: 0},
	}
	totals := CalculateSectionTotals(meta)
	if totals.Frontmatter != 2 || totals.Source != 3 || totals.Appendix != 1 {
		t.Fatalf("totals: %+v", totals)
	}
	if totals.For(Source) != 3 {
		t.Fatalf("For(Source): got=%d want=3", totals.For(Source))
	}
}

func TestResolveXParity(t *testing.T) {
	box := layout.Rect{X1: 10, X2: 110}
	const w = 20.0

	// page 0 is recto: outer means right
	if got := Outer.ResolveX(box, w, 0); got != 90 {
		t.Fatalf("outer recto: got=%g want=90", got)
	}
	if got := Outer.ResolveX(box, w, 1); got != 10 {
		t.Fatalf("outer verso: got=%g want=10", got)
	}
	if got := Inner.ResolveX(box, w, 0); got != 10 {
		t.Fatalf("inner recto: got=%g want=10", got)
	}
	if got := Inner.ResolveX(box, w, 1); got != 90 {
		t.Fatalf("inner verso: got=%g want=90", got)
	}
	if got := Centre.ResolveX(box, w, 0); got != 50 {
		t.Fatalf("centre: got=%g want=50", got)
	}
	if got := Left.ResolveX(box, w, 1); got != 10 {
		t.Fatalf("left ignores parity: got=%g want=10", got)
	}
	if got := Right.ResolveX(box, w, 1); got != 90 {
		t.Fatalf("right ignores parity: got=%g want=90", got)
	}
}

func TestParsers(t *testing.T) {
	if s, err := ParseStyle("roman-lower"); err != nil || s != RomanLower {
		t.Fatalf("ParseStyle: %v %v", s, err)
	}
	if _, err := ParseStyle("klingon"); err == nil {
		t.Fatalf("bad style accepted")
	}
	if p, err := ParsePosition("center"); err != nil || p != Centre {
		t.Fatalf("ParsePosition alias: %v %v", p, err)
	}
	if _, err := ParsePosition("diagonal"); err == nil {
		t.Fatalf("bad position accepted")
	}
	if r, err := ParseRule(""); err != nil || r != NoRule {
		t.Fatalf("empty rule: %v %v", r, err)
	}
	if _, err := ParseRule("around"); err == nil {
		t.Fatalf("bad rule accepted")
	}
}
