// Package pagenum assigns page numbers per logical section. Each section
// (frontmatter, source listing, appendix) numbers its pages independently,
// with its own numeral style and 1-based start, so a book can open with roman
// front matter and restart at 1 for the listing.
package pagenum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quirelab/quire/layout"
)

// Section is the numbering domain a page belongs to.
type Section int

const (
	Frontmatter Section = iota
	Source
	Appendix
)

func (s Section) String() string {
	switch s {
	case Frontmatter:
		return "frontmatter"
	case Source:
		return "source"
	default:
		return "appendix"
	}
}

// Style selects the numeral rendering for a section.
type Style int

const (
	Arabic Style = iota
	RomanLower
	RomanUpper
)

// ParseStyle maps a configuration string to a Style.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "arabic":
		return Arabic, nil
	case "roman-lower":
		return RomanLower, nil
	case "roman-upper":
		return RomanUpper, nil
	default:
		return Arabic, fmt.Errorf("unknown numbering style %q", s)
	}
}

// Numbering is one section's style and 1-based starting number.
type Numbering struct {
	Style Style
	Start int
}

// Format renders the number for the page at pageInSection (0-based within
// the section): start + pageInSection, in the section's numeral style.
func (n Numbering) Format(pageInSection int) string {
	v := n.Start + pageInSection
	switch n.Style {
	case RomanLower:
		return ToRoman(v)
	case RomanUpper:
		return strings.ToUpper(ToRoman(v))
	default:
		return strconv.Itoa(v)
	}
}

// Scheme holds the numbering for all three sections.
type Scheme struct {
	Frontmatter Numbering
	Source      Numbering
	Appendix    Numbering
}

// For returns the numbering configured for sec.
func (s Scheme) For(sec Section) Numbering {
	switch sec {
	case Frontmatter:
		return s.Frontmatter
	case Source:
		return s.Source
	default:
		return s.Appendix
	}
}

// PageMetadata describes one finished page for numbering and header/footer
// expansion. It lives beside the page order, never inside the pages.
type PageMetadata struct {
	Section       Section
	PageInSection int
	FilePath      string // empty when the page belongs to no file
}

// SectionTotals counts pages per section over the whole document.
type SectionTotals struct {
	Frontmatter int
	Source      int
	Appendix    int
}

// CalculateSectionTotals tallies the metadata list.
func CalculateSectionTotals(meta []PageMetadata) SectionTotals {
	var t SectionTotals
	for _, m := range meta {
		switch m.Section {
		case Frontmatter:
			t.Frontmatter++
		case Source:
			t.Source++
		case Appendix:
			t.Appendix++
		}
	}
	return t
}

// For returns the count for sec.
func (t SectionTotals) For(sec Section) int {
	switch sec {
	case Frontmatter:
		return t.Frontmatter
	case Source:
		return t.Source
	default:
		return t.Appendix
	}
}

var romanTable = []struct {
	value  int
	letter string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// ToRoman renders n in lowercase subtractive roman numerals. Non-positive
// input falls back to the arabic decimal string.
func ToRoman(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, e := range romanTable {
		for n >= e.value {
			b.WriteString(e.letter)
			n -= e.value
		}
	}
	return b.String()
}

// Position places header/footer text horizontally. Outer and Inner depend on
// page parity: pages at even document index are recto.
type Position int

const (
	Outer Position = iota
	Inner
	Centre
	Left
	Right
)

// ParsePosition maps a configuration string to a Position.
func ParsePosition(s string) (Position, error) {
	switch s {
	case "outer":
		return Outer, nil
	case "inner":
		return Inner, nil
	case "centre", "center":
		return Centre, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Outer, fmt.Errorf("unknown position %q", s)
	}
}

// ResolveX returns the x coordinate for text of the given width inside box,
// for the page at pageIndex.
func (p Position) ResolveX(box layout.Rect, textWidth float64, pageIndex int) float64 {
	recto := pageIndex%2 == 0
	eff := p
	switch p {
	case Outer:
		if recto {
			eff = Right
		} else {
			eff = Left
		}
	case Inner:
		if recto {
			eff = Left
		} else {
			eff = Right
		}
	}
	switch eff {
	case Right:
		return box.X2 - textWidth
	case Centre:
		return box.X1 + (box.Width()-textWidth)/2
	default:
		return box.X1
	}
}

// RulePosition says whether a header/footer gets a horizontal rule and where.
type RulePosition int

const (
	NoRule RulePosition = iota
	RuleAbove
	RuleBelow
)

// ParseRule maps a configuration string to a RulePosition.
func ParseRule(s string) (RulePosition, error) {
	switch s {
	case "none", "":
		return NoRule, nil
	case "above":
		return RuleAbove, nil
	case "below":
		return RuleBelow, nil
	default:
		return NoRule, fmt.Errorf("unknown rule position %q", s)
	}
}
