package book

import (
	"strings"
	"testing"
	"time"

	"github.com/quirelab/quire/config"
	"github.com/quirelab/quire/layout"
	"github.com/quirelab/quire/pagenum"
	"github.com/quirelab/quire/source"
)

// stubMetrics: 5pt per rune, 10pt lines, independent of variant and size.
type stubMetrics struct{}

func (stubMetrics) AdvanceWidth(text string, _ layout.FontVariant, _ float64) float64 {
	return float64(len([]rune(text))) * 5
}
func (stubMetrics) LineHeight(layout.FontVariant, float64) float64 { return 10 }
func (stubMetrics) Ascent(layout.FontVariant, float64) float64     { return 8 }
func (stubMetrics) Descent(layout.FontVariant, float64) float64    { return 2 }

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Title = "T"
	cfg.Files = []string{"src/a.go", "src/b.go", "top.txt"}
	cfg.Frontmatter = []string{"README"}
	return cfg
}

func testInputs() *Inputs {
	return &Inputs{
		Frontmatter: []File{{Path: "README", Data: []byte("Intro\n")}},
		Sources: []File{
			{Path: "src/a.go", Data: []byte("package a\n")},
			{Path: "src/b.go", Data: []byte("package b\n")},
			{Path: "top.txt", Data: []byte("hello\n")},
		},
		Authors: []string{"Ann"},
		Commits: []source.CommitInfo{
			{Hash: "aaaa1111", Author: "Ann", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Summary: "first"},
			{Hash: "bbbb2222", Author: "Ann", Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Summary: "second"},
		},
	}
}

func compose(t *testing.T) *Book {
	t.Helper()
	cfg := testConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	b, err := Compose(cfg, stubMetrics{}, testInputs())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	return b
}

// Expected page order with the stub metrics (every file fits one page):
// 0 title, 1 blank, 2 README, 3-4 TOC, 5 a.go, 6 b.go, 7 top.txt, 8 commits.
func TestComposePageOrder(t *testing.T) {
	b := compose(t)
	if b.Stats.Pages != 9 {
		t.Fatalf("page count: got=%d want=9", b.Stats.Pages)
	}
	if b.Stats.TocPages != 2 {
		t.Fatalf("toc pages: got=%d want=2 (padded even)", b.Stats.TocPages)
	}
	// root, README, src/, a.go, b.go, top.txt
	if b.Stats.TocEntries != 6 {
		t.Fatalf("toc entries: got=%d want=6", b.Stats.TocEntries)
	}

	pages := b.Doc.Pages()
	if len(pages[1].Spans) != 0 {
		t.Fatalf("page 1 should be the recto-alignment blank")
	}
	if got := pages[2].Spans[0].Text; got != "README\n\n" && !strings.HasPrefix(got, "README") {
		t.Fatalf("page 2 should open with the README heading, got %q", got)
	}
	if got := pages[3].Spans[0].Text; got != tocHeading {
		t.Fatalf("page 3 should open the TOC, got %q", got)
	}
}

func TestComposeBookmarkShift(t *testing.T) {
	b := compose(t)
	d := b.Doc

	byTitle := map[string]int{}
	for _, ref := range d.Roots() {
		bm := d.Bookmark(ref)
		byTitle[bm.Title] = bm.PageIndex
		for _, c := range bm.Children {
			cb := d.Bookmark(c)
			byTitle[cb.Title] = cb.PageIndex
		}
	}

	if byTitle["Title"] != 0 {
		t.Fatalf("Title bookmark: got=%d want=0", byTitle["Title"])
	}
	if byTitle["README"] != 2 {
		t.Fatalf("README bookmark must not shift: got=%d want=2", byTitle["README"])
	}
	if byTitle[tocHeading] != 3 {
		t.Fatalf("TOC bookmark: got=%d want=3", byTitle[tocHeading])
	}
	if byTitle["src/"] != 5 {
		t.Fatalf("src/ bookmark should be shifted by the TOC: got=%d want=5", byTitle["src/"])
	}
	if byTitle["top.txt"] != 7 {
		t.Fatalf("top.txt bookmark: got=%d want=7", byTitle["top.txt"])
	}
	if byTitle[commitHistoryTitle] != 8 {
		t.Fatalf("appendix bookmark: got=%d want=8", byTitle[commitHistoryTitle])
	}
}

func TestComposeMetadataSections(t *testing.T) {
	b := compose(t)
	if len(b.Meta) != b.Stats.Pages {
		t.Fatalf("metadata length %d != page count %d", len(b.Meta), b.Stats.Pages)
	}
	if b.Meta[3].Section != pagenum.Frontmatter {
		t.Fatalf("TOC pages belong to frontmatter, got %v", b.Meta[3].Section)
	}
	if b.Meta[5].Section != pagenum.Source || b.Meta[5].PageInSection != 0 {
		t.Fatalf("first source page: %+v", b.Meta[5])
	}
	if b.Meta[5].FilePath != "src/a.go" {
		t.Fatalf("source page file: got=%q", b.Meta[5].FilePath)
	}
	if b.Meta[8].Section != pagenum.Appendix {
		t.Fatalf("appendix page: %+v", b.Meta[8])
	}

	totals := pagenum.CalculateSectionTotals(b.Meta)
	if totals.Frontmatter != 5 || totals.Source != 3 || totals.Appendix != 1 {
		t.Fatalf("totals: %+v", totals)
	}
}

func TestComposeHeaderFooterStamped(t *testing.T) {
	b := compose(t)
	pages := b.Doc.Pages()

	// default header {file} outer, footer {n} centre. The file path appears
	// twice on its first page: the subheading and the stamped header.
	spans := pages[5].Spans
	pathSpans := 0
	sawFooter := false
	for _, s := range spans {
		if s.Text == "src/a.go" {
			pathSpans++
		}
		if s.Text == "1" {
			sawFooter = true
		}
	}
	if pathSpans != 2 {
		t.Fatalf("want subheading plus {file} header, got %d path spans", pathSpans)
	}
	if !sawFooter {
		t.Fatalf("source page missing {n} footer")
	}

	// title and blank pages carry neither
	for _, s := range pages[1].Spans {
		t.Fatalf("blank page should stay empty, found %q", s.Text)
	}
}

func TestComposeSkipsEmptySource(t *testing.T) {
	cfg := testConfig()
	in := testInputs()
	in.Sources = append(in.Sources, File{Path: "empty.go", Data: nil})

	b, err := Compose(cfg, stubMetrics{}, in)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	for _, ref := range b.Doc.Roots() {
		if b.Doc.Bookmark(ref).Title == "empty.go" {
			t.Fatalf("empty file must not get a bookmark")
		}
	}
	if b.Stats.Pages != 9 {
		t.Fatalf("empty file must add no pages: got=%d want=9", b.Stats.Pages)
	}
}

func TestComposeBookletPlan(t *testing.T) {
	cfg := testConfig()
	cfg.Booklet.Enabled = true
	b, err := Compose(cfg, stubMetrics{}, testInputs())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	// 9 pages, signature 16: one signature of 8 sheets
	if b.Stats.Signatures != 1 || b.Stats.Sheets != 8 {
		t.Fatalf("booklet stats: %+v", b.Stats)
	}
	if len(b.Plan) != 8 {
		t.Fatalf("plan length: got=%d want=8", len(b.Plan))
	}
}

func TestComposeTocNumbersUseSectionNumbering(t *testing.T) {
	b := compose(t)
	pages := b.Doc.Pages()

	// README is frontmatter page 2 (0-based), roman start 1: "iii".
	// src/a.go is source page 0, arabic start 1: "1".
	var sawRoman, sawArabic bool
	for _, s := range pages[3].Spans {
		if s.Text == "iii" {
			sawRoman = true
		}
		if s.Text == "1" {
			sawArabic = true
		}
	}
	if !sawRoman {
		t.Fatalf("TOC should show README as iii")
	}
	if !sawArabic {
		t.Fatalf("TOC should show src/a.go as 1")
	}
}
