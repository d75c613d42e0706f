package book

import (
	"github.com/quirelab/quire/config"
	"github.com/quirelab/quire/layout"
	"github.com/quirelab/quire/nav"
)

const (
	tocHeading     = "Table of Contents"
	leaderGapPt    = 4
	leaderWidthPt  = 0.5
	leaderGrey     = 0.7
	tocLineSpacing = 1.3
)

// tocPages lays the flattened listing out by hand: label on the left, page
// number right-aligned, a light leader rule between them. display formats a
// target document page index as its printed section-relative number.
// startIndex is the document index the first TOC page will occupy, which
// fixes gutter parity; the result is padded with a blank page to an even
// count so insertion preserves the parity of everything behind it.
func tocPages(lines []nav.FlatTocLine, display func(int) string, m layout.Metrics, geom layout.Geometry, startIndex int, sizes config.SizeConfig) []layout.Page {
	media := layout.Rect{X2: geom.PageWidth, Y2: geom.PageHeight}
	lineH := m.LineHeight(layout.Regular, sizes.Body) * tocLineSpacing
	ascent := m.Ascent(layout.Regular, sizes.Body)

	var pages []layout.Page
	newPage := func() (*layout.Page, float64) {
		p := layout.Page{
			MediaBox:   media,
			ContentBox: geom.Margins.ContentBox(media, startIndex+len(pages)),
		}
		pages = append(pages, p)
		return &pages[len(pages)-1], p.ContentBox.Y1
	}

	page, cursor := newPage()
	page.Spans = append(page.Spans, layout.Span{
		Text:    tocHeading,
		Variant: layout.Bold,
		SizePt:  sizes.Subheading,
		X:       page.ContentBox.X1,
		Y:       cursor + m.Ascent(layout.Bold, sizes.Subheading),
	})
	cursor += m.LineHeight(layout.Bold, sizes.Subheading) * 2

	for _, line := range lines {
		if cursor+lineH > page.ContentBox.Y2 {
			page, cursor = newPage()
		}
		label := line.Prefix + line.Name
		number := display(line.Page)
		labelW := m.AdvanceWidth(label, layout.Regular, sizes.Body)
		numberW := m.AdvanceWidth(number, layout.Regular, sizes.Body)
		baseline := cursor + ascent
		box := page.ContentBox

		page.Spans = append(page.Spans,
			layout.Span{Text: label, SizePt: sizes.Body, X: box.X1, Y: baseline},
			layout.Span{Text: number, SizePt: sizes.Body, X: box.X2 - numberW, Y: baseline},
		)
		ruleX1 := box.X1 + labelW + leaderGapPt
		ruleX2 := box.X2 - numberW - leaderGapPt
		if ruleX2 > ruleX1 {
			page.Rules = append(page.Rules, layout.Rule{
				X1: ruleX1, Y1: baseline,
				X2: ruleX2, Y2: baseline,
				WidthPt: leaderWidthPt,
				Grey:    leaderGrey,
			})
		}
		cursor += lineH
	}

	if len(pages)%2 != 0 {
		newPage()
	}
	return pages
}
