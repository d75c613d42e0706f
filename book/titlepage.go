package book

import (
	"github.com/quirelab/quire/config"
	"github.com/quirelab/quire/layout"
)

// titlePage centres the book title with the author list beneath it. It is
// always page 0, so the content box uses recto parity.
func titlePage(title string, authors []string, m layout.Metrics, geom layout.Geometry, sizes config.SizeConfig) layout.Page {
	media := layout.Rect{X2: geom.PageWidth, Y2: geom.PageHeight}
	page := layout.Page{
		MediaBox:   media,
		ContentBox: geom.Margins.ContentBox(media, 0),
	}

	centred := func(text string, v layout.FontVariant, sizePt, baseline float64) {
		w := m.AdvanceWidth(text, v, sizePt)
		page.Spans = append(page.Spans, layout.Span{
			Text:    text,
			Variant: v,
			SizePt:  sizePt,
			X:       (geom.PageWidth - w) / 2,
			Y:       baseline,
		})
	}

	y := geom.PageHeight / 3
	centred(title, layout.Bold, sizes.Heading, y)
	y += m.LineHeight(layout.Bold, sizes.Heading) * 2

	for _, a := range authors {
		centred(a, layout.Regular, sizes.Body, y)
		y += m.LineHeight(layout.Regular, sizes.Body) * 1.5
	}
	return page
}

// blankPage is inserted after the title when the front pages would otherwise
// push the first content page onto a verso.
func blankPage(geom layout.Geometry, pageIndex int) layout.Page {
	media := layout.Rect{X2: geom.PageWidth, Y2: geom.PageHeight}
	return layout.Page{
		MediaBox:   media,
		ContentBox: geom.Margins.ContentBox(media, pageIndex),
	}
}
