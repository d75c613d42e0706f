package book

import (
	"strconv"

	"github.com/quirelab/quire/config"
	"github.com/quirelab/quire/doc"
	"github.com/quirelab/quire/hftemplate"
	"github.com/quirelab/quire/layout"
	"github.com/quirelab/quire/pagenum"
)

const (
	headerGapPt      = 10 // baseline above the content-box top
	footerBaselinePt = 18 // 0.25in up from the bottom page edge
	hfRuleGapPt      = 3
	hfRuleWidthPt    = 0.5
	hfRuleGrey       = 0.5
)

// applyHeaderFooter expands the templates for every page from skip onward
// and stamps the spans (and optional rules) into the pages. It runs after
// the TOC insertion, when page metadata and section totals are final.
func applyHeaderFooter(d *doc.Document, meta []pagenum.PageMetadata, cfg *config.Config, m layout.Metrics, skip int) error {
	header, err := hftemplate.Parse(cfg.Header.Template)
	if err != nil {
		return err
	}
	footer, err := hftemplate.Parse(cfg.Footer.Template)
	if err != nil {
		return err
	}
	scheme := cfg.Scheme()
	totals := pagenum.CalculateSectionTotals(meta)
	size := cfg.Fonts.Sizes.Small

	for i := skip; i < d.PageCount(); i++ {
		page := d.Page(i)
		md := meta[i]
		values := hftemplate.Values{
			File:  md.FilePath,
			Title: cfg.Title,
			N:     scheme.For(md.Section).Format(md.PageInSection),
			Total: strconv.Itoa(totals.For(md.Section)),
		}

		if text := header.Expand(values); text != "" {
			baseline := page.ContentBox.Y1 - headerGapPt
			stamp(page, m, text, size, cfg.Header.ParsedPosition(), cfg.Header.ParsedRule(), baseline, i)
		}
		if text := footer.Expand(values); text != "" {
			baseline := page.MediaBox.Y2 - footerBaselinePt
			stamp(page, m, text, size, cfg.Footer.ParsedPosition(), cfg.Footer.ParsedRule(), baseline, i)
		}
	}
	return nil
}

func stamp(page *layout.Page, m layout.Metrics, text string, sizePt float64, pos pagenum.Position, rule pagenum.RulePosition, baseline float64, pageIndex int) {
	w := m.AdvanceWidth(text, layout.Regular, sizePt)
	x := pos.ResolveX(page.ContentBox, w, pageIndex)
	page.Spans = append(page.Spans, layout.Span{
		Text:   text,
		SizePt: sizePt,
		X:      x,
		Y:      baseline,
	})

	var ruleY float64
	switch rule {
	case pagenum.RuleAbove:
		ruleY = baseline - m.Ascent(layout.Regular, sizePt) - hfRuleGapPt
	case pagenum.RuleBelow:
		ruleY = baseline + m.Descent(layout.Regular, sizePt) + hfRuleGapPt
	default:
		return
	}
	page.Rules = append(page.Rules, layout.Rule{
		X1: page.ContentBox.X1, Y1: ruleY,
		X2: page.ContentBox.X2, Y2: ruleY,
		WidthPt: hfRuleWidthPt,
		Grey:    hfRuleGrey,
	})
}
