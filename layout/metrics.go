package layout

// Metrics exposes the font measurements the flow engine needs. The canvas
// renderer implements it with real glyph metrics; tests substitute a
// fixed-advance stub. All values are in points. Descent is the positive
// distance from the baseline to the lowest glyph extent.
type Metrics interface {
	AdvanceWidth(text string, variant FontVariant, sizePt float64) float64
	LineHeight(variant FontVariant, sizePt float64) float64
	Ascent(variant FontVariant, sizePt float64) float64
	Descent(variant FontVariant, sizePt float64) float64
}
