package layout

// This file defines the page model shared by the flow engine, the
// orchestrator and the renderer. Coordinates are in points with the origin at
// the top-left corner of the page; y grows downward.

// Color is an RGB value in the 0-255 range.
type Color struct {
	R, G, B int
}

// Grey returns a grey Color where 0 is black and 1 is white.
func Grey(level float64) Color {
	v := int(level * 255)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return Color{R: v, G: v, B: v}
}

// Black is the default text colour.
var Black = Color{R: 0, G: 0, B: 0}

// FontVariant selects one of the four faces of the configured family.
type FontVariant int

const (
	Regular FontVariant = iota
	Bold
	Italic
	BoldItalic
)

func (v FontVariant) String() string {
	switch v {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	default:
		return "regular"
	}
}

// StyledRun is a contiguous piece of text sharing one colour, variant and
// size. Runs are produced in document order and consumed destructively by the
// flow engine; a run is never placed twice.
type StyledRun struct {
	Text    string
	Color   Color
	Variant FontVariant
	SizePt  float64
}

// Span is a run that has been placed on a page. Y is the baseline.
type Span struct {
	Text    string
	Variant FontVariant
	SizePt  float64
	Color   Color
	X, Y    float64
}

// Rule is a horizontal or vertical stroked line, used for table-of-contents
// leaders and header/footer rules.
type Rule struct {
	X1, Y1  float64
	X2, Y2  float64
	WidthPt float64
	Grey    float64 // stroke level, 0 black .. 1 white
}

// ImageBox places a raster image on a page.
type ImageBox struct {
	Path          string
	X, Y          float64
	Width, Height float64
}

// Rect is an axis-aligned rectangle; X1 <= X2 and Y1 <= Y2, with Y1 the top
// edge.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

func (r Rect) Width() float64  { return r.X2 - r.X1 }
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// Margins describe the space reserved around the content box. Gutter is the
// extra binding margin added to the inner edge: the left edge on recto pages,
// the right edge on verso pages.
type Margins struct {
	Top, Right, Bottom, Left float64
	Gutter                   float64
}

// ContentBox returns the content area for a page at the given document index.
// Pages at even indices are recto (right-hand) pages in a bound book.
func (m Margins) ContentBox(media Rect, pageIndex int) Rect {
	box := Rect{
		X1: media.X1 + m.Left,
		Y1: media.Y1 + m.Top,
		X2: media.X2 - m.Right,
		Y2: media.Y2 - m.Bottom,
	}
	if pageIndex%2 == 0 {
		box.X1 += m.Gutter
	} else {
		box.X2 -= m.Gutter
	}
	return box
}

// Page holds everything a renderer needs to draw one finished page. A page is
// immutable once appended to the document's page order, except for the late
// header/footer pass which adds spans and rules.
type Page struct {
	MediaBox   Rect
	ContentBox Rect
	Spans      []Span
	Rules      []Rule
	Images     []ImageBox
}

// Geometry fixes the page size and margins for a flow call. StartPageIndex is
// the document index the first produced page will receive; it decides gutter
// parity for every page of the call.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margins    Margins

	StartPageIndex int
}

func (g Geometry) mediaBox() Rect {
	return Rect{X2: g.PageWidth, Y2: g.PageHeight}
}

// RunQueue is the flow engine's work list. Runs are drained from the front;
// splitting a run pushes the styled remainder back onto the front, so a run
// is replaced rather than mutated in place.
type RunQueue struct {
	runs []StyledRun
}

// NewRunQueue takes ownership of runs.
func NewRunQueue(runs []StyledRun) *RunQueue {
	return &RunQueue{runs: runs}
}

func (q *RunQueue) Len() int    { return len(q.runs) }
func (q *RunQueue) Empty() bool { return len(q.runs) == 0 }

// Push appends a run at the back of the queue.
func (q *RunQueue) Push(r StyledRun) { q.runs = append(q.runs, r) }

// PushFront re-queues a run so it is consumed next.
func (q *RunQueue) PushFront(r StyledRun) {
	q.runs = append([]StyledRun{r}, q.runs...)
}

// Pop removes and returns the front run.
func (q *RunQueue) Pop() (StyledRun, bool) {
	if len(q.runs) == 0 {
		return StyledRun{}, false
	}
	r := q.runs[0]
	q.runs = q.runs[1:]
	return r, true
}

// Peek returns the front run without removing it.
func (q *RunQueue) Peek() (StyledRun, bool) {
	if len(q.runs) == 0 {
		return StyledRun{}, false
	}
	return q.runs[0], true
}
