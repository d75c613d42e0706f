package layout

import "strings"

// fragment is a run that has been measured for the tentative line.
type fragment struct {
	run   StyledRun
	width float64
}

// line collects fragments until a hard break, a wrap, or queue exhaustion.
type line struct {
	frags   []fragment
	width   float64
	ascent  float64
	descent float64
	height  float64
}

func (l *line) add(f fragment, m Metrics) {
	l.frags = append(l.frags, f)
	l.width += f.width
	if a := m.Ascent(f.run.Variant, f.run.SizePt); a > l.ascent {
		l.ascent = a
	}
	if d := m.Descent(f.run.Variant, f.run.SizePt); d > l.descent {
		l.descent = d
	}
	if h := m.LineHeight(f.run.Variant, f.run.SizePt); h > l.height {
		l.height = h
	}
}

func (l *line) empty() bool { return len(l.frags) == 0 }

// Flow drains the queue onto as many pages as the runs need and returns them
// in order. Lines are filled greedily: a run that does not fit is split at the
// last whitespace boundary that still fits and the styled remainder goes back
// onto the front of the queue. A '\n' inside a run forces a line break. A run
// wider than the content box that starts its own line is placed unsplit.
//
// wrapIndent shifts continuation lines (those opened by a wrap rather than a
// break) to the right, so wrapped source lines read as one logical line.
func Flow(q *RunQueue, m Metrics, geom Geometry, wrapIndent float64) []Page {
	f := flowState{
		queue:      q,
		metrics:    m,
		geom:       geom,
		wrapIndent: wrapIndent,
		pageIndex:  geom.StartPageIndex,
	}
	f.openPage()

	for {
		run, ok := q.Pop()
		if !ok {
			break
		}
		f.consume(run)
	}
	f.commitLine()
	// a trailing page that never received a line is dropped, so an empty
	// queue (or one of pure breaks) yields zero pages
	if f.placed {
		f.pages = append(f.pages, f.page)
	}
	return f.pages
}

type flowState struct {
	queue      *RunQueue
	metrics    Metrics
	geom       Geometry
	wrapIndent float64

	pages     []Page
	page      Page
	pageIndex int
	cursorY   float64
	placed    bool // a line has landed on the current page

	cur          line
	continuation bool // current line was opened by a wrap
}

func (f *flowState) openPage() {
	media := f.geom.mediaBox()
	f.page = Page{
		MediaBox:   media,
		ContentBox: f.geom.Margins.ContentBox(media, f.pageIndex),
	}
	f.cursorY = f.page.ContentBox.Y1
	f.placed = false
}

func (f *flowState) nextPage() {
	f.pages = append(f.pages, f.page)
	f.pageIndex++
	f.openPage()
}

// consume places one run, splitting it at newlines and wrap points. Remainders
// are pushed back onto the queue front so later runs keep their order.
func (f *flowState) consume(run StyledRun) {
	text := run.Text
	hardBreak := false
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		if rest := text[i+1:]; rest != "" {
			tail := run
			tail.Text = rest
			f.queue.PushFront(tail)
		}
		text = text[:i]
		hardBreak = true
	}

	if text != "" {
		f.placeText(run, text, hardBreak)
		return
	}
	if hardBreak {
		f.lineBreak(run)
	}
}

// lineBreak ends the current line. A break that would leave an empty line at
// the top of a fresh page is collapsed, so page boundaries do not accumulate
// leading blank lines.
func (f *flowState) lineBreak(run StyledRun) {
	if f.cur.empty() && !f.placed {
		f.continuation = false
		return
	}
	if f.cur.empty() {
		// blank line: advance by the run's own line height
		f.cursorY += f.metrics.LineHeight(run.Variant, run.SizePt)
		f.continuation = false
		return
	}
	f.commitLine()
	f.continuation = false
}

func (f *flowState) lineStartX() float64 {
	x := f.page.ContentBox.X1
	if f.continuation {
		x += f.wrapIndent
	}
	return x
}

func (f *flowState) avail() float64 {
	return f.page.ContentBox.X2 - f.lineStartX() - f.cur.width
}

func (f *flowState) placeText(run StyledRun, text string, hardBreak bool) {
	w := f.metrics.AdvanceWidth(text, run.Variant, run.SizePt)
	if w <= f.avail() {
		r := run
		r.Text = text
		f.cur.add(fragment{run: r, width: w}, f.metrics)
		if hardBreak {
			f.commitLine()
			f.continuation = false
		}
		return
	}

	head, rest, ok := f.splitAtWhitespace(run, text)
	if ok {
		r := run
		r.Text = head
		f.cur.add(fragment{run: r, width: f.metrics.AdvanceWidth(head, run.Variant, run.SizePt)}, f.metrics)
		f.commitLine()
		f.continuation = true
		f.requeue(run, rest, hardBreak)
		return
	}

	if f.cur.empty() {
		// nothing fits and nothing precedes it: place the run oversized
		r := run
		r.Text = text
		f.cur.add(fragment{run: r, width: w}, f.metrics)
		if hardBreak {
			f.commitLine()
			f.continuation = false
		}
		return
	}

	// run opens the next line instead
	f.commitLine()
	f.continuation = true
	f.requeue(run, text, hardBreak)
}

// requeue pushes the unplaced remainder back, restoring the newline that
// separated it from any tail already on the queue.
func (f *flowState) requeue(run StyledRun, text string, hardBreak bool) {
	if text == "" && !hardBreak {
		return
	}
	r := run
	r.Text = text
	if hardBreak {
		r.Text += "\n"
	}
	f.queue.PushFront(r)
}

// splitAtWhitespace finds the last space in text whose prefix fits the
// remaining line width. Returns the prefix, the remainder after the space,
// and whether a usable boundary exists.
func (f *flowState) splitAtWhitespace(run StyledRun, text string) (string, string, bool) {
	avail := f.avail()
	for i := len(text) - 1; i > 0; i-- {
		if text[i] != ' ' && text[i] != '\t' {
			continue
		}
		head := text[:i]
		if f.metrics.AdvanceWidth(head, run.Variant, run.SizePt) <= avail {
			return head, strings.TrimLeft(text[i:], " \t"), true
		}
	}
	return "", "", false
}

// commitLine places the tentative line on the page, opening a new page first
// when the line's extent would pass the content bottom.
func (f *flowState) commitLine() {
	if f.cur.empty() {
		return
	}
	if f.placed && f.cursorY+f.cur.ascent+f.cur.descent > f.page.ContentBox.Y2 {
		f.nextPage()
	}
	x := f.lineStartX()
	baseline := f.cursorY + f.cur.ascent
	for _, fr := range f.cur.frags {
		f.page.Spans = append(f.page.Spans, Span{
			Text:    fr.run.Text,
			Variant: fr.run.Variant,
			SizePt:  fr.run.SizePt,
			Color:   fr.run.Color,
			X:       x,
			Y:       baseline,
		})
		x += fr.width
	}
	f.cursorY += f.cur.height
	f.placed = true
	f.cur = line{}
}
