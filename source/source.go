// Package source turns repository files into styled run queues for the flow
// engine, and pulls author and commit metadata out of the repository history.
package source

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/quirelab/quire/layout"
)

var (
	numberColor      = layout.Grey(0.55)
	placeholderColor = layout.Grey(0.45)
)

// Producer converts file contents into styled runs.
type Producer struct {
	BodyPt  float64
	SmallPt float64
	Style   string // chroma style name, "github" when empty
}

// FileRuns reads path and produces its run queue. Non-UTF-8 content becomes
// a single placeholder run instead of garbage glyphs.
func (p Producer) FileRuns(path string) ([]layout.StyledRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	return p.Runs(path, data), nil
}

// Runs is the pure conversion: highlight when a lexer matches the filename,
// fall back to plain text otherwise.
func (p Producer) Runs(filename string, data []byte) []layout.StyledRun {
	if !utf8.Valid(data) {
		return []layout.StyledRun{{
			Text:    "<binary data>\n",
			Color:   placeholderColor,
			Variant: layout.Italic,
			SizePt:  p.BodyPt,
		}}
	}
	text := squashIndent(string(data))

	lexer := lexers.Match(filename)
	if lexer == nil {
		return []layout.StyledRun{{Text: text, Color: layout.Black, SizePt: p.BodyPt}}
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return []layout.StyledRun{{Text: text, Color: layout.Black, SizePt: p.BodyPt}}
	}

	styleName := p.Style
	if styleName == "" {
		styleName = "github"
	}
	style := styles.Get(styleName)

	return p.numberedRuns(iterator.Tokens(), style)
}

// numberedRuns interleaves a small grey line-number run at the start of each
// line with the highlighted token runs.
func (p Producer) numberedRuns(tokens []chroma.Token, style *chroma.Style) []layout.StyledRun {
	var runs []layout.StyledRun
	lineNo := 0
	atLineStart := true

	emit := func(text string, entry chroma.StyleEntry) {
		for text != "" {
			if atLineStart {
				lineNo++
				runs = append(runs, layout.StyledRun{
					Text:   fmt.Sprintf("%4d  ", lineNo),
					Color:  numberColor,
					SizePt: p.SmallPt,
				})
				atLineStart = false
			}
			nl := strings.IndexByte(text, '\n')
			if nl < 0 {
				runs = append(runs, p.styledRun(text, entry))
				return
			}
			runs = append(runs, p.styledRun(text[:nl+1], entry))
			text = text[nl+1:]
			atLineStart = true
		}
	}

	for _, tok := range tokens {
		emit(tok.Value, style.Get(tok.Type))
	}
	return runs
}

func (p Producer) styledRun(text string, entry chroma.StyleEntry) layout.StyledRun {
	run := layout.StyledRun{Text: text, Color: layout.Black, SizePt: p.BodyPt}
	if entry.Colour.IsSet() {
		run.Color = layout.Color{
			R: int(entry.Colour.Red()),
			G: int(entry.Colour.Green()),
			B: int(entry.Colour.Blue()),
		}
	}
	bold := entry.Bold == chroma.Yes
	italic := entry.Italic == chroma.Yes
	switch {
	case bold && italic:
		run.Variant = layout.BoldItalic
	case bold:
		run.Variant = layout.Bold
	case italic:
		run.Variant = layout.Italic
	}
	return run
}

// squashIndent expands tabs to four spaces, then halves each full four-space
// unit of leading indentation so deep nesting still fits a printed line.
func squashIndent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\t", "    ")
		lead := 0
		for lead < len(line) && line[lead] == ' ' {
			lead++
		}
		squashed := (lead/4)*2 + lead%4
		lines[i] = strings.Repeat(" ", squashed) + line[lead:]
	}
	return strings.Join(lines, "\n")
}
