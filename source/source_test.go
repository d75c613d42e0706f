package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirelab/quire/layout"
)

func producer() Producer { return Producer{BodyPt: 9, SmallPt: 7} }

func TestBinaryPlaceholder(t *testing.T) {
	runs := producer().Runs("blob.bin", []byte{0xff, 0xfe, 0x00, 0x01})
	require.Len(t, runs, 1)
	assert.Equal(t, "<binary data>\n", runs[0].Text)
	assert.Equal(t, layout.Italic, runs[0].Variant)
}

func TestHighlightedFileGetsLineNumbers(t *testing.T) {
	src := "package main\n\nfunc main() {\n}\n"
	runs := producer().Runs("main.go", []byte(src))
	require.NotEmpty(t, runs)

	var numbers []string
	for _, r := range runs {
		if r.SizePt == 7 {
			numbers = append(numbers, r.Text)
		}
	}
	require.Len(t, numbers, 4)
	assert.Equal(t, "   1  ", numbers[0])
	assert.Equal(t, "   4  ", numbers[3])

	// content round-trips minus the number runs
	var body strings.Builder
	for _, r := range runs {
		if r.SizePt != 7 {
			body.WriteString(r.Text)
		}
	}
	assert.Equal(t, src, body.String())
}

func TestHighlightAssignsKeywordStyle(t *testing.T) {
	runs := producer().Runs("main.go", []byte("package main\n"))
	var keyword *layout.StyledRun
	for i := range runs {
		if strings.TrimSpace(runs[i].Text) == "package" {
			keyword = &runs[i]
			break
		}
	}
	require.NotNil(t, keyword, "keyword run not found")
	assert.NotEqual(t, layout.Black, keyword.Color)
}

func TestUnmatchedExtensionStaysPlain(t *testing.T) {
	runs := producer().Runs("notes.xyzzy", []byte("hello\nworld\n"))
	require.Len(t, runs, 1)
	assert.Equal(t, "hello\nworld\n", runs[0].Text)
	assert.Equal(t, layout.Black, runs[0].Color)
	assert.Equal(t, layout.Regular, runs[0].Variant)
}

func TestSquashIndent(t *testing.T) {
	assert.Equal(t, "  x", squashIndent("    x"))
	assert.Equal(t, "    x", squashIndent("        x"))
	assert.Equal(t, "  x", squashIndent("\tx"))
	// remainders under a full unit survive
	assert.Equal(t, "   x", squashIndent("     x"))
	assert.Equal(t, "a\n  b", squashIndent("a\n    b"))
}
