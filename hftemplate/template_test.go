package hftemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	tpl, err := Parse("p. {n}/{total} - {file}")
	require.NoError(t, err)

	got := tpl.Expand(Values{File: "main.go", N: "3", Total: "12"})
	assert.Equal(t, "p. 3/12 - main.go", got)
}

func TestExpandTitle(t *testing.T) {
	tpl, err := Parse("{title}")
	require.NoError(t, err)
	assert.Equal(t, "My Book", tpl.Expand(Values{Title: "My Book"}))
}

func TestUnknownBracesStayLiteral(t *testing.T) {
	tpl, err := Parse("{page} of {total}")
	require.NoError(t, err)
	assert.Equal(t, "{page} of 9", tpl.Expand(Values{Total: "9"}))
}

func TestEmptyTemplate(t *testing.T) {
	tpl, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, "", tpl.Expand(Values{N: "1"}))
}

func TestLiteralOnly(t *testing.T) {
	tpl, err := Parse("just text")
	require.NoError(t, err)
	assert.Equal(t, "just text", tpl.Expand(Values{}))
}

func TestDanglingBrace(t *testing.T) {
	tpl, err := Parse("a { b")
	require.NoError(t, err)
	assert.Equal(t, "a { b", tpl.Expand(Values{}))
}
