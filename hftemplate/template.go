// Package hftemplate parses header and footer template strings. A template
// is literal text with placeholders in braces: {file}, {title}, {n} and
// {total}. Braces that do not form a known placeholder stay literal.
package hftemplate

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	templateLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Placeholder", Pattern: `\{(?:file|title|n|total)\}`},
		{Name: "Text", Pattern: `[^{]+`},
		{Name: "Brace", Pattern: `\{`},
	})

	templateParser = participle.MustBuild[Template](
		participle.Lexer(templateLexer),
	)
)

// Template is a parsed header/footer string.
type Template struct {
	Parts []*Part `parser:"@@*"`
}

// Part is either one placeholder or a stretch of literal text.
type Part struct {
	Placeholder string `parser:"  @Placeholder"`
	Text        string `parser:"| @(Text | Brace)"`
}

// Values supplies the expansion for each placeholder on one page.
type Values struct {
	File  string
	Title string
	N     string
	Total string
}

// Parse compiles a template string. An empty string is a valid template that
// expands to "".
func Parse(s string) (*Template, error) {
	if s == "" {
		return &Template{}, nil
	}
	return templateParser.ParseString("", s)
}

// MustParse is Parse for templates known good at compile time.
func MustParse(s string) *Template {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Expand substitutes the placeholders and concatenates the parts.
func (t *Template) Expand(v Values) string {
	var b strings.Builder
	for _, p := range t.Parts {
		switch p.Placeholder {
		case "{file}":
			b.WriteString(v.File)
		case "{title}":
			b.WriteString(v.Title)
		case "{n}":
			b.WriteString(v.N)
		case "{total}":
			b.WriteString(v.Total)
		case "":
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
