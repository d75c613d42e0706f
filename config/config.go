// Package config loads and validates the quire.yaml book description.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quirelab/quire/layout"
	"github.com/quirelab/quire/pagenum"
)

// Config describes one book: which files go in, how pages look and how the
// booklet is imposed. Dimensions are in inches; accessors convert to points.
type Config struct {
	Title       string   `yaml:"title"`
	Repository  string   `yaml:"repository"`
	Frontmatter []string `yaml:"frontmatter,omitempty"`
	Files       []string `yaml:"files"`

	Page      PageConfig      `yaml:"page"`
	Fonts     FontConfig      `yaml:"fonts"`
	Header    HeaderFooter    `yaml:"header"`
	Footer    HeaderFooter    `yaml:"footer"`
	Numbering NumberingConfig `yaml:"numbering"`
	Booklet   BookletConfig   `yaml:"booklet"`
	Output    OutputConfig    `yaml:"output"`
}

// PageConfig is the logical page geometry in inches.
type PageConfig struct {
	Width   float64      `yaml:"width"`
	Height  float64      `yaml:"height"`
	Margins MarginConfig `yaml:"margins"`
}

// MarginConfig holds the four margins plus the binding gutter, in inches.
type MarginConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Gutter float64 `yaml:"gutter"`
}

// FontConfig names the font files per variant. Family is the OS lookup
// fallback used for any variant without an explicit path.
type FontConfig struct {
	Family     string     `yaml:"family,omitempty"`
	Regular    string     `yaml:"regular,omitempty"`
	Bold       string     `yaml:"bold,omitempty"`
	Italic     string     `yaml:"italic,omitempty"`
	BoldItalic string     `yaml:"bold_italic,omitempty"`
	Sizes      SizeConfig `yaml:"sizes"`
}

// SizeConfig holds the text sizes in points.
type SizeConfig struct {
	Body       float64 `yaml:"body"`
	Small      float64 `yaml:"small"`
	Subheading float64 `yaml:"subheading"`
	Heading    float64 `yaml:"heading"`
}

// HeaderFooter configures one running line: its template string, horizontal
// position and optional rule.
type HeaderFooter struct {
	Template string `yaml:"template"`
	Position string `yaml:"position"`
	Rule     string `yaml:"rule,omitempty"`
}

// NumberingConfig sets style and start per section.
type NumberingConfig struct {
	Frontmatter SectionNumbering `yaml:"frontmatter"`
	Source      SectionNumbering `yaml:"source"`
	Appendix    SectionNumbering `yaml:"appendix"`
}

// SectionNumbering is one section's numeral style and 1-based start.
type SectionNumbering struct {
	Style string `yaml:"style"`
	Start int    `yaml:"start"`
}

// BookletConfig controls imposition. Sheet dimensions are in inches.
type BookletConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SignatureSize int     `yaml:"signature_size"`
	SheetWidth    float64 `yaml:"sheet_width"`
	SheetHeight   float64 `yaml:"sheet_height"`
}

// OutputConfig names the PDF files to write.
type OutputConfig struct {
	Book    string `yaml:"book"`
	Booklet string `yaml:"booklet,omitempty"`
}

// Default returns the configuration for a US-letter book with roman front
// matter and a 16-page signature.
func Default() *Config {
	return &Config{
		Title:      "Source Book",
		Repository: ".",
		Page: PageConfig{
			Width:  8.5,
			Height: 11,
			Margins: MarginConfig{
				Top: 0.75, Right: 0.6, Bottom: 0.75, Left: 0.6,
				Gutter: 0.3,
			},
		},
		Fonts: FontConfig{
			Family: "monospace",
			Sizes:  SizeConfig{Body: 9, Small: 7, Subheading: 14, Heading: 24},
		},
		Header: HeaderFooter{Template: "{file}", Position: "outer", Rule: "below"},
		Footer: HeaderFooter{Template: "{n}", Position: "centre", Rule: "none"},
		Numbering: NumberingConfig{
			Frontmatter: SectionNumbering{Style: "roman-lower", Start: 1},
			Source:      SectionNumbering{Style: "arabic", Start: 1},
			Appendix:    SectionNumbering{Style: "arabic", Start: 1},
		},
		Booklet: BookletConfig{
			Enabled:       false,
			SignatureSize: 16,
			SheetWidth:    11,
			SheetHeight:   8.5,
		},
		Output: OutputConfig{Book: "book.pdf", Booklet: "booklet.pdf"},
	}
}

// Load reads path, unmarshals it over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects geometry and enum values the engine cannot work with.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return fmt.Errorf("no source files listed")
	}
	if c.Booklet.SignatureSize <= 0 || c.Booklet.SignatureSize%4 != 0 {
		return fmt.Errorf("signature_size %d is not a positive multiple of 4", c.Booklet.SignatureSize)
	}
	m := c.Page.Margins
	if w := c.Page.Width - m.Left - m.Right - m.Gutter; w <= 0 {
		return fmt.Errorf("content box width %.2fin is not positive", w)
	}
	if h := c.Page.Height - m.Top - m.Bottom; h <= 0 {
		return fmt.Errorf("content box height %.2fin is not positive", h)
	}
	if c.Fonts.Sizes.Body <= 0 || c.Fonts.Sizes.Small <= 0 ||
		c.Fonts.Sizes.Subheading <= 0 || c.Fonts.Sizes.Heading <= 0 {
		return fmt.Errorf("font sizes must all be positive: %+v", c.Fonts.Sizes)
	}
	if c.Booklet.Enabled && (c.Booklet.SheetWidth <= 0 || c.Booklet.SheetHeight <= 0) {
		return fmt.Errorf("booklet sheet size must be positive")
	}
	for _, hf := range []struct {
		name string
		hf   HeaderFooter
	}{{"header", c.Header}, {"footer", c.Footer}} {
		if _, err := pagenum.ParsePosition(hf.hf.Position); err != nil {
			return fmt.Errorf("%s: %w", hf.name, err)
		}
		if _, err := pagenum.ParseRule(hf.hf.Rule); err != nil {
			return fmt.Errorf("%s: %w", hf.name, err)
		}
	}
	for _, sn := range []struct {
		name string
		sn   SectionNumbering
	}{
		{"frontmatter", c.Numbering.Frontmatter},
		{"source", c.Numbering.Source},
		{"appendix", c.Numbering.Appendix},
	} {
		if _, err := pagenum.ParseStyle(sn.sn.Style); err != nil {
			return fmt.Errorf("numbering.%s: %w", sn.name, err)
		}
		if sn.sn.Start < 1 {
			return fmt.Errorf("numbering.%s: start %d is not 1-based", sn.name, sn.sn.Start)
		}
	}
	return nil
}

// PageSizePt returns the logical page size in points.
func (c *Config) PageSizePt() (w, h float64) {
	return layout.InchesToPt(c.Page.Width), layout.InchesToPt(c.Page.Height)
}

// SheetSizePt returns the booklet sheet size in points.
func (c *Config) SheetSizePt() (w, h float64) {
	return layout.InchesToPt(c.Booklet.SheetWidth), layout.InchesToPt(c.Booklet.SheetHeight)
}

// MarginsPt converts the margins to points.
func (c *Config) MarginsPt() layout.Margins {
	m := c.Page.Margins
	return layout.Margins{
		Top:    layout.InchesToPt(m.Top),
		Right:  layout.InchesToPt(m.Right),
		Bottom: layout.InchesToPt(m.Bottom),
		Left:   layout.InchesToPt(m.Left),
		Gutter: layout.InchesToPt(m.Gutter),
	}
}

// Scheme converts the numbering block to a pagenum.Scheme. Call only on a
// validated config; parse failures indicate a skipped Validate and panic.
func (c *Config) Scheme() pagenum.Scheme {
	parse := func(name string, sn SectionNumbering) pagenum.Numbering {
		style, err := pagenum.ParseStyle(sn.Style)
		if err != nil {
			panic(fmt.Sprintf("config: unvalidated numbering.%s: %v", name, err))
		}
		return pagenum.Numbering{Style: style, Start: sn.Start}
	}
	return pagenum.Scheme{
		Frontmatter: parse("frontmatter", c.Numbering.Frontmatter),
		Source:      parse("source", c.Numbering.Source),
		Appendix:    parse("appendix", c.Numbering.Appendix),
	}
}

// ParsedPosition returns the parsed position of hf; same validation contract
// as Scheme.
func (hf HeaderFooter) ParsedPosition() pagenum.Position {
	p, err := pagenum.ParsePosition(hf.Position)
	if err != nil {
		panic(fmt.Sprintf("config: unvalidated position: %v", err))
	}
	return p
}

// ParsedRule returns the parsed rule of hf.
func (hf HeaderFooter) ParsedRule() pagenum.RulePosition {
	r, err := pagenum.ParseRule(hf.Rule)
	if err != nil {
		panic(fmt.Sprintf("config: unvalidated rule: %v", err))
	}
	return r
}

// Init writes a starter quire.yaml at path. It refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg := Default()
	cfg.Files = []string{"main.go"}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal starter config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
