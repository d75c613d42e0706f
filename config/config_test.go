package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirelab/quire/pagenum"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quire.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
title: My Project
files:
  - main.go
  - util.go
numbering:
  source:
    style: arabic
    start: 5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "My Project", cfg.Title)
	assert.Equal(t, []string{"main.go", "util.go"}, cfg.Files)
	assert.Equal(t, 5, cfg.Numbering.Source.Start)
	// untouched defaults survive
	assert.Equal(t, 8.5, cfg.Page.Width)
	assert.Equal(t, 16, cfg.Booklet.SignatureSize)
	assert.Equal(t, "roman-lower", cfg.Numbering.Frontmatter.Style)
}

func TestValidateRejectsBadSignature(t *testing.T) {
	cfg := Default()
	cfg.Files = []string{"main.go"}
	cfg.Booklet.SignatureSize = 6
	assert.ErrorContains(t, cfg.Validate(), "multiple of 4")
}

func TestValidateRejectsDegenerateContentBox(t *testing.T) {
	cfg := Default()
	cfg.Files = []string{"main.go"}
	cfg.Page.Margins.Left = 5
	cfg.Page.Margins.Right = 5
	assert.ErrorContains(t, cfg.Validate(), "content box width")
}

func TestValidateRejectsEmptyFileSet(t *testing.T) {
	cfg := Default()
	assert.ErrorContains(t, cfg.Validate(), "no source files")
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	cfg := Default()
	cfg.Files = []string{"main.go"}
	cfg.Header.Position = "everywhere"
	assert.ErrorContains(t, cfg.Validate(), "unknown position")

	cfg = Default()
	cfg.Files = []string{"main.go"}
	cfg.Numbering.Appendix.Style = "binary"
	assert.ErrorContains(t, cfg.Validate(), "unknown numbering style")
}

func TestTypedAccessors(t *testing.T) {
	cfg := Default()
	cfg.Files = []string{"main.go"}
	require.NoError(t, cfg.Validate())

	w, h := cfg.PageSizePt()
	assert.InDelta(t, 612.0, w, 1e-9)
	assert.InDelta(t, 792.0, h, 1e-9)

	m := cfg.MarginsPt()
	assert.InDelta(t, 54.0, m.Top, 1e-9) // 0.75in

	scheme := cfg.Scheme()
	assert.Equal(t, pagenum.RomanLower, scheme.Frontmatter.Style)
	assert.Equal(t, pagenum.Arabic, scheme.Source.Style)

	assert.Equal(t, pagenum.Outer, cfg.Header.ParsedPosition())
	assert.Equal(t, pagenum.RuleBelow, cfg.Header.ParsedRule())
	assert.Equal(t, pagenum.NoRule, cfg.Footer.ParsedRule())
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quire.yaml")
	require.NoError(t, Init(path, false))
	assert.ErrorContains(t, Init(path, false), "already exists")
	assert.NoError(t, Init(path, true))

	// the starter file loads and validates
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Files)
}
