// Package renderer defines the sink that turns a composed document into an
// output artifact. The canvas implementation lives in renderer/canvas; tests
// substitute stubs.
package renderer

import (
	"github.com/quirelab/quire/doc"
	"github.com/quirelab/quire/imposition"
)

// Meta is the document information block written into the output file.
type Meta struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// Renderer serializes finished pages. Render emits the reading-order book;
// RenderBooklet places pages onto duplex sheets per the imposition plan.
// Sheet dimensions are in points.
type Renderer interface {
	Render(d *doc.Document, meta Meta) ([]byte, error)
	RenderBooklet(d *doc.Document, plan []imposition.PrintSheet, sheetW, sheetH float64, meta Meta) ([]byte, error)
}
