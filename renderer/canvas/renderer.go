// Package canvasrenderer implements the renderer and metrics interfaces on
// top of github.com/tdewolff/canvas with its PDF backend.
//
// Unit convention: the layout model is in points with a top-left origin;
// canvas draws in millimetres. Faces are created at point sizes and every
// coordinate and measurement crosses the boundary exactly once.
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/quirelab/quire/doc"
	"github.com/quirelab/quire/imposition"
	"github.com/quirelab/quire/layout"
	"github.com/quirelab/quire/renderer"
)

// FontPaths names the font file per variant. Variants without a path fall
// back to looking Family up in the OS font directories.
type FontPaths struct {
	Family     string
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

type faceKey struct {
	variant layout.FontVariant
	sizeMpt int // size in millipoints, to keep the key hashable
	color   layout.Color
}

// Renderer draws composed pages into PDFs and answers metrics queries for
// the flow engine.
type Renderer struct {
	family *canvas.FontFamily
	faces  map[faceKey]*canvas.FontFace
}

var _ layout.Metrics = (*Renderer)(nil)
var _ renderer.Renderer = (*Renderer)(nil)

// New loads all four font variants. A variant that can be resolved neither
// from its configured file nor from the OS is a fatal configuration error.
func New(fonts FontPaths) (*Renderer, error) {
	family := canvas.NewFontFamily("quire")
	load := func(path string, style canvas.FontStyle, name string) error {
		if path != "" {
			if err := family.LoadFontFile(path, style); err != nil {
				return fmt.Errorf("load %s font %s: %w", name, path, err)
			}
			return nil
		}
		if fonts.Family == "" {
			return fmt.Errorf("no font configured for the %s variant", name)
		}
		if err := family.LoadLocalFont(fonts.Family, style); err != nil {
			return fmt.Errorf("local font %q (%s): %w", fonts.Family, name, err)
		}
		return nil
	}
	if err := load(fonts.Regular, canvas.FontRegular, "regular"); err != nil {
		return nil, err
	}
	if err := load(fonts.Bold, canvas.FontBold, "bold"); err != nil {
		return nil, err
	}
	if err := load(fonts.Italic, canvas.FontItalic, "italic"); err != nil {
		return nil, err
	}
	if err := load(fonts.BoldItalic, canvas.FontBold|canvas.FontItalic, "bold-italic"); err != nil {
		return nil, err
	}
	return &Renderer{family: family, faces: map[faceKey]*canvas.FontFace{}}, nil
}

func rgba(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

func fontStyle(v layout.FontVariant) canvas.FontStyle {
	switch v {
	case layout.Bold:
		return canvas.FontBold
	case layout.Italic:
		return canvas.FontItalic
	case layout.BoldItalic:
		return canvas.FontBold | canvas.FontItalic
	default:
		return canvas.FontRegular
	}
}

func (r *Renderer) face(v layout.FontVariant, sizePt float64, col layout.Color) *canvas.FontFace {
	key := faceKey{variant: v, sizeMpt: int(sizePt * 1000), color: col}
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := r.family.Face(sizePt, rgba(col), fontStyle(v), canvas.FontNormal)
	r.faces[key] = f
	return f
}

// AdvanceWidth implements layout.Metrics.
func (r *Renderer) AdvanceWidth(text string, v layout.FontVariant, sizePt float64) float64 {
	return r.face(v, sizePt, layout.Black).TextWidth(text) * layout.MmToPt
}

// LineHeight implements layout.Metrics.
func (r *Renderer) LineHeight(v layout.FontVariant, sizePt float64) float64 {
	return r.face(v, sizePt, layout.Black).Metrics().LineHeight * layout.MmToPt
}

// Ascent implements layout.Metrics.
func (r *Renderer) Ascent(v layout.FontVariant, sizePt float64) float64 {
	return r.face(v, sizePt, layout.Black).Metrics().Ascent * layout.MmToPt
}

// Descent implements layout.Metrics.
func (r *Renderer) Descent(v layout.FontVariant, sizePt float64) float64 {
	return r.face(v, sizePt, layout.Black).Metrics().Descent * layout.MmToPt
}

// Render writes the document as a reading-order PDF.
func (r *Renderer) Render(d *doc.Document, meta renderer.Meta) ([]byte, error) {
	pages := d.Pages()
	if len(pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	if err := d.CheckBookmarks(); err != nil {
		return nil, fmt.Errorf("finalize document: %w", err)
	}

	var buf bytes.Buffer
	first := pages[0].MediaBox
	writer := pdf.New(&buf, first.Width()*layout.PtToMm, first.Height()*layout.PtToMm, nil)
	writer.SetInfo(meta.Title, meta.Subject, "", meta.Author, meta.Creator)

	for i, page := range pages {
		w := page.MediaBox.Width() * layout.PtToMm
		h := page.MediaBox.Height() * layout.PtToMm
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)
		if err := r.drawPage(ctx, page, 0, 0, 1); err != nil {
			return nil, fmt.Errorf("draw page %d: %w", i, err)
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderBooklet writes the imposition plan as a duplex sheet PDF: each
// PrintSheet contributes two output pages, front face then back face.
func (r *Renderer) RenderBooklet(d *doc.Document, plan []imposition.PrintSheet, sheetW, sheetH float64, meta renderer.Meta) ([]byte, error) {
	if len(plan) == 0 {
		return nil, fmt.Errorf("empty imposition plan")
	}
	pages := d.Pages()

	var buf bytes.Buffer
	writer := pdf.New(&buf, sheetW*layout.PtToMm, sheetH*layout.PtToMm, nil)
	writer.SetInfo(meta.Title, meta.Subject, "", meta.Author, meta.Creator)

	firstFace := true
	drawFace := func(side imposition.SheetSide) error {
		if !firstFace {
			writer.NewPage(sheetW*layout.PtToMm, sheetH*layout.PtToMm)
		}
		firstFace = false
		c := canvas.New(sheetW*layout.PtToMm, sheetH*layout.PtToMm)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)
		for slot, idx := range []int{side.LeftPage, side.RightPage} {
			if idx == imposition.Blank {
				continue
			}
			if idx < 0 || idx >= len(pages) {
				panic(fmt.Sprintf("imposition slot references page %d of %d", idx, len(pages)))
			}
			page := pages[idx]
			p := imposition.PlacementFor(slot, sheetW, sheetH, page.MediaBox.Width(), page.MediaBox.Height())
			if err := r.drawPage(ctx, page, p.X, p.Y, p.Scale); err != nil {
				return fmt.Errorf("draw page %d on sheet: %w", idx, err)
			}
		}
		c.RenderTo(writer)
		return nil
	}

	for i, sheet := range plan {
		if err := drawFace(sheet.Front); err != nil {
			return nil, fmt.Errorf("sheet %d front: %w", i, err)
		}
		if err := drawFace(sheet.Back); err != nil {
			return nil, fmt.Errorf("sheet %d back: %w", i, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write booklet pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPage paints one composed page at the given offset and scale, both in
// points on the layout side.
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page, dx, dy, scale float64) error {
	toX := func(x float64) float64 { return (dx + x*scale) * layout.PtToMm }
	toY := func(y float64) float64 { return (dy + y*scale) * layout.PtToMm }

	for _, span := range page.Spans {
		face := r.face(span.Variant, span.SizePt*scale, span.Color)
		line := canvas.NewTextLine(face, span.Text, canvas.Left)
		ctx.DrawText(toX(span.X), toY(span.Y), line)
	}
	for _, rule := range page.Rules {
		ctx.SetStrokeColor(rgba(layout.Grey(rule.Grey)))
		ctx.SetStrokeWidth(rule.WidthPt * scale * layout.PtToMm)
		p := &canvas.Path{}
		p.LineTo((rule.X2-rule.X1)*scale*layout.PtToMm, (rule.Y2-rule.Y1)*scale*layout.PtToMm)
		ctx.DrawPath(toX(rule.X1), toY(rule.Y1), p)
	}
	for _, img := range page.Images {
		if err := r.drawImage(ctx, img, dx, dy, scale); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawImage(ctx *canvas.Context, box layout.ImageBox, dx, dy, scale float64) error {
	f, err := os.Open(box.Path)
	if err != nil {
		return fmt.Errorf("open image %s: %w", box.Path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode image %s: %w", box.Path, err)
	}
	widthMm := box.Width * scale * layout.PtToMm
	dpmm := float64(img.Bounds().Dx()) / widthMm
	ctx.DrawImage((dx+box.X*scale)*layout.PtToMm, (dy+box.Y*scale)*layout.PtToMm, img, canvas.DPMM(dpmm))
	return nil
}
