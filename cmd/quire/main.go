// Command quire builds a printable book out of a source repository: a
// reading-order PDF and, when enabled, a saddle-stitch booklet PDF imposed
// for duplex printing.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/quirelab/quire/book"
	"github.com/quirelab/quire/config"
	"github.com/quirelab/quire/imposition"
	"github.com/quirelab/quire/renderer"
	canvasrenderer "github.com/quirelab/quire/renderer/canvas"
)

type cli struct {
	Verbose bool `short:"v" help:"Enable debug logging."`

	Render renderCmd `cmd:"" help:"Compose the book and write the PDF output."`
	Plan   planCmd   `cmd:"" help:"Print the imposition plan for a page count without rendering."`
	Init   initCmd   `cmd:"" help:"Write a starter quire.yaml."`
}

type runContext struct {
	logger *slog.Logger
}

type renderCmd struct {
	Config  string `short:"c" default:"quire.yaml" help:"Book description file."`
	Output  string `short:"o" help:"Override the book output path."`
	Booklet bool   `help:"Write the booklet PDF even if the config disables it."`
}

func (r *renderCmd) Run(ctx *runContext) error {
	cfg, err := config.Load(r.Config)
	if err != nil {
		return err
	}
	if r.Output != "" {
		cfg.Output.Book = r.Output
	}
	if r.Booklet {
		cfg.Booklet.Enabled = true
	}

	rend, err := canvasrenderer.New(canvasrenderer.FontPaths{
		Family:     cfg.Fonts.Family,
		Regular:    cfg.Fonts.Regular,
		Bold:       cfg.Fonts.Bold,
		Italic:     cfg.Fonts.Italic,
		BoldItalic: cfg.Fonts.BoldItalic,
	})
	if err != nil {
		return err
	}

	in, err := book.LoadInputs(cfg, ctx.logger)
	if err != nil {
		return err
	}
	ctx.logger.Debug("inputs loaded",
		"frontmatter", len(in.Frontmatter),
		"sources", len(in.Sources),
		"commits", len(in.Commits))

	b, err := book.Compose(cfg, rend, in)
	if err != nil {
		return err
	}

	meta := renderer.Meta{
		Title:   cfg.Title,
		Author:  strings.Join(in.Authors, ", "),
		Creator: "quire",
	}
	data, err := rend.Render(b.Doc, meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output.Book, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.Book, err)
	}
	ctx.logger.Info("book written", "path", cfg.Output.Book, "pages", b.Stats.Pages, "toc_pages", b.Stats.TocPages)

	if !cfg.Booklet.Enabled {
		return nil
	}
	sheetW, sheetH := cfg.SheetSizePt()
	data, err = rend.RenderBooklet(b.Doc, b.Plan, sheetW, sheetH, meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output.Booklet, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.Booklet, err)
	}
	ctx.logger.Info("booklet written",
		"path", cfg.Output.Booklet,
		"sheets", b.Stats.Sheets,
		"signatures", b.Stats.Signatures)
	fmt.Printf("%d pages on %d sheets in %d signatures of %d\n",
		b.Stats.Pages, b.Stats.Sheets, b.Stats.Signatures, cfg.Booklet.SignatureSize)
	return nil
}

type planCmd struct {
	Pages     int `arg:"" help:"Total logical page count."`
	Signature int `short:"s" default:"16" help:"Signature size, a positive multiple of 4."`
}

func (p *planCmd) Run(ctx *runContext) error {
	if p.Pages <= 0 {
		return fmt.Errorf("page count must be positive")
	}
	if p.Signature <= 0 || p.Signature%4 != 0 {
		return fmt.Errorf("signature size %d is not a positive multiple of 4", p.Signature)
	}
	plan := imposition.CalculateImposition(p.Pages, p.Signature)
	slot := func(idx int) string {
		if idx == imposition.Blank {
			return "  --"
		}
		return fmt.Sprintf("%4d", idx+1)
	}
	for i, sheet := range plan {
		fmt.Printf("sheet %3d  front: %s |%s   back: %s |%s\n",
			i+1,
			slot(sheet.Front.LeftPage), slot(sheet.Front.RightPage),
			slot(sheet.Back.LeftPage), slot(sheet.Back.RightPage))
	}
	fmt.Printf("%d pages, %d sheets, %d signatures of %d\n",
		p.Pages, len(plan), imposition.Signatures(p.Pages, p.Signature), p.Signature)
	return nil
}

type initCmd struct {
	Path  string `arg:"" optional:"" default:"quire.yaml" help:"Where to write the starter config."`
	Force bool   `help:"Overwrite an existing file."`
}

func (i *initCmd) Run(ctx *runContext) error {
	if err := config.Init(i.Path, i.Force); err != nil {
		return err
	}
	ctx.logger.Info("starter config written", "path", i.Path)
	return nil
}

func main() {
	var c cli
	ktx := kong.Parse(&c,
		kong.Name("quire"),
		kong.Description("Turn a source repository into a paginated, imposable book."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := ktx.Run(&runContext{logger: logger})
	ktx.FatalIfErrorf(err)
}
