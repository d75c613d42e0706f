// Package book composes the whole volume: title page, table of contents,
// frontmatter, the source listing, the commit appendix, header/footer
// stamping and the booklet plan. It owns the single-writer construction
// sequence; everything it calls is pure given its inputs.
package book

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/quirelab/quire/config"
	"github.com/quirelab/quire/doc"
	"github.com/quirelab/quire/imposition"
	"github.com/quirelab/quire/layout"
	"github.com/quirelab/quire/nav"
	"github.com/quirelab/quire/pagenum"
	"github.com/quirelab/quire/source"
)

// File is one input file, already read.
type File struct {
	Path string // repository-relative, slash-separated
	Data []byte
}

// Inputs carries everything Compose needs, gathered up front so composition
// itself performs no I/O.
type Inputs struct {
	Frontmatter []File
	Sources     []File
	Authors     []string
	Commits     []source.CommitInfo
}

// LoadInputs reads the configured files and the git metadata. A repository
// without usable history is logged and leaves the appendix empty; a missing
// listed file is an error.
func LoadInputs(cfg *config.Config, logger *slog.Logger) (*Inputs, error) {
	in := &Inputs{}
	read := func(rel string, dest *[]File) error {
		data, err := os.ReadFile(filepath.Join(cfg.Repository, filepath.FromSlash(rel)))
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		*dest = append(*dest, File{Path: rel, Data: data})
		return nil
	}
	for _, p := range cfg.Frontmatter {
		if err := read(p, &in.Frontmatter); err != nil {
			return nil, err
		}
	}
	for _, p := range cfg.Files {
		if err := read(p, &in.Sources); err != nil {
			return nil, err
		}
	}

	commits, err := source.Commits(cfg.Repository)
	if err != nil {
		logger.Warn("no usable git history, skipping authors and commit appendix", "error", err)
		return in, nil
	}
	in.Commits = commits
	if in.Authors, err = source.Authors(cfg.Repository); err != nil {
		return nil, err
	}
	return in, nil
}

// Stats summarizes a composition for the CLI.
type Stats struct {
	Pages      int
	TocEntries int
	TocPages   int
	Sheets     int
	Signatures int
}

// Book is the finished composition: the document, its per-page metadata and
// the imposition plan when booklet output is enabled.
type Book struct {
	Doc   *doc.Document
	Meta  []pagenum.PageMetadata
	Plan  []imposition.PrintSheet
	Stats Stats
}

// Compose builds the document in reading order. Call only with a validated
// config.
func Compose(cfg *config.Config, m layout.Metrics, in *Inputs) (*Book, error) {
	pageW, pageH := cfg.PageSizePt()
	margins := cfg.MarginsPt()
	sizes := cfg.Fonts.Sizes
	geomAt := func(start int) layout.Geometry {
		return layout.Geometry{
			PageWidth:      pageW,
			PageHeight:     pageH,
			Margins:        margins,
			StartPageIndex: start,
		}
	}

	d := doc.New()
	var meta []pagenum.PageMetadata
	fmCount := 0

	// title page, then a blank so the first content page lands on a recto
	d.AddPage(titlePage(cfg.Title, in.Authors, m, geomAt(0), sizes))
	meta = append(meta, pagenum.PageMetadata{Section: pagenum.Frontmatter, PageInSection: fmCount})
	fmCount++
	d.AddPinnedBookmark(doc.NoBookmark, "Title", 0, true, false)
	if d.PageCount()%2 != 0 {
		d.AddPage(blankPage(geomAt(0), d.PageCount()))
		meta = append(meta, pagenum.PageMetadata{Section: pagenum.Frontmatter, PageInSection: fmCount})
		fmCount++
	}
	frontPages := d.PageCount() // pages that never get headers or footers

	producer := source.Producer{BodyPt: sizes.Body, SmallPt: sizes.Small}
	var tocEntries []nav.TocEntry

	// frontmatter files flow plain, without highlighting or line numbers.
	// Their pages sit before the TOC insertion point, so their bookmarks are
	// final at creation and pinned.
	for _, f := range in.Frontmatter {
		runs := frontmatterRuns(f, sizes)
		pages := layout.Flow(layout.NewRunQueue(runs), m, geomAt(d.PageCount()), 0)
		if len(pages) == 0 {
			continue
		}
		first := d.AddPages(pages)
		d.AddPinnedBookmark(doc.NoBookmark, f.Path, first, false, false)
		tocEntries = append(tocEntries, nav.TocEntry{Path: f.Path, Page: first})
		for range pages {
			meta = append(meta, pagenum.PageMetadata{Section: pagenum.Frontmatter, PageInSection: fmCount, FilePath: f.Path})
			fmCount++
		}
	}

	insertAt := d.PageCount() // the TOC is inserted here once its length is known

	folders := nav.NewFolderBookmarks(d, doc.NoBookmark)
	numberColumn := m.AdvanceWidth("9999  ", layout.Regular, sizes.Small)
	srcCount := 0
	for _, f := range in.Sources {
		content := producer.Runs(f.Path, f.Data)
		if runsEmpty(content) {
			continue
		}
		runs := append([]layout.StyledRun{
			{Text: f.Path + "\n\n", Variant: layout.Bold, SizePt: sizes.Subheading},
		}, content...)
		pages := layout.Flow(layout.NewRunQueue(runs), m, geomAt(d.PageCount()), numberColumn)
		if len(pages) == 0 {
			continue
		}
		first := d.AddPages(pages)
		folders.AttachFile(f.Path, first)
		tocEntries = append(tocEntries, nav.TocEntry{Path: f.Path, Page: first})
		for range pages {
			meta = append(meta, pagenum.PageMetadata{Section: pagenum.Source, PageInSection: srcCount, FilePath: f.Path})
			srcCount++
		}
	}

	if len(in.Commits) > 0 {
		runs := commitRuns(in.Commits, sizes)
		pages := layout.Flow(layout.NewRunQueue(runs), m, geomAt(d.PageCount()), 0)
		if len(pages) > 0 {
			first := d.AddPages(pages)
			d.AddBookmark(doc.NoBookmark, commitHistoryTitle, first, false, false)
			for i := range pages {
				meta = append(meta, pagenum.PageMetadata{Section: pagenum.Appendix, PageInSection: i})
			}
		}
	}

	// table of contents: lay out against final section-relative numbers,
	// insert before the listing, then shift every bookmark that referenced a
	// moved page
	scheme := cfg.Scheme()
	display := func(pageIndex int) string {
		md := meta[pageIndex]
		return scheme.For(md.Section).Format(md.PageInSection)
	}
	lines := nav.BuildToc(cfg.Title, tocEntries).Flatten()
	var tPages []layout.Page
	if len(lines) > 0 {
		tPages = tocPages(lines, display, m, geomAt(0), insertAt, sizes)
		d.InsertPages(insertAt, tPages)
		tocMeta := make([]pagenum.PageMetadata, len(tPages))
		for i := range tocMeta {
			tocMeta[i] = pagenum.PageMetadata{Section: pagenum.Frontmatter, PageInSection: fmCount}
			fmCount++
		}
		meta = insertMeta(meta, insertAt, tocMeta)
		d.AddPinnedBookmark(doc.NoBookmark, tocHeading, insertAt, false, true)
	}
	d.ShiftBookmarks(len(tPages))
	if err := d.CheckBookmarks(); err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	if err := applyHeaderFooter(d, meta, cfg, m, frontPages); err != nil {
		return nil, fmt.Errorf("header/footer: %w", err)
	}

	b := &Book{
		Doc:  d,
		Meta: meta,
		Stats: Stats{
			Pages:      d.PageCount(),
			TocEntries: len(lines),
			TocPages:   len(tPages),
		},
	}
	if cfg.Booklet.Enabled {
		b.Plan = imposition.CalculateImposition(d.PageCount(), cfg.Booklet.SignatureSize)
		b.Stats.Sheets = len(b.Plan)
		b.Stats.Signatures = imposition.Signatures(d.PageCount(), cfg.Booklet.SignatureSize)
	}
	return b, nil
}

func frontmatterRuns(f File, sizes config.SizeConfig) []layout.StyledRun {
	runs := []layout.StyledRun{
		{Text: f.Path + "\n\n", Variant: layout.Bold, SizePt: sizes.Subheading},
	}
	if !utf8.Valid(f.Data) {
		runs = append(runs, layout.StyledRun{
			Text:    "<binary data>\n",
			Color:   layout.Grey(0.45),
			Variant: layout.Italic,
			SizePt:  sizes.Body,
		})
		return runs
	}
	text := string(f.Data)
	if text == "" {
		return runs
	}
	if text[len(text)-1] != '\n' {
		text += "\n"
	}
	runs = append(runs, layout.StyledRun{Text: text, SizePt: sizes.Body})
	return runs
}

func runsEmpty(runs []layout.StyledRun) bool {
	for _, r := range runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

func insertMeta(meta []pagenum.PageMetadata, at int, inserted []pagenum.PageMetadata) []pagenum.PageMetadata {
	out := make([]pagenum.PageMetadata, 0, len(meta)+len(inserted))
	out = append(out, meta[:at]...)
	out = append(out, inserted...)
	out = append(out, meta[at:]...)
	return out
}
