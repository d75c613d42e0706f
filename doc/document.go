// Package doc holds the document under construction: the ordered page list
// and the bookmark forest. Pages are appended (or inserted, for late front
// matter) while the book is being composed; bookmarks reference pages by
// index and are fixed up once when insertion moves the pages they point at.
package doc

import (
	"fmt"

	"github.com/quirelab/quire/layout"
)

// BookmarkRef identifies a bookmark inside a Document. Refs stay valid for
// the document's lifetime.
type BookmarkRef int

// NoBookmark is the parent ref for top-level bookmarks.
const NoBookmark BookmarkRef = -1

// Bookmark is one outline entry. Pinned bookmarks point at pages whose index
// is already final when they are created (title page, table of contents) and
// are therefore exempt from the insertion shift.
type Bookmark struct {
	Title     string
	PageIndex int
	Bold      bool
	Italic    bool
	Pinned    bool
	Children  []BookmarkRef
}

// Document accumulates pages and bookmarks in composition order.
type Document struct {
	pages     []layout.Page
	bookmarks []Bookmark
	roots     []BookmarkRef
	shifted   bool
}

func New() *Document {
	return &Document{}
}

// AddPage appends a page and returns its index.
func (d *Document) AddPage(p layout.Page) int {
	d.pages = append(d.pages, p)
	return len(d.pages) - 1
}

// AddPages appends pages in order and returns the index of the first.
func (d *Document) AddPages(pages []layout.Page) int {
	first := len(d.pages)
	d.pages = append(d.pages, pages...)
	return first
}

// InsertPages places pages before index at, moving everything from at onward
// back by len(pages). Bookmark indices are NOT adjusted here; callers follow
// up with ShiftBookmarks.
func (d *Document) InsertPages(at int, pages []layout.Page) {
	if at < 0 || at > len(d.pages) {
		panic(fmt.Sprintf("doc: insert at %d outside 0..%d", at, len(d.pages)))
	}
	d.pages = append(d.pages[:at], append(append([]layout.Page{}, pages...), d.pages[at:]...)...)
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int { return len(d.pages) }

// Page returns the page at index i for mutation, used by the header/footer
// pass to add spans after composition.
func (d *Document) Page(i int) *layout.Page { return &d.pages[i] }

// Pages returns the page order.
func (d *Document) Pages() []layout.Page { return d.pages }

// AddBookmark creates an outline entry under parent (NoBookmark for a root)
// and returns its ref.
func (d *Document) AddBookmark(parent BookmarkRef, title string, pageIndex int, bold, italic bool) BookmarkRef {
	return d.add(parent, Bookmark{Title: title, PageIndex: pageIndex, Bold: bold, Italic: italic})
}

// AddPinnedBookmark creates an entry whose page index is final and must not
// move when pages are inserted later.
func (d *Document) AddPinnedBookmark(parent BookmarkRef, title string, pageIndex int, bold, italic bool) BookmarkRef {
	return d.add(parent, Bookmark{Title: title, PageIndex: pageIndex, Bold: bold, Italic: italic, Pinned: true})
}

func (d *Document) add(parent BookmarkRef, b Bookmark) BookmarkRef {
	ref := BookmarkRef(len(d.bookmarks))
	d.bookmarks = append(d.bookmarks, b)
	if parent == NoBookmark {
		d.roots = append(d.roots, ref)
	} else {
		p := &d.bookmarks[parent]
		p.Children = append(p.Children, ref)
	}
	return ref
}

// Bookmark returns the entry for ref.
func (d *Document) Bookmark(ref BookmarkRef) Bookmark { return d.bookmarks[ref] }

// Roots returns the top-level bookmark refs in creation order.
func (d *Document) Roots() []BookmarkRef { return d.roots }

// ShiftBookmarks moves every unpinned bookmark forward by offset pages, after
// front-matter insertion has displaced the pages they reference. The pass may
// run at most once per document; a second call is a composition bug and
// panics.
func (d *Document) ShiftBookmarks(offset int) {
	if d.shifted {
		panic("doc: bookmarks already shifted once")
	}
	d.shifted = true
	for i := range d.bookmarks {
		if d.bookmarks[i].Pinned {
			continue
		}
		d.bookmarks[i].PageIndex += offset
	}
}

// CheckBookmarks verifies that every bookmark points inside the page order.
// Called before handing the document to a sink.
func (d *Document) CheckBookmarks() error {
	for i, b := range d.bookmarks {
		if b.PageIndex < 0 || b.PageIndex >= len(d.pages) {
			return fmt.Errorf("bookmark %d (%q) points at page %d of %d", i, b.Title, b.PageIndex, len(d.pages))
		}
	}
	return nil
}
