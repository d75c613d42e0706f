// Package nav derives navigation structures from the composed page order:
// the folder/file bookmark forest shown in PDF viewers and the table of
// contents tree printed in the book itself.
package nav

import (
	gopath "path"

	"github.com/quirelab/quire/doc"
)

// FolderBookmarks synthesizes one bookmark per directory, shared by every
// file beneath it. Folder titles carry a trailing "/" so viewers without
// icons still read them as folders.
type FolderBookmarks struct {
	doc  *doc.Document
	root doc.BookmarkRef
	dirs map[string]doc.BookmarkRef
}

// NewFolderBookmarks attaches folder chains under root; pass doc.NoBookmark
// to create them at the top level.
func NewFolderBookmarks(d *doc.Document, root doc.BookmarkRef) *FolderBookmarks {
	return &FolderBookmarks{doc: d, root: root, dirs: map[string]doc.BookmarkRef{}}
}

// Attach ensures bookmarks exist for every ancestor directory of path and
// returns the ref of the immediate parent, under which the caller creates the
// file's own bookmark. Missing ancestors are created root-to-leaf, each
// pointing at firstPage, the first page of the file that revealed them.
func (f *FolderBookmarks) Attach(path string, firstPage int) doc.BookmarkRef {
	dir := gopath.Dir(path)
	if dir == "." || dir == "/" {
		return f.root
	}

	var missing []string
	for d := dir; d != "." && d != "/"; d = gopath.Dir(d) {
		if _, ok := f.dirs[d]; ok {
			break
		}
		missing = append(missing, d)
	}
	for i := len(missing) - 1; i >= 0; i-- {
		d := missing[i]
		parent := f.root
		if p := gopath.Dir(d); p != "." && p != "/" {
			parent = f.dirs[p]
		}
		f.dirs[d] = f.doc.AddBookmark(parent, gopath.Base(d)+"/", firstPage, false, false)
	}
	return f.dirs[dir]
}

// AttachFile creates the full chain for path plus the file's own leaf
// bookmark, titled by its base name.
func (f *FolderBookmarks) AttachFile(path string, firstPage int) doc.BookmarkRef {
	parent := f.Attach(path, firstPage)
	return f.doc.AddBookmark(parent, gopath.Base(path), firstPage, false, false)
}
