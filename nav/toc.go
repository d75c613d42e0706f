package nav

import (
	"sort"
	"strings"
)

// TocNode is one entry of the printed table of contents. Folder nodes carry
// no page of their own; they resolve to the smallest page among their
// descendants when flattened.
type TocNode struct {
	Name     string
	Folder   bool
	Page     int // meaningful for files only
	Children []*TocNode
}

// TocEntry is a file to list, identified by its slash-separated path and the
// document page it starts on.
type TocEntry struct {
	Path string
	Page int
}

// BuildToc sorts entries by page, so the listing follows physical reading
// order, and grows the component tree. Duplicate paths are kept as given;
// callers guarantee uniqueness.
func BuildToc(rootName string, entries []TocEntry) *TocNode {
	sorted := append([]TocEntry{}, entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Page < sorted[j].Page })

	root := &TocNode{Name: rootName, Folder: true}
	for _, e := range sorted {
		root.insert(strings.Split(e.Path, "/"), e.Page)
	}
	return root
}

func (n *TocNode) insert(components []string, page int) {
	if len(components) == 1 {
		n.Children = append(n.Children, &TocNode{Name: components[0], Page: page})
		return
	}
	name := components[0]
	var folder *TocNode
	for _, c := range n.Children {
		if c.Folder && c.Name == name {
			folder = c
			break
		}
	}
	if folder == nil {
		folder = &TocNode{Name: name, Folder: true}
		n.Children = append(n.Children, folder)
	}
	folder.insert(components[1:], page)
}

// minPage returns the smallest page among n's descendants, or false when the
// subtree holds no file at all.
func (n *TocNode) minPage() (int, bool) {
	if !n.Folder {
		return n.Page, true
	}
	min, found := 0, false
	for _, c := range n.Children {
		p, ok := c.minPage()
		if !ok {
			continue
		}
		if !found || p < min {
			min, found = p, true
		}
	}
	return min, found
}

// FlatTocLine is one printable listing line: the connector prefix, the entry
// name and the page its leader points at.
type FlatTocLine struct {
	Prefix string
	Name   string
	Page   int
}

// Flatten renders the tree depth-first in pre-order with tree-drawing
// connectors. The root becomes a synthetic first line whose page is the
// minimum over all descendants. Folders without any paged descendant are
// omitted entirely.
func (n *TocNode) Flatten() []FlatTocLine {
	rootPage, ok := n.minPage()
	if !ok {
		return nil
	}
	lines := []FlatTocLine{{Prefix: "", Name: n.Name, Page: rootPage}}
	n.flattenChildren("", &lines)
	return lines
}

func (n *TocNode) flattenChildren(indent string, lines *[]FlatTocLine) {
	// skip pageless folders so "last child" connectors stay correct
	kept := make([]*TocNode, 0, len(n.Children))
	pages := make([]int, 0, len(n.Children))
	for _, c := range n.Children {
		p, ok := c.minPage()
		if !ok {
			continue
		}
		kept = append(kept, c)
		pages = append(pages, p)
	}
	for i, c := range kept {
		last := i == len(kept)-1
		connector := "├── "
		childIndent := indent + "│   "
		if last {
			connector = "└── "
			childIndent = indent + "    "
		}
		name := c.Name
		if c.Folder {
			name += "/"
		}
		*lines = append(*lines, FlatTocLine{Prefix: indent + connector, Name: name, Page: pages[i]})
		if c.Folder {
			c.flattenChildren(childIndent, lines)
		}
	}
}
