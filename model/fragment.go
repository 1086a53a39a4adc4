package model

import "strings"

// DocumentFragment is a detached piece of content. It is its own position
// root and may carry markers whose ranges are expressed in fragment
// coordinates; inserting the fragment into a document rebases them.
type DocumentFragment struct {
	nodeList
	markers *MarkerCollection
}

// NewDocumentFragment returns a fragment adopting the given children.
func NewDocumentFragment(children ...Node) *DocumentFragment {
	f := &DocumentFragment{markers: NewMarkerCollection()}
	if len(children) > 0 {
		f.InsertChildren(0, children)
	}
	return f
}

// Markers returns the fragment's marker collection.
func (f *DocumentFragment) Markers() *MarkerCollection {
	return f.markers
}

// InsertChildren splices nodes into the child list at the given index and
// adopts them.
func (f *DocumentFragment) InsertChildren(index int, nodes []Node) {
	f.insert(index, nodes)
	for _, n := range nodes {
		n.setParent(f)
	}
}

// RemoveChildren detaches and returns count children starting at index.
func (f *DocumentFragment) RemoveChildren(index, count int) []Node {
	removed := f.remove(index, count)
	for _, n := range removed {
		n.setParent(nil)
	}
	return removed
}

func (f *DocumentFragment) String() string {
	var b strings.Builder
	for _, child := range f.Children() {
		b.WriteString(child.String())
	}
	return b.String()
}
