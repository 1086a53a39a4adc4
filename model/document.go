package model

import "strings"

// RootName is the element name of every document root.
const RootName = "$root"

// Document owns a root element and the marker collection for ranges
// anchored in it.
type Document struct {
	root    *Element
	markers *MarkerCollection
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	d := &Document{markers: NewMarkerCollection()}
	d.root = NewElement(RootName, nil)
	d.root.doc = d
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// Markers returns the document's marker collection.
func (d *Document) Markers() *MarkerCollection {
	return d.markers
}

// Content renders the document as plain text: text runs keep their data,
// elements contribute their own content followed by a newline.
func (d *Document) Content() string {
	return contentOf(d.root)
}

func contentOf(c Container) string {
	var b strings.Builder
	for _, n := range c.Children() {
		switch v := n.(type) {
		case *Text:
			b.WriteString(v.Data())
		case *Element:
			b.WriteString(contentOf(v))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (d *Document) String() string {
	return d.root.String()
}
