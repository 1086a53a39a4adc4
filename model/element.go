package model

import (
	"fmt"
	"strings"
)

// Element is a named node with attributes and an ordered child list.
type Element struct {
	nodeList
	name   string
	attrs  map[string]interface{}
	parent Container
	doc    *Document // set on a document root only
}

// NewElement returns a detached element adopting the given children.
// The attribute map is copied.
func NewElement(name string, attrs map[string]interface{}, children ...Node) *Element {
	e := &Element{name: name, attrs: copyAttrs(attrs)}
	if len(children) > 0 {
		e.InsertChildren(0, children)
	}
	return e
}

// Name returns the element name.
func (e *Element) Name() string {
	return e.name
}

func (e *Element) Parent() Container {
	return e.parent
}

// OffsetSize is always one: an element takes a single offset in its parent
// regardless of its own content.
func (e *Element) OffsetSize() int {
	return 1
}

func (e *Element) Attribute(key string) (interface{}, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

func (e *Element) Attributes() map[string]interface{} {
	return e.attrs
}

// Document returns the document this element roots, or nil.
func (e *Element) Document() *Document {
	return e.doc
}

// InsertChildren splices nodes into the child list at the given index and
// adopts them.
func (e *Element) InsertChildren(index int, nodes []Node) {
	e.insert(index, nodes)
	for _, n := range nodes {
		n.setParent(e)
	}
}

// RemoveChildren detaches and returns count children starting at index.
func (e *Element) RemoveChildren(index, count int) []Node {
	removed := e.remove(index, count)
	for _, n := range removed {
		n.setParent(nil)
	}
	return removed
}

func (e *Element) String() string {
	var b strings.Builder
	b.WriteString("<" + e.name)
	for _, k := range sortedKeys(e.attrs) {
		fmt.Fprintf(&b, " %s=%q", k, fmt.Sprint(e.attrs[k]))
	}
	if e.ChildCount() == 0 {
		b.WriteString("/>")
		return b.String()
	}
	b.WriteString(">")
	for _, child := range e.Children() {
		b.WriteString(child.String())
	}
	b.WriteString("</" + e.name + ">")
	return b.String()
}

func (e *Element) setParent(c Container) {
	e.parent = c
}

func (e *Element) setAttribute(key string, value interface{}) {
	if value == nil {
		delete(e.attrs, key)
		return
	}
	if e.attrs == nil {
		e.attrs = make(map[string]interface{})
	}
	e.attrs[key] = value
}
