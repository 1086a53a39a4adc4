// Package model implements the document tree that inkpad edits: text runs
// and elements addressed by paths, mutated through a Writer that keeps
// adjacent compatible text runs merged and named marker ranges in place.
package model

import (
	"reflect"
	"sort"
)

// Node is a single unit of document content: a Text run or an Element.
type Node interface {
	// Parent returns the container holding this node, or nil when the node
	// is detached.
	Parent() Container

	// OffsetSize is the width of the node in its parent's offset space:
	// one offset per character for text runs, one for an element.
	OffsetSize() int

	// Attribute returns the value of the named attribute.
	Attribute(key string) (interface{}, bool)

	// Attributes returns the node's attribute map. The map belongs to the
	// node and must not be mutated by callers.
	Attributes() map[string]interface{}

	// String renders the node for logs and test assertions.
	String() string

	setParent(c Container)
	setAttribute(key string, value interface{})
}

// Container holds an ordered child list: an Element or a DocumentFragment.
// Offsets are character-based, so a container's MaxOffset is the sum of its
// children's offset sizes, not its child count.
type Container interface {
	ChildCount() int
	Child(index int) Node
	Children() []Node
	MaxOffset() int
	InsertChildren(index int, nodes []Node)
	RemoveChildren(index, count int) []Node

	nodeAtOffset(offset int) (Node, int)
	indexAtOffset(offset int) int
	childIndex(n Node) int
}

// nodeList is the child list shared by Element and DocumentFragment.
type nodeList struct {
	nodes []Node
}

func (l *nodeList) ChildCount() int {
	return len(l.nodes)
}

func (l *nodeList) Child(index int) Node {
	return l.nodes[index]
}

func (l *nodeList) Children() []Node {
	return l.nodes
}

func (l *nodeList) MaxOffset() int {
	total := 0
	for _, n := range l.nodes {
		total += n.OffsetSize()
	}
	return total
}

// nodeAtOffset returns the child covering the offset together with the
// offset at which that child starts. A nil node means the offset points at
// the very end of the list.
func (l *nodeList) nodeAtOffset(offset int) (Node, int) {
	start := 0
	for _, n := range l.nodes {
		if offset < start+n.OffsetSize() {
			return n, start
		}
		start += n.OffsetSize()
	}
	return nil, start
}

// indexAtOffset maps a boundary offset to a child index. The offset must not
// fall inside a text run; split first.
func (l *nodeList) indexAtOffset(offset int) int {
	start := 0
	for i, n := range l.nodes {
		if start >= offset {
			return i
		}
		start += n.OffsetSize()
	}
	return len(l.nodes)
}

func (l *nodeList) childIndex(n Node) int {
	for i, child := range l.nodes {
		if child == n {
			return i
		}
	}
	return -1
}

func (l *nodeList) insert(index int, nodes []Node) {
	l.nodes = append(l.nodes[:index], append(append([]Node{}, nodes...), l.nodes[index:]...)...)
}

func (l *nodeList) remove(index, count int) []Node {
	removed := append([]Node{}, l.nodes[index:index+count]...)
	l.nodes = append(l.nodes[:index], l.nodes[index+count:]...)
	return removed
}

// attrsEqual reports whether two attribute maps hold the same keys and
// values. Values are compared deeply so attributes survive a JSON round trip.
func attrsEqual(a, b map[string]interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

func copyAttrs(attrs map[string]interface{}) map[string]interface{} {
	if len(attrs) == 0 {
		return nil
	}
	cp := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return cp
}

func sortedKeys(attrs map[string]interface{}) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
