package model

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Writer performs all tree mutations: insertion, removal, movement and
// attribute assignment. Each call validates its input before touching the
// tree and leaves adjacent equal-attribute text runs merged, so paths
// remain valid addresses across calls.
//
// A Writer holds no tree state and is safe to share across documents, but
// the trees themselves must only be mutated from one goroutine.
type Writer struct {
	log logrus.FieldLogger
}

// NewWriter returns a writer emitting diagnostics to the given sink. A nil
// sink discards them.
func NewWriter(log logrus.FieldLogger) *Writer {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Writer{log: log}
}

// Insert normalizes content (string, Node, *TextProxy, *DocumentFragment or
// a slice of any mixture) and splices it in at the given position, splitting
// the text run under the position first if needed. Markers carried by an
// inserted fragment are rebased into the destination's marker collection;
// when the destination tree has none they are dropped and a single warning
// is emitted. Text runs at both boundaries are merged when compatible.
//
// Inserted nodes must be detached; fragments give up their children.
func (w *Writer) Insert(pos Position, content interface{}) error {
	nodes, markers := NormalizeNodes(content, true)
	if len(nodes) == 0 {
		return nil
	}
	parent, err := pos.Parent()
	if err != nil {
		return err
	}

	splitTextAt(pos)
	parent.InsertChildren(parent.indexAtOffset(pos.Offset()), nodes)

	inserted := 0
	for _, n := range nodes {
		inserted += n.OffsetSize()
	}

	if len(markers) > 0 {
		if dst := markerDestination(pos.root); dst != nil {
			for name, mr := range markers {
				dst.Set(name, rebaseRange(mr, pos))
			}
		} else {
			w.log.WithField("code", WarnInsertLoseMarkers).
				Warnf("%s: inserted content carries %d marker(s) but the target tree does not track markers, dropping them", WarnInsertLoseMarkers, len(markers))
		}
	}

	mergeTextAt(pos)
	mergeTextAt(pos.ShiftedBy(inserted))
	return nil
}

// Remove detaches everything inside a flat range and returns the removed
// nodes. Text runs crossing the boundaries are split first; the runs left
// adjacent at the seam are merged when compatible. A non-flat range fails
// with ErrRemoveRangeNotFlat before anything is mutated.
func (w *Writer) Remove(r Range) ([]Node, error) {
	if !r.IsFlat() {
		return nil, newError(ErrRemoveRangeNotFlat, "range %v spans more than one parent", r)
	}
	parent, err := r.Start.Parent()
	if err != nil {
		return nil, err
	}
	if r.IsCollapsed() {
		return nil, nil
	}

	splitTextAt(r.Start)
	splitTextAt(r.End)
	from := parent.indexAtOffset(r.Start.Offset())
	to := parent.indexAtOffset(r.End.Offset())
	removed := parent.RemoveChildren(from, to-from)

	mergeTextAt(r.Start)
	return removed, nil
}

// Move removes a flat range and reinserts its content at the target
// position. A target addressing the same parent at or after the range is
// shifted down by the removed length, since the removal moves it. A
// non-flat range fails with ErrMoveRangeNotFlat before anything is mutated.
func (w *Writer) Move(r Range, target Position) error {
	if !r.IsFlat() {
		return newError(ErrMoveRangeNotFlat, "range %v spans more than one parent", r)
	}
	if _, err := target.Parent(); err != nil {
		return err
	}

	adjusted := target
	if samePath(target.path[:len(target.path)-1], r.Start.path[:len(r.Start.path)-1]) &&
		target.Offset() >= r.End.Offset() {
		adjusted = target.withOffset(target.Offset() - r.Size())
	}

	nodes, err := w.Remove(r)
	if err != nil {
		return err
	}
	return w.Insert(adjusted, nodes)
}

// SetAttribute sets key on every node fully inside the range, splitting
// text runs at the range boundaries so only the covered part is touched.
// A nil value removes the attribute. Runs that became attribute-identical
// are merged afterwards. The range does not have to be flat.
func (w *Writer) SetAttribute(r Range, key string, value interface{}) error {
	flats := r.MinimalFlatRanges()
	parents := make([]Container, len(flats))
	for i, fr := range flats {
		parent, err := fr.Start.Parent()
		if err != nil {
			return err
		}
		parents[i] = parent
	}

	for i, fr := range flats {
		parent := parents[i]
		splitTextAt(fr.Start)
		splitTextAt(fr.End)
		from := parent.indexAtOffset(fr.Start.Offset())
		to := parent.indexAtOffset(fr.End.Offset())
		for _, n := range parent.Children()[from:to] {
			n.setAttribute(key, value)
		}
		mergeAdjacentText(parent)
	}
	return nil
}

// RemoveAttribute removes key from every node fully inside the range. It is
// shorthand for SetAttribute with a nil value.
func (w *Writer) RemoveAttribute(r Range, key string) error {
	return w.SetAttribute(r, key, nil)
}

// splitTextAt splits the text run the position falls inside, leaving two
// runs with the same attributes. Offsets are character-based, so the split
// changes no addresses. Boundary positions are left alone.
func splitTextAt(pos Position) {
	parent, err := pos.Parent()
	if err != nil {
		return
	}
	node, start := parent.nodeAtOffset(pos.Offset())
	t, ok := node.(*Text)
	if !ok || start == pos.Offset() {
		return
	}

	runes := []rune(t.data)
	cut := pos.Offset() - start
	index := parent.childIndex(t)
	parent.RemoveChildren(index, 1)
	parent.InsertChildren(index, []Node{
		NewText(string(runes[:cut]), t.attrs),
		NewText(string(runes[cut:]), t.attrs),
	})
}

// mergeTextAt joins the text runs meeting at the position when their
// attributes match. Merging changes no addresses either.
func mergeTextAt(pos Position) {
	parent, err := pos.Parent()
	if err != nil {
		return
	}
	left, lok := pos.NodeBefore().(*Text)
	right, rok := pos.NodeAfter().(*Text)
	if !lok || !rok || !attrsEqual(left.attrs, right.attrs) {
		return
	}

	index := parent.childIndex(left)
	parent.RemoveChildren(index, 2)
	parent.InsertChildren(index, []Node{NewText(left.data + right.data, left.attrs)})
}

// mergeAdjacentText merges every pair of neighboring equal-attribute text
// runs in the container.
func mergeAdjacentText(c Container) {
	for i := 0; i+1 < c.ChildCount(); {
		left, lok := c.Child(i).(*Text)
		right, rok := c.Child(i + 1).(*Text)
		if lok && rok && attrsEqual(left.attrs, right.attrs) {
			c.RemoveChildren(i, 2)
			c.InsertChildren(i, []Node{NewText(left.data + right.data, left.attrs)})
			continue
		}
		i++
	}
}

// markerDestination returns the marker collection of a position root, or
// nil when the tree cannot track markers.
func markerDestination(root Container) *MarkerCollection {
	switch v := root.(type) {
	case *DocumentFragment:
		return v.Markers()
	case *Element:
		if v.doc != nil {
			return v.doc.Markers()
		}
	}
	return nil
}

// rebaseRange maps a list-relative marker range onto the tree the list was
// inserted into at pos.
func rebaseRange(r Range, pos Position) Range {
	return Range{Start: rebasePosition(r.Start, pos), End: rebasePosition(r.End, pos)}
}

func rebasePosition(p Position, at Position) Position {
	path := at.ParentPath()
	path = append(path, at.Offset()+p.path[0])
	path = append(path, p.path[1:]...)
	return Position{root: at.root, path: path}
}
