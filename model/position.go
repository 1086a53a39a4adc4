package model

import "fmt"

// Position is a point in a tree: a root container plus a path of integer
// offsets. All path steps but the last descend into an element starting at
// that offset; the last is an offset inside the final parent. Text
// characters count one offset each, elements count one, so a position may
// fall inside a text run.
type Position struct {
	root Container
	path []int
}

// NewPosition returns a position in the given root. The path is copied.
func NewPosition(root Container, path []int) Position {
	if len(path) == 0 {
		path = []int{0}
	}
	return Position{root: root, path: append([]int{}, path...)}
}

// Root returns the container the path is anchored in.
func (p Position) Root() Container {
	return p.root
}

// Path returns a copy of the position's path.
func (p Position) Path() []int {
	return append([]int{}, p.path...)
}

// Offset is the last path step: the offset inside the position's parent.
func (p Position) Offset() int {
	return p.path[len(p.path)-1]
}

// ParentPath returns the path without its last step.
func (p Position) ParentPath() []int {
	return append([]int{}, p.path[:len(p.path)-1]...)
}

// Parent resolves the container the position points into. Every
// intermediate path step must land exactly on an element start.
func (p Position) Parent() (Container, error) {
	cur := p.root
	for i, step := range p.path[:len(p.path)-1] {
		node, start := cur.nodeAtOffset(step)
		el, ok := node.(*Element)
		if !ok || start != step {
			return nil, newError(ErrPositionInvalid, "path %v does not address an element at depth %d", p.path, i)
		}
		cur = el
	}
	return cur, nil
}

// NodeAfter returns the node starting exactly at the position, or nil when
// the position is inside a text run or at the end of its parent.
func (p Position) NodeAfter() Node {
	parent, err := p.Parent()
	if err != nil {
		return nil
	}
	node, start := parent.nodeAtOffset(p.Offset())
	if node == nil || start != p.Offset() {
		return nil
	}
	return node
}

// NodeBefore returns the node ending exactly at the position, or nil.
func (p Position) NodeBefore() Node {
	if p.Offset() == 0 {
		return nil
	}
	parent, err := p.Parent()
	if err != nil {
		return nil
	}
	node, start := parent.nodeAtOffset(p.Offset() - 1)
	if node == nil || start+node.OffsetSize() != p.Offset() {
		return nil
	}
	return node
}

// TextNode returns the text run the position falls strictly inside, or nil
// when it sits on a node boundary.
func (p Position) TextNode() *Text {
	parent, err := p.Parent()
	if err != nil {
		return nil
	}
	node, start := parent.nodeAtOffset(p.Offset())
	if t, ok := node.(*Text); ok && start < p.Offset() {
		return t
	}
	return nil
}

// ShiftedBy returns the position moved by delta offsets within the same
// parent, clamped at zero.
func (p Position) ShiftedBy(delta int) Position {
	offset := p.Offset() + delta
	if offset < 0 {
		offset = 0
	}
	return p.withOffset(offset)
}

func (p Position) withOffset(offset int) Position {
	path := append([]int{}, p.path...)
	path[len(path)-1] = offset
	return Position{root: p.root, path: path}
}

// Compare orders two positions in the same root: negative when p is before
// q, zero when equal. A prefix sorts before its extensions.
func (p Position) Compare(q Position) int {
	for i := 0; i < len(p.path) && i < len(q.path); i++ {
		if p.path[i] != q.path[i] {
			return p.path[i] - q.path[i]
		}
	}
	return len(p.path) - len(q.path)
}

// Equal reports whether two positions address the same point in the same
// root.
func (p Position) Equal(q Position) bool {
	return p.root == q.root && p.Compare(q) == 0
}

func (p Position) String() string {
	return fmt.Sprintf("%v", p.path)
}

// commonPrefixLen is the number of leading path steps two positions share.
func commonPrefixLen(a, b []int) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func samePath(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
