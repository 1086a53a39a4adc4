package model

import "fmt"

// Range is an ordered pair of positions in the same root, start before or
// equal to end.
type Range struct {
	Start Position
	End   Position
}

// NewRange returns the range between two positions, swapping them if given
// out of order.
func NewRange(start, end Position) Range {
	if start.Compare(end) > 0 {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// CollapsedRange returns the empty range at a position.
func CollapsedRange(p Position) Range {
	return Range{Start: p, End: p}
}

// IsFlat reports whether both ends share the same parent. Mutation
// operations that extract nodes require flat ranges.
func (r Range) IsFlat() bool {
	return samePath(r.Start.path[:len(r.Start.path)-1], r.End.path[:len(r.End.path)-1])
}

// IsCollapsed reports whether the range is empty.
func (r Range) IsCollapsed() bool {
	return r.Start.Compare(r.End) == 0
}

// Size is the offset span of a flat range.
func (r Range) Size() int {
	return r.End.Offset() - r.Start.Offset()
}

// ContainsPosition reports whether p lies inside the range, start inclusive
// and end exclusive.
func (r Range) ContainsPosition(p Position) bool {
	return r.Start.Compare(p) <= 0 && p.Compare(r.End) < 0
}

// MinimalFlatRanges decomposes the range into the shortest list of flat
// ranges covering exactly the same content. Walking out of the start's
// parents produces the leading ranges, walking into the end's parents the
// trailing ones.
func (r Range) MinimalFlatRanges() []Range {
	var ranges []Range
	diffAt := commonPrefixLen(r.Start.path, r.End.path)

	pos := NewPosition(r.Start.root, r.Start.path)
	for len(pos.path) > diffAt+1 {
		parent, err := pos.Parent()
		if err != nil {
			return ranges
		}
		if howMany := parent.MaxOffset() - pos.Offset(); howMany != 0 {
			ranges = append(ranges, Range{Start: pos, End: pos.ShiftedBy(howMany)})
		}
		// Step out: the position right after the parent element.
		out := append([]int{}, pos.path[:len(pos.path)-1]...)
		out[len(out)-1]++
		pos = Position{root: pos.root, path: out}
	}
	for len(pos.path) <= len(r.End.path) {
		offset := r.End.path[len(pos.path)-1]
		if howMany := offset - pos.Offset(); howMany != 0 {
			ranges = append(ranges, Range{Start: pos, End: pos.ShiftedBy(howMany)})
		}
		// Step in: the first offset of the element at the end's path.
		pos = Position{root: pos.root, path: append(append([]int{}, pos.path[:len(pos.path)-1]...), offset, 0)}
	}
	return ranges
}

func (r Range) String() string {
	return fmt.Sprintf("%v-%v", r.Start.path, r.End.path)
}
