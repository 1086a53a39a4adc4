package model

// NormalizeNodes converts heterogeneous content into a flat node list:
// strings become text runs, text proxies are materialized into fresh runs
// holding only the referenced substring, fragments are dissolved into their
// children, and slices are flattened recursively. Values of any other type
// are dropped silently, a deliberate permissive policy for convenience call
// sites. With mergeTextNodes set, consecutive equal-attribute runs are
// coalesced.
//
// The second return value holds the markers of dissolved fragments, rebased
// to list coordinates: the first path step is an offset into the returned
// list. It is nil when no fragment carried markers.
func NormalizeNodes(content interface{}, mergeTextNodes bool) ([]Node, map[string]Range) {
	var nodes []Node
	markers := make(map[string]Range)
	appendNormalized(&nodes, markers, content)
	if mergeTextNodes {
		nodes = mergeTextRuns(nodes)
	}
	if len(markers) == 0 {
		markers = nil
	}
	return nodes, markers
}

func appendNormalized(nodes *[]Node, markers map[string]Range, content interface{}) {
	switch v := content.(type) {
	case string:
		if v != "" {
			*nodes = append(*nodes, NewText(v, nil))
		}
	case *Text:
		*nodes = append(*nodes, v)
	case *Element:
		*nodes = append(*nodes, v)
	case *TextProxy:
		*nodes = append(*nodes, NewText(v.Data(), v.TextNode().attrs))
	case *DocumentFragment:
		base := 0
		for _, n := range *nodes {
			base += n.OffsetSize()
		}
		for _, name := range v.Markers().Names() {
			m, _ := v.Markers().Get(name)
			markers[name] = Range{
				Start: shiftFirstStep(m.Range.Start, base),
				End:   shiftFirstStep(m.Range.End, base),
			}
		}
		*nodes = append(*nodes, v.RemoveChildren(0, v.ChildCount())...)
	case []Node:
		for _, n := range v {
			appendNormalized(nodes, markers, n)
		}
	case []interface{}:
		for _, item := range v {
			appendNormalized(nodes, markers, item)
		}
	default:
		// Numbers, nil and every other unsupported value are ignored.
	}
}

// shiftFirstStep rebases a fragment-relative position to list coordinates.
// Merging text runs later preserves cumulative offsets, so the shifted path
// stays correct.
func shiftFirstStep(p Position, base int) Position {
	path := append([]int{}, p.path...)
	path[0] += base
	return Position{path: path}
}

func mergeTextRuns(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if t, ok := n.(*Text); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Text); ok && attrsEqual(prev.attrs, t.attrs) {
				out[len(out)-1] = NewText(prev.data+t.data, prev.attrs)
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
