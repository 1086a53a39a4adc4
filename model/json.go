package model

import (
	"encoding/json"
	"fmt"
)

// Nodes serialize as a tagged union: text runs carry "data", elements carry
// "name" plus "children". Documents add their markers as path pairs rooted
// at the document root.

type textJSON struct {
	Data       string                 `json:"data"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

type elementJSON struct {
	Name       string                 `json:"name"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
	Children   []json.RawMessage      `json:"children,omitempty"`
}

type rangeJSON struct {
	Start []int `json:"start"`
	End   []int `json:"end"`
}

type documentJSON struct {
	Root    json.RawMessage      `json:"root"`
	Markers map[string]rangeJSON `json:"markers,omitempty"`
}

func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(textJSON{Data: t.data, Attributes: t.attrs})
}

func (e *Element) MarshalJSON() ([]byte, error) {
	raw := elementJSON{Name: e.name, Attributes: e.attrs}
	for _, child := range e.Children() {
		b, err := json.Marshal(child)
		if err != nil {
			return nil, err
		}
		raw.Children = append(raw.Children, b)
	}
	return json.Marshal(raw)
}

// UnmarshalNode rebuilds a node from its tagged-union form.
func UnmarshalNode(data []byte) (Node, error) {
	var probe struct {
		Name *string `json:"name"`
		Data *string `json:"data"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch {
	case probe.Name != nil:
		return unmarshalElement(data)
	case probe.Data != nil:
		var raw textJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return NewText(raw.Data, raw.Attributes), nil
	}
	return nil, fmt.Errorf("node JSON carries neither %q nor %q", "name", "data")
}

func unmarshalElement(data []byte) (*Element, error) {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	el := NewElement(raw.Name, raw.Attributes)
	for _, childRaw := range raw.Children {
		child, err := UnmarshalNode(childRaw)
		if err != nil {
			return nil, err
		}
		el.InsertChildren(el.ChildCount(), []Node{child})
	}
	return el, nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	rootRaw, err := json.Marshal(d.root)
	if err != nil {
		return nil, err
	}
	raw := documentJSON{Root: rootRaw}
	if d.markers.Len() > 0 {
		raw.Markers = make(map[string]rangeJSON, d.markers.Len())
		for _, name := range d.markers.Names() {
			m, _ := d.markers.Get(name)
			raw.Markers[name] = rangeJSON{Start: m.Range.Start.Path(), End: m.Range.End.Path()}
		}
	}
	return json.Marshal(raw)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	root, err := unmarshalElement(raw.Root)
	if err != nil {
		return err
	}
	d.root = root
	d.root.doc = d
	d.markers = NewMarkerCollection()
	for name, rr := range raw.Markers {
		d.markers.Set(name, NewRange(
			NewPosition(d.root, rr.Start),
			NewPosition(d.root, rr.End),
		))
	}
	return nil
}
