package model

import (
	"fmt"
	"strings"
)

// Text is a run of characters sharing one attribute set.
type Text struct {
	data   string
	attrs  map[string]interface{}
	parent Container
}

// NewText returns a detached text run. The attribute map is copied.
func NewText(data string, attrs map[string]interface{}) *Text {
	return &Text{data: data, attrs: copyAttrs(attrs)}
}

// Data returns the run's characters.
func (t *Text) Data() string {
	return t.data
}

func (t *Text) Parent() Container {
	return t.parent
}

// OffsetSize is the number of characters in the run.
func (t *Text) OffsetSize() int {
	return len([]rune(t.data))
}

func (t *Text) Attribute(key string) (interface{}, bool) {
	v, ok := t.attrs[key]
	return v, ok
}

func (t *Text) Attributes() map[string]interface{} {
	return t.attrs
}

func (t *Text) String() string {
	if len(t.attrs) == 0 {
		return t.data
	}
	var b strings.Builder
	b.WriteString("<$text")
	for _, k := range sortedKeys(t.attrs) {
		fmt.Fprintf(&b, " %s=%q", k, fmt.Sprint(t.attrs[k]))
	}
	b.WriteString(">")
	b.WriteString(t.data)
	b.WriteString("</$text>")
	return b.String()
}

func (t *Text) setParent(c Container) {
	t.parent = c
}

func (t *Text) setAttribute(key string, value interface{}) {
	if value == nil {
		delete(t.attrs, key)
		return
	}
	if t.attrs == nil {
		t.attrs = make(map[string]interface{})
	}
	t.attrs[key] = value
}
