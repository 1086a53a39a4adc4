package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarkerCollection(t *testing.T) {
	doc := NewDocument()
	doc.Root().InsertChildren(0, []Node{NewText("foobar", nil)})
	c := doc.Markers()

	r := NewRange(NewPosition(doc.Root(), []int{1}), NewPosition(doc.Root(), []int{4}))
	c.Set("comment:1", r)
	c.Set("bookmark", CollapsedRange(NewPosition(doc.Root(), []int{2})))

	if got, want := c.Names(), []string{"bookmark", "comment:1"}; !cmp.Equal(got, want) {
		t.Errorf("names: got != want, diff: %v\n", cmp.Diff(got, want))
	}

	m, ok := c.Get("comment:1")
	if !ok {
		t.Fatal("marker missing")
	}
	if got, want := m.Range.String(), "[1]-[4]"; got != want {
		t.Errorf("got = %v, expected = %v\n", got, want)
	}

	// Setting an existing name moves the marker instead of duplicating it.
	c.Set("comment:1", CollapsedRange(NewPosition(doc.Root(), []int{5})))
	if got := c.Len(); got != 2 {
		t.Errorf("got = %v markers, expected 2\n", got)
	}
	m, _ = c.Get("comment:1")
	if got, want := m.Range.String(), "[5]-[5]"; got != want {
		t.Errorf("got = %v, expected = %v\n", got, want)
	}

	if !c.Delete("bookmark") {
		t.Error("delete reported a missing marker")
	}
	if c.Delete("bookmark") {
		t.Error("second delete must report the marker as gone")
	}
}
