package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func bold() map[string]interface{} {
	return map[string]interface{}{"bold": true}
}

// richDoc builds the document used across insertion tests:
// foo, bold "bar", an image, xyz.
func richDoc() *Document {
	doc := NewDocument()
	doc.Root().InsertChildren(0, []Node{
		NewText("foo", nil),
		NewText("bar", bold()),
		NewElement("image", map[string]interface{}{"src": "img.png"}),
		NewText("xyz", nil),
	})
	return doc
}

func TestInsertSplitsTextRun(t *testing.T) {
	doc := richDoc()
	w := NewWriter(nil)

	// Offset 5 falls inside the bold "bar" run, between "ba" and "r".
	err := w.Insert(NewPosition(doc.Root(), []int{5}), NewElement("paragraph", nil))
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got := doc.String()
	want := `<$root>foo<$text bold="true">ba</$text><paragraph/><$text bold="true">r</$text><image src="img.png"/>xyz</$root>`

	if got != want {
		t.Errorf("got != want, diff: %v\n", cmp.Diff(got, want))
	}
}

func TestInsertMergesCompatibleRuns(t *testing.T) {
	tests := []struct {
		description   string
		content       interface{}
		position      int
		expectedCount int
		expected      string
	}{
		{description: "plain text into plain text", content: "123", position: 2,
			expectedCount: 4, expected: `<$root>fo123o<$text bold="true">bar</$text><image src="img.png"/>xyz</$root>`},
		{description: "bold text into bold run", content: NewText("12", bold()), position: 4,
			expectedCount: 4, expected: `<$root>foo<$text bold="true">b12ar</$text><image src="img.png"/>xyz</$root>`},
		{description: "bold text at bold run start stays merged", content: NewText("12", bold()), position: 3,
			expectedCount: 4, expected: `<$root>foo<$text bold="true">12bar</$text><image src="img.png"/>xyz</$root>`},
		{description: "plain text into bold run splits it", content: "12", position: 4,
			expectedCount: 6, expected: `<$root>foo<$text bold="true">b</$text>12<$text bold="true">ar</$text><image src="img.png"/>xyz</$root>`},
	}

	for _, tc := range tests {
		doc := richDoc()
		w := NewWriter(nil)

		err := w.Insert(NewPosition(doc.Root(), []int{tc.position}), tc.content)
		if err != nil {
			t.Fatalf("(%s) insert failed: %v", tc.description, err)
		}

		if got := doc.Root().ChildCount(); got != tc.expectedCount {
			t.Errorf("(%s) child count: got = %v, expected = %v\n", tc.description, got, tc.expectedCount)
		}
		if got := doc.String(); got != tc.expected {
			t.Errorf("(%s) got != expected, diff: %v\n", tc.description, cmp.Diff(got, tc.expected))
		}
	}
}

func TestInsertFragmentRelocatesMarkers(t *testing.T) {
	frag := NewDocumentFragment(NewText("foobar", nil))
	frag.Markers().Set("comment:1", NewRange(
		NewPosition(frag, []int{1}),
		NewPosition(frag, []int{3}),
	))

	doc := NewDocument()
	doc.Root().InsertChildren(0, []Node{NewText("xy", nil)})
	w := NewWriter(nil)

	if err := w.Insert(NewPosition(doc.Root(), []int{1}), frag); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if got, want := doc.String(), `<$root>xfoobary</$root>`; got != want {
		t.Errorf("got != want, diff: %v\n", cmp.Diff(got, want))
	}

	m, ok := doc.Markers().Get("comment:1")
	if !ok {
		t.Fatal("marker was not relocated into the document")
	}
	if got, want := m.Range.Start.Path(), []int{2}; !cmp.Equal(got, want) {
		t.Errorf("marker start: got != want, diff: %v\n", cmp.Diff(got, want))
	}
	if got, want := m.Range.End.Path(), []int{4}; !cmp.Equal(got, want) {
		t.Errorf("marker end: got != want, diff: %v\n", cmp.Diff(got, want))
	}
}

func TestInsertDropsMarkersWithWarning(t *testing.T) {
	frag := NewDocumentFragment(NewText("ab", nil))
	frag.Markers().Set("comment:1", NewRange(
		NewPosition(frag, []int{0}),
		NewPosition(frag, []int{2}),
	))

	// A bare element tree has no marker collection.
	target := NewElement("container", nil, NewText("xy", nil))
	logger, hook := test.NewNullLogger()
	w := NewWriter(logger)

	if err := w.Insert(NewPosition(target, []int{2}), frag); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if got, want := target.String(), `<container>xyab</container>`; got != want {
		t.Errorf("got != want, diff: %v\n", cmp.Diff(got, want))
	}

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a warning about dropped markers")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("warning level: got = %v, expected = %v\n", entry.Level, logrus.WarnLevel)
	}
	if got, want := entry.Data["code"], WarnInsertLoseMarkers; got != want {
		t.Errorf("warning code: got = %v, expected = %v\n", got, want)
	}
	if len(hook.Entries) != 1 {
		t.Errorf("expected a single warning per insert, got %d\n", len(hook.Entries))
	}
}

func TestRemoveSplitsAndMerges(t *testing.T) {
	doc := NewDocument()
	doc.Root().InsertChildren(0, []Node{NewText("foobar", nil)})
	w := NewWriter(nil)

	removed, err := w.Remove(NewRange(
		NewPosition(doc.Root(), []int{2}),
		NewPosition(doc.Root(), []int{4}),
	))
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if got, want := doc.String(), `<$root>foar</$root>`; got != want {
		t.Errorf("got != want, diff: %v\n", cmp.Diff(got, want))
	}
	if got := doc.Root().ChildCount(); got != 1 {
		t.Errorf("seam was not merged, child count = %v\n", got)
	}
	if len(removed) != 1 || removed[0].(*Text).Data() != "ob" {
		t.Errorf("removed nodes: got = %v\n", removed)
	}
}

func TestRemoveRangeNotFlat(t *testing.T) {
	doc := NewDocument()
	doc.Root().InsertChildren(0, []Node{
		NewElement("paragraph", nil, NewText("foo", nil)),
		NewElement("paragraph", nil, NewText("bar", nil)),
	})
	before := doc.String()
	w := NewWriter(nil)

	_, err := w.Remove(NewRange(
		NewPosition(doc.Root(), []int{0, 1}),
		NewPosition(doc.Root(), []int{1, 2}),
	))
	if !errors.Is(err, ErrRemoveRangeNotFlat) {
		t.Fatalf("got err = %v, expected %v", err, ErrRemoveRangeNotFlat)
	}
	if got := doc.String(); got != before {
		t.Errorf("tree mutated on failed remove, diff: %v\n", cmp.Diff(got, before))
	}
}

func TestMoveRangeNotFlat(t *testing.T) {
	doc := NewDocument()
	doc.Root().InsertChildren(0, []Node{
		NewElement("paragraph", nil, NewText("foo", nil)),
		NewElement("paragraph", nil, NewText("bar", nil)),
	})
	before := doc.String()
	w := NewWriter(nil)

	err := w.Move(NewRange(
		NewPosition(doc.Root(), []int{0, 1}),
		NewPosition(doc.Root(), []int{1, 2}),
	), NewPosition(doc.Root(), []int{2}))
	if !errors.Is(err, ErrMoveRangeNotFlat) {
		t.Fatalf("got err = %v, expected %v", err, ErrMoveRangeNotFlat)
	}
	if got := doc.String(); got != before {
		t.Errorf("tree mutated on failed move, diff: %v\n", cmp.Diff(got, before))
	}
}

func TestMoveMatchesRemoveThenInsert(t *testing.T) {
	tests := []struct {
		description string
		target      int
		expected    string
	}{
		{description: "target before the range", target: 1, expected: `<$root>fbarooxyz</$root>`},
		{description: "target right after the range", target: 6, expected: `<$root>foobarxyz</$root>`},
		{description: "target past the range", target: 9, expected: `<$root>fooxyzbar</$root>`},
	}

	for _, tc := range tests {
		moved := NewDocument()
		moved.Root().InsertChildren(0, []Node{NewText("foobarxyz", nil)})
		w := NewWriter(nil)

		r := NewRange(NewPosition(moved.Root(), []int{3}), NewPosition(moved.Root(), []int{6}))
		if err := w.Move(r, NewPosition(moved.Root(), []int{tc.target})); err != nil {
			t.Fatalf("(%s) move failed: %v", tc.description, err)
		}

		// The same edit done by hand: remove, then insert at the
		// offset-adjusted target.
		manual := NewDocument()
		manual.Root().InsertChildren(0, []Node{NewText("foobarxyz", nil)})
		mr := NewRange(NewPosition(manual.Root(), []int{3}), NewPosition(manual.Root(), []int{6}))
		extracted, err := w.Remove(mr)
		if err != nil {
			t.Fatalf("(%s) remove failed: %v", tc.description, err)
		}
		adjusted := tc.target
		if adjusted >= 6 {
			adjusted -= 3
		}
		if err := w.Insert(NewPosition(manual.Root(), []int{adjusted}), extracted); err != nil {
			t.Fatalf("(%s) insert failed: %v", tc.description, err)
		}

		if got := moved.String(); got != tc.expected {
			t.Errorf("(%s) move: got != expected, diff: %v\n", tc.description, cmp.Diff(got, tc.expected))
		}
		if got, want := moved.String(), manual.String(); got != want {
			t.Errorf("(%s) move and remove+insert diverge, diff: %v\n", tc.description, cmp.Diff(got, want))
		}
	}
}

func TestMovePreservesAttributes(t *testing.T) {
	doc := richDoc()
	w := NewWriter(nil)

	// Move the bold "bar" run to the very end.
	err := w.Move(NewRange(
		NewPosition(doc.Root(), []int{3}),
		NewPosition(doc.Root(), []int{6}),
	), NewPosition(doc.Root(), []int{10}))
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}

	got := doc.String()
	want := `<$root>foo<image src="img.png"/>xyz<$text bold="true">bar</$text></$root>`
	if got != want {
		t.Errorf("got != want, diff: %v\n", cmp.Diff(got, want))
	}
}

func TestSetAttributeSplitsBoundaryRuns(t *testing.T) {
	doc := NewDocument()
	doc.Root().InsertChildren(0, []Node{NewText("foobar", nil)})
	w := NewWriter(nil)

	err := w.SetAttribute(NewRange(
		NewPosition(doc.Root(), []int{2}),
		NewPosition(doc.Root(), []int{4}),
	), "bold", true)
	if err != nil {
		t.Fatalf("setAttribute failed: %v", err)
	}

	got := doc.String()
	want := `<$root>fo<$text bold="true">ob</$text>ar</$root>`
	if got != want {
		t.Errorf("got != want, diff: %v\n", cmp.Diff(got, want))
	}
}

func TestSetAttributeAcrossParents(t *testing.T) {
	doc := NewDocument()
	doc.Root().InsertChildren(0, []Node{
		NewElement("paragraph", nil, NewText("foo", nil)),
		NewElement("paragraph", nil, NewText("bar", nil)),
	})
	w := NewWriter(nil)

	err := w.SetAttribute(NewRange(
		NewPosition(doc.Root(), []int{0, 1}),
		NewPosition(doc.Root(), []int{1, 2}),
	), "italic", true)
	if err != nil {
		t.Fatalf("setAttribute failed: %v", err)
	}

	got := doc.String()
	want := `<$root><paragraph>f<$text italic="true">oo</$text></paragraph><paragraph><$text italic="true">ba</$text>r</paragraph></$root>`
	if got != want {
		t.Errorf("got != want, diff: %v\n", cmp.Diff(got, want))
	}
}

func TestSetAttributeNilEqualsRemoveAttribute(t *testing.T) {
	build := func() *Document {
		doc := NewDocument()
		doc.Root().InsertChildren(0, []Node{
			NewText("fo", nil),
			NewText("ob", bold()),
			NewText("ar", nil),
		})
		return doc
	}

	viaSet := build()
	viaRemove := build()
	w := NewWriter(nil)

	full := func(doc *Document) Range {
		return NewRange(NewPosition(doc.Root(), []int{0}), NewPosition(doc.Root(), []int{6}))
	}
	if err := w.SetAttribute(full(viaSet), "bold", nil); err != nil {
		t.Fatalf("setAttribute failed: %v", err)
	}
	if err := w.RemoveAttribute(full(viaRemove), "bold"); err != nil {
		t.Fatalf("removeAttribute failed: %v", err)
	}

	if got, want := viaSet.String(), viaRemove.String(); got != want {
		t.Errorf("setAttribute(nil) != removeAttribute, diff: %v\n", cmp.Diff(got, want))
	}
	// All three runs became identical and must be merged back into one.
	if got, want := viaSet.String(), `<$root>foobar</$root>`; got != want {
		t.Errorf("got != want, diff: %v\n", cmp.Diff(got, want))
	}
	if got := viaSet.Root().ChildCount(); got != 1 {
		t.Errorf("runs left unmerged, child count = %v\n", got)
	}
}
