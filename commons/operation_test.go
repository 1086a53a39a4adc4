package commons

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inkpad-editor/inkpad/model"
)

// TestOperationsConverge applies the same operation stream to a fresh
// replica, the way the server relays client edits, and expects identical
// trees on both sides.
func TestOperationsConverge(t *testing.T) {
	ops := []Operation{
		{Type: InsertOperation, Start: []int{0}, Value: "foobar"},
		{Type: SetAttributeOperation, Start: []int{2}, End: []int{4}, Key: "bold", Attribute: true},
		{Type: RemoveOperation, Start: []int{0}, End: []int{1}},
		{Type: MoveOperation, Start: []int{0}, End: []int{1}, Target: []int{5}},
	}

	w := model.NewWriter(nil)
	local := model.NewDocument()
	for _, op := range ops {
		if err := op.Apply(local, w); err != nil {
			t.Fatalf("applying %v locally: %v", op.Type, err)
		}
	}

	replica := model.NewDocument()
	for _, op := range ops {
		// Round trip through JSON, as the wire would.
		data, err := json.Marshal(op)
		if err != nil {
			t.Fatalf("marshalling %v: %v", op.Type, err)
		}
		var decoded Operation
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshalling %v: %v", op.Type, err)
		}
		if err := decoded.Apply(replica, w); err != nil {
			t.Fatalf("applying %v on the replica: %v", op.Type, err)
		}
	}

	if got, want := replica.String(), local.String(); got != want {
		t.Errorf("replica diverged, diff: %v\n", cmp.Diff(got, want))
	}
}

func TestOperationInsertNodes(t *testing.T) {
	image, err := json.Marshal(model.NewElement("image", map[string]interface{}{"src": "img.png"}))
	if err != nil {
		t.Fatalf("marshalling node: %v", err)
	}

	doc := model.NewDocument()
	w := model.NewWriter(nil)
	op := Operation{Type: InsertOperation, Start: []int{0}, Nodes: []json.RawMessage{image}}
	if err := op.Apply(doc, w); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	got := doc.String()
	want := `<$root><image src="img.png"/></$root>`
	if got != want {
		t.Errorf("got != want, diff: %v\n", cmp.Diff(got, want))
	}
}

func TestOperationUnknownType(t *testing.T) {
	doc := model.NewDocument()
	w := model.NewWriter(nil)

	op := Operation{Type: OperationType("explode")}
	if err := op.Apply(doc, w); err == nil {
		t.Error("expected an error for an unknown operation type")
	}
}
