package commons

import (
	"encoding/json"
	"fmt"

	"github.com/inkpad-editor/inkpad/model"
)

// OperationType enumerates the writer operations that travel over the wire.
type OperationType string

const (
	InsertOperation          OperationType = "insert"
	RemoveOperation          OperationType = "remove"
	MoveOperation            OperationType = "move"
	SetAttributeOperation    OperationType = "setAttribute"
	RemoveAttributeOperation OperationType = "removeAttribute"
)

// Operation represents a single document mutation. Positions are expressed
// as paths into the document root, the same coordinates the model uses.
type Operation struct {
	// Type represents the operation type.
	Type OperationType `json:"type"`

	// Start addresses the insertion point or the range start.
	Start []int `json:"start,omitempty"`

	// End is the range end for remove, move and attribute operations.
	End []int `json:"end,omitempty"`

	// Target is the destination of a move.
	Target []int `json:"target,omitempty"`

	// Value is inserted plain text.
	Value string `json:"value,omitempty"`

	// Nodes is inserted rich content, as serialized nodes. It takes
	// precedence over Value.
	Nodes []json.RawMessage `json:"nodes,omitempty"`

	// Key and Attribute carry the attribute name and value for
	// setAttribute; a nil Attribute removes the key.
	Key       string      `json:"key,omitempty"`
	Attribute interface{} `json:"attribute,omitempty"`
}

// Apply performs the operation on the document through the given writer.
func (op Operation) Apply(doc *model.Document, w *model.Writer) error {
	root := doc.Root()

	switch op.Type {
	case InsertOperation:
		content, err := op.content()
		if err != nil {
			return err
		}
		return w.Insert(model.NewPosition(root, op.Start), content)

	case RemoveOperation:
		_, err := w.Remove(op.rangeIn(root))
		return err

	case MoveOperation:
		return w.Move(op.rangeIn(root), model.NewPosition(root, op.Target))

	case SetAttributeOperation:
		return w.SetAttribute(op.rangeIn(root), op.Key, op.Attribute)

	case RemoveAttributeOperation:
		return w.RemoveAttribute(op.rangeIn(root), op.Key)
	}
	return fmt.Errorf("unknown operation type %q", op.Type)
}

func (op Operation) rangeIn(root *model.Element) model.Range {
	return model.NewRange(
		model.NewPosition(root, op.Start),
		model.NewPosition(root, op.End),
	)
}

func (op Operation) content() (interface{}, error) {
	if len(op.Nodes) == 0 {
		return op.Value, nil
	}
	nodes := make([]model.Node, 0, len(op.Nodes))
	for _, raw := range op.Nodes {
		n, err := model.UnmarshalNode(raw)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
