package commons

import (
	"github.com/google/uuid"

	"github.com/inkpad-editor/inkpad/model"
)

// Message represents the message sent over the wire.
type Message struct {
	Username string `json:"username"`

	// Text carries the human-readable body: joining messages and the list
	// of active users.
	Text string `json:"text"`

	// Type represents the message type.
	Type MessageType `json:"type"`

	// ID represents the client's UUID.
	ID uuid.UUID `json:"ID"`

	// Operation is the document mutation carried by OperationMessage
	// messages.
	Operation Operation `json:"operation"`

	// Document is the full document state, sent only for syncs due to its
	// size.
	Document *model.Document `json:"document,omitempty"`
}

// MessageType represents the type of the message.
type MessageType string

// The supported message types:
// - docSync (for syncing documents)
// - docReq (for requesting documents)
// - operation (for document mutations)
// - join (for joining messages)
// - users (for the list of active users)

const (
	DocSyncMessage   MessageType = "docSync"
	DocReqMessage    MessageType = "docReq"
	OperationMessage MessageType = "operation"
	JoinMessage      MessageType = "join"
	UsersMessage     MessageType = "users"
)
