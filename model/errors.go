package model

import "fmt"

// Error is a model error carrying a stable machine-readable code. Callers
// match on the code with errors.Is against the exported sentinels.
type Error struct {
	Code   string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	// ErrRemoveRangeNotFlat is returned by Writer.Remove for ranges whose
	// ends do not share a parent. Nothing is mutated.
	ErrRemoveRangeNotFlat = &Error{Code: "model-writer-remove-range-not-flat"}

	// ErrMoveRangeNotFlat is the Writer.Move counterpart of
	// ErrRemoveRangeNotFlat.
	ErrMoveRangeNotFlat = &Error{Code: "model-writer-move-range-not-flat"}

	// ErrPositionInvalid is returned when a position's path does not address
	// a point in its tree.
	ErrPositionInvalid = &Error{Code: "model-position-path-invalid"}

	ErrTextProxyWrongOffset = &Error{Code: "model-textproxy-wrong-offset"}
	ErrTextProxyWrongLength = &Error{Code: "model-textproxy-wrong-length"}
)

// WarnInsertLoseMarkers is the diagnostic code emitted when inserted content
// carries markers but the destination tree cannot track them.
const WarnInsertLoseMarkers = "model-writer-insert-lose-markers"

// newError returns a copy of the sentinel with contextual detail attached.
func newError(sentinel *Error, format string, args ...interface{}) *Error {
	return &Error{Code: sentinel.Code, Detail: fmt.Sprintf(format, args...)}
}
