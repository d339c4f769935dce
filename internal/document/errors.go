package document

import (
	"errors"
	"fmt"
)

// Document errors.
var (
	// ErrCancelled indicates the user dismissed a dialog.
	// It is not a failure; callers simply stop.
	ErrCancelled = errors.New("cancelled")

	// ErrNoDialogs indicates a save-as was needed but no dialog
	// collaborator is configured.
	ErrNoDialogs = errors.New("no file dialogs available")

	// ErrReadOnly indicates a write to a read-only document.
	ErrReadOnly = errors.New("document is read-only")
)

// OperationError represents an I/O failure during a document operation.
type OperationError struct {
	Op     string // Operation name (e.g., "save", "open")
	Target string // File path or document title
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsCancelled reports whether err means the user cancelled a dialog.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
