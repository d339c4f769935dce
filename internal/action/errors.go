package action

import "errors"

// Action errors.
var (
	// ErrNoDocument indicates an undoable action was triggered with no
	// current document. The handler is not called.
	ErrNoDocument = errors.New("no current document")

	// ErrDisabled indicates the action's predicate rejected the current
	// document at execution time.
	ErrDisabled = errors.New("action disabled")

	// ErrUnbound indicates the action has not been registered.
	ErrUnbound = errors.New("action not registered")

	// ErrAlreadyRegistered indicates the action belongs to a registry.
	ErrAlreadyRegistered = errors.New("action already registered")

	// ErrDuplicateShortcut indicates two actions claim the same shortcut.
	ErrDuplicateShortcut = errors.New("shortcut already in use")

	// ErrActionNotFound indicates no action has the given label.
	ErrActionNotFound = errors.New("action not found")
)
