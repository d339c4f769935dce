package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrBadReturn is returned when a transform does not return a string.
	ErrBadReturn = errors.New("transform must return a string")
)

// ScriptError wraps a failure raised while loading or running a script.
type ScriptError struct {
	Script string // script path or chunk name
	Action string // action label, empty while loading
	Err    error
}

func (e *ScriptError) Error() string {
	if e == nil {
		return ""
	}
	if e.Action != "" {
		return fmt.Sprintf("script %s: action %q: %v", e.Script, e.Action, e.Err)
	}
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
