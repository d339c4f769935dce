package app

import (
	"fmt"
	"strings"
)

// ComponentError records a failure while wiring one part of the application.
type ComponentError struct {
	Component string // e.g. "keys", "scripts"
	Action    string // what was being done
	Err       error
}

// NewComponentError creates a ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Action != "" {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorList collects errors that should not stop startup.
type ErrorList struct {
	errs []error
}

// Add appends err if it is non-nil.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

// Len returns the number of collected errors.
func (e *ErrorList) Len() int {
	return len(e.errs)
}

// Errors returns a copy of the collected errors.
func (e *ErrorList) Errors() []error {
	return append([]error(nil), e.errs...)
}

func (e *ErrorList) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// AsError returns nil when empty, the single error when there is one,
// and the list otherwise.
func (e *ErrorList) AsError() error {
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		return e
	}
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.errs
}
