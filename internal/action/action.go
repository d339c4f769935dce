// Package action implements user-triggerable operations (menu and toolbar
// entries) and the protocol that keeps their enabled state in sync with
// the current document.
package action

import (
	"fmt"

	"github.com/dshills/docshell/internal/document"
	"github.com/dshills/docshell/internal/engine/history"
)

// Kind declares how an action's handler applies its effect.
type Kind uint8

const (
	// KindDirect handlers apply their effect immediately.
	KindDirect Kind = iota
	// KindUndoable handlers return a Command that is pushed onto the
	// current document's history.
	KindUndoable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindUndoable:
		return "undoable"
	default:
		return "unknown"
	}
}

// DirectHandler applies an effect. doc may be nil; a handler that needs
// a document should decline by returning nil.
type DirectHandler func(doc *document.Document) error

// CommandFactory builds the Command for an undoable action. doc is never
// nil. Returning a nil Command declines without touching the history.
type CommandFactory func(doc *document.Document) (history.Command, error)

// DocumentSource supplies the current document.
type DocumentSource interface {
	CurrentDocument() *document.Document
}

// Refresher runs the refresh cascade.
type Refresher interface {
	Refresh()
}

// Action is a labelled operation with an optional shortcut, a handler and
// an availability predicate.
type Action struct {
	label     string
	shortcut  string
	kind      Kind
	direct    DirectHandler
	factory   CommandFactory
	predicate Predicate
	describe  func(*document.Document) string
	enabled   bool
	detail    string

	registry *Registry
}

// Option configures an Action.
type Option func(*Action)

// WithShortcut sets the key combination, e.g. "Ctrl+S".
func WithShortcut(shortcut string) Option {
	return func(a *Action) {
		a.shortcut = NormalizeShortcut(shortcut)
	}
}

// WithPredicate sets the availability predicate.
func WithPredicate(p Predicate) Option {
	return func(a *Action) {
		a.predicate = p
	}
}

// WithDetail sets a function that describes what the action would do to
// the current document, e.g. which change Undo reverses. It is evaluated
// on Refresh alongside the predicate.
func WithDetail(f func(doc *document.Document) string) Option {
	return func(a *Action) {
		a.describe = f
	}
}

// NewDirect creates an action whose handler applies its effect directly.
// Without a predicate it is always available.
func NewDirect(label string, handler DirectHandler, opts ...Option) *Action {
	a := &Action{
		label:  label,
		kind:   KindDirect,
		direct: handler,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.predicate == nil {
		a.predicate = Always
	}
	return a
}

// NewUndoable creates an action whose handler returns a Command.
// It is only available when a document is current, in addition to any
// predicate given.
func NewUndoable(label string, factory CommandFactory, opts ...Option) *Action {
	a := &Action{
		label:   label,
		kind:    KindUndoable,
		factory: factory,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.predicate = And(HasDocument, a.predicate)
	return a
}

// Label returns the display label.
func (a *Action) Label() string {
	return a.label
}

// Shortcut returns the normalized shortcut, or "".
func (a *Action) Shortcut() string {
	return a.shortcut
}

// Kind returns the handler kind.
func (a *Action) Kind() Kind {
	return a.kind
}

// Enabled returns the state computed by the last Refresh.
func (a *Action) Enabled() bool {
	return a.enabled
}

// Detail returns the description computed by the last Refresh, or "".
func (a *Action) Detail() string {
	return a.detail
}

// Available evaluates the predicate for doc without caching the result.
func (a *Action) Available(doc *document.Document) bool {
	return a.predicate(doc)
}

// Refresh recomputes the enabled state for the current document.
func (a *Action) Refresh() {
	var doc *document.Document
	if a.registry != nil {
		doc = a.registry.source.CurrentDocument()
	}
	a.enabled = a.predicate(doc)

	a.detail = ""
	if a.describe != nil && doc != nil {
		a.detail = a.describe(doc)
	}
}

// Execute runs the action against the current document and then runs
// the refresh cascade, whether or not the handler succeeded.
//
// An undoable action with no current document is declined with
// ErrNoDocument; its factory is not called.
func (a *Action) Execute() error {
	r := a.registry
	if r == nil {
		return fmt.Errorf("%s: %w", a.label, ErrUnbound)
	}
	defer r.refresher.Refresh()

	doc := r.source.CurrentDocument()
	err := a.run(doc)
	switch {
	case err == nil:
		r.logger.Debug("action executed", "action", a.label, "kind", a.kind.String())
	case document.IsCancelled(err):
		r.logger.Debug("action cancelled", "action", a.label)
	default:
		r.logger.Warn("action failed", "action", a.label, "error", err)
	}
	return err
}

func (a *Action) run(doc *document.Document) error {
	if a.kind == KindUndoable && doc == nil {
		return fmt.Errorf("%s: %w", a.label, ErrNoDocument)
	}
	if !a.predicate(doc) {
		return fmt.Errorf("%s: %w", a.label, ErrDisabled)
	}

	if a.kind == KindDirect {
		if a.direct == nil {
			return nil
		}
		return a.direct(doc)
	}

	if a.factory == nil {
		return nil
	}
	cmd, err := a.factory(doc)
	if err != nil {
		return err
	}
	if cmd != nil {
		doc.Push(cmd)
	}
	return nil
}
