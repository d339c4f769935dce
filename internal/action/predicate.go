package action

import (
	"unicode/utf8"

	"github.com/dshills/docshell/internal/document"
)

// Predicate decides whether an action is available for the current
// document, which may be nil. Predicates must be pure: they are evaluated
// for every action on every refresh, in no particular order.
type Predicate func(doc *document.Document) bool

// Always is available regardless of the current document.
func Always(*document.Document) bool {
	return true
}

// HasDocument is available when a document is current.
func HasDocument(doc *document.Document) bool {
	return doc != nil
}

// Writable is available when the current document is not read-only.
func Writable(doc *document.Document) bool {
	return doc != nil && !doc.ReadOnly
}

// CanUndo is available when the current document has a change to undo.
func CanUndo(doc *document.Document) bool {
	return doc != nil && doc.CanUndo()
}

// CanRedo is available when the current document has a change to redo.
func CanRedo(doc *document.Document) bool {
	return doc != nil && doc.CanRedo()
}

// IsDirty is available when the current document has unsaved changes.
func IsDirty(doc *document.Document) bool {
	return doc != nil && doc.IsDirty()
}

// MinLength is available when the current document holds at least n characters.
func MinLength(n int) Predicate {
	return func(doc *document.Document) bool {
		return doc != nil && utf8.RuneCountInString(doc.Contents()) >= n
	}
}

// And is available when every predicate is. Nil predicates are skipped.
func And(preds ...Predicate) Predicate {
	return func(doc *document.Document) bool {
		for _, p := range preds {
			if p != nil && !p(doc) {
				return false
			}
		}
		return true
	}
}
