// Package workspace tracks the open documents and which one has focus.
package workspace

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/docshell/internal/document"
)

// Workspace errors.
var (
	// ErrIndexOutOfRange indicates a document index that is not open.
	ErrIndexOutOfRange = errors.New("document index out of range")
)

// Refresher re-derives UI-visible state after a workspace mutation.
type Refresher interface {
	Refresh()
}

// ViewFactory creates the view adapter for a newly added document.
type ViewFactory func(doc *document.Document) document.View

// Workspace is the ordered set of open documents plus the focused one.
//
// Every mutation (add, close, focus) is followed by exactly one call to
// the Refresher, so readers never see a focus change that the window
// title and action states do not yet reflect.
type Workspace struct {
	docs     []*document.Document
	current  int // -1 iff docs is empty
	untitled int

	svc       document.Services
	refresher Refresher
	views     ViewFactory
	logger    *slog.Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithRefresher sets the refresher invoked after each mutation.
func WithRefresher(r Refresher) Option {
	return func(w *Workspace) {
		w.refresher = r
	}
}

// WithViewFactory sets the factory used to bind views to added documents.
func WithViewFactory(f ViewFactory) Option {
	return func(w *Workspace) {
		w.views = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = l
	}
}

// New creates an empty workspace. Documents it creates share svc.
func New(svc document.Services, opts ...Option) *Workspace {
	w := &Workspace{
		current: -1,
		svc:     svc,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}
	if w.svc.Logger == nil {
		w.svc.Logger = w.logger
	}
	w.logger = w.logger.With("component", "workspace")
	return w
}

// SetRefresher sets the refresher. The coordinator usually needs the
// workspace to exist first, so it is attached after construction.
func (w *Workspace) SetRefresher(r Refresher) {
	w.refresher = r
}

// Services returns the collaborators shared by the workspace's documents.
func (w *Workspace) Services() document.Services {
	return w.svc
}

func (w *Workspace) refresh() {
	if w.refresher != nil {
		w.refresher.Refresh()
	}
}

// AddDocument appends doc, focuses it and refreshes.
func (w *Workspace) AddDocument(doc *document.Document) {
	if doc.View() == nil && w.views != nil {
		doc.BindView(w.views(doc))
	}

	w.docs = append(w.docs, doc)
	w.current = len(w.docs) - 1
	w.logger.Debug("document added", "title", doc.Title(), "index", w.current)

	w.refresh()
}

// NewDocument creates and adds an empty "Untitled N" document.
// N comes from a counter owned by this workspace.
func (w *Workspace) NewDocument() *document.Document {
	w.untitled++
	doc := document.New(fmt.Sprintf("Untitled %d", w.untitled), "", w.svc)
	w.AddDocument(doc)
	return doc
}

// Create adds an unsaved document with a fixed title and contents.
func (w *Workspace) Create(title, contents string) *document.Document {
	doc := document.New(title, contents, w.svc)
	w.AddDocument(doc)
	return doc
}

// OpenDocument asks for a path and opens it. A cancelled dialog is not
// an error: it returns nil, nil. An unreadable path returns the I/O error
// and creates no document.
func (w *Workspace) OpenDocument() (*document.Document, error) {
	if w.svc.Dialogs == nil {
		return nil, document.ErrNoDialogs
	}

	path, ok := w.svc.Dialogs.AskOpenPath()
	if !ok || path == "" {
		return nil, nil
	}
	return w.OpenPath(path)
}

// OpenPath opens the file at path. If it is already open, that document
// is focused instead.
func (w *Workspace) OpenPath(path string) (*document.Document, error) {
	path = document.AbsPath(path)
	if i := w.IndexOfPath(path); i >= 0 {
		if err := w.Focus(i); err != nil {
			return nil, err
		}
		return w.docs[i], nil
	}

	doc, err := document.Open(path, w.svc)
	if err != nil {
		w.logger.Warn("open failed", "path", path, "error", err)
		return nil, err
	}

	w.AddDocument(doc)
	return doc, nil
}

// CloseDocument runs the close protocol for the document at i and removes
// it if the protocol allows. On refusal the workspace is unchanged.
//
// Closing the focused document focuses the one that slides into its slot,
// or the new last one. Closing another document keeps the focus where it is.
func (w *Workspace) CloseDocument(i int) (bool, error) {
	if i < 0 || i >= len(w.docs) {
		return false, fmt.Errorf("close %d: %w", i, ErrIndexOutOfRange)
	}

	doc := w.docs[i]
	closed, err := doc.Close()
	if !closed {
		w.logger.Debug("close refused", "title", doc.Title(), "error", err)
		w.refresh()
		return false, err
	}

	w.docs = append(w.docs[:i], w.docs[i+1:]...)
	switch {
	case len(w.docs) == 0:
		w.current = -1
	case i < w.current:
		w.current--
	case i == w.current && w.current >= len(w.docs):
		w.current = len(w.docs) - 1
	}
	w.logger.Debug("document closed", "title", doc.Title(), "current", w.current)

	w.refresh()
	return true, nil
}

// CloseCurrent closes the focused document. Returns false if there is none.
func (w *Workspace) CloseCurrent() (bool, error) {
	if w.current < 0 {
		return false, nil
	}
	return w.CloseDocument(w.current)
}

// CloseAll closes documents one at a time, starting with the focused one,
// and stops at the first one that refuses. Returns true if none remain.
func (w *Workspace) CloseAll() (bool, error) {
	for len(w.docs) > 0 {
		closed, err := w.CloseDocument(w.current)
		if !closed {
			return false, err
		}
	}
	return true, nil
}

// Focus makes the document at i current. No-op if it already is.
func (w *Workspace) Focus(i int) error {
	if i < 0 || i >= len(w.docs) {
		return fmt.Errorf("focus %d: %w", i, ErrIndexOutOfRange)
	}
	if i == w.current {
		return nil
	}

	w.current = i
	w.refresh()
	return nil
}

// FocusNext focuses the next document, wrapping around.
func (w *Workspace) FocusNext() {
	if len(w.docs) < 2 {
		return
	}
	_ = w.Focus((w.current + 1) % len(w.docs))
}

// FocusPrevious focuses the previous document, wrapping around.
func (w *Workspace) FocusPrevious() {
	if len(w.docs) < 2 {
		return
	}
	_ = w.Focus((w.current - 1 + len(w.docs)) % len(w.docs))
}

// CurrentDocument returns the focused document, or nil if none is open.
func (w *Workspace) CurrentDocument() *document.Document {
	if w.current < 0 {
		return nil
	}
	return w.docs[w.current]
}

// CurrentIndex returns the focused index, or -1 if none is open.
func (w *Workspace) CurrentIndex() int {
	return w.current
}

// Document returns the document at i, or nil.
func (w *Workspace) Document(i int) *document.Document {
	if i < 0 || i >= len(w.docs) {
		return nil
	}
	return w.docs[i]
}

// Documents returns the open documents in tab order.
func (w *Workspace) Documents() []*document.Document {
	return append([]*document.Document(nil), w.docs...)
}

// Len returns the number of open documents.
func (w *Workspace) Len() int {
	return len(w.docs)
}

// IndexOf returns the index of doc, or -1.
func (w *Workspace) IndexOf(doc *document.Document) int {
	for i, d := range w.docs {
		if d == doc {
			return i
		}
	}
	return -1
}

// IndexOfPath returns the index of the document backed by path, or -1.
func (w *Workspace) IndexOfPath(path string) int {
	if path == "" {
		return -1
	}
	path = document.AbsPath(path)
	for i, d := range w.docs {
		if d.Path() == path {
			return i
		}
	}
	return -1
}

// DirtyDocuments returns the documents with unsaved changes.
func (w *Workspace) DirtyDocuments() []*document.Document {
	var dirty []*document.Document
	for _, d := range w.docs {
		if d.IsDirty() {
			dirty = append(dirty, d)
		}
	}
	return dirty
}
