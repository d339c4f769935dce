// Package document holds open documents and their save/close protocol.
package document

import (
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/docshell/internal/engine/history"
)

// DefaultTitle is used when a document would otherwise have no title.
const DefaultTitle = "Untitled"

// Services bundles the collaborators shared by every document in a workspace.
type Services struct {
	// Persistence reads and writes files. Defaults to OSPersistence.
	Persistence Persistence
	// Dialogs asks for save paths. Required for saving untitled documents.
	Dialogs Dialogs
	// Confirmer resolves closes with unsaved changes. Without one, a dirty
	// close is treated as cancelled.
	Confirmer Confirmer
	// SaveFilter is passed to Dialogs.AskSavePath.
	SaveFilter string
	// MaxHistory limits each document's undo stack.
	MaxHistory int
	// Logger receives document events. Nil discards them.
	Logger *slog.Logger
}

func (s Services) withDefaults() Services {
	if s.Persistence == nil {
		s.Persistence = OSPersistence{}
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Document is an open document: opaque contents, an undo/redo stack,
// identity and an optional file path.
type Document struct {
	id       uuid.UUID
	title    string
	path     string
	contents string
	stack    *history.Stack
	view     View
	svc      Services
	logger   *slog.Logger

	// ReadOnly documents reject edits through predicates and Save.
	ReadOnly bool
}

// New creates an unsaved document with the given title and contents.
func New(title, contents string, svc Services) *Document {
	if title == "" {
		title = DefaultTitle
	}
	svc = svc.withDefaults()
	id := uuid.New()
	return &Document{
		id:       id,
		title:    title,
		contents: contents,
		stack:    history.NewStack(svc.MaxHistory),
		svc:      svc,
		logger:   svc.Logger.With("component", "document", "doc", id.String()),
	}
}

// Open reads path through the persistence collaborator and returns a
// document for it. No document is created if the read fails.
func Open(path string, svc Services) (*Document, error) {
	svc = svc.withDefaults()
	path = AbsPath(path)

	data, err := svc.Persistence.ReadFile(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	doc := New(TitleFromPath(path), string(data), svc)
	doc.path = path
	return doc, nil
}

// AbsPath returns path made absolute and cleaned. If the working
// directory cannot be resolved the path is only cleaned.
func AbsPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// TitleFromPath derives a display title from a file path.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return DefaultTitle
	}
	return base
}

// ID returns the document's unique identifier.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Title returns the display title. Never empty.
func (d *Document) Title() string {
	return d.title
}

// Path returns the file path, or "" for unsaved documents.
func (d *Document) Path() string {
	return d.path
}

// HasPath returns true if the document is backed by a file.
func (d *Document) HasPath() bool {
	return d.path != ""
}

// SetPath sets the file path, made absolute, and derives the title from it.
func (d *Document) SetPath(path string) {
	d.path = AbsPath(path)
	d.title = TitleFromPath(path)
}

// Contents returns the document contents.
func (d *Document) Contents() string {
	return d.contents
}

// SetContents replaces the contents. It is meant for Command
// implementations; edits that should be undoable go through Push.
func (d *Document) SetContents(contents string) {
	d.contents = contents
}

// Stack returns the document's undo/redo history.
func (d *Document) Stack() *history.Stack {
	return d.stack
}

// Push applies cmd and records it in the history.
func (d *Document) Push(cmd history.Command) {
	d.stack.Push(cmd)
}

// Undo reverses the last change. No-op at the start of history.
func (d *Document) Undo() bool {
	return d.stack.Undo()
}

// Redo reapplies the last undone change. No-op at the end of history.
func (d *Document) Redo() bool {
	return d.stack.Redo()
}

// CanUndo returns true if there is a change to undo.
func (d *Document) CanUndo() bool {
	return d.stack.CanUndo()
}

// CanRedo returns true if there is a change to redo.
func (d *Document) CanRedo() bool {
	return d.stack.CanRedo()
}

// IsDirty returns true if the document has unsaved changes.
func (d *Document) IsDirty() bool {
	return !d.stack.IsClean()
}

// BindView attaches the view adapter that Refresh renders into.
func (d *Document) BindView(v View) {
	d.view = v
}

// View returns the bound view adapter, or nil.
func (d *Document) View() View {
	return d.view
}

// Refresh pushes the current contents to the bound view.
func (d *Document) Refresh() {
	if d.view != nil {
		d.view.Render(d.contents)
	}
}

// Save writes the contents to the document's path, asking for one first
// if the document has none. On success the history is marked clean; on
// failure the history is left untouched.
func (d *Document) Save() error {
	if d.path == "" {
		return d.SaveAs()
	}
	if d.ReadOnly {
		return NewOperationError("save", d.path, ErrReadOnly)
	}

	if err := d.svc.Persistence.WriteFile(d.path, []byte(d.contents)); err != nil {
		d.logger.Warn("save failed", "path", d.path, "error", err)
		return NewOperationError("save", d.path, err)
	}

	d.stack.MarkClean()
	d.logger.Info("saved", "path", d.path)
	return nil
}

// SaveAs asks for a destination path, adopts it and saves.
// Returns ErrCancelled if the user dismissed the dialog.
func (d *Document) SaveAs() error {
	if d.ReadOnly {
		return NewOperationError("save", d.title, ErrReadOnly)
	}
	if d.svc.Dialogs == nil {
		return NewOperationError("save", d.title, ErrNoDialogs)
	}

	path, ok := d.svc.Dialogs.AskSavePath(d.title, d.svc.SaveFilter)
	if !ok || path == "" {
		return ErrCancelled
	}

	d.SetPath(path)
	return d.Save()
}

// Close decides whether the document may be closed. A clean document
// closes without prompting; a dirty one asks the confirmer.
//
// The error is non-nil only when the user chose Save and saving failed
// (or was cancelled); closed is false in that case.
func (d *Document) Close() (closed bool, err error) {
	if d.stack.IsClean() {
		return true, nil
	}
	if d.svc.Confirmer == nil {
		return false, nil
	}

	choice := d.svc.Confirmer.ConfirmUnsavedChanges(d.title)
	d.logger.Debug("unsaved changes prompt", "title", d.title, "choice", choice.String())

	switch choice {
	case ChoiceSave:
		if err := d.Save(); err != nil {
			return false, err
		}
		return true, nil
	case ChoiceDiscard:
		return true, nil
	default:
		return false, nil
	}
}
