package document

import "os"

// View displays a document's contents. One View is bound per document;
// it is the only link between a Document and the UI toolkit.
type View interface {
	Render(contents string)
}

// Persistence reads and writes document files.
type Persistence interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// Dialogs asks the user for file paths.
// The boolean result is false when the user cancelled.
type Dialogs interface {
	AskOpenPath() (string, bool)
	AskSavePath(suggestedName, filter string) (string, bool)
}

// Choice is the answer to an unsaved-changes prompt.
type Choice int

const (
	// ChoiceCancel keeps the document open.
	ChoiceCancel Choice = iota
	// ChoiceSave saves, then closes if the save succeeded.
	ChoiceSave
	// ChoiceDiscard closes without saving.
	ChoiceDiscard
)

// String returns the choice name.
func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "save"
	case ChoiceDiscard:
		return "discard"
	case ChoiceCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Confirmer asks what to do with unsaved changes.
type Confirmer interface {
	ConfirmUnsavedChanges(title string) Choice
}

// OSPersistence implements Persistence using the real file system.
type OSPersistence struct{}

// ReadFile reads the entire file at path.
func (OSPersistence) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating it if needed.
func (OSPersistence) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
