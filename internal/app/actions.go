package app

import (
	"math/rand/v2"

	"github.com/dshills/docshell/internal/action"
	"github.com/dshills/docshell/internal/document"
	"github.com/dshills/docshell/internal/engine/history"
)

// Labels of the built-in actions.
const (
	LabelNew          = "New"
	LabelOpen         = "Open"
	LabelSave         = "Save"
	LabelSaveAs       = "Save As"
	LabelClose        = "Close"
	LabelUndo         = "Undo"
	LabelRedo         = "Redo"
	LabelNextTab      = "Next Tab"
	LabelPreviousTab  = "Previous Tab"
	LabelQuit         = "Quit"
	LabelHelp         = "Help"
	LabelInsertRandom = "Insert Random"
	LabelReverse      = "Reverse"
	LabelRemove       = "Remove"
)

// DefaultShortcuts are the keys bound to built-in actions before config
// overrides are applied.
var DefaultShortcuts = map[string]string{
	LabelNew:          "Ctrl+N",
	LabelOpen:         "Ctrl+O",
	LabelSave:         "Ctrl+S",
	LabelClose:        "Ctrl+W",
	LabelUndo:         "Ctrl+Z",
	LabelRedo:         "Ctrl+Y",
	LabelNextTab:      "Ctrl+Right",
	LabelPreviousTab:  "Ctrl+Left",
	LabelQuit:         "Ctrl+Q",
	LabelHelp:         "F1",
	LabelInsertRandom: "1",
	LabelReverse:      "2",
	LabelRemove:       "3",
}

// Help document contents.
const (
	HelpTitle = "Help"
	HelpText  = "Press 1, 2 and 3 to edit, Ctrl+Z to undo and Ctrl+Y to redo."
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomLetter() byte {
	return letters[rand.IntN(len(letters))]
}

func undoDetail(doc *document.Document) string {
	return doc.Stack().UndoDescription()
}

func redoDetail(doc *document.Document) string {
	return doc.Stack().RedoDescription()
}

func (a *Application) builtinActions() []*action.Action {
	key := func(label string) action.Option {
		return action.WithShortcut(DefaultShortcuts[label])
	}
	multipleDocs := func(*document.Document) bool {
		return a.ws.Len() >= 2
	}

	return []*action.Action{
		action.NewDirect(LabelNew, func(*document.Document) error {
			a.ws.NewDocument()
			return nil
		}, key(LabelNew)),

		action.NewDirect(LabelOpen, func(*document.Document) error {
			_, err := a.ws.OpenDocument()
			return err
		}, key(LabelOpen)),

		action.NewDirect(LabelSave, func(doc *document.Document) error {
			return doc.Save()
		}, key(LabelSave), action.WithPredicate(action.Writable)),

		action.NewDirect(LabelSaveAs, func(doc *document.Document) error {
			return doc.SaveAs()
		}, action.WithPredicate(action.Writable)),

		action.NewDirect(LabelClose, func(*document.Document) error {
			_, err := a.ws.CloseCurrent()
			return err
		}, key(LabelClose), action.WithPredicate(action.HasDocument)),

		action.NewDirect(LabelUndo, func(doc *document.Document) error {
			doc.Undo()
			return nil
		}, key(LabelUndo), action.WithPredicate(action.CanUndo), action.WithDetail(undoDetail)),

		action.NewDirect(LabelRedo, func(doc *document.Document) error {
			doc.Redo()
			return nil
		}, key(LabelRedo), action.WithPredicate(action.CanRedo), action.WithDetail(redoDetail)),

		action.NewDirect(LabelNextTab, func(*document.Document) error {
			a.ws.FocusNext()
			return nil
		}, key(LabelNextTab), action.WithPredicate(multipleDocs)),

		action.NewDirect(LabelPreviousTab, func(*document.Document) error {
			a.ws.FocusPrevious()
			return nil
		}, key(LabelPreviousTab), action.WithPredicate(multipleDocs)),

		action.NewDirect(LabelQuit, func(*document.Document) error {
			return a.Quit()
		}, key(LabelQuit)),

		action.NewDirect(LabelHelp, func(*document.Document) error {
			help := a.ws.Create(HelpTitle, HelpText)
			help.ReadOnly = true
			return nil
		}, key(LabelHelp)),

		action.NewUndoable(LabelInsertRandom, func(doc *document.Document) (history.Command, error) {
			return &appendCommand{doc: doc, ch: a.letter()}, nil
		}, key(LabelInsertRandom), action.WithPredicate(action.Writable)),

		action.NewUndoable(LabelReverse, func(doc *document.Document) (history.Command, error) {
			return reverseCommand(doc), nil
		}, key(LabelReverse), action.WithPredicate(action.And(action.Writable, action.MinLength(2)))),

		action.NewUndoable(LabelRemove, func(doc *document.Document) (history.Command, error) {
			return &removeCommand{doc: doc}, nil
		}, key(LabelRemove), action.WithPredicate(action.And(action.Writable, action.MinLength(1)))),
	}
}
