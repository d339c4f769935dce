package document_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/docshell/internal/document"
	"github.com/dshills/docshell/internal/document/documenttest"
	"github.com/dshills/docshell/internal/engine/history"
)

func appendCmd(doc *document.Document, s string) history.Command {
	return history.NewFuncCommand("Insert '"+s+"'",
		func() { doc.SetContents(doc.Contents() + s) },
		func() { doc.SetContents(strings.TrimSuffix(doc.Contents(), s)) },
	)
}

func TestNew(t *testing.T) {
	doc := document.New("Notes", "hello", document.Services{})

	if doc.Title() != "Notes" {
		t.Errorf("expected title 'Notes', got '%s'", doc.Title())
	}
	if doc.Contents() != "hello" {
		t.Errorf("expected contents 'hello', got '%s'", doc.Contents())
	}
	if doc.HasPath() {
		t.Error("expected no path")
	}
	if doc.IsDirty() {
		t.Error("expected new document to be clean")
	}
	if doc.ID().String() == "" {
		t.Error("expected an ID")
	}
}

func TestNew_EmptyTitle(t *testing.T) {
	doc := document.New("", "", document.Services{})
	if doc.Title() != document.DefaultTitle {
		t.Errorf("expected title '%s', got '%s'", document.DefaultTitle, doc.Title())
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a := document.New("a", "", document.Services{})
	b := document.New("b", "", document.Services{})
	if a.ID() == b.ID() {
		t.Error("expected distinct IDs")
	}
}

func TestNew_MaxHistory(t *testing.T) {
	doc := document.New("a", "", document.Services{MaxHistory: 7})
	if doc.Stack().MaxEntries() != 7 {
		t.Errorf("expected max entries 7, got %d", doc.Stack().MaxEntries())
	}
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/notes.txt", "notes.txt"},
		{"notes.txt", "notes.txt"},
		{"/", document.DefaultTitle},
		{"", document.DefaultTitle},
	}
	for _, tt := range tests {
		if got := document.TitleFromPath(tt.path); got != tt.want {
			t.Errorf("TitleFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestOpen(t *testing.T) {
	env := documenttest.NewEnv()
	env.Persistence.Files["/docs/a.txt"] = []byte("alpha")

	doc, err := document.Open("/docs/a.txt", env.Services())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if doc.Title() != "a.txt" || doc.Path() != "/docs/a.txt" {
		t.Errorf("unexpected title/path: %q %q", doc.Title(), doc.Path())
	}
	if doc.Contents() != "alpha" {
		t.Errorf("expected contents 'alpha', got %q", doc.Contents())
	}
	if doc.IsDirty() {
		t.Error("expected opened document to be clean")
	}
}

func TestOpen_Missing(t *testing.T) {
	env := documenttest.NewEnv()

	doc, err := document.Open("/docs/missing.txt", env.Services())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if doc != nil {
		t.Error("expected no document")
	}
	var opErr *document.OperationError
	if !errors.As(err, &opErr) || opErr.Op != "open" {
		t.Errorf("expected open OperationError, got %v", err)
	}
}

func TestDocument_Refresh(t *testing.T) {
	doc := document.New("a", "one", document.Services{})
	doc.Refresh() // no view bound

	view := &documenttest.View{}
	doc.BindView(view)
	doc.Refresh()
	doc.SetContents("two")
	doc.Refresh()

	if len(view.Renders) != 2 || view.Last() != "two" {
		t.Errorf("unexpected renders: %v", view.Renders)
	}
	if doc.View() != view {
		t.Error("View() should return the bound view")
	}
}

func TestDocument_SaveWithPath(t *testing.T) {
	env := documenttest.NewEnv()
	env.Persistence.Files["/a.txt"] = []byte("")
	doc, _ := document.Open("/a.txt", env.Services())

	doc.Push(appendCmd(doc, "x"))
	if !doc.IsDirty() {
		t.Fatal("expected dirty after push")
	}

	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if doc.IsDirty() {
		t.Error("expected clean after save")
	}
	if string(env.Persistence.Files["/a.txt"]) != "x" {
		t.Errorf("unexpected file contents: %q", env.Persistence.Files["/a.txt"])
	}
	if env.Dialogs.SaveAsked != 0 {
		t.Error("save with a path should not prompt")
	}
}

func TestDocument_SaveFailureKeepsStack(t *testing.T) {
	env := documenttest.NewEnv()
	env.Persistence.Files["/a.txt"] = []byte("")
	doc, _ := document.Open("/a.txt", env.Services())
	doc.Push(appendCmd(doc, "x"))

	env.Persistence.FailWrites = true
	err := doc.Save()
	if !errors.Is(err, documenttest.ErrWriteFailed) {
		t.Fatalf("expected write failure, got %v", err)
	}
	if !doc.IsDirty() {
		t.Error("failed save must not mark clean")
	}
	if doc.Stack().Cursor() != 1 || doc.Stack().Len() != 1 {
		t.Error("failed save must not touch the history")
	}
}

func TestDocument_SaveWithoutPathAsks(t *testing.T) {
	env := documenttest.NewEnv()
	env.Dialogs.SavePath = "/out/notes.txt"
	doc := document.New("Untitled 1", "", env.Services())
	doc.Push(appendCmd(doc, "n"))

	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if env.Dialogs.SaveAsked != 1 {
		t.Errorf("expected one save prompt, got %d", env.Dialogs.SaveAsked)
	}
	if env.Dialogs.LastSuggested != "Untitled 1" {
		t.Errorf("expected suggested name 'Untitled 1', got %q", env.Dialogs.LastSuggested)
	}
	if env.Dialogs.LastFilter != "Text files (*.txt)" {
		t.Errorf("unexpected filter %q", env.Dialogs.LastFilter)
	}
	if doc.Path() != "/out/notes.txt" || doc.Title() != "notes.txt" {
		t.Errorf("unexpected path/title: %q %q", doc.Path(), doc.Title())
	}
	if doc.IsDirty() {
		t.Error("expected clean after save")
	}
}

func TestDocument_SaveAsCancelled(t *testing.T) {
	env := documenttest.NewEnv()
	doc := document.New("Untitled 1", "", env.Services())
	doc.Push(appendCmd(doc, "n"))

	err := doc.SaveAs()
	if !document.IsCancelled(err) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if doc.HasPath() || doc.Title() != "Untitled 1" {
		t.Error("cancelled save-as must not change path or title")
	}
	if !doc.IsDirty() {
		t.Error("cancelled save-as must leave the document dirty")
	}
	if env.Persistence.Writes != 0 {
		t.Error("cancelled save-as must not write")
	}
}

func TestDocument_SaveAsWithoutDialogs(t *testing.T) {
	doc := document.New("a", "", document.Services{Persistence: documenttest.NewPersistence()})
	if err := doc.Save(); !errors.Is(err, document.ErrNoDialogs) {
		t.Errorf("expected ErrNoDialogs, got %v", err)
	}
}

func TestDocument_SaveReadOnly(t *testing.T) {
	env := documenttest.NewEnv()
	env.Persistence.Files["/a.txt"] = []byte("")
	doc, _ := document.Open("/a.txt", env.Services())
	doc.ReadOnly = true

	if err := doc.Save(); !errors.Is(err, document.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if env.Persistence.Writes != 0 {
		t.Error("read-only save must not write")
	}

	if err := doc.SaveAs(); !errors.Is(err, document.ErrReadOnly) {
		t.Errorf("SaveAs: expected ErrReadOnly, got %v", err)
	}
	if env.Dialogs.SaveAsked != 0 || doc.Path() != "/a.txt" {
		t.Error("read-only SaveAs must not ask for a path")
	}
}

func TestDocument_SaveCleanScenario(t *testing.T) {
	env := documenttest.NewEnv()
	env.Dialogs.SavePath = "/s.txt"
	doc := document.New("Untitled 1", "", env.Services())

	if doc.IsDirty() {
		t.Fatal("fresh document should be clean")
	}
	doc.Push(appendCmd(doc, "a"))
	if !doc.IsDirty() {
		t.Fatal("one push should make it dirty")
	}
	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if doc.IsDirty() {
		t.Fatal("save should make it clean")
	}
	doc.Push(appendCmd(doc, "b"))
	if !doc.IsDirty() {
		t.Fatal("push after save should make it dirty")
	}
	doc.Undo()
	if doc.IsDirty() {
		t.Error("undo back to the saved position should be clean")
	}
	if doc.Stack().Len() != 2 {
		t.Errorf("history should still hold 2 commands, got %d", doc.Stack().Len())
	}
}

func TestDocument_CloseClean(t *testing.T) {
	env := documenttest.NewEnv()
	doc := document.New("a", "", env.Services())

	closed, err := doc.Close()
	if err != nil || !closed {
		t.Errorf("Close() = %v, %v; want true, nil", closed, err)
	}
	if len(env.Confirmer.Asked) != 0 {
		t.Error("clean close must not prompt")
	}
}

func TestDocument_CloseDirty(t *testing.T) {
	tests := []struct {
		name       string
		answer     document.Choice
		savePath   string
		failWrites bool
		wantClosed bool
		wantErr    bool
		wantDirty  bool
	}{
		{"discard", document.ChoiceDiscard, "", false, true, false, true},
		{"cancel", document.ChoiceCancel, "", false, false, false, true},
		{"save", document.ChoiceSave, "/saved.txt", false, true, false, false},
		{"save cancelled", document.ChoiceSave, "", false, false, true, true},
		{"save fails", document.ChoiceSave, "/saved.txt", true, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := documenttest.NewEnv()
			env.Confirmer.Answer = tt.answer
			env.Dialogs.SavePath = tt.savePath
			env.Persistence.FailWrites = tt.failWrites

			doc := document.New("Untitled 1", "", env.Services())
			doc.Push(appendCmd(doc, "z"))

			closed, err := doc.Close()
			if closed != tt.wantClosed {
				t.Errorf("closed = %v, want %v", closed, tt.wantClosed)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(env.Confirmer.Asked) != 1 || env.Confirmer.Asked[0] != "Untitled 1" {
				t.Errorf("expected one prompt for 'Untitled 1', got %v", env.Confirmer.Asked)
			}
			if doc.IsDirty() != tt.wantDirty {
				t.Errorf("dirty = %v, want %v", doc.IsDirty(), tt.wantDirty)
			}
			if doc.Contents() != "z" {
				t.Errorf("close must not modify contents, got %q", doc.Contents())
			}
		})
	}
}

func TestDocument_CloseDirtyWithoutConfirmer(t *testing.T) {
	doc := document.New("a", "", document.Services{})
	doc.Push(appendCmd(doc, "z"))

	closed, err := doc.Close()
	if closed || err != nil {
		t.Errorf("Close() = %v, %v; want false, nil", closed, err)
	}
}

func TestSetContentsCommand(t *testing.T) {
	doc := document.New("a", "before", document.Services{})
	doc.Push(document.NewSetContentsCommand(doc, "Reverse", "erofeb"))

	if doc.Contents() != "erofeb" {
		t.Fatalf("redo: got %q", doc.Contents())
	}
	doc.Undo()
	if doc.Contents() != "before" {
		t.Errorf("undo: got %q", doc.Contents())
	}
	doc.Redo()
	if doc.Contents() != "erofeb" {
		t.Errorf("redo again: got %q", doc.Contents())
	}
	if doc.Stack().UndoDescription() != "Reverse" {
		t.Errorf("unexpected description %q", doc.Stack().UndoDescription())
	}
}

func TestChoiceString(t *testing.T) {
	tests := map[document.Choice]string{
		document.ChoiceSave:    "save",
		document.ChoiceDiscard: "discard",
		document.ChoiceCancel:  "cancel",
		document.Choice(42):    "unknown",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("Choice(%d).String() = %q, want %q", c, got, want)
		}
	}
}

func TestOperationError(t *testing.T) {
	base := errors.New("disk full")
	err := document.NewOperationError("save", "/a.txt", base)

	if err.Error() != "save /a.txt: disk full" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("expected errors.Is to match the wrapped error")
	}

	var nilErr *document.OperationError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil OperationError should be safe")
	}
}
