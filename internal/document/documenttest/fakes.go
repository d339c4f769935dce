// Package documenttest provides in-memory collaborators for tests.
package documenttest

import (
	"errors"
	"io/fs"

	"github.com/dshills/docshell/internal/document"
)

// ErrWriteFailed is returned by Persistence when FailWrites is set.
var ErrWriteFailed = errors.New("write failed")

// Persistence is an in-memory file store.
type Persistence struct {
	Files      map[string][]byte
	FailWrites bool
	Writes     int
}

// NewPersistence creates an empty store.
func NewPersistence() *Persistence {
	return &Persistence{Files: make(map[string][]byte)}
}

// ReadFile returns the stored bytes or fs.ErrNotExist.
func (p *Persistence) ReadFile(path string) ([]byte, error) {
	data, ok := p.Files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

// WriteFile stores data unless FailWrites is set.
func (p *Persistence) WriteFile(path string, data []byte) error {
	p.Writes++
	if p.FailWrites {
		return ErrWriteFailed
	}
	p.Files[path] = append([]byte(nil), data...)
	return nil
}

// Dialogs answers path prompts from canned values.
// An empty path means the user cancelled.
type Dialogs struct {
	OpenPath  string
	SavePath  string
	OpenAsked int
	SaveAsked int

	// LastSuggested and LastFilter record the last save prompt.
	LastSuggested string
	LastFilter    string
}

// AskOpenPath returns OpenPath.
func (d *Dialogs) AskOpenPath() (string, bool) {
	d.OpenAsked++
	return d.OpenPath, d.OpenPath != ""
}

// AskSavePath returns SavePath.
func (d *Dialogs) AskSavePath(suggestedName, filter string) (string, bool) {
	d.SaveAsked++
	d.LastSuggested = suggestedName
	d.LastFilter = filter
	return d.SavePath, d.SavePath != ""
}

// Confirmer answers every prompt with Answer and records the titles asked.
type Confirmer struct {
	Answer document.Choice
	Asked  []string
}

// ConfirmUnsavedChanges records the prompt and returns Answer.
func (c *Confirmer) ConfirmUnsavedChanges(title string) document.Choice {
	c.Asked = append(c.Asked, title)
	return c.Answer
}

// View records every render.
type View struct {
	Renders []string
}

// Render records contents.
func (v *View) Render(contents string) {
	v.Renders = append(v.Renders, contents)
}

// Last returns the most recent render, or "".
func (v *View) Last() string {
	if len(v.Renders) == 0 {
		return ""
	}
	return v.Renders[len(v.Renders)-1]
}

// Env bundles a full set of fakes.
type Env struct {
	Persistence *Persistence
	Dialogs     *Dialogs
	Confirmer   *Confirmer
}

// NewEnv creates fakes with a Cancel confirmer.
func NewEnv() *Env {
	return &Env{
		Persistence: NewPersistence(),
		Dialogs:     &Dialogs{},
		Confirmer:   &Confirmer{Answer: document.ChoiceCancel},
	}
}

// Services returns document services backed by the fakes.
func (e *Env) Services() document.Services {
	return document.Services{
		Persistence: e.Persistence,
		Dialogs:     e.Dialogs,
		Confirmer:   e.Confirmer,
		SaveFilter:  "Text files (*.txt)",
	}
}
