package document

import "github.com/dshills/docshell/internal/engine/history"

// SetContentsCommand replaces a document's contents wholesale.
// The previous contents are captured on the first Redo.
type SetContentsCommand struct {
	doc      *Document
	name     string
	newText  string
	oldText  string
	captured bool
}

// NewSetContentsCommand creates a command that sets doc's contents to text.
func NewSetContentsCommand(doc *Document, name, text string) *SetContentsCommand {
	return &SetContentsCommand{
		doc:     doc,
		name:    name,
		newText: text,
	}
}

// Redo applies the new contents.
func (c *SetContentsCommand) Redo() {
	if !c.captured {
		c.oldText = c.doc.Contents()
		c.captured = true
	}
	c.doc.SetContents(c.newText)
}

// Undo restores the contents seen by the first Redo.
func (c *SetContentsCommand) Undo() {
	c.doc.SetContents(c.oldText)
}

// Description returns the command name.
func (c *SetContentsCommand) Description() string {
	return c.name
}

var _ history.Command = (*SetContentsCommand)(nil)
