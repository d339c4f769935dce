package app

import (
	"github.com/dshills/docshell/internal/document"
	"github.com/dshills/docshell/internal/engine/history"
)

// appendCommand appends one character to the document.
type appendCommand struct {
	doc *document.Document
	ch  byte
}

func (c *appendCommand) Redo() {
	c.doc.SetContents(c.doc.Contents() + string(c.ch))
}

func (c *appendCommand) Undo() {
	text := c.doc.Contents()
	if text != "" {
		c.doc.SetContents(text[:len(text)-1])
	}
}

func (c *appendCommand) Description() string {
	return "Insert '" + string(c.ch) + "'"
}

// reverseCommand reverses the document text by runes.
func reverseCommand(doc *document.Document) history.Command {
	old := doc.Contents()
	return history.NewFuncCommand("Reverse",
		func() { doc.SetContents(reverseRunes(old)) },
		func() { doc.SetContents(old) },
	)
}

func reverseRunes(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// removeCommand removes the last rune of the document text.
type removeCommand struct {
	doc     *document.Document
	removed string
}

func (c *removeCommand) Redo() {
	r := []rune(c.doc.Contents())
	if len(r) == 0 {
		c.removed = ""
		return
	}
	c.removed = string(r[len(r)-1])
	c.doc.SetContents(string(r[:len(r)-1]))
}

func (c *removeCommand) Undo() {
	c.doc.SetContents(c.doc.Contents() + c.removed)
}

func (c *removeCommand) Description() string {
	return "Remove"
}

var (
	_ history.Command = (*appendCommand)(nil)
	_ history.Command = (*removeCommand)(nil)
)
