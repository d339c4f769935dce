package history

// Command is a reversible unit of change bound to one document.
//
// Redo applies the change and Undo reverses it. A Command is built by the
// code that owns the document it edits, so both methods already know their
// target. Commands are immutable once constructed; any state a Command needs
// to reverse itself is captured the first time Redo runs.
type Command interface {
	// Redo applies the change.
	Redo()

	// Undo reverses the change made by the most recent Redo.
	Undo()

	// Description returns a human-readable label, e.g. "Insert 'a'".
	Description() string
}

// FuncCommand is a Command backed by two closures.
type FuncCommand struct {
	name   string
	redoFn func()
	undoFn func()
}

// NewFuncCommand creates a command from a redo/undo pair.
// A nil function is treated as a no-op.
func NewFuncCommand(name string, redo, undo func()) *FuncCommand {
	return &FuncCommand{
		name:   name,
		redoFn: redo,
		undoFn: undo,
	}
}

// Redo runs the redo closure.
func (c *FuncCommand) Redo() {
	if c.redoFn != nil {
		c.redoFn()
	}
}

// Undo runs the undo closure.
func (c *FuncCommand) Undo() {
	if c.undoFn != nil {
		c.undoFn()
	}
}

// Description returns the command name.
func (c *FuncCommand) Description() string {
	return c.name
}
