// Package history provides per-document undo/redo.
//
// A Stack is a linear history of Commands with a movable cursor and a clean
// mark:
//
//	stack := NewStack(1000) // keep at most 1000 commands
//
//	stack.Push(cmd) // runs cmd.Redo() and discards any redo tail
//	stack.Undo()    // no-op at the start of history
//	stack.Redo()    // no-op at the end of history
//
//	stack.MarkClean() // after a successful save
//	stack.IsClean()   // cursor == clean mark
//
// # Boundaries
//
// Undo and Redo at the ends of the history are silent no-ops, so key
// bindings can call them unconditionally.
//
// # Clean mark
//
// The clean mark records the cursor position of the last save. Undoing back
// to it makes the stack clean again. If the commands that led to the saved
// state are discarded (a push after undo past the mark, or trimming to the
// entry limit) the mark becomes unreachable until the next MarkClean.
package history
