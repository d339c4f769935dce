package history

// DefaultMaxEntries is used when NewStack is given a non-positive limit.
const DefaultMaxEntries = 1000

// noCleanMark marks a clean state that can no longer be reached.
const noCleanMark = -1

// Stack is a linear undo/redo history for a single document.
//
// Commands at indices below the cursor are applied; commands at or above
// it have been undone and can be redone until the next Push.
//
// Stack is not safe for concurrent use. It is owned by one document and
// mutated only from the UI loop.
type Stack struct {
	entries    []Command
	cursor     int
	cleanMark  int
	maxEntries int
}

// NewStack creates an empty, clean stack.
func NewStack(maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Stack{maxEntries: maxEntries}
}

// Push discards the redo tail, appends cmd and applies it by calling
// cmd.Redo() exactly once.
func (s *Stack) Push(cmd Command) {
	if cmd == nil {
		return
	}

	if s.cursor < len(s.entries) {
		// The saved state lived in the discarded tail.
		if s.cleanMark > s.cursor {
			s.cleanMark = noCleanMark
		}
		clear(s.entries[s.cursor:])
		s.entries = s.entries[:s.cursor]
	}

	s.entries = append(s.entries, cmd)
	cmd.Redo()
	s.cursor = len(s.entries)

	s.trim()
}

// trim drops the oldest applied entries beyond maxEntries.
func (s *Stack) trim() {
	excess := min(len(s.entries)-s.maxEntries, s.cursor)
	if excess <= 0 {
		return
	}

	clear(s.entries[:excess])
	s.entries = s.entries[excess:]
	s.cursor -= excess
	if s.cleanMark != noCleanMark {
		s.cleanMark -= excess
		if s.cleanMark < 0 {
			s.cleanMark = noCleanMark
		}
	}
}

// Undo reverses the command below the cursor.
// Returns false if there was nothing to undo.
func (s *Stack) Undo() bool {
	if s.cursor == 0 {
		return false
	}
	s.entries[s.cursor-1].Undo()
	s.cursor--
	return true
}

// Redo reapplies the command at the cursor.
// Returns false if there was nothing to redo.
func (s *Stack) Redo() bool {
	if s.cursor == len(s.entries) {
		return false
	}
	s.entries[s.cursor].Redo()
	s.cursor++
	return true
}

// MarkClean records the current cursor as the saved state.
func (s *Stack) MarkClean() {
	s.cleanMark = s.cursor
}

// IsClean returns true if the cursor is at the saved state.
func (s *Stack) IsClean() bool {
	return s.cursor == s.cleanMark
}

// CanUndo returns true if Undo would do something.
func (s *Stack) CanUndo() bool {
	return s.cursor > 0
}

// CanRedo returns true if Redo would do something.
func (s *Stack) CanRedo() bool {
	return s.cursor < len(s.entries)
}

// Len returns the number of commands in the history.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Cursor returns the number of applied commands.
func (s *Stack) Cursor() int {
	return s.cursor
}

// UndoDescription returns the description of the command Undo would
// reverse, or "" if there is none.
func (s *Stack) UndoDescription() string {
	if s.cursor == 0 {
		return ""
	}
	return s.entries[s.cursor-1].Description()
}

// RedoDescription returns the description of the command Redo would
// reapply, or "" if there is none.
func (s *Stack) RedoDescription() string {
	if s.cursor == len(s.entries) {
		return ""
	}
	return s.entries[s.cursor].Description()
}

// MaxEntries returns the entry limit.
func (s *Stack) MaxEntries() int {
	return s.maxEntries
}
