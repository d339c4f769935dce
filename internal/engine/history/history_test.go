package history

import (
	"strings"
	"testing"
)

// textDoc is a minimal document used as a command target.
type textDoc struct {
	text string
}

// insertCmd appends a string on redo and removes it on undo.
func insertCmd(d *textDoc, s string) Command {
	return NewFuncCommand("Insert '"+s+"'",
		func() { d.text += s },
		func() { d.text = strings.TrimSuffix(d.text, s) },
	)
}

// countingCmd records how often each side ran.
type countingCmd struct {
	redos, undos int
}

func (c *countingCmd) Redo()               { c.redos++ }
func (c *countingCmd) Undo()               { c.undos++ }
func (c *countingCmd) Description() string { return "count" }

func TestNewStack(t *testing.T) {
	s := NewStack(0)
	if s.MaxEntries() != DefaultMaxEntries {
		t.Errorf("MaxEntries() = %d, want %d", s.MaxEntries(), DefaultMaxEntries)
	}
	if !s.IsClean() {
		t.Error("new stack should be clean")
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("new stack should have nothing to undo or redo")
	}
}

func TestStack_PushRunsRedoOnce(t *testing.T) {
	s := NewStack(10)
	cmd := &countingCmd{}
	s.Push(cmd)

	if cmd.redos != 1 || cmd.undos != 0 {
		t.Errorf("redos=%d undos=%d, want 1 and 0", cmd.redos, cmd.undos)
	}
	if s.Cursor() != 1 || s.Len() != 1 {
		t.Errorf("cursor=%d len=%d, want 1 and 1", s.Cursor(), s.Len())
	}
}

func TestStack_PushNil(t *testing.T) {
	s := NewStack(10)
	s.Push(nil)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStack_InsertScenario(t *testing.T) {
	d := &textDoc{}
	s := NewStack(10)

	s.Push(insertCmd(d, "a"))
	if d.text != "a" {
		t.Fatalf("after push a: %q", d.text)
	}
	s.Push(insertCmd(d, "b"))
	if d.text != "ab" {
		t.Fatalf("after push b: %q", d.text)
	}

	steps := []struct {
		op   func() bool
		want string
	}{
		{s.Undo, "a"},
		{s.Undo, ""},
		{s.Redo, "a"},
	}
	for i, step := range steps {
		if !step.op() {
			t.Fatalf("step %d: expected operation to apply", i)
		}
		if d.text != step.want {
			t.Errorf("step %d: text = %q, want %q", i, d.text, step.want)
		}
	}
}

func TestStack_RoundTrip(t *testing.T) {
	d := &textDoc{}
	s := NewStack(100)

	for _, piece := range []string{"x", "yy", "zzz", "", "w"} {
		before := d.text
		s.Push(insertCmd(d, piece))
		after := d.text

		s.Undo()
		if d.text != before {
			t.Errorf("undo after push %q: got %q, want %q", piece, d.text, before)
		}
		s.Redo()
		if d.text != after {
			t.Errorf("redo after undo %q: got %q, want %q", piece, d.text, after)
		}
	}
}

func TestStack_BoundariesAreNoOps(t *testing.T) {
	s := NewStack(10)
	if s.Undo() {
		t.Error("Undo on empty stack should report false")
	}
	if s.Redo() {
		t.Error("Redo on empty stack should report false")
	}

	cmd := &countingCmd{}
	s.Push(cmd)
	if s.Redo() {
		t.Error("Redo at end of history should report false")
	}
	s.Undo()
	if s.Undo() {
		t.Error("Undo at start of history should report false")
	}
	if cmd.redos != 1 || cmd.undos != 1 {
		t.Errorf("redos=%d undos=%d, want 1 and 1", cmd.redos, cmd.undos)
	}
}

func TestStack_RedoTruncation(t *testing.T) {
	d := &textDoc{}
	s := NewStack(10)

	s.Push(insertCmd(d, "a"))
	s.Push(insertCmd(d, "b"))
	s.Push(insertCmd(d, "c"))
	s.Undo()
	s.Undo()
	if d.text != "a" {
		t.Fatalf("text = %q, want %q", d.text, "a")
	}

	s.Push(insertCmd(d, "z"))
	if s.CanRedo() {
		t.Error("push after undo should discard the redo tail")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Redo() {
		t.Error("Redo should not reproduce a discarded command")
	}
	if d.text != "az" {
		t.Errorf("text = %q, want %q", d.text, "az")
	}
}

func TestStack_CleanInvariant(t *testing.T) {
	d := &textDoc{}
	s := NewStack(10)

	check := func(step string) {
		t.Helper()
		if s.IsClean() != (s.Cursor() == s.cleanMark) {
			t.Errorf("%s: IsClean() disagrees with cursor/clean mark", step)
		}
	}

	check("new")
	s.Push(insertCmd(d, "a"))
	check("push")
	if s.IsClean() {
		t.Error("push should make the stack dirty")
	}

	s.MarkClean()
	check("mark clean")
	if !s.IsClean() {
		t.Error("MarkClean should make the stack clean")
	}

	s.Push(insertCmd(d, "b"))
	check("push after save")
	if s.IsClean() {
		t.Error("push after save should make the stack dirty")
	}

	s.Undo()
	check("undo to saved position")
	if !s.IsClean() {
		t.Error("undo back to the saved cursor should be clean")
	}
	if s.Len() == 0 {
		t.Error("history should be non-empty")
	}

	s.Undo()
	check("undo past saved position")
	if s.IsClean() {
		t.Error("undo past the saved cursor should be dirty")
	}
}

func TestStack_CleanMarkDiscardedByPush(t *testing.T) {
	d := &textDoc{}
	s := NewStack(10)

	s.Push(insertCmd(d, "a"))
	s.Push(insertCmd(d, "b"))
	s.MarkClean()
	s.Undo()
	s.Push(insertCmd(d, "c"))

	// Same length and cursor as the saved state, different contents.
	if s.IsClean() {
		t.Error("stack must not be clean after the saved state was discarded")
	}

	s.MarkClean()
	if !s.IsClean() {
		t.Error("MarkClean should restore a reachable clean mark")
	}
}

func TestStack_MaxEntries(t *testing.T) {
	d := &textDoc{}
	s := NewStack(3)

	for _, piece := range []string{"a", "b", "c", "d"} {
		s.Push(insertCmd(d, piece))
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for s.Undo() {
	}
	if d.text != "a" {
		t.Errorf("oldest command should have been dropped, text = %q", d.text)
	}
}

func TestStack_MaxEntriesMovesCleanMark(t *testing.T) {
	d := &textDoc{}
	s := NewStack(2)

	s.Push(insertCmd(d, "a"))
	s.Push(insertCmd(d, "b"))
	s.MarkClean()
	s.Push(insertCmd(d, "c"))
	s.Undo()
	if !s.IsClean() {
		t.Error("clean mark should follow trimmed entries")
	}

	// History is now [b c] with the mark after b. Pushing d and e trims b
	// and c; the mark moves to the start and still names "ab".
	s.Push(insertCmd(d, "d"))
	s.Push(insertCmd(d, "e"))
	for s.Undo() {
	}
	if d.text != "ab" || !s.IsClean() {
		t.Errorf("text = %q clean = %v, want saved state %q", d.text, s.IsClean(), "ab")
	}

	for s.Redo() {
	}
	s.Push(insertCmd(d, "f"))
	for s.Undo() {
	}
	if d.text != "abd" {
		t.Fatalf("text = %q, want %q", d.text, "abd")
	}
	if s.IsClean() {
		t.Error("clean mark trimmed away should be unreachable")
	}
}

func TestStack_Descriptions(t *testing.T) {
	d := &textDoc{}
	s := NewStack(10)

	if s.UndoDescription() != "" || s.RedoDescription() != "" {
		t.Error("empty stack should have no descriptions")
	}

	s.Push(insertCmd(d, "a"))
	s.Push(insertCmd(d, "b"))
	s.Undo()

	if got := s.UndoDescription(); got != "Insert 'a'" {
		t.Errorf("UndoDescription() = %q", got)
	}
	if got := s.RedoDescription(); got != "Insert 'b'" {
		t.Errorf("RedoDescription() = %q", got)
	}
}

func TestFuncCommand_NilFuncs(t *testing.T) {
	cmd := NewFuncCommand("noop", nil, nil)
	cmd.Redo()
	cmd.Undo()
	if cmd.Description() != "noop" {
		t.Errorf("Description() = %q", cmd.Description())
	}
}
