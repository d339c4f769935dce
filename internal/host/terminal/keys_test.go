package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want string
	}{
		{"digit", tcell.KeyRune, '1', tcell.ModNone, "1"},
		{"letter", tcell.KeyRune, 'a', tcell.ModNone, "a"},
		{"shifted letter", tcell.KeyRune, 'A', tcell.ModShift, "A"},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, "Space"},
		{"ctrl letter", tcell.KeyCtrlS, 0, tcell.ModCtrl, "Ctrl+S"},
		{"ctrl rune", tcell.KeyRune, 'n', tcell.ModCtrl, "Ctrl+N"},
		{"alt rune", tcell.KeyRune, 'x', tcell.ModAlt, "Alt+X"},
		{"function key", tcell.KeyF1, 0, tcell.ModNone, "F1"},
		{"ctrl arrow", tcell.KeyRight, 0, tcell.ModCtrl, "Ctrl+Right"},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, "Esc"},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, "Enter"},
		{"backspace", tcell.KeyBackspace2, 0, tcell.ModNone, "Backspace"},
		{"backtab", tcell.KeyBacktab, 0, tcell.ModNone, "Shift+Tab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyName(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			if got != tt.want {
				t.Errorf("KeyName() = %q, want %q", got, tt.want)
			}
		})
	}
}
