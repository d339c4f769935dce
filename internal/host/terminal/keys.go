package terminal

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/docshell/internal/action"
)

// KeyName converts a key event to the canonical shortcut form used by
// the action registry, such as "Ctrl+S", "F1" or "1". It returns "" for
// keys that cannot be bound.
func KeyName(ev *tcell.EventKey) string {
	mod := ev.Modifiers()
	key := ev.Key()

	var base string
	switch {
	case key == tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsSpace(r) {
			base = "Space"
		} else {
			base = string(r)
		}
		// Shift is already part of the rune.
		mod &^= tcell.ModShift
	case key == tcell.KeyEscape:
		base = "Esc"
	case key == tcell.KeyEnter:
		base = "Enter"
	case key == tcell.KeyTab:
		base = "Tab"
	case key == tcell.KeyBacktab:
		base = "Tab"
		mod |= tcell.ModShift
	case key == tcell.KeyBackspace || key == tcell.KeyBackspace2:
		base = "Backspace"
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		base = string(rune('A' + (key - tcell.KeyCtrlA)))
		mod |= tcell.ModCtrl
	default:
		name, ok := tcell.KeyNames[key]
		if !ok {
			return ""
		}
		base = name
	}

	parts := make([]string, 0, 5)
	if mod&tcell.ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if mod&tcell.ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if mod&tcell.ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if mod&tcell.ModMeta != 0 {
		parts = append(parts, "Meta")
	}
	parts = append(parts, base)

	return action.NormalizeShortcut(strings.Join(parts, "+"))
}
