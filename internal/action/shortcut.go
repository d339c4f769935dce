package action

import (
	"strings"
	"unicode/utf8"
)

// modifierOrder is the canonical order of modifiers in a shortcut.
var modifierOrder = []string{"Ctrl", "Alt", "Shift", "Meta"}

var modifierAliases = map[string]string{
	"ctrl":    "Ctrl",
	"control": "Ctrl",
	"alt":     "Alt",
	"option":  "Alt",
	"shift":   "Shift",
	"meta":    "Meta",
	"cmd":     "Meta",
	"super":   "Meta",
}

// NormalizeShortcut returns the canonical form of a key combination:
// modifiers first in Ctrl, Alt, Shift, Meta order, joined with "+".
// Single letters following a modifier are upper-cased, so "ctrl+s" and
// "Ctrl+S" compare equal. Returns "" for an empty shortcut.
func NormalizeShortcut(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if s == "+" {
		return s
	}

	parts := strings.Split(s, "+")
	// "Ctrl++" splits into a trailing empty pair; the key is "+".
	if strings.HasSuffix(s, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}

	mods := make(map[string]bool)
	var key string
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i < len(parts)-1 {
			if m, ok := modifierAliases[strings.ToLower(p)]; ok {
				mods[m] = true
				continue
			}
		}
		key = p
	}

	if len(mods) > 0 && utf8.RuneCountInString(key) == 1 {
		key = strings.ToUpper(key)
	} else if len(key) > 1 {
		key = strings.ToUpper(key[:1]) + key[1:]
	}

	var b strings.Builder
	for _, m := range modifierOrder {
		if mods[m] {
			b.WriteString(m)
			b.WriteByte('+')
		}
	}
	b.WriteString(key)
	return b.String()
}
