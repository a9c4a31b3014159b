package util

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// keys whose names read better than tcell's defaults; checked before the
// Ctrl-letter range because Tab, Enter and Backspace share its codes
var keyLabels = map[tcell.Key]string{
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Shift-Tab",
	tcell.KeyEnter:      "Enter",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyEscape:     "Esc",
	tcell.KeyLeft:       "←",
	tcell.KeyRight:      "→",
	tcell.KeyUp:         "↑",
	tcell.KeyDown:       "↓",
}

// FormatKeyBinding renders a key binding for display, e.g. "Ctrl-L", "F1", "q".
func FormatKeyBinding(key tcell.Key, r rune, mod tcell.ModMask) string {
	var parts []string
	ctrl := mod&tcell.ModCtrl != 0

	var base string
	switch {
	case key == tcell.KeyRune:
		base = string(r)
	case keyLabels[key] != "":
		base = keyLabels[key]
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		base = string(rune('A' + key - tcell.KeyCtrlA))
		ctrl = true
	default:
		if name, ok := tcell.KeyNames[key]; ok {
			base = name
		} else {
			base = fmt.Sprintf("Key(%d)", int(key))
		}
	}

	if ctrl {
		parts = append(parts, "Ctrl")
	}
	if mod&tcell.ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if mod&tcell.ModMeta != 0 {
		parts = append(parts, "Meta")
	}
	if mod&tcell.ModShift != 0 && key != tcell.KeyBacktab {
		parts = append(parts, "Shift")
	}
	return strings.Join(append(parts, base), "-")
}
