package controller

import (
	"github.com/gdamore/tcell/v2"
)

// ActionRegistry maps keyboard shortcuts to actions and matches key events.
// Printable keys belong to the search input, so every binding here uses a
// special key or a Ctrl chord.

// ActionID identifies a specific action
type ActionID string

// ActionID values for global actions (available in all views).
const (
	ActionBack         ActionID = "back"
	ActionQuit         ActionID = "quit"
	ActionHelp         ActionID = "help"
	ActionToggleHeader ActionID = "toggle_header"
)

// ActionID values for the search view.
const (
	ActionClear        ActionID = "clear"
	ActionRecall       ActionID = "recall"
	ActionToggleFormat ActionID = "toggle_format"
)

// ActionID values for the help view (markdown navigation).
const (
	ActionNavigateBack    ActionID = "navigate_back"
	ActionNavigateForward ActionID = "navigate_forward"
)

// Action represents a keyboard shortcut binding
type Action struct {
	ID           ActionID
	Key          tcell.Key
	Rune         rune // for letter keys (when Key == tcell.KeyRune)
	Label        string
	Modifier     tcell.ModMask
	ShowInHeader bool // whether to display in header bar
}

// ActionRegistry holds the available actions for a view.
// Uses a space-time tradeoff: stores actions in 3 places for different purposes:
// - actions slice preserves registration order (needed for header display)
// - byKey/byRune maps provide O(1) lookups for keyboard matching (vs O(n) linear search)
type ActionRegistry struct {
	actions []Action             // All registered actions in order
	byKey   map[tcell.Key]Action // Fast lookup for special keys (arrow keys, function keys, etc.)
	byRune  map[rune]Action      // Fast lookup for character keys (letters, symbols)
}

// NewActionRegistry creates a new action registry
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		actions: make([]Action, 0),
		byKey:   make(map[tcell.Key]Action),
		byRune:  make(map[rune]Action),
	}
}

// Register adds an action to the registry
func (r *ActionRegistry) Register(action Action) {
	r.actions = append(r.actions, action)
	if action.Key == tcell.KeyRune {
		r.byRune[action.Rune] = action
	} else {
		r.byKey[action.Key] = action
	}
}

// Merge adds all actions from another registry into this one.
// Actions from the other registry are appended to preserve order.
// If there are key conflicts, the other registry's actions take precedence.
func (r *ActionRegistry) Merge(other *ActionRegistry) {
	for _, action := range other.actions {
		r.Register(action)
	}
}

// GetActions returns all registered actions
func (r *ActionRegistry) GetActions() []Action {
	return r.actions
}

// Match finds an action matching the given key event
func (r *ActionRegistry) Match(event *tcell.EventKey) *Action {
	// normalize modifier (ignore caps lock, num lock, etc.)
	mod := event.Modifiers() & (tcell.ModShift | tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta)

	for i := range r.actions {
		action := &r.actions[i]

		if event.Key() == tcell.KeyRune {
			// for printable characters, match by rune first
			if action.Key == tcell.KeyRune && action.Rune == event.Rune() {
				// if action has explicit modifiers, require exact match
				if action.Modifier != 0 && action.Modifier != mod {
					continue
				}
				return action
			}
		} else {
			// for special keys, require exact modifier match
			if action.Key == event.Key() && action.Modifier == mod {
				return action
			}
			// Ctrl+letter: tcell may send key='A'-'Z' with ModCtrl,
			// but actions register KeyCtrlA-KeyCtrlZ (1-26)
			if mod == tcell.ModCtrl && action.Modifier == tcell.ModCtrl {
				var ctrlKeyCode tcell.Key
				if event.Key() >= 'A' && event.Key() <= 'Z' {
					ctrlKeyCode = event.Key() - 'A' + 1
				} else if event.Key() >= 'a' && event.Key() <= 'z' {
					ctrlKeyCode = event.Key() - 'a' + 1
				}
				if ctrlKeyCode != 0 && ctrlKeyCode == action.Key {
					return action
				}
			}
		}
	}
	return nil
}

// GetHeaderActions returns only actions marked for header display
func (r *ActionRegistry) GetHeaderActions() []Action {
	var result []Action
	for _, a := range r.actions {
		if a.ShowInHeader {
			result = append(result, a)
		}
	}
	return result
}

// DefaultGlobalActions returns common actions available in all views
func DefaultGlobalActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionBack, Key: tcell.KeyEscape, Label: "Back", ShowInHeader: true})
	r.Register(Action{ID: ActionQuit, Key: tcell.KeyCtrlQ, Modifier: tcell.ModCtrl, Label: "Quit", ShowInHeader: true})
	r.Register(Action{ID: ActionHelp, Key: tcell.KeyF1, Label: "Help", ShowInHeader: true})
	r.Register(Action{ID: ActionToggleHeader, Key: tcell.KeyF10, Label: "Hide Header", ShowInHeader: true})
	return r
}

// SearchViewActions returns the canonical action registry for the search view.
// Single source of truth for both input handling and header display.
func SearchViewActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionClear, Key: tcell.KeyCtrlL, Modifier: tcell.ModCtrl, Label: "Clear", ShowInHeader: true})
	r.Register(Action{ID: ActionRecall, Key: tcell.KeyCtrlR, Modifier: tcell.ModCtrl, Label: "Recall", ShowInHeader: true})
	r.Register(Action{ID: ActionToggleFormat, Key: tcell.KeyCtrlO, Modifier: tcell.ModCtrl, Label: "Format", ShowInHeader: true})
	return r
}

// HelpViewActions returns the action registry for the help page.
func HelpViewActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionNavigateBack, Key: tcell.KeyLeft, Label: "← Back", ShowInHeader: true})
	r.Register(Action{ID: ActionNavigateForward, Key: tcell.KeyRight, Label: "Forward →", ShowInHeader: true})
	return r
}
