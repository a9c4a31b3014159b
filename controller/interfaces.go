package controller

import (
	"github.com/boolean-maybe/structsearch/model"

	"github.com/rivo/tview"
)

// View and ViewFactory interfaces decouple controllers from view implementations.

// FocusSettable is implemented by views that need focus management for their subcomponents.
type FocusSettable interface {
	SetFocusSetter(setter func(p tview.Primitive))
}

// View represents a renderable view with its action registry
type View interface {
	// GetPrimitive returns the tview primitive for this view
	GetPrimitive() tview.Primitive

	// GetActionRegistry returns the actions available in this view
	GetActionRegistry() *ActionRegistry

	// GetViewID returns the identifier for this view type
	GetViewID() model.ViewID

	// OnFocus is called when the view becomes active
	OnFocus()

	// OnBlur is called when the view becomes inactive
	OnBlur()
}

// ViewFactory creates views on demand
type ViewFactory interface {
	// CreateView instantiates a view by ID with optional parameters
	CreateView(viewID model.ViewID, params map[string]any) View
}

// ResultFormatView is a view that renders the submitted value in a switchable format
type ResultFormatView interface {
	View

	// ToggleResultFormat switches between yaml and json and returns the new format
	ToggleResultFormat() string
}

// MarkdownNavigator is a view with link history (the help page)
type MarkdownNavigator interface {
	View

	// NavigateBack goes to the previous page, false when there is none
	NavigateBack() bool

	// NavigateForward goes to the next page, false when there is none
	NavigateForward() bool
}

// Stat is a name/value pair a view contributes to the header
type Stat struct {
	Name  string
	Value string
	Order int
}

// StatsProvider is a view that provides statistics for the header
type StatsProvider interface {
	// GetStats returns stats to display in the header for this view
	GetStats() []Stat
}

// HeaderChangeNotifier is a view whose stats or actions change while it is active
type HeaderChangeNotifier interface {
	// SetHeaderChangeHandler registers a callback run after such a change
	SetHeaderChangeHandler(handler func())
}
