package controller

import (
	"log/slog"

	"github.com/boolean-maybe/structsearch/model"

	"github.com/gdamore/tcell/v2"
)

// InputRouter dispatches input events to appropriate controllers
// InputRouter is a dispatcher. It doesn't know what to do with actions—it only knows where to send them

// - Receive a raw key event
// - Match it against global actions, then the current view's actions
// - Forward the action to the controller or view that owns it
// - Return whether the event was consumed; unconsumed keys reach the focused widget

type InputRouter struct {
	navController    *NavigationController
	searchController *SearchController
	headerConfig     *model.HeaderConfig
	globalActions    *ActionRegistry
	helpActions      *ActionRegistry
}

// NewInputRouter creates an input router
func NewInputRouter(
	navController *NavigationController,
	searchController *SearchController,
	headerConfig *model.HeaderConfig,
) *InputRouter {
	return &InputRouter{
		navController:    navController,
		searchController: searchController,
		headerConfig:     headerConfig,
		globalActions:    DefaultGlobalActions(),
		helpActions:      HelpViewActions(),
	}
}

// HandleInput processes a key event for the current view.
// Global actions are checked first, then view-specific actions.
// Returns true if the event was handled, false otherwise.
func (ir *InputRouter) HandleInput(event *tcell.EventKey, currentView *ViewEntry) bool {
	slog.Debug("input received", "name", event.Name(), "key", int(event.Key()), "rune", string(event.Rune()), "modifiers", int(event.Modifiers()))

	if currentView == nil {
		return false
	}

	// check global actions first
	if action := ir.globalActions.Match(event); action != nil {
		return ir.handleGlobalAction(action.ID)
	}

	// route to view-specific controller
	switch currentView.ViewID {
	case model.SearchViewID:
		return ir.handleSearchInput(event)
	case model.HelpViewID:
		return ir.handleHelpInput(event)
	default:
		return false
	}
}

// handleGlobalAction processes actions available in all views.
// Back on the root view is not consumed so the search input sees Esc.
func (ir *InputRouter) handleGlobalAction(actionID ActionID) bool {
	switch actionID {
	case ActionBack:
		return ir.navController.HandleBack()
	case ActionQuit:
		ir.navController.HandleQuit()
		return true
	case ActionHelp:
		ir.navController.ToggleHelp()
		return true
	case ActionToggleHeader:
		if ir.headerConfig == nil {
			return false
		}
		ir.headerConfig.ToggleUserPreference()
		return true
	default:
		return false
	}
}

// handleSearchInput routes input to the search controller
func (ir *InputRouter) handleSearchInput(event *tcell.EventKey) bool {
	if ir.searchController == nil {
		return false
	}
	action := ir.searchController.GetActionRegistry().Match(event)
	if action == nil {
		return false
	}
	if action.ID == ActionToggleFormat {
		formatView, ok := ir.navController.GetActiveView().(ResultFormatView)
		if !ok {
			return false
		}
		format := formatView.ToggleResultFormat()
		slog.Debug("result format changed", "format", format)
		return true
	}
	return ir.searchController.HandleAction(action.ID)
}

// handleHelpInput routes link history keys to the help view
func (ir *InputRouter) handleHelpInput(event *tcell.EventKey) bool {
	action := ir.helpActions.Match(event)
	if action == nil {
		return false
	}
	navigator, ok := ir.navController.GetActiveView().(MarkdownNavigator)
	if !ok {
		return false
	}
	switch action.ID {
	case ActionNavigateBack:
		return navigator.NavigateBack()
	case ActionNavigateForward:
		return navigator.NavigateForward()
	default:
		return false
	}
}
