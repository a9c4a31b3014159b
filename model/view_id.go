package model

import (
	"strings"
)

// ViewID identifies a view type
type ViewID string

// view identifiers
const (
	SearchViewID ViewID = "search"
	HelpViewID   ViewID = "help"
)

// knownViews lists the views the factory can build, in display order.
var knownViews = []ViewID{SearchViewID, HelpViewID}

// ParseViewID resolves a view name case-insensitively.
func ParseViewID(name string) (ViewID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, id := range knownViews {
		if string(id) == name {
			return id, true
		}
	}
	return "", false
}

// Title returns the caption shown for the view
func (id ViewID) Title() string {
	switch id {
	case SearchViewID:
		return "Search"
	case HelpViewID:
		return "Help"
	default:
		return string(id)
	}
}
