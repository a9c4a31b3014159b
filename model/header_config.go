package model

import (
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// HeaderAction is a key binding shown in the header.
// It mirrors controller.Action so the model does not import the controller.
type HeaderAction struct {
	ID           string
	Key          tcell.Key
	Rune         rune
	Label        string
	Modifier     tcell.ModMask
	ShowInHeader bool
}

// HeaderStat is a name/value pair displayed in the header stats column.
type HeaderStat struct {
	Name  string
	Value string
	Order int
}

// HeaderListener is called when header content or visibility changes
type HeaderListener func()

// HeaderConfig holds what the header shows: the active view's key bindings,
// base stats (always shown) and view stats (replaced on view change).
type HeaderConfig struct {
	mu             sync.RWMutex
	viewActions    []HeaderAction
	baseStats      map[string]HeaderStat
	viewStats      map[string]HeaderStat
	visible        bool
	userPreference bool
	listeners      map[int]HeaderListener
	nextListenerID int
}

// NewHeaderConfig creates a visible, empty header config
func NewHeaderConfig() *HeaderConfig {
	return &HeaderConfig{
		baseStats:      make(map[string]HeaderStat),
		viewStats:      make(map[string]HeaderStat),
		visible:        true,
		userPreference: true,
		listeners:      make(map[int]HeaderListener),
		nextListenerID: 1,
	}
}

// SetViewActions replaces the view-specific key bindings
func (hc *HeaderConfig) SetViewActions(actions []HeaderAction) {
	hc.mu.Lock()
	hc.viewActions = slices.Clone(actions)
	hc.mu.Unlock()
	hc.notifyListeners()
}

// GetViewActions returns the view-specific key bindings
func (hc *HeaderConfig) GetViewActions() []HeaderAction {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return slices.Clone(hc.viewActions)
}

// SetBaseStat sets a stat that survives view changes
func (hc *HeaderConfig) SetBaseStat(name, value string, order int) {
	hc.mu.Lock()
	hc.baseStats[name] = HeaderStat{Name: name, Value: value, Order: order}
	hc.mu.Unlock()
	hc.notifyListeners()
}

// SetViewStat sets a stat owned by the current view
func (hc *HeaderConfig) SetViewStat(name, value string, order int) {
	hc.mu.Lock()
	hc.viewStats[name] = HeaderStat{Name: name, Value: value, Order: order}
	hc.mu.Unlock()
	hc.notifyListeners()
}

// ClearViewStats removes all view-owned stats
func (hc *HeaderConfig) ClearViewStats() {
	hc.mu.Lock()
	hc.viewStats = make(map[string]HeaderStat)
	hc.mu.Unlock()
	hc.notifyListeners()
}

// GetStats returns base and view stats ordered by Order then name.
// A view stat replaces a base stat of the same name.
func (hc *HeaderConfig) GetStats() []HeaderStat {
	hc.mu.RLock()
	merged := make(map[string]HeaderStat, len(hc.baseStats)+len(hc.viewStats))
	for name, s := range hc.baseStats {
		merged[name] = s
	}
	for name, s := range hc.viewStats {
		merged[name] = s
	}
	hc.mu.RUnlock()

	stats := make([]HeaderStat, 0, len(merged))
	for _, s := range merged {
		stats = append(stats, s)
	}
	slices.SortFunc(stats, func(a, b HeaderStat) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return stats
}

// SetVisible sets the effective header visibility
func (hc *HeaderConfig) SetVisible(visible bool) {
	hc.mu.Lock()
	changed := hc.visible != visible
	hc.visible = visible
	hc.mu.Unlock()
	if changed {
		hc.notifyListeners()
	}
}

// IsVisible returns the effective header visibility
func (hc *HeaderConfig) IsVisible() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.visible
}

// SetUserPreference records the user's header toggle
func (hc *HeaderConfig) SetUserPreference(visible bool) {
	hc.mu.Lock()
	hc.userPreference = visible
	hc.mu.Unlock()
}

// GetUserPreference returns the user's header toggle
func (hc *HeaderConfig) GetUserPreference() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.userPreference
}

// ToggleUserPreference flips the user preference and applies it
func (hc *HeaderConfig) ToggleUserPreference() {
	hc.mu.Lock()
	hc.userPreference = !hc.userPreference
	preference := hc.userPreference
	hc.mu.Unlock()
	hc.SetVisible(preference)
}

// AddListener registers a callback for header changes.
// returns a listener ID that can be used to remove the listener.
func (hc *HeaderConfig) AddListener(listener HeaderListener) int {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	id := hc.nextListenerID
	hc.nextListenerID++
	hc.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (hc *HeaderConfig) RemoveListener(id int) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.listeners, id)
}

func (hc *HeaderConfig) notifyListeners() {
	hc.mu.RLock()
	listeners := make([]HeaderListener, 0, len(hc.listeners))
	for _, l := range hc.listeners {
		listeners = append(listeners, l)
	}
	hc.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
