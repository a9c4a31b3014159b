package model

import (
	"maps"
	"sync"
)

// LayoutListener is called when the layout content changes
type LayoutListener func()

// LayoutModel tracks which view fills the content area.
// RootLayout observes it and swaps views; the navigation controller writes it.
type LayoutModel struct {
	mu             sync.RWMutex
	contentViewID  ViewID
	contentParams  map[string]any
	revision       uint64
	listeners      map[int]LayoutListener
	nextListenerID int
}

// NewLayoutModel creates an empty layout model
func NewLayoutModel() *LayoutModel {
	return &LayoutModel{
		listeners:      make(map[int]LayoutListener),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}
}

// SetContent replaces the content view and notifies listeners
func (lm *LayoutModel) SetContent(viewID ViewID, params map[string]any) {
	lm.mu.Lock()
	lm.contentViewID = viewID
	lm.contentParams = maps.Clone(params)
	lm.revision++
	lm.mu.Unlock()
	lm.notifyListeners()
}

// Touch bumps the revision without changing content, forcing observers to
// recompute derived layout.
func (lm *LayoutModel) Touch() {
	lm.mu.Lock()
	lm.revision++
	lm.mu.Unlock()
	lm.notifyListeners()
}

// GetContentViewID returns the current content view
func (lm *LayoutModel) GetContentViewID() ViewID {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.contentViewID
}

// GetContentParams returns a copy of the current view params
func (lm *LayoutModel) GetContentParams() map[string]any {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return maps.Clone(lm.contentParams)
}

// GetRevision returns the change counter
func (lm *LayoutModel) GetRevision() uint64 {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.revision
}

// AddListener registers a callback for layout changes.
// returns a listener ID that can be used to remove the listener.
func (lm *LayoutModel) AddListener(listener LayoutListener) int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	id := lm.nextListenerID
	lm.nextListenerID++
	lm.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (lm *LayoutModel) RemoveListener(id int) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	delete(lm.listeners, id)
}

func (lm *LayoutModel) notifyListeners() {
	lm.mu.RLock()
	listeners := make([]LayoutListener, 0, len(lm.listeners))
	for _, l := range lm.listeners {
		listeners = append(listeners, l)
	}
	lm.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
