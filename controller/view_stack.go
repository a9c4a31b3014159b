package controller

import (
	"sync"

	"github.com/boolean-maybe/structsearch/model"
)

// ViewEntry represents a view on the navigation stack with optional parameters
type ViewEntry struct {
	ViewID model.ViewID
	Params map[string]any
}

// viewStack is the navigation history; the top entry is the displayed view
type viewStack struct {
	mu    sync.RWMutex
	stack []ViewEntry
}

func newViewStack() *viewStack {
	return &viewStack{
		stack: make([]ViewEntry, 0),
	}
}

func (vs *viewStack) push(viewID model.ViewID, params map[string]any) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.stack = append(vs.stack, ViewEntry{ViewID: viewID, Params: params})
}

// pop removes and returns the top entry, nil when empty
func (vs *viewStack) pop() *ViewEntry {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if len(vs.stack) == 0 {
		return nil
	}
	top := vs.stack[len(vs.stack)-1]
	vs.stack = vs.stack[:len(vs.stack)-1]
	return &top
}

// replaceTopView swaps the top entry; false when the stack is empty
func (vs *viewStack) replaceTopView(viewID model.ViewID, params map[string]any) bool {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if len(vs.stack) == 0 {
		return false
	}
	vs.stack[len(vs.stack)-1] = ViewEntry{ViewID: viewID, Params: params}
	return true
}

func (vs *viewStack) currentView() *ViewEntry {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	if len(vs.stack) == 0 {
		return nil
	}
	entry := vs.stack[len(vs.stack)-1]
	return &entry
}

func (vs *viewStack) currentViewID() model.ViewID {
	if entry := vs.currentView(); entry != nil {
		return entry.ViewID
	}
	return ""
}

func (vs *viewStack) previousView() *ViewEntry {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	if len(vs.stack) < 2 {
		return nil
	}
	entry := vs.stack[len(vs.stack)-2]
	return &entry
}

func (vs *viewStack) canGoBack() bool {
	return vs.depth() > 1
}

func (vs *viewStack) depth() int {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return len(vs.stack)
}

func (vs *viewStack) clear() {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.stack = vs.stack[:0]
}
