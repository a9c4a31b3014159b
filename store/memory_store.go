package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"

	"github.com/boolean-maybe/structsearch/search"
)

// DefaultMaxResults caps the options returned by a single search.
const DefaultMaxResults = 50

// InMemoryStore is an in-memory implementation of OptionStore.
// An optional latency simulates a remote lookup service.
type InMemoryStore struct {
	mu             sync.RWMutex
	values         map[string][]string
	order          []string
	listeners      map[int]ChangeListener
	nextListenerID int
	latency        time.Duration
	maxResults     int
	clock          clock.Clock
}

func normalizeFilterKey(key string) string {
	return strings.TrimSpace(key)
}

// NewInMemoryStore creates a new in-memory option store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		values:         make(map[string][]string),
		listeners:      make(map[int]ChangeListener),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
		maxResults:     DefaultMaxResults,
		clock:          clock.NewClock(),
	}
}

// SetLatency sets the simulated delay applied to every Search.
func (s *InMemoryStore) SetLatency(d time.Duration) *InMemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
	return s
}

// SetClock replaces the clock used for simulated latency.
func (s *InMemoryStore) SetClock(c clock.Clock) *InMemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = c
	return s
}

// SetMaxResults caps the number of options a search returns (0 = no cap).
func (s *InMemoryStore) SetMaxResults(n int) *InMemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxResults = n
	return s
}

// AddListener registers a callback for change notifications.
// returns a listener ID that can be used to remove the listener.
func (s *InMemoryStore) AddListener(listener ChangeListener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (s *InMemoryStore) RemoveListener(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// notifyListeners calls all registered listeners
func (s *InMemoryStore) notifyListeners() {
	s.mu.RLock()
	listeners := make([]ChangeListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}

// SetValues replaces the values registered for a filter key
func (s *InMemoryStore) SetValues(filterKey string, values []string) {
	s.mu.Lock()
	filterKey = normalizeFilterKey(filterKey)
	if _, exists := s.values[filterKey]; !exists {
		s.order = append(s.order, filterKey)
	}
	s.values[filterKey] = slices.Clone(values)
	s.mu.Unlock()
	s.notifyListeners()
}

// AddValue appends a value for a filter key if not already present
func (s *InMemoryStore) AddValue(filterKey, value string) bool {
	s.mu.Lock()
	filterKey = normalizeFilterKey(filterKey)
	existing, exists := s.values[filterKey]
	if slices.Contains(existing, value) {
		s.mu.Unlock()
		return false
	}
	if !exists {
		s.order = append(s.order, filterKey)
	}
	s.values[filterKey] = append(existing, value)
	s.mu.Unlock()
	s.notifyListeners()
	return true
}

// Values returns a copy of the values registered for a filter key
func (s *InMemoryStore) Values(filterKey string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.values[normalizeFilterKey(filterKey)])
}

// FilterKeys returns the registered filter keys in registration order
func (s *InMemoryStore) FilterKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Search returns matching values as options, waiting out the simulated
// latency first. A cancelled context aborts the wait.
func (s *InMemoryStore) Search(ctx context.Context, filterKey, text string) ([]search.Option, error) {
	s.mu.RLock()
	latency, clk := s.latency, s.clock
	s.mu.RUnlock()

	if latency > 0 {
		select {
		case <-clk.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filterKey = normalizeFilterKey(filterKey)
	values, exists := s.values[filterKey]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, filterKey)
	}

	query := strings.ToLower(strings.TrimSpace(text))
	var prefix, contains []search.Option
	for _, v := range values {
		lower := strings.ToLower(v)
		switch {
		case query == "" || strings.HasPrefix(lower, query):
			prefix = append(prefix, search.Option{Key: v, Name: v})
		case strings.Contains(lower, query):
			contains = append(contains, search.Option{Key: v, Name: v})
		}
	}

	results := append(prefix, contains...)
	if s.maxResults > 0 && len(results) > s.maxResults {
		results = results[:s.maxResults]
	}
	return results, nil
}

// ensure InMemoryStore implements OptionStore
var _ OptionStore = (*InMemoryStore)(nil)
