package store

import (
	"context"
	"errors"

	"github.com/boolean-maybe/structsearch/search"
)

// ErrUnknownFilter is returned when a filter has no registered values.
var ErrUnknownFilter = errors.New("unknown filter")

// OptionStore is the interface for value storage backing typeahead filters.
// Implementations must be thread-safe and notify listeners on changes.
type OptionStore interface {
	// AddListener registers a callback for change notifications.
	// returns a listener ID that can be used to remove the listener.
	AddListener(listener ChangeListener) int

	// RemoveListener removes a previously registered listener by ID
	RemoveListener(id int)

	// SetValues replaces the values registered for a filter key.
	SetValues(filterKey string, values []string)

	// AddValue appends a value for a filter key if not already present.
	AddValue(filterKey, value string) bool

	// Values returns a copy of the values registered for a filter key.
	Values(filterKey string) []string

	// FilterKeys returns the registered filter keys in registration order.
	FilterKeys() []string

	// Search returns the values of a filter matching text (case-insensitive).
	// Prefix matches come before substring matches.
	// Returns ErrUnknownFilter when the filter has no registered values.
	Search(ctx context.Context, filterKey, text string) ([]search.Option, error)
}

// ChangeListener is called when the store's data changes
type ChangeListener func()

// Provider adapts a store lookup to a typeahead provider for one filter.
func Provider(s OptionStore, filterKey string) search.TypeaheadFunc {
	return func(ctx context.Context, text string) ([]search.Option, error) {
		return s.Search(ctx, filterKey, text)
	}
}
