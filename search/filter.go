package search

import "context"

// Predicate reports a condition over the current token list.
type Predicate func(tokens []string) bool

// Option is a selectable entry: a filter, an operator or a value.
type Option struct {
	Key          string
	Name         string
	Icon         string
	SubText      string
	DisabledHint string // shown instead of SubText while Disabled holds
	Disabled     Predicate
	Hidden       Predicate
}

// IsDisabled evaluates the Disabled predicate; a nil predicate never disables.
func (o Option) IsDisabled(tokens []string) bool {
	return o.Disabled != nil && o.Disabled(tokens)
}

// IsHidden evaluates the Hidden predicate; a nil predicate never hides.
func (o Option) IsHidden(tokens []string) bool {
	return o.Hidden != nil && o.Hidden(tokens)
}

// Label returns the display name, falling back to the key.
func (o Option) Label() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Key
}

// OptionsFunc is a synchronous value provider called with the typed text.
type OptionsFunc func(text string) []Option

// TypeaheadFunc is an asynchronous value provider. Implementations should
// return promptly once ctx is cancelled.
type TypeaheadFunc func(ctx context.Context, text string) ([]Option, error)

// Filter is a search dimension. A filter with children is a group: choosing
// it narrows the scope to its children instead of taking a value.
type Filter struct {
	Option
	Operators       []Option
	Options         []Option
	OptionsFunc     OptionsFunc
	Typeahead       TypeaheadFunc
	Children        []*Filter
	HasMultiOptions bool
	TagColor        string
}

// IsGroup reports whether the filter groups sub-filters.
func (f *Filter) IsGroup() bool {
	return f != nil && len(f.Children) > 0
}

// IsAsync reports whether values come from an asynchronous provider.
func (f *Filter) IsAsync() bool {
	return f != nil && f.Typeahead != nil
}

// OperatorKeys returns the keys of the filter's operators in order.
func (f *Filter) OperatorKeys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, len(f.Operators))
	for i, op := range f.Operators {
		keys[i] = op.Key
	}
	return keys
}

// FiltersAsOptions projects filters onto their Option part.
func FiltersAsOptions(filters []*Filter) []Option {
	options := make([]Option, 0, len(filters))
	for _, f := range filters {
		options = append(options, f.Option)
	}
	return options
}
