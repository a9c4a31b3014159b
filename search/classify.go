package search

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Mode names the option set presented next.
type Mode int

const (
	// ModeFilters presents the filters still available in scope.
	ModeFilters Mode = iota
	// ModeOperators presents the last filter's operators.
	ModeOperators
	// ModeChildren presents the children of the group just chosen.
	ModeChildren
	// ModeValues presents the last filter's values.
	ModeValues
)

func (m Mode) String() string {
	switch m {
	case ModeOperators:
		return "operators"
	case ModeChildren:
		return "children"
	case ModeValues:
		return "values"
	default:
		return "filters"
	}
}

// Classification describes the role of the last token.
type Classification struct {
	LastToken  string
	Last       Term
	LastFilter *Filter
	Scope      []*Filter
	Group      *Filter // deepest active group, nil at top level

	// OperatorKeys is the union of the scope's operator keys in first-seen order.
	OperatorKeys []string

	EndsWithKey      bool
	EndsWithOperator bool
	IsGroup          bool
	HasMultiValue    bool
	MultiValue       bool // multi-value continuation is active

	Mode Mode
}

// Classify inspects the token list against the forest. multiValue carries
// the session's multi-value continuation flag.
func Classify(forest []*Filter, tokens []string, multiValue bool) Classification {
	scope, group := Scope(forest, tokens)

	c := Classification{
		Scope:      scope,
		Group:      group,
		MultiValue: multiValue,
	}
	if n := len(tokens); n > 0 {
		c.LastToken = tokens[n-1]
	}
	c.Last = Decode(c.LastToken)

	keys := mapset.NewThreadUnsafeSet[string]()
	operators := mapset.NewThreadUnsafeSet[string]()
	for _, f := range scope {
		keys.Add(f.Key)
		if c.LastFilter == nil && c.Last.FilterKey != "" && f.Key == c.Last.FilterKey {
			c.LastFilter = f
		}
		for _, op := range f.Operators {
			if operators.Add(op.Key) {
				c.OperatorKeys = append(c.OperatorKeys, op.Key)
			}
		}
	}

	c.EndsWithKey = c.LastToken != "" && keys.Contains(c.LastToken)
	if c.EndsWithKey && c.LastFilter == nil {
		// keys holding operator characters do not survive Decode
		c.LastFilter = c.ScopeFilter(c.LastToken)
	}
	for _, op := range c.OperatorKeys {
		if op != "" && strings.HasSuffix(c.LastToken, op) {
			c.EndsWithOperator = true
			break
		}
	}
	c.IsGroup = c.LastFilter.IsGroup()
	c.HasMultiValue = c.LastFilter != nil && c.LastFilter.HasMultiOptions

	switch {
	case c.AwaitingValue():
		c.Mode = ModeValues
	case c.EndsWithKey && c.IsGroup:
		c.Mode = ModeChildren
	case c.EndsWithKey:
		c.Mode = ModeOperators
	default:
		c.Mode = ModeFilters
	}
	return c
}

// AwaitingValue reports whether the next input is a value of LastFilter.
func (c Classification) AwaitingValue() bool {
	return c.EndsWithOperator || c.MultiValue
}

// InTag reports whether the last token is still being built.
func (c Classification) InTag() bool {
	return !c.IsGroup && (c.EndsWithKey || c.EndsWithOperator || c.MultiValue)
}

// IsOperator reports whether key is one of the scope's operators.
func (c Classification) IsOperator(key string) bool {
	for _, op := range c.OperatorKeys {
		if op == key {
			return true
		}
	}
	return false
}

// ContainsOperator reports whether s contains any of the scope's operators.
func (c Classification) ContainsOperator(s string) bool {
	for _, op := range c.OperatorKeys {
		if op != "" && strings.Contains(s, op) {
			return true
		}
	}
	return false
}

// ScopeFilter returns the scope filter with the given key, or nil.
func (c Classification) ScopeFilter(key string) *Filter {
	for _, f := range c.Scope {
		if f.Key == key {
			return f
		}
	}
	return nil
}

// StaticOptions returns the options for the current mode when they can be
// computed synchronously. ok is false when the last filter's values come
// from an asynchronous provider.
func (c Classification) StaticOptions(tokens []string, text string) (options []Option, ok bool) {
	switch c.Mode {
	case ModeValues:
		f := c.LastFilter
		switch {
		case f == nil:
			return nil, true
		case f.IsAsync():
			return nil, false
		case f.OptionsFunc != nil:
			return f.OptionsFunc(text), true
		default:
			return f.Options, true
		}
	case ModeChildren:
		return FiltersAsOptions(c.LastFilter.Children), true
	case ModeOperators:
		return c.LastFilter.Operators, true
	default:
		return FiltersAsOptions(AvailableFilters(c.Scope, tokens)), true
	}
}

// AutoOperator returns the operator attached when f is chosen: the sole
// operator of a leaf filter that defines exactly one.
func AutoOperator(f *Filter) (Option, bool) {
	if f == nil || f.IsGroup() || len(f.Operators) != 1 {
		return Option{}, false
	}
	return f.Operators[0], true
}
