package search

import (
	"errors"
	"fmt"
)

// Value is the structured, round-trippable form of a search.
type Value struct {
	Filters         []Term   `json:"filters" yaml:"filters"`
	GroupFilterKeys []string `json:"groupFilterKeys" yaml:"groupFilterKeys"`
}

// IsEmpty reports whether the value holds neither filters nor groups.
func (v Value) IsEmpty() bool {
	return len(v.Filters) == 0 && len(v.GroupFilterKeys) == 0
}

// ToValue decodes tokens into a Value. Bare tokens naming a group go to
// GroupFilterKeys; every other token becomes a filter term in token order.
func ToValue(tokens []string, forest []*Filter) Value {
	v := Value{
		Filters:         []Term{},
		GroupFilterKeys: []string{},
	}
	for _, token := range tokens {
		term := Decode(token)
		if f := FindByKey(forest, term.FilterKey); f.IsGroup() && term.FilterKey != "" {
			v.GroupFilterKeys = append(v.GroupFilterKeys, term.FilterKey)
			continue
		}
		v.Filters = append(v.Filters, term)
	}
	return v
}

// FromValue encodes a Value back into tokens: filters first, then one bare
// token per group key.
func FromValue(v Value) []string {
	tokens := make([]string, 0, len(v.Filters)+len(v.GroupFilterKeys))
	for _, term := range v.Filters {
		tokens = append(tokens, Encode(term))
	}
	for _, key := range v.GroupFilterKeys {
		tokens = append(tokens, Encode(Term{FilterKey: key}))
	}
	return tokens
}

// Validate checks the value against a forest: every group key must name a
// group and every filter key a leaf. Free text under defaultKey is allowed.
func (v Value) Validate(forest []*Filter, defaultKey string) error {
	var errs []error
	for _, key := range v.GroupFilterKeys {
		if f := FindByKey(forest, key); !f.IsGroup() {
			errs = append(errs, fmt.Errorf("group %q is not a group filter", key))
		}
	}
	for _, term := range v.Filters {
		if term.FilterKey == defaultKey {
			continue
		}
		f := FindByKey(forest, term.FilterKey)
		switch {
		case f == nil:
			errs = append(errs, fmt.Errorf("filter %q is not defined", term.FilterKey))
		case f.IsGroup():
			errs = append(errs, fmt.Errorf("filter %q is a group", term.FilterKey))
		}
	}
	return errors.Join(errs...)
}
