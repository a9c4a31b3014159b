package search

import (
	"slices"
	"strings"
)

// MergeResult is the outcome of merging a chosen value into a token list.
type MergeResult struct {
	Tokens       []string
	Accepted     bool // false when the value was rejected and Tokens is unchanged
	ResetOptions bool // presented options should be cleared
	MultiValue   bool // multi-value continuation stays active
}

// ApplyNewValue merges chosen into tokens according to the classification
// of the current last token. The first matching rule wins:
//   - empty chosen resets the list
//   - a last token still being built absorbs chosen
//   - an unused scope filter key starts a new token
//   - anything else is free text under defaultKey
func ApplyNewValue(tokens []string, chosen string, c Classification, defaultKey string) MergeResult {
	if chosen == "" {
		return MergeResult{Tokens: []string{}, Accepted: true, ResetOptions: true}
	}
	if defaultKey == "" {
		defaultKey = DefaultQueryKey
	}

	multi := c.MultiValue || (c.EndsWithOperator && c.HasMultiValue)
	if c.InTag() {
		return mergeIntoLast(tokens, chosen, c, multi)
	}

	if f := c.ScopeFilter(chosen); f != nil && !keyInUse(tokens, chosen) {
		token := chosen
		if op, ok := AutoOperator(f); ok {
			token += op.Key
		}
		return MergeResult{
			Tokens:       append(slices.Clone(tokens), token),
			Accepted:     true,
			ResetOptions: true,
		}
	}

	return mergeFreeText(tokens, chosen, c, defaultKey)
}

func mergeIntoLast(tokens []string, chosen string, c Classification, multi bool) MergeResult {
	rejected := MergeResult{Tokens: tokens, MultiValue: c.MultiValue}
	last := c.LastToken

	var next string
	switch {
	case c.EndsWithOperator:
		if c.ContainsOperator(chosen) {
			return rejected
		}
		next = last + chosen
	case c.EndsWithKey && c.IsOperator(chosen):
		next = last + chosen
	case c.EndsWithKey:
		if c.ContainsOperator(chosen) {
			return rejected
		}
		next = Encode(Term{FilterKey: last, OperatorKey: defaultOperator(c), Value: chosen})
	default:
		if c.ContainsOperator(chosen) {
			return rejected
		}
		term := Decode(last)
		term.Value = strings.Join(toggleValue(term.Values(), chosen), ValueSeparator)
		next = Encode(term)
	}

	merged := slices.Clone(tokens)
	merged[len(merged)-1] = next
	return MergeResult{
		Tokens:       merged,
		Accepted:     true,
		ResetOptions: !multi,
		MultiValue:   multi,
	}
}

func mergeFreeText(tokens []string, chosen string, c Classification, defaultKey string) MergeResult {
	if c.ContainsOperator(chosen) {
		return MergeResult{Tokens: tokens, MultiValue: c.MultiValue}
	}

	idx := slices.IndexFunc(tokens, func(token string) bool {
		return Decode(token).FilterKey == defaultKey
	})
	if idx < 0 {
		token := Encode(Term{FilterKey: defaultKey, OperatorKey: FreeTextOperator, Value: chosen})
		return MergeResult{Tokens: append(slices.Clone(tokens), token), Accepted: true}
	}

	merged := slices.Delete(slices.Clone(tokens), idx, idx+1)
	merged = append(merged, tokens[idx]+" "+chosen)
	return MergeResult{Tokens: merged, Accepted: true}
}

// toggleValue removes value when present, otherwise appends it.
func toggleValue(values []string, value string) []string {
	if i := slices.Index(values, value); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), value)
}

func defaultOperator(c Classification) string {
	if c.LastFilter != nil && len(c.LastFilter.Operators) > 0 {
		return c.LastFilter.Operators[0].Key
	}
	if len(c.OperatorKeys) > 0 {
		return c.OperatorKeys[0]
	}
	return FreeTextOperator
}

func keyInUse(tokens []string, key string) bool {
	return slices.ContainsFunc(tokens, func(token string) bool {
		return strings.HasPrefix(token, key)
	})
}
