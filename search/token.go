package search

import "strings"

// OperatorChars is the punctuation class an operator is made of.
const OperatorChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// DefaultQueryKey is the filter key free text is collected under.
const DefaultQueryKey = "keywords"

// FreeTextOperator joins the default query key and free text.
const FreeTextOperator = "="

// ValueSeparator joins the values of a multi-value filter.
const ValueSeparator = ","

// Term is the decoded form of a token.
type Term struct {
	FilterKey   string `json:"filterKey" yaml:"filterKey"`
	OperatorKey string `json:"operatorKey" yaml:"operatorKey"`
	Value       string `json:"value" yaml:"value"`
}

// IsBare reports whether the term carries a key only.
func (t Term) IsBare() bool {
	return t.FilterKey != "" && t.OperatorKey == "" && t.Value == ""
}

// Values splits a multi-value term into its parts.
func (t Term) Values() []string {
	if t.Value == "" {
		return nil
	}
	return strings.Split(t.Value, ValueSeparator)
}

// Encode concatenates key, operator and value into a token.
func Encode(t Term) string {
	return t.FilterKey + t.OperatorKey + t.Value
}

// Decode splits a token at its first run of operator characters. A token
// without any operator character decodes to a bare key.
func Decode(token string) Term {
	start := strings.IndexAny(token, OperatorChars)
	if start < 0 {
		return Term{FilterKey: token}
	}
	end := start
	for end < len(token) && strings.IndexByte(OperatorChars, token[end]) >= 0 {
		end++
	}
	return Term{
		FilterKey:   token[:start],
		OperatorKey: token[start:end],
		Value:       token[end:],
	}
}

// ContainsOperatorChar reports whether s holds any operator character.
func ContainsOperatorChar(s string) bool {
	return strings.ContainsAny(s, OperatorChars)
}
