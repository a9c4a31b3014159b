package search

import (
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// FindByKey searches the forest depth-first and returns the first filter
// with the given key, or nil.
func FindByKey(forest []*Filter, key string) *Filter {
	if key == "" {
		return nil
	}
	for _, f := range forest {
		if f.Key == key {
			return f
		}
		if found := FindByKey(f.Children, key); found != nil {
			return found
		}
	}
	return nil
}

// FindDeepestActiveGroup returns the deepest group whose key appears as a
// token. Ties at equal depth go to the first group found.
func FindDeepestActiveGroup(forest []*Filter, tokens []string) *Filter {
	if len(tokens) == 0 {
		return nil
	}
	present := mapset.NewThreadUnsafeSet(tokens...)

	var deepest *Filter
	maxDepth := -1
	var walk func(filters []*Filter, depth int)
	walk = func(filters []*Filter, depth int) {
		for _, f := range filters {
			if !f.IsGroup() {
				continue
			}
			if present.Contains(f.Key) && depth > maxDepth {
				deepest = f
				maxDepth = depth
			}
			walk(f.Children, depth+1)
		}
	}
	walk(forest, 0)
	return deepest
}

// Scope returns the filters currently in scope: the children of the deepest
// active group, or the forest itself when no group is active.
func Scope(forest []*Filter, tokens []string) ([]*Filter, *Filter) {
	group := FindDeepestActiveGroup(forest, tokens)
	if group == nil {
		return forest, nil
	}
	return group.Children, group
}

// AvailableFilters returns the scope filters not yet used by any token.
func AvailableFilters(scope []*Filter, tokens []string) []*Filter {
	available := make([]*Filter, 0, len(scope))
	for _, f := range scope {
		used := slices.ContainsFunc(tokens, func(token string) bool {
			return strings.HasPrefix(token, f.Key)
		})
		if !used {
			available = append(available, f)
		}
	}
	return available
}

// DescendantKeys returns the keys of every filter below f, at any depth.
func DescendantKeys(f *Filter) []string {
	if f == nil {
		return nil
	}
	var keys []string
	for _, child := range f.Children {
		keys = append(keys, child.Key)
		keys = append(keys, DescendantKeys(child)...)
	}
	return keys
}

// RemoveToken drops the token at index. When that token is a bare group key,
// tokens belonging to any of the group's descendants are dropped as well.
// An out-of-range index returns the tokens unchanged.
func RemoveToken(tokens []string, index int, forest []*Filter) []string {
	if index < 0 || index >= len(tokens) {
		return tokens
	}
	removed := Decode(tokens[index])
	rest := slices.Delete(slices.Clone(tokens), index, index+1)

	group := FindByKey(forest, removed.FilterKey)
	if !removed.IsBare() || !group.IsGroup() {
		return rest
	}

	descendants := mapset.NewThreadUnsafeSet(DescendantKeys(group)...)
	return slices.DeleteFunc(rest, func(token string) bool {
		return descendants.Contains(Decode(token).FilterKey)
	})
}

// FloatGroupKeys returns the tokens in display order: bare key tokens first,
// everything else after, each part keeping its relative order.
func FloatGroupKeys(tokens []string) []string {
	bare := make([]string, 0, len(tokens))
	other := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if Decode(token).IsBare() {
			bare = append(bare, token)
		} else {
			other = append(other, token)
		}
	}
	return append(bare, other...)
}
