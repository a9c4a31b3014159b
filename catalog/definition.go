package catalog

import (
	"errors"

	"github.com/boolean-maybe/structsearch/search"
)

// ErrNoFilters is returned when a catalog defines no filters.
var ErrNoFilters = errors.New("catalog defines no filters")

// Suggestion modes for a filter's values.
const (
	SuggestStatic = "static" // values listed as fixed options
	SuggestPrefix = "prefix" // values narrowed by the typed prefix
	SuggestStore  = "store"  // values served asynchronously by the option store
)

// File represents the YAML structure of a filters.yaml file
type File struct {
	DefaultQueryKey string         `yaml:"defaultQueryKey,omitempty"`
	Operators       []OptionConfig `yaml:"operators,omitempty"`
	Filters         []FilterConfig `yaml:"filters"`
}

// OptionConfig is an operator or a fixed value option.
type OptionConfig struct {
	Key     string `yaml:"key"`
	Name    string `yaml:"name,omitempty"`
	Icon    string `yaml:"icon,omitempty"`
	SubText string `yaml:"subText,omitempty"`
}

// FilterConfig is one node of the filter tree.
type FilterConfig struct {
	Key          string         `yaml:"key"`
	Name         string         `yaml:"name,omitempty"`
	Icon         string         `yaml:"icon,omitempty"`
	SubText      string         `yaml:"subText,omitempty"`
	TagColor     string         `yaml:"tagColor,omitempty"`
	Operators    []string       `yaml:"operators,omitempty"`
	Options      []OptionConfig `yaml:"options,omitempty"`
	Suggest      string         `yaml:"suggest,omitempty"`
	Values       []string       `yaml:"values,omitempty"`
	Multi        bool           `yaml:"multi,omitempty"`
	DisabledWhen []string       `yaml:"disabledWhen,omitempty"`
	HiddenWhen   []string       `yaml:"hiddenWhen,omitempty"`
	DisabledHint string         `yaml:"disabledHint,omitempty"`
	Children     []FilterConfig `yaml:"children,omitempty"`
}

// Catalog is a built filter forest ready for a search session.
type Catalog struct {
	DefaultQueryKey string
	Filters         []*search.Filter
	Source          string
}

// Walk visits every filter depth-first with its depth (0 for roots).
func (c *Catalog) Walk(visit func(f *search.Filter, depth int)) {
	var walk func(filters []*search.Filter, depth int)
	walk = func(filters []*search.Filter, depth int) {
		for _, f := range filters {
			visit(f, depth)
			walk(f.Children, depth+1)
		}
	}
	walk(c.Filters, 0)
}
