package catalog

import (
	_ "embed"
)

//go:embed embed/filters.yaml
var defaultFiltersYAML string

// DefaultFiltersYAML returns the built-in filter catalog.
func DefaultFiltersYAML() string {
	return defaultFiltersYAML
}

// loadEmbeddedFile parses the built-in catalog
func loadEmbeddedFile() (*File, error) {
	return parseFile([]byte(defaultFiltersYAML), "embedded:filters")
}
