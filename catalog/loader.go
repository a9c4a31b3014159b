package catalog

import (
	"fmt"
	"log/slog"
	"os"

	"dario.cat/mergo"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/store"
)

// Load builds the catalog: the embedded defaults, overridden by the user's
// filters.yaml when one is found.
func Load(st store.OptionStore) (*Catalog, error) {
	return LoadFile(config.FindFiltersFile(), st)
}

// LoadFile builds the catalog from the embedded defaults merged with the
// file at path. An empty path uses the defaults alone.
func LoadFile(path string, st store.OptionStore) (*Catalog, error) {
	embedded, err := loadEmbeddedFile()
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}

	if path == "" {
		slog.Debug("no filters.yaml found, using embedded catalog")
		return Build(embedded, "embedded:filters", st)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	configured, err := parseFile(data, path)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(embedded, configured)
	if err != nil {
		return nil, fmt.Errorf("merge %s: %w", path, err)
	}
	c, err := Build(merged, path, st)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded filter catalog", "path", path, "filters", len(c.Filters))
	return c, nil
}

// Merge combines a base catalog with an override file. Filters and
// operators with the same key are merged (override fields win); new ones
// are appended in override order.
func Merge(base, override *File) (*File, error) {
	out := &File{DefaultQueryKey: base.DefaultQueryKey}
	if override.DefaultQueryKey != "" {
		out.DefaultQueryKey = override.DefaultQueryKey
	}

	operators, err := mergeByKey(base.Operators, override.Operators, func(o OptionConfig) string { return o.Key })
	if err != nil {
		return nil, err
	}
	out.Operators = operators

	filters, err := mergeByKey(base.Filters, override.Filters, func(f FilterConfig) string { return f.Key })
	if err != nil {
		return nil, err
	}
	out.Filters = filters
	return out, nil
}

func mergeByKey[T any](base, override []T, key func(T) string) ([]T, error) {
	out := make([]T, len(base))
	copy(out, base)

	index := make(map[string]int, len(base))
	for i, item := range base {
		index[key(item)] = i
	}

	for _, item := range override {
		i, ok := index[key(item)]
		if !ok {
			index[key(item)] = len(out)
			out = append(out, item)
			continue
		}
		merged := out[i]
		if err := mergo.Merge(&merged, item, mergo.WithOverride); err != nil {
			return nil, err
		}
		out[i] = merged
		slog.Debug("catalog override (merged)", "key", key(item))
	}
	return out, nil
}
