package cmd

import (
	"fmt"

	"github.com/boolean-maybe/structsearch/catalog"
	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/store"
)

// loadCatalog builds the catalog the way the UI does, without store latency.
func loadCatalog() (*catalog.Catalog, string, error) {
	cat, err := catalog.Load(store.NewInMemoryStore())
	if err != nil {
		return nil, "", fmt.Errorf("load filter catalog: %w", err)
	}
	key := config.GetDefaultQueryKey()
	if cat.DefaultQueryKey != "" {
		key = cat.DefaultQueryKey
	}
	return cat, key, nil
}
