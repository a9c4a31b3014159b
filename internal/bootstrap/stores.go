package bootstrap

import (
	"fmt"

	"github.com/boolean-maybe/structsearch/catalog"
	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/store"
)

// InitStore creates the option store with the configured latency and
// result limit.
func InitStore() *store.InMemoryStore {
	return store.NewInMemoryStore().
		SetLatency(config.GetStoreLatency()).
		SetMaxResults(config.GetStoreMaxResults())
}

// LoadCatalog builds the filter catalog and seeds the store with its values.
func LoadCatalog(st store.OptionStore) (*catalog.Catalog, error) {
	cat, err := catalog.Load(st)
	if err != nil {
		return nil, fmt.Errorf("load filter catalog: %w", err)
	}
	return cat, nil
}
