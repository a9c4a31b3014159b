package bootstrap

import (
	"strconv"

	"github.com/boolean-maybe/structsearch/catalog"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/search"
)

// InitHeaderAndLayoutModels creates the header config and layout model.
func InitHeaderAndLayoutModels() (*model.HeaderConfig, *model.LayoutModel) {
	return model.NewHeaderConfig(), model.NewLayoutModel()
}

// InitHeaderBaseStats sets the stats shown regardless of the active view.
func InitHeaderBaseStats(headerConfig *model.HeaderConfig, cat *catalog.Catalog) {
	count := 0
	cat.Walk(func(_ *search.Filter, _ int) { count++ })
	headerConfig.SetBaseStat("Filters", strconv.Itoa(count), 0)
}
