package bootstrap

import (
	"log/slog"
	"time"

	"github.com/boolean-maybe/structsearch/catalog"
	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/search"
	"github.com/boolean-maybe/structsearch/typeahead"
)

// SessionSettings are the configurable knobs of the search session.
type SessionSettings struct {
	DefaultQueryKey  string
	ClearAfterSearch bool
	TypeaheadDelay   time.Duration
}

// SessionSettingsFromConfig reads the session settings from the loaded
// config. A catalog that names its own default query key wins.
func SessionSettingsFromConfig(cat *catalog.Catalog) SessionSettings {
	s := SessionSettings{
		DefaultQueryKey:  config.GetDefaultQueryKey(),
		ClearAfterSearch: config.GetClearAfterSearch(),
		TypeaheadDelay:   config.GetTypeaheadDelay(),
	}
	if cat != nil && cat.DefaultQueryKey != "" {
		s.DefaultQueryKey = cat.DefaultQueryKey
	}
	return s
}

// InitSession creates the search session over the catalog. Submitted values
// go to the submission log.
func InitSession(
	cat *catalog.Catalog,
	settings SessionSettings,
	submissions *model.SubmissionLog,
	dispatch typeahead.Dispatcher,
) *model.SearchSession {
	return model.NewSearchSession(model.SessionConfig{
		Filters:          cat.Filters,
		DefaultQueryKey:  settings.DefaultQueryKey,
		ClearAfterSearch: settings.ClearAfterSearch,
		TypeaheadDelay:   settings.TypeaheadDelay,
		Dispatch:         dispatch,
		OnSubmit: func(v search.Value) {
			sub := submissions.Record(v)
			slog.Info("search submitted", "filters", len(v.Filters), "groups", len(v.GroupFilterKeys), "at", sub.SubmittedAt)
		},
		OnOptionsError: func(filterKey string, err error) {
			slog.Warn("option lookup failed", "filter", filterKey, "error", err)
		},
	})
}
