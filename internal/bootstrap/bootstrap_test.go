package bootstrap

import (
	"log/slog"
	"testing"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/structsearch/catalog"
	"github.com/boolean-maybe/structsearch/controller"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/search"
	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/store"
	"github.com/boolean-maybe/structsearch/util/sysinfo"
	"github.com/boolean-maybe/structsearch/view"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: " INFO ", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "", want: slog.LevelError},
		{in: "verbose", want: slog.LevelError},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitTerminal(t *testing.T) {
	prev := config.UseGradients
	t.Cleanup(func() { config.UseGradients = prev })

	InitTerminal(&sysinfo.SystemInfo{ColorCount: 16})
	if config.UseGradients {
		t.Error("16-color terminal should disable gradients")
	}
	InitTerminal(&sysinfo.SystemInfo{ColorCount: 256})
	if !config.UseGradients {
		t.Error("256-color terminal should enable gradients")
	}
}

func embeddedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.LoadFile("", store.NewInMemoryStore())
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	return cat
}

func TestSessionSettingsFromConfig_CatalogKeyWins(t *testing.T) {
	cat := &catalog.Catalog{DefaultQueryKey: "q"}
	if got := SessionSettingsFromConfig(cat).DefaultQueryKey; got != "q" {
		t.Errorf("DefaultQueryKey = %q, want q", got)
	}
	if got := SessionSettingsFromConfig(&catalog.Catalog{}).DefaultQueryKey; got == "" {
		t.Error("DefaultQueryKey should fall back to the configured key")
	}
}

func TestInitHeaderBaseStats(t *testing.T) {
	cat := embeddedCatalog(t)
	want := 0
	cat.Walk(func(_ *search.Filter, _ int) { want++ })

	hc := model.NewHeaderConfig()
	InitHeaderBaseStats(hc, cat)

	stats := hc.GetStats()
	if len(stats) != 1 || stats[0].Name != "Filters" {
		t.Fatalf("stats = %+v, want a single Filters stat", stats)
	}
	if want == 0 {
		t.Fatal("embedded catalog should define filters")
	}
}

func TestAssemble(t *testing.T) {
	cat := embeddedCatalog(t)
	c := Assemble(tview.NewApplication(), cat, SessionSettings{DefaultQueryKey: "keywords"}, nil)
	t.Cleanup(c.Cleanup)

	if c.Controllers.Nav.CurrentViewID() != model.SearchViewID {
		t.Fatalf("initial view = %q, want search", c.Controllers.Nav.CurrentViewID())
	}
	if _, ok := c.RootLayout.GetContentView().(*view.SearchView); !ok {
		t.Fatalf("content view = %T, want *view.SearchView", c.RootLayout.GetContentView())
	}

	found := false
	for _, a := range c.HeaderConfig.GetViewActions() {
		if a.ID == string(controller.ActionRecall) {
			found = true
		}
	}
	if !found {
		t.Error("header should list the search view actions")
	}

	// submissions flow from the session into the log
	c.Session.SetSearchText("hello")
	c.Session.Submit()
	latest, ok := c.Submissions.Latest()
	if !ok || len(latest.Value.Filters) != 1 || latest.Value.Filters[0].Value != "hello" {
		t.Errorf("latest submission = %+v, %v", latest, ok)
	}

	// help toggles through the navigation wiring
	c.Controllers.Nav.ToggleHelp()
	if c.RootLayout.GetViewID() != model.HelpViewID {
		t.Errorf("view after ToggleHelp = %q, want help", c.RootLayout.GetViewID())
	}
	c.Controllers.Nav.ToggleHelp()
	if c.RootLayout.GetViewID() != model.SearchViewID {
		t.Errorf("view after second ToggleHelp = %q, want search", c.RootLayout.GetViewID())
	}
}
