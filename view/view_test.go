package view

import (
	"errors"
	"strings"
	"testing"

	"github.com/boolean-maybe/structsearch/controller"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/search"
	"github.com/boolean-maybe/structsearch/view/header"
	"github.com/boolean-maybe/structsearch/view/renderer"
	"github.com/boolean-maybe/structsearch/view/result"

	nav "github.com/boolean-maybe/navidown/navidown"
	"github.com/gdamore/tcell/v2"
)

func testForest() []*search.Filter {
	return []*search.Filter{
		{
			Option:    search.Option{Key: "author", Name: "Author"},
			Operators: []search.Option{{Key: "="}},
			Options:   []search.Option{{Key: "ann"}, {Key: "bob"}},
		},
		{
			Option:    search.Option{Key: "domain", Name: "Domain"},
			Operators: []search.Option{{Key: "="}, {Key: "!="}},
		},
	}
}

type viewFixture struct {
	session     *model.SearchSession
	submissions *model.SubmissionLog
	factory     *ViewFactory
}

func newViewFixture(t *testing.T) *viewFixture {
	t.Helper()
	f := &viewFixture{submissions: model.NewSubmissionLog(0, nil)}
	f.session = model.NewSearchSession(model.SessionConfig{
		Filters:  testForest(),
		OnSubmit: func(v search.Value) { f.submissions.Record(v) },
	})
	t.Cleanup(f.session.Close)
	f.factory = NewViewFactory(f.session, f.submissions, "yaml")
	f.factory.SetRenderer(renderer.FallbackRenderer{})
	return f
}

func TestHelpPages(t *testing.T) {
	topics := HelpTopics()
	want := []string{"help", "keys", "syntax"}
	if strings.Join(topics, ",") != strings.Join(want, ",") {
		t.Errorf("HelpTopics() = %v, want %v", topics, want)
	}

	for _, name := range []string{"", "help", "Syntax", " KEYS "} {
		content, err := HelpPage(name)
		if err != nil {
			t.Errorf("HelpPage(%q) error = %v", name, err)
			continue
		}
		if !strings.HasPrefix(content, "# ") {
			t.Errorf("HelpPage(%q) should start with a heading", name)
		}
	}

	if _, err := HelpPage("missing"); !errors.Is(err, ErrUnknownTopic) {
		t.Errorf("HelpPage(missing) error = %v, want ErrUnknownTopic", err)
	}
}

func TestHelpProvider(t *testing.T) {
	p := HelpProvider{}

	content, err := p.FetchContent(nav.NavElement{Text: "Keys"})
	if err != nil || !strings.Contains(content, "# Keys") {
		t.Errorf("FetchContent(text=Keys) = %q, %v", content, err)
	}

	content, err = p.FetchContent(nav.NavElement{URL: "syntax", Text: "whatever"})
	if err != nil || !strings.Contains(content, "# Syntax") {
		t.Errorf("FetchContent(url=syntax) = %q, %v", content, err)
	}

	if _, err := p.FetchContent(nav.NavElement{Text: "nope"}); !errors.Is(err, ErrUnknownTopic) {
		t.Errorf("FetchContent(nope) error = %v, want ErrUnknownTopic", err)
	}
}

func TestViewFactory_CreateView(t *testing.T) {
	f := newViewFixture(t)

	sv, ok := f.factory.CreateView(model.SearchViewID, nil).(*SearchView)
	if !ok {
		t.Fatal("search view ID should create a *SearchView")
	}
	t.Cleanup(sv.Cleanup)

	hv, ok := f.factory.CreateView(model.HelpViewID, map[string]any{HelpPageParam: "syntax"}).(*HelpView)
	if !ok {
		t.Fatal("help view ID should create a *HelpView")
	}
	if hv.Page() != "syntax" {
		t.Errorf("help page = %q, want syntax", hv.Page())
	}

	if v := f.factory.CreateView(model.ViewID("nope"), nil); v != nil {
		t.Errorf("unknown view ID should create nil, got %T", v)
	}
}

func TestHelpView_UnknownPageFallsBackHome(t *testing.T) {
	hv := NewHelpView("missing")
	if hv.Page() != HelpHome {
		t.Errorf("Page() = %q, want %q", hv.Page(), HelpHome)
	}
	if hv.GetViewID() != model.HelpViewID {
		t.Errorf("GetViewID() = %q", hv.GetViewID())
	}
	if hv.NavigateBack() || hv.NavigateForward() {
		t.Error("fresh help view has no history")
	}

	ids := map[controller.ActionID]bool{}
	for _, a := range hv.GetActionRegistry().GetActions() {
		ids[a.ID] = true
	}
	if ids[controller.ActionNavigateBack] || ids[controller.ActionNavigateForward] {
		t.Error("history actions should be hidden without history")
	}
	if !ids["navigate_next_link"] {
		t.Error("link navigation action missing")
	}
}

func TestHelpView_Caption(t *testing.T) {
	hv := NewHelpView("keys")
	if got := hv.titleBar.Caption(); got != "Help: keys" {
		t.Errorf("caption = %q, want %q", got, "Help: keys")
	}
}

func TestCaptionRow_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 1)

	cr := NewCaptionRow("Help: keys")
	cr.SetRect(0, 0, 20, 1)
	cr.Draw(screen)
	screen.Show()

	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for i := 0; i < width; i++ {
		if len(cells[i].Runes) > 0 {
			b.WriteRune(cells[i].Runes[0])
		}
	}
	if got := b.String(); !strings.HasPrefix(got, " Help: keys") {
		t.Errorf("caption row = %q, want a padded caption", got)
	}
}

func TestSearchView_StatsAndFormat(t *testing.T) {
	f := newViewFixture(t)
	sv := NewSearchView(f.session, f.submissions, &ResultState{Format: result.FormatYAML}, renderer.FallbackRenderer{})
	t.Cleanup(sv.Cleanup)

	changes := 0
	sv.SetHeaderChangeHandler(func() { changes++ })

	stats := statMap(sv.GetStats())
	if stats["Tokens"] != "0" || stats["Mode"] != "filters" || stats["Submitted"] != "0" {
		t.Errorf("initial stats = %v", stats)
	}

	f.session.Select("author")
	if changes == 0 {
		t.Error("session change should notify the header")
	}
	stats = statMap(sv.GetStats())
	if stats["Tokens"] != "1" || stats["Mode"] != "values of author" {
		t.Errorf("stats after selecting author = %v", stats)
	}

	if got := sv.ToggleResultFormat(); got != result.FormatJSON {
		t.Errorf("ToggleResultFormat() = %q, want json", got)
	}
	if sv.Results().Format() != result.FormatJSON {
		t.Error("result pane should follow the toggled format")
	}
	if !strings.Contains(sv.Results().GetTitle(), "json") {
		t.Errorf("title = %q, want json", sv.Results().GetTitle())
	}
}

func TestSearchView_FormatSurvivesRecreation(t *testing.T) {
	f := newViewFixture(t)

	first := f.factory.CreateView(model.SearchViewID, nil).(*SearchView)
	first.ToggleResultFormat()
	first.Cleanup()

	second := f.factory.CreateView(model.SearchViewID, nil).(*SearchView)
	t.Cleanup(second.Cleanup)
	if second.Results().Format() != result.FormatJSON {
		t.Errorf("recreated view format = %q, want json", second.Results().Format())
	}
	if f.factory.ResultFormat() != result.FormatJSON {
		t.Errorf("factory format = %q, want json", f.factory.ResultFormat())
	}
}

func TestResultView_FollowsSubmissions(t *testing.T) {
	f := newViewFixture(t)
	rv := NewResultView(f.submissions, renderer.FallbackRenderer{}, "yaml")
	t.Cleanup(rv.Cleanup)

	if !strings.Contains(rv.GetText(true), "Type to search") {
		t.Errorf("placeholder missing:\n%s", rv.GetText(true))
	}

	f.session.SetSearchText("hello")
	f.session.Submit()

	text := rv.GetText(true)
	if !strings.Contains(text, "Submitted at") || !strings.Contains(text, "keywords") {
		t.Errorf("result pane should describe the submission:\n%s", text)
	}
}

func TestRootLayout_SwapsViews(t *testing.T) {
	f := newViewFixture(t)
	hc := model.NewHeaderConfig()
	lm := model.NewLayoutModel()
	hw := header.NewHeaderWidget(hc)
	t.Cleanup(hw.Cleanup)

	rl := NewRootLayout(hw, hc, lm, f.factory, nil)
	t.Cleanup(rl.Cleanup)

	var activated []model.ViewID
	rl.SetOnViewActivated(func(v controller.View) { activated = append(activated, v.GetViewID()) })

	lm.SetContent(model.SearchViewID, nil)
	first, ok := rl.GetContentView().(*SearchView)
	if !ok {
		t.Fatalf("content view = %T, want *SearchView", rl.GetContentView())
	}
	if rl.GetViewID() != model.SearchViewID {
		t.Errorf("GetViewID() = %q", rl.GetViewID())
	}
	if !hasAction(hc.GetViewActions(), controller.ActionClear) {
		t.Error("header should carry search view actions")
	}
	if !hasStat(hc.GetStats(), "Mode") {
		t.Error("header should carry search view stats")
	}

	// stats follow the session while the view is active
	f.session.Select("author")
	if got := statValue(hc.GetStats(), "Tokens"); got != "1" {
		t.Errorf("Tokens stat = %q, want 1", got)
	}

	// touch keeps the instance
	lm.Touch()
	if rl.GetContentView() != first {
		t.Error("Touch should not recreate the view")
	}

	lm.SetContent(model.HelpViewID, nil)
	if rl.GetViewID() != model.HelpViewID {
		t.Fatalf("GetViewID() = %q, want help", rl.GetViewID())
	}
	if hasAction(hc.GetViewActions(), controller.ActionClear) {
		t.Error("search actions should be replaced by help actions")
	}
	if got := statValue(hc.GetStats(), "Page"); got != HelpHome {
		t.Errorf("Page stat = %q, want %q", got, HelpHome)
	}

	if len(activated) != 2 || activated[0] != model.SearchViewID || activated[1] != model.HelpViewID {
		t.Errorf("activated = %v", activated)
	}
}

func TestRootLayout_HeaderVisibility(t *testing.T) {
	f := newViewFixture(t)
	hc := model.NewHeaderConfig()
	lm := model.NewLayoutModel()
	hw := header.NewHeaderWidget(hc)
	t.Cleanup(hw.Cleanup)

	rl := NewRootLayout(hw, hc, lm, f.factory, nil)
	t.Cleanup(rl.Cleanup)
	lm.SetContent(model.SearchViewID, nil)

	if rl.GetPrimitive().(interface{ GetItemCount() int }).GetItemCount() != 3 {
		t.Error("visible header adds header and spacer rows")
	}

	hc.ToggleUserPreference()
	if hc.IsVisible() {
		t.Fatal("header should be hidden after toggle")
	}
	if rl.GetPrimitive().(interface{ GetItemCount() int }).GetItemCount() != 1 {
		t.Error("hidden header leaves only the content area")
	}
}

func statMap(stats []controller.Stat) map[string]string {
	m := make(map[string]string, len(stats))
	for _, s := range stats {
		m[s.Name] = s.Value
	}
	return m
}

func hasAction(actions []model.HeaderAction, id controller.ActionID) bool {
	for _, a := range actions {
		if a.ID == string(id) {
			return true
		}
	}
	return false
}

func hasStat(stats []model.HeaderStat, name string) bool {
	for _, s := range stats {
		if s.Name == name {
			return true
		}
	}
	return false
}

func statValue(stats []model.HeaderStat, name string) string {
	for _, s := range stats {
		if s.Name == name {
			return s.Value
		}
	}
	return ""
}
