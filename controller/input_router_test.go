package controller

import (
	"testing"

	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/search"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// stubView records the view hooks the router calls
type stubView struct {
	id       model.ViewID
	registry *ActionRegistry
	format   string
	back     bool
	forward  bool
	backN    int
	forwardN int
}

func (v *stubView) GetPrimitive() tview.Primitive       { return tview.NewBox() }
func (v *stubView) GetActionRegistry() *ActionRegistry { return v.registry }
func (v *stubView) GetViewID() model.ViewID            { return v.id }
func (v *stubView) OnFocus()                           {}
func (v *stubView) OnBlur()                            {}

func (v *stubView) ToggleResultFormat() string {
	if v.format == "yaml" {
		v.format = "json"
	} else {
		v.format = "yaml"
	}
	return v.format
}

func (v *stubView) NavigateBack() bool {
	v.backN++
	return v.back
}

func (v *stubView) NavigateForward() bool {
	v.forwardN++
	return v.forward
}

type routerFixture struct {
	router      *InputRouter
	nav         *NavigationController
	session     *model.SearchSession
	submissions *model.SubmissionLog
	header      *model.HeaderConfig
	views       map[model.ViewID]*stubView
	changes     []model.ViewID
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		nav:         NewNavigationController(nil),
		submissions: model.NewSubmissionLog(0, nil),
		header:      model.NewHeaderConfig(),
		views: map[model.ViewID]*stubView{
			model.SearchViewID: {id: model.SearchViewID, registry: SearchViewActions(), format: "yaml"},
			model.HelpViewID:   {id: model.HelpViewID, registry: HelpViewActions()},
		},
	}
	f.session = model.NewSearchSession(model.SessionConfig{
		Filters: []*search.Filter{{
			Option:    search.Option{Key: "author", Name: "Author"},
			Operators: []search.Option{{Key: "=", Name: "="}},
		}},
		OnSubmit: func(v search.Value) { f.submissions.Record(v) },
	})
	t.Cleanup(f.session.Close)

	f.nav.SetOnViewChanged(func(viewID model.ViewID, _ map[string]any) {
		f.changes = append(f.changes, viewID)
	})
	f.nav.SetActiveViewGetter(func() View {
		if v, ok := f.views[f.nav.CurrentViewID()]; ok {
			return v
		}
		return nil
	})
	f.nav.PushView(model.SearchViewID, nil)

	f.router = NewInputRouter(f.nav, NewSearchController(f.session, f.submissions), f.header)
	return f
}

func (f *routerFixture) send(key tcell.Key, mod tcell.ModMask) bool {
	return f.router.HandleInput(tcell.NewEventKey(key, 0, mod), f.nav.CurrentView())
}

func TestInputRouter_NilView(t *testing.T) {
	f := newRouterFixture(t)
	if f.router.HandleInput(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), nil) {
		t.Error("input without a current view should not be handled")
	}
}

func TestInputRouter_HelpToggle(t *testing.T) {
	f := newRouterFixture(t)

	if !f.send(tcell.KeyF1, tcell.ModNone) {
		t.Fatal("F1 should be handled")
	}
	if f.nav.CurrentViewID() != model.HelpViewID {
		t.Fatalf("current view = %v, want help", f.nav.CurrentViewID())
	}

	// F1 again closes help
	f.send(tcell.KeyF1, tcell.ModNone)
	if f.nav.CurrentViewID() != model.SearchViewID {
		t.Errorf("current view = %v, want search", f.nav.CurrentViewID())
	}

	want := []model.ViewID{model.SearchViewID, model.HelpViewID, model.SearchViewID}
	if len(f.changes) != len(want) {
		t.Fatalf("view changes = %v, want %v", f.changes, want)
	}
	for i := range want {
		if f.changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, f.changes[i], want[i])
		}
	}
}

func TestInputRouter_EscapeOnRootFallsThrough(t *testing.T) {
	f := newRouterFixture(t)

	if f.send(tcell.KeyEscape, tcell.ModNone) {
		t.Error("Esc on the search view should reach the input")
	}

	f.send(tcell.KeyF1, tcell.ModNone)
	if !f.send(tcell.KeyEscape, tcell.ModNone) {
		t.Error("Esc on help should go back")
	}
	if f.nav.CurrentViewID() != model.SearchViewID {
		t.Errorf("current view = %v, want search", f.nav.CurrentViewID())
	}
}

func TestInputRouter_ToggleHeader(t *testing.T) {
	f := newRouterFixture(t)

	if !f.send(tcell.KeyF10, tcell.ModNone) {
		t.Fatal("F10 should be handled")
	}
	if f.header.IsVisible() {
		t.Error("header should be hidden after F10")
	}
	f.send(tcell.KeyF10, tcell.ModNone)
	if !f.header.IsVisible() {
		t.Error("header should be visible after second F10")
	}
}

func TestInputRouter_SearchActions(t *testing.T) {
	f := newRouterFixture(t)

	f.session.Select("author") // single operator attaches automatically
	f.session.Select("ann")
	if len(f.session.Tokens()) != 1 {
		t.Fatalf("tokens = %v, want one tag", f.session.Tokens())
	}

	// recall with an empty log is not consumed
	if f.send(tcell.KeyCtrlR, tcell.ModCtrl) {
		t.Error("recall without submissions should not be handled")
	}

	if !f.session.Submit() {
		t.Fatal("submit failed")
	}

	if !f.send(tcell.KeyCtrlL, tcell.ModCtrl) {
		t.Fatal("Ctrl-L should be handled")
	}
	if len(f.session.Tokens()) != 0 {
		t.Fatalf("tokens after clear = %v", f.session.Tokens())
	}

	if !f.send(tcell.KeyCtrlR, tcell.ModCtrl) {
		t.Fatal("Ctrl-R should be handled")
	}
	if got := f.session.Tokens(); len(got) != 1 || got[0] != "author=ann" {
		t.Errorf("tokens after recall = %v, want [author=ann]", got)
	}

	if !f.send(tcell.KeyCtrlO, tcell.ModCtrl) {
		t.Fatal("Ctrl-O should be handled")
	}
	if got := f.views[model.SearchViewID].format; got != "json" {
		t.Errorf("format = %q, want json", got)
	}
}

func TestInputRouter_HelpNavigation(t *testing.T) {
	f := newRouterFixture(t)
	f.send(tcell.KeyF1, tcell.ModNone)
	help := f.views[model.HelpViewID]

	if f.send(tcell.KeyLeft, tcell.ModNone) {
		t.Error("Left without history should not be consumed")
	}
	help.forward = true
	if !f.send(tcell.KeyRight, tcell.ModNone) {
		t.Error("Right with forward history should be consumed")
	}
	if help.backN != 1 || help.forwardN != 1 {
		t.Errorf("navigation calls back=%d forward=%d, want 1/1", help.backN, help.forwardN)
	}

	// search actions do not apply on help
	if f.send(tcell.KeyCtrlL, tcell.ModCtrl) {
		t.Error("Ctrl-L should not be handled on help")
	}
}

func TestInputRouter_PlainKeysPassThrough(t *testing.T) {
	f := newRouterFixture(t)

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone),
	} {
		if f.router.HandleInput(ev, f.nav.CurrentView()) {
			t.Errorf("%s should reach the search input", ev.Name())
		}
	}
}
