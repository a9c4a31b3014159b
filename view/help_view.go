package view

import (
	"log/slog"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/controller"
	"github.com/boolean-maybe/structsearch/model"

	nav "github.com/boolean-maybe/navidown/navidown"
	navtview "github.com/boolean-maybe/navidown/navidown/tview"
	navutil "github.com/boolean-maybe/navidown/util"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// HelpView renders the embedded help pages as navigable markdown
type HelpView struct {
	root           *tview.Flex
	titleBar       *CaptionRow
	contentView    *navtview.Viewer
	provider       HelpProvider
	registry       *controller.ActionRegistry
	page           string
	onHeaderChange func()
}

// NewHelpView creates a help view opened on the given page (empty for home)
func NewHelpView(page string) *HelpView {
	hv := &HelpView{
		registry: controller.NewActionRegistry(),
	}
	hv.build(page)
	return hv
}

func (hv *HelpView) build(page string) {
	hv.titleBar = NewCaptionRow(model.HelpViewID.Title())

	hv.contentView = navtview.New()
	hv.contentView.SetAnsiConverter(navutil.NewAnsiConverter(true))
	hv.contentView.SetRenderer(nav.NewANSIRendererWithStyle(config.GetEffectiveTheme()))
	hv.contentView.SetBackgroundColor(config.GetContentBackgroundColor())

	hv.contentView.SetStateChangedHandler(func(_ *navtview.Viewer) {
		hv.UpdateNavigationActions()
	})

	hv.contentView.SetSelectHandler(func(v *navtview.Viewer, elem nav.NavElement) {
		if elem.Type != nav.NavElementURL {
			return
		}
		content, err := hv.provider.FetchContent(elem)
		if err != nil {
			slog.Warn("help link not found", "text", elem.Text, "url", elem.URL)
			v.SetMarkdown("# Error\n\nFailed to load content:\n\n```\n" + err.Error() + "\n```")
			return
		}
		hv.setPage(pageKey(elem))
		v.SetMarkdownWithSource(content, hv.page, true)
	})

	content, err := HelpPage(page)
	if err != nil {
		slog.Error("failed to load help page", "page", page, "error", err)
		page = HelpHome
		content, _ = HelpPage(HelpHome)
	}
	if page == "" {
		page = HelpHome
	}
	hv.setPage(page)
	hv.contentView.SetMarkdownWithSource(content, hv.page, false)

	hv.root = tview.NewFlex().SetDirection(tview.FlexRow)
	hv.root.AddItem(hv.titleBar, 1, 0, false)
	hv.root.AddItem(hv.contentView, 0, 1, true)

	hv.UpdateNavigationActions()
}

func (hv *HelpView) setPage(page string) {
	hv.page = page
	hv.titleBar.SetCaption(model.HelpViewID.Title() + ": " + page)
}

// Page returns the name of the last page opened by a link or on creation
func (hv *HelpView) Page() string {
	return hv.page
}

func (hv *HelpView) GetPrimitive() tview.Primitive {
	return hv.root
}

func (hv *HelpView) GetActionRegistry() *controller.ActionRegistry {
	return hv.registry
}

func (hv *HelpView) GetViewID() model.ViewID {
	return model.HelpViewID
}

func (hv *HelpView) OnFocus() {}

func (hv *HelpView) OnBlur() {}

// SetHeaderChangeHandler registers the callback run when history changes
func (hv *HelpView) SetHeaderChangeHandler(handler func()) {
	hv.onHeaderChange = handler
}

// GetStats reports the open page
func (hv *HelpView) GetStats() []controller.Stat {
	return []controller.Stat{{Name: "Page", Value: hv.page, Order: 1}}
}

// UpdateNavigationActions rebuilds the registry from the link history state
func (hv *HelpView) UpdateNavigationActions() {
	hv.registry = controller.NewActionRegistry()

	hv.registry.Register(controller.Action{
		ID:           "navigate_next_link",
		Key:          tcell.KeyTab,
		Label:        "Next Link",
		ShowInHeader: true,
	})
	hv.registry.Register(controller.Action{
		ID:           "navigate_prev_link",
		Key:          tcell.KeyBacktab,
		Label:        "Prev Link",
		ShowInHeader: true,
	})

	history := controller.HelpViewActions()
	for _, a := range history.GetActions() {
		if a.ID == controller.ActionNavigateBack && !hv.contentView.Core().CanGoBack() {
			continue
		}
		if a.ID == controller.ActionNavigateForward && !hv.contentView.Core().CanGoForward() {
			continue
		}
		hv.registry.Register(a)
	}

	if hv.onHeaderChange != nil {
		hv.onHeaderChange()
	}
}

// NavigateBack goes back in link history
func (hv *HelpView) NavigateBack() bool {
	if !hv.contentView.Core().CanGoBack() {
		return false
	}
	hv.forwardKey(tcell.KeyLeft)
	return true
}

// NavigateForward goes forward in link history
func (hv *HelpView) NavigateForward() bool {
	if !hv.contentView.Core().CanGoForward() {
		return false
	}
	hv.forwardKey(tcell.KeyRight)
	return true
}

// forwardKey hands a history key to the viewer, which owns the history
func (hv *HelpView) forwardKey(key tcell.Key) {
	if handler := hv.contentView.InputHandler(); handler != nil {
		handler(tcell.NewEventKey(key, 0, tcell.ModNone), func(tview.Primitive) {})
	}
}
