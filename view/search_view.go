package view

import (
	"strconv"

	"github.com/boolean-maybe/structsearch/component"
	"github.com/boolean-maybe/structsearch/controller"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/search"
	"github.com/boolean-maybe/structsearch/view/renderer"
	"github.com/boolean-maybe/structsearch/view/result"

	"github.com/rivo/tview"
)

// searchPaneExtraRows covers the tag rows, the input row and a spacer
// on top of the dropdown rows.
const searchPaneExtraRows = 4

// ResultState is the result pane state that outlives a search view instance
type ResultState struct {
	Format string
}

// SearchView stacks the structured search input above the result pane
type SearchView struct {
	root     *tview.Flex
	search   *component.StructuredSearch
	results  *ResultView
	session  *model.SearchSession
	log      *model.SubmissionLog
	state    *ResultState
	registry *controller.ActionRegistry

	sessionListenerID    int
	submissionListenerID int
	onHeaderChange       func()
	focusSetter          func(p tview.Primitive)
}

// NewSearchView creates a search view over an existing session
func NewSearchView(
	session *model.SearchSession,
	submissions *model.SubmissionLog,
	state *ResultState,
	mdRenderer renderer.MarkdownRenderer,
) *SearchView {
	if state == nil {
		state = &ResultState{Format: result.FormatYAML}
	}
	sv := &SearchView{
		session:  session,
		log:      submissions,
		state:    state,
		registry: controller.SearchViewActions(),
	}

	sv.search = component.NewStructuredSearch(session).
		SetMaxVisibleOptions(component.DefaultMaxVisibleOptions).
		SetPlaceholder("type to search, Enter to submit")
	sv.results = NewResultView(submissions, mdRenderer, state.Format)

	sv.root = tview.NewFlex().SetDirection(tview.FlexRow)
	sv.root.AddItem(sv.search, component.DefaultMaxVisibleOptions+searchPaneExtraRows, 0, true)
	sv.root.AddItem(sv.results, 0, 1, false)

	sv.sessionListenerID = session.AddListener(sv.headerChanged)
	if submissions != nil {
		sv.submissionListenerID = submissions.AddListener(sv.headerChanged)
	}
	return sv
}

func (sv *SearchView) headerChanged() {
	if sv.onHeaderChange != nil {
		sv.onHeaderChange()
	}
}

// Search returns the structured search widget
func (sv *SearchView) Search() *component.StructuredSearch {
	return sv.search
}

// Results returns the result pane
func (sv *SearchView) Results() *ResultView {
	return sv.results
}

func (sv *SearchView) GetPrimitive() tview.Primitive {
	return sv.root
}

func (sv *SearchView) GetActionRegistry() *controller.ActionRegistry {
	return sv.registry
}

func (sv *SearchView) GetViewID() model.ViewID {
	return model.SearchViewID
}

// OnFocus moves focus to the search input
func (sv *SearchView) OnFocus() {
	if sv.focusSetter != nil {
		sv.focusSetter(sv.search)
	}
}

func (sv *SearchView) OnBlur() {}

// SetFocusSetter sets the callback used to move focus to the search input
func (sv *SearchView) SetFocusSetter(setter func(p tview.Primitive)) {
	sv.focusSetter = setter
}

// SetHeaderChangeHandler registers the callback run when stats change
func (sv *SearchView) SetHeaderChangeHandler(handler func()) {
	sv.onHeaderChange = handler
}

// ToggleResultFormat switches the result pane between yaml and json
func (sv *SearchView) ToggleResultFormat() string {
	sv.state.Format = result.NextFormat(sv.results.Format())
	sv.results.SetFormat(sv.state.Format)
	sv.headerChanged()
	return sv.state.Format
}

// GetStats reports the token count, the classification mode and the
// number of submissions
func (sv *SearchView) GetStats() []controller.Stat {
	c := sv.session.Classification()
	mode := c.Mode.String()
	if c.LastFilter != nil && c.Mode != search.ModeFilters {
		mode += " of " + c.LastFilter.Key
	}
	if sv.session.Loading() {
		mode += " …"
	}

	submitted := 0
	if sv.log != nil {
		submitted = sv.log.Len()
	}
	return []controller.Stat{
		{Name: "Tokens", Value: strconv.Itoa(len(sv.session.Tokens())), Order: 10},
		{Name: "Mode", Value: mode, Order: 11},
		{Name: "Submitted", Value: strconv.Itoa(submitted), Order: 12},
	}
}

// Cleanup detaches the view from the session and the submission log
func (sv *SearchView) Cleanup() {
	sv.session.RemoveListener(sv.sessionListenerID)
	if sv.log != nil {
		sv.log.RemoveListener(sv.submissionListenerID)
	}
	sv.search.Cleanup()
	sv.results.Cleanup()
}
