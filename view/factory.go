package view

import (
	"log/slog"

	"github.com/boolean-maybe/structsearch/controller"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/view/renderer"
	"github.com/boolean-maybe/structsearch/view/result"
)

// HelpPageParam is the view param naming the help page to open
const HelpPageParam = "page"

// ViewFactory creates views on demand. It holds the shared state views are
// built over: the session, the submission log and the result pane state.
type ViewFactory struct {
	session     *model.SearchSession
	submissions *model.SubmissionLog
	resultState *ResultState
	renderer    renderer.MarkdownRenderer
}

// NewViewFactory creates a view factory
func NewViewFactory(session *model.SearchSession, submissions *model.SubmissionLog, format string) *ViewFactory {
	return &ViewFactory{
		session:     session,
		submissions: submissions,
		resultState: &ResultState{Format: result.ParseFormat(format)},
		renderer:    renderer.New(),
	}
}

// SetRenderer replaces the markdown renderer used by new views
func (f *ViewFactory) SetRenderer(r renderer.MarkdownRenderer) {
	f.renderer = r
}

// ResultFormat returns the format the result pane currently uses
func (f *ViewFactory) ResultFormat() string {
	return f.resultState.Format
}

// CreateView instantiates a view by ID with optional parameters
func (f *ViewFactory) CreateView(viewID model.ViewID, params map[string]any) controller.View {
	switch viewID {
	case model.SearchViewID:
		return NewSearchView(f.session, f.submissions, f.resultState, f.renderer)
	case model.HelpViewID:
		page, _ := params[HelpPageParam].(string)
		return NewHelpView(page)
	default:
		slog.Error("unknown view ID", "viewID", viewID)
		return nil
	}
}
