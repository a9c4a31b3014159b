package controller

import (
	"log/slog"

	"github.com/boolean-maybe/structsearch/model"
)

// SearchController handles search view actions that are not plain typing:
// clearing the input and recalling the last submitted value.
type SearchController struct {
	session     *model.SearchSession
	submissions *model.SubmissionLog
	registry    *ActionRegistry
}

// NewSearchController creates a search controller
func NewSearchController(session *model.SearchSession, submissions *model.SubmissionLog) *SearchController {
	return &SearchController{
		session:     session,
		submissions: submissions,
		registry:    SearchViewActions(),
	}
}

// GetActionRegistry returns the actions for the search view
func (sc *SearchController) GetActionRegistry() *ActionRegistry {
	return sc.registry
}

// GetSession returns the controlled session
func (sc *SearchController) GetSession() *model.SearchSession {
	return sc.session
}

// HandleAction processes a search view action
func (sc *SearchController) HandleAction(actionID ActionID) bool {
	switch actionID {
	case ActionClear:
		sc.session.Clear()
		return true
	case ActionRecall:
		return sc.recall()
	default:
		return false
	}
}

// recall loads the latest submission back into the input
func (sc *SearchController) recall() bool {
	if sc.submissions == nil {
		return false
	}
	latest, ok := sc.submissions.Latest()
	if !ok {
		return false
	}
	sc.session.SetValue(latest.Value)
	slog.Debug("recalled submission", "session", sc.session.ID(), "submittedAt", latest.SubmittedAt)
	return true
}
