package header

import (
	"github.com/boolean-maybe/structsearch/controller"
	"github.com/boolean-maybe/structsearch/model"
)

// toControllerAction converts a model.HeaderAction back to controller.Action
func toControllerAction(a model.HeaderAction) controller.Action {
	return controller.Action{
		ID:           controller.ActionID(a.ID),
		Key:          a.Key,
		Rune:         a.Rune,
		Label:        a.Label,
		Modifier:     a.Modifier,
		ShowInHeader: a.ShowInHeader,
	}
}

// FromRegistry converts a registry's header actions to model actions.
// The model keeps its own copy so it does not depend on the controller.
func FromRegistry(registry *controller.ActionRegistry) []model.HeaderAction {
	if registry == nil {
		return nil
	}

	actions := registry.GetHeaderActions()
	result := make([]model.HeaderAction, len(actions))
	for i, a := range actions {
		result[i] = model.HeaderAction{
			ID:           string(a.ID),
			Key:          a.Key,
			Rune:         a.Rune,
			Label:        a.Label,
			Modifier:     a.Modifier,
			ShowInHeader: a.ShowInHeader,
		}
	}
	return result
}

// viewOnlyActions drops hidden, global and duplicate actions, keeping order
func viewOnlyActions(viewActions []model.HeaderAction, globalIDs map[controller.ActionID]bool) []controller.Action {
	var result []controller.Action
	seen := make(map[controller.ActionID]bool)

	for _, a := range viewActions {
		if !a.ShowInHeader {
			continue
		}
		id := controller.ActionID(a.ID)
		if globalIDs[id] || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, toControllerAction(a))
	}
	return result
}
