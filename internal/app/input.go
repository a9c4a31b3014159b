package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/structsearch/controller"
)

// InstallGlobalInputCapture routes every key through the input router
// before the focused widget sees it. Consumed keys stop here.
func InstallGlobalInputCapture(app *tview.Application, inputRouter *controller.InputRouter, navController *controller.NavigationController) {
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if inputRouter.HandleInput(event, navController.CurrentView()) {
			return nil
		}
		return event
	})
}
