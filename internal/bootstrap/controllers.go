package bootstrap

import (
	"github.com/rivo/tview"

	"github.com/boolean-maybe/structsearch/controller"
	"github.com/boolean-maybe/structsearch/model"
)

// Controllers holds all application controllers.
type Controllers struct {
	Nav    *controller.NavigationController
	Search *controller.SearchController
}

// BuildControllers constructs the navigation and search controllers.
func BuildControllers(
	app *tview.Application,
	session *model.SearchSession,
	submissions *model.SubmissionLog,
) *Controllers {
	return &Controllers{
		Nav:    controller.NewNavigationController(app),
		Search: controller.NewSearchController(session, submissions),
	}
}
