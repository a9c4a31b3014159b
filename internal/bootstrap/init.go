package bootstrap

import (
	"log/slog"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/structsearch/catalog"
	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/controller"
	"github.com/boolean-maybe/structsearch/internal/app"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/store"
	"github.com/boolean-maybe/structsearch/typeahead"
	"github.com/boolean-maybe/structsearch/util/sysinfo"
	"github.com/boolean-maybe/structsearch/view"
	"github.com/boolean-maybe/structsearch/view/header"
)

// Components is the wired MVC stack on top of a tview application.
type Components struct {
	App          *tview.Application
	HeaderConfig *model.HeaderConfig
	LayoutModel  *model.LayoutModel
	Submissions  *model.SubmissionLog
	Session      *model.SearchSession
	Controllers  *Controllers
	InputRouter  *controller.InputRouter
	ViewFactory  *view.ViewFactory
	HeaderWidget *header.HeaderWidget
	RootLayout   *view.RootLayout
}

// Cleanup releases listeners and stops the session's timers.
func (c *Components) Cleanup() {
	c.RootLayout.Cleanup()
	c.HeaderWidget.Cleanup()
	c.Session.Close()
}

// BootstrapResult contains all initialized application components.
type BootstrapResult struct {
	*Components
	Cfg      *config.Config
	LogLevel slog.Level
	Store    *store.InMemoryStore
	Catalog  *catalog.Catalog
}

// Bootstrap orchestrates the complete application initialization sequence.
func Bootstrap() (*BootstrapResult, error) {
	// Phase 1: Configuration and logging
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logLevel := InitLogging(cfg)
	InitTerminal(sysinfo.NewSystemInfo())

	// Phase 2: Option store and filter catalog
	st := InitStore()
	cat, err := LoadCatalog(st)
	if err != nil {
		return nil, err
	}

	// Phase 3: Application with signal handling
	application := app.NewApp()
	app.SetupSignalHandler(application)

	// Phase 4: Models, controllers, views and wiring
	components := Assemble(application, cat, SessionSettingsFromConfig(cat), app.Dispatcher(application))
	slog.Info("bootstrap complete", "catalog", cat.Source, "session", components.Session.ID())

	return &BootstrapResult{
		Components: components,
		Cfg:        cfg,
		LogLevel:   logLevel,
		Store:      st,
		Catalog:    cat,
	}, nil
}

// Assemble builds and wires models, controllers and views over the
// application, then opens the search view. A nil dispatch runs typeahead
// results inline.
func Assemble(
	application *tview.Application,
	cat *catalog.Catalog,
	settings SessionSettings,
	dispatch typeahead.Dispatcher,
) *Components {
	// Models
	headerConfig, layoutModel := InitHeaderAndLayoutModels()
	InitHeaderBaseStats(headerConfig, cat)
	submissions := model.NewSubmissionLog(model.DefaultSubmissionLimit, nil)
	session := InitSession(cat, settings, submissions, dispatch)

	// Controllers and input routing
	controllers := BuildControllers(application, session, submissions)
	inputRouter := controller.NewInputRouter(controllers.Nav, controllers.Search, headerConfig)

	// Views
	viewFactory := view.NewViewFactory(session, submissions, config.GetOutputFormat())
	headerWidget := header.NewHeaderWidget(headerConfig)
	rootLayout := view.NewRootLayout(headerWidget, headerConfig, layoutModel, viewFactory, application)

	// Wiring
	wireOnViewActivated(rootLayout, application)
	wireNavigation(controllers.Nav, layoutModel, rootLayout)
	app.InstallGlobalInputCapture(application, inputRouter, controllers.Nav)

	// Initial view
	controllers.Nav.PushView(model.SearchViewID, nil)

	return &Components{
		App:          application,
		HeaderConfig: headerConfig,
		LayoutModel:  layoutModel,
		Submissions:  submissions,
		Session:      session,
		Controllers:  controllers,
		InputRouter:  inputRouter,
		ViewFactory:  viewFactory,
		HeaderWidget: headerWidget,
		RootLayout:   rootLayout,
	}
}

// wireOnViewActivated wires focus setters into views as they become active.
func wireOnViewActivated(rootLayout *view.RootLayout, app *tview.Application) {
	rootLayout.SetOnViewActivated(func(v controller.View) {
		if focusSettable, ok := v.(controller.FocusSettable); ok {
			focusSettable.SetFocusSetter(func(p tview.Primitive) {
				app.SetFocus(p)
			})
		}
	})
}

// wireNavigation wires navigation controller callbacks to keep LayoutModel
// and RootLayout in sync.
func wireNavigation(navController *controller.NavigationController, layoutModel *model.LayoutModel, rootLayout *view.RootLayout) {
	navController.SetOnViewChanged(func(viewID model.ViewID, params map[string]any) {
		layoutModel.SetContent(viewID, params)
	})
	navController.SetActiveViewGetter(rootLayout.GetContentView)
}
