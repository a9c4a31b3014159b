package viewer

import (
	"fmt"

	nav "github.com/boolean-maybe/navidown/navidown"
	navtview "github.com/boolean-maybe/navidown/navidown/tview"
	navutil "github.com/boolean-maybe/navidown/util"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/view"
)

// Standalone help viewer: renders the embedded help pages with navidown,
// following links between pages without starting the search UI.

// Run opens the help viewer on a topic (empty for the home page).
func Run(topic string) error {
	content, source, err := LoadTopic(topic)
	if err != nil {
		return err
	}

	app := tview.NewApplication()
	viewer := NewViewer(content, source)

	app.SetRoot(viewer, true).EnableMouse(false)
	if err := app.Run(); err != nil {
		return fmt.Errorf("viewer error: %w", err)
	}
	return nil
}

// LoadTopic returns a help page and the source name used for link history.
func LoadTopic(topic string) (string, string, error) {
	content, err := view.HelpPage(topic)
	if err != nil {
		return "", "", fmt.Errorf("load help topic: %w", err)
	}
	if topic == "" {
		topic = view.HelpHome
	}
	return content, topic, nil
}

// NewViewer creates a navidown text viewer showing content, with links
// resolved against the embedded help pages.
func NewViewer(content, source string) *navtview.TextViewViewer {
	viewer := navtview.NewTextView()
	viewer.SetAnsiConverter(navutil.NewAnsiConverter(true))
	viewer.SetRenderer(nav.NewANSIRendererWithStyle(config.GetEffectiveTheme()))
	viewer.SetBackgroundColor(config.GetContentBackgroundColor())

	provider := view.HelpProvider{}
	viewer.SetMarkdownWithSource(content, source, false)

	viewer.SetSelectHandler(func(v *navtview.TextViewViewer, elem nav.NavElement) {
		if elem.Type != nav.NavElementURL {
			return
		}
		content, err := provider.FetchContent(elem)
		if err != nil {
			v.SetMarkdown(formatErrorContent(err))
			return
		}
		if content == "" {
			return
		}
		v.SetMarkdownWithSource(content, elem.Text, true)
	})
	return viewer
}

func formatErrorContent(err error) string {
	return "# Error\n\n```\n" + err.Error() + "\n```"
}
