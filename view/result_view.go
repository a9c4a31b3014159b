package view

import (
	"fmt"
	"log/slog"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/view/renderer"
	"github.com/boolean-maybe/structsearch/view/result"

	"github.com/rivo/tview"
)

// ResultView shows the latest submission rendered as markdown
type ResultView struct {
	*tview.TextView

	submissions *model.SubmissionLog
	renderer    renderer.MarkdownRenderer
	format      string
	listenerID  int
}

// NewResultView creates a result pane following the submission log
func NewResultView(submissions *model.SubmissionLog, mdRenderer renderer.MarkdownRenderer, format string) *ResultView {
	colors := config.GetColors()
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(colors.ResultBorderColor)
	tv.SetTitleColor(colors.ResultTitleColor)
	tv.SetTextColor(config.GetContentTextColor())
	tv.SetBackgroundColor(config.GetContentBackgroundColor())

	rv := &ResultView{
		TextView:    tv,
		submissions: submissions,
		renderer:    mdRenderer,
		format:      result.ParseFormat(format),
	}
	if submissions != nil {
		rv.listenerID = submissions.AddListener(rv.Refresh)
	}
	rv.Refresh()
	return rv
}

// Format returns the current output format
func (rv *ResultView) Format() string {
	return rv.format
}

// SetFormat switches the output format and re-renders
func (rv *ResultView) SetFormat(format string) {
	rv.format = result.ParseFormat(format)
	rv.Refresh()
}

// Refresh renders the latest submission, or the placeholder
func (rv *ResultView) Refresh() {
	rv.SetTitle(fmt.Sprintf(" Result (%s) ", rv.format))

	md := result.Placeholder
	if rv.submissions != nil {
		if latest, ok := rv.submissions.Latest(); ok {
			rendered, err := result.Markdown(latest, rv.format)
			if err != nil {
				slog.Error("failed to describe submission", "error", err)
				rendered = "# Error\n\n```\n" + err.Error() + "\n```"
			}
			md = rendered
		}
	}

	out, err := rv.renderer.Render(md)
	if err != nil {
		slog.Warn("markdown render failed, showing raw text", "error", err)
		out = md
	}
	rv.SetText(tview.TranslateANSI(out))
	rv.ScrollToBeginning()
}

// Cleanup unsubscribes from the submission log
func (rv *ResultView) Cleanup() {
	if rv.submissions != nil {
		rv.submissions.RemoveListener(rv.listenerID)
	}
}
