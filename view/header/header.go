package header

import (
	"github.com/boolean-maybe/structsearch/model"

	"github.com/rivo/tview"
)

// Header layout constants
const (
	HeaderHeight        = 4  // rows; also the number of rows in the key grid
	HeaderColumnSpacing = 2  // blanks between key grid columns
	StatsWidth          = 34 // columns reserved for the stats block
)

// HeaderWidget shows stats on the left and context help on the right.
// It re-renders whenever the HeaderConfig changes.
type HeaderWidget struct {
	*tview.Flex

	stats       *StatsWidget
	contextHelp *ContextHelpWidget

	headerConfig *model.HeaderConfig
	listenerID   int
}

// NewHeaderWidget creates a header bound to the given config
func NewHeaderWidget(headerConfig *model.HeaderConfig) *HeaderWidget {
	hw := &HeaderWidget{
		Flex:         tview.NewFlex().SetDirection(tview.FlexColumn),
		stats:        NewStatsWidget(),
		contextHelp:  NewContextHelpWidget(),
		headerConfig: headerConfig,
	}

	hw.listenerID = headerConfig.AddListener(hw.refresh)
	hw.refresh()
	return hw
}

// refresh re-renders both halves from the header config
func (hw *HeaderWidget) refresh() {
	hw.stats.SetStats(hw.headerConfig.GetStats())
	width := hw.contextHelp.SetActionsFromModel(hw.headerConfig.GetViewActions())

	hw.Clear()
	hw.AddItem(hw.stats, StatsWidth, 0, false)
	hw.AddItem(tview.NewBox(), 0, 1, false)
	hw.AddItem(hw.contextHelp, width, 0, false)
}

// Stats exposes the stats widget
func (hw *HeaderWidget) Stats() *StatsWidget {
	return hw.stats
}

// ContextHelp exposes the key binding widget
func (hw *HeaderWidget) ContextHelp() *ContextHelpWidget {
	return hw.contextHelp
}

// Cleanup removes the config listener
func (hw *HeaderWidget) Cleanup() {
	hw.headerConfig.RemoveListener(hw.listenerID)
}
