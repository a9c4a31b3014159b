package header

import (
	"fmt"
	"strings"
	"sync"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/model"

	"github.com/rivo/tview"
)

// StatsWidget displays name/value stats, one per line, values aligned
type StatsWidget struct {
	*tview.TextView

	mu       sync.RWMutex
	stats    []model.HeaderStat
	maxStats int
}

// NewStatsWidget creates a new stats display widget
func NewStatsWidget() *StatsWidget {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetTextAlign(tview.AlignLeft)
	tv.SetWrap(false)

	return &StatsWidget{
		TextView: tv,
		maxStats: HeaderHeight,
	}
}

// SetStats replaces the displayed stats. Stats are expected in display order;
// anything past the header height is dropped.
func (sw *StatsWidget) SetStats(stats []model.HeaderStat) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if len(stats) > sw.maxStats {
		stats = stats[:sw.maxStats]
	}
	sw.stats = append(sw.stats[:0], stats...)
	sw.update()
}

// GetKeys returns the names of the displayed stats
func (sw *StatsWidget) GetKeys() []string {
	sw.mu.RLock()
	defer sw.mu.RUnlock()

	keys := make([]string, len(sw.stats))
	for i, s := range sw.stats {
		keys[i] = s.Name
	}
	return keys
}

// Primitive returns the underlying tview primitive
func (sw *StatsWidget) Primitive() tview.Primitive {
	return sw.TextView
}

// update refreshes the text (must be called with lock held)
func (sw *StatsWidget) update() {
	if len(sw.stats) == 0 {
		sw.SetText("")
		return
	}

	maxLabelLen := 0
	for _, s := range sw.stats {
		if n := len([]rune(s.Name)); n > maxLabelLen {
			maxLabelLen = n
		}
	}

	colors := config.GetColors()
	lines := make([]string, 0, len(sw.stats))
	for _, s := range sw.stats {
		padding := strings.Repeat(" ", maxLabelLen-len([]rune(s.Name)))
		lines = append(lines, fmt.Sprintf("%s%s:%s%s %s", colors.HeaderInfoLabel, s.Name, colors.HeaderInfoValue, padding, tview.Escape(s.Value)))
	}
	sw.SetText(strings.Join(lines, "\n"))
}
