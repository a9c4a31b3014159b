package view

import (
	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/util/gradient"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// captionLightenRatio sets how far the caption ramp lightens toward its right edge
const captionLightenRatio = 0.35

// CaptionRow is a one-line title with a horizontal background gradient
// spanning its full width. The caption is drawn left-aligned.
type CaptionRow struct {
	*tview.Box
	caption   []rune
	gradient  config.Gradient
	textColor tcell.Color
}

// NewCaptionRow creates a caption row using the configured caption colors
func NewCaptionRow(caption string) *CaptionRow {
	colors := config.GetColors()
	return &CaptionRow{
		Box:       tview.NewBox(),
		caption:   []rune(caption),
		gradient:  gradient.FromColor(colors.CaptionColor, captionLightenRatio, colors.CaptionFallback),
		textColor: colors.CaptionText,
	}
}

// SetCaption replaces the caption text
func (cr *CaptionRow) SetCaption(caption string) {
	cr.caption = []rune(caption)
}

// Caption returns the caption text
func (cr *CaptionRow) Caption() string {
	return string(cr.caption)
}

// Draw renders the caption over the gradient background
func (cr *CaptionRow) Draw(screen tcell.Screen) {
	cr.DrawForSubclass(screen, cr)

	x, y, width, height := cr.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	for col := 0; col < width; col++ {
		pos := 0.0
		if width > 1 {
			pos = float64(col) / float64(width-1)
		}
		style := tcell.StyleDefault.
			Foreground(cr.textColor).
			Background(gradient.InterpolateColor(cr.gradient, pos))

		// one cell of padding before the caption
		char := ' '
		if i := col - 1; i >= 0 && i < len(cr.caption) {
			char = cr.caption[i]
		}
		for row := 0; row < height; row++ {
			screen.SetContent(x+col, y+row, char, nil, style)
		}
	}
}
