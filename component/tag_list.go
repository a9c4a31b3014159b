package component

import (
	"strings"

	"github.com/boolean-maybe/structsearch/config"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Chip is a single tag rendered by TagList.
type Chip struct {
	Label      string
	Background tcell.Color // tcell.ColorDefault uses the list's background
	Disabled   bool
}

// text returns the padded chip text as drawn on screen.
func (c Chip) text() string {
	return " " + c.Label + " "
}

// TagList displays chips separated by a space with wrapping.
// Chips are never broken in the middle; wrapping occurs at chip boundaries.
type TagList struct {
	*tview.Box
	chips         []Chip
	fgColor       tcell.Color
	bgColor       tcell.Color
	disabledColor tcell.Color
}

// NewTagList creates a new TagList component.
func NewTagList(chips []Chip) *TagList {
	box := tview.NewBox()
	box.SetBorder(false)
	colors := config.GetColors()
	return &TagList{
		Box:           box,
		chips:         chips,
		fgColor:       colors.TagForeground,
		bgColor:       colors.TagBackground,
		disabledColor: colors.TagDisabledForeground,
	}
}

// SetChips updates the chips to display.
func (tl *TagList) SetChips(chips []Chip) *TagList {
	tl.chips = chips
	return tl
}

// GetChips returns the current chips.
func (tl *TagList) GetChips() []Chip {
	return tl.chips
}

// SetColors sets the foreground and default background colors.
func (tl *TagList) SetColors(fg, bg tcell.Color) *TagList {
	tl.fgColor = fg
	tl.bgColor = bg
	return tl
}

// Height returns the number of rows the chips occupy at the given width.
func (tl *TagList) Height(width int) int {
	return len(tl.WrapChips(width))
}

// Draw renders the TagList component.
func (tl *TagList) Draw(screen tcell.Screen) {
	tl.DrawForSubclass(screen, tl)
	x, y, width, height := tl.GetInnerRect()

	if width <= 0 || height <= 0 {
		return
	}

	spaceStyle := tcell.StyleDefault.Background(config.GetContentBackgroundColor())

	currentX := x
	currentY := y

	for i, chip := range tl.chips {
		text := []rune(chip.text())
		textLen := len(text)

		if currentX > x && currentX+textLen > x+width {
			currentY++
			currentX = x
			if currentY >= y+height {
				break
			}
		}

		// narrow displays truncate the chip
		if textLen > width {
			text = text[:width]
			textLen = width
		}

		style := tl.chipStyle(chip)
		for j, ch := range text {
			screen.SetContent(currentX+j, currentY, ch, nil, style)
		}
		currentX += textLen

		if i < len(tl.chips)-1 && currentX < x+width {
			screen.SetContent(currentX, currentY, ' ', nil, spaceStyle)
			currentX++
		}
	}
}

func (tl *TagList) chipStyle(chip Chip) tcell.Style {
	bg := tl.bgColor
	if chip.Background != tcell.ColorDefault {
		bg = chip.Background
	}
	style := tcell.StyleDefault.Foreground(tl.fgColor).Background(bg)
	if chip.Disabled {
		style = style.Foreground(tl.disabledColor).StrikeThrough(true)
	}
	return style
}

// WrapChips returns the wrapped lines of padded chip text for display.
func (tl *TagList) WrapChips(width int) []string {
	if width <= 0 {
		return []string{}
	}

	var lines []string
	var currentLine strings.Builder
	currentLen := 0

	for _, chip := range tl.chips {
		text := chip.text()
		textLen := len([]rune(text))

		if currentLen > 0 && currentLen+1+textLen > width {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			currentLine.WriteRune(' ')
			currentLen++
		}
		currentLine.WriteString(text)
		currentLen += textLen
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return lines
}
