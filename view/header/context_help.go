package header

import (
	"fmt"
	"strings"

	"github.com/boolean-maybe/structsearch/controller"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/util"

	"github.com/rivo/tview"
)

// cellData holds data for a single cell in the key binding grid
type cellData struct {
	key      string
	label    string
	keyLen   int
	labelLen int
	section  section
}

// ContextHelpWidget displays key bindings in a column-major grid:
// global bindings first, then the active view's bindings.
type ContextHelpWidget struct {
	*tview.TextView
	width int // visible width of the rendered grid
}

// NewContextHelpWidget creates a new context help display widget
func NewContextHelpWidget() *ContextHelpWidget {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetTextAlign(tview.AlignLeft)
	tv.SetWrap(false)

	return &ContextHelpWidget{TextView: tv}
}

// GetWidth returns the current calculated width of the content
func (chw *ContextHelpWidget) GetWidth() int {
	return chw.width
}

// SetActionsFromModel renders the global bindings plus the given view bindings
// and returns the visible width.
func (chw *ContextHelpWidget) SetActionsFromModel(viewActions []model.HeaderAction) int {
	globalActions := controller.DefaultGlobalActions().GetHeaderActions()
	globalIDs := make(map[controller.ActionID]bool, len(globalActions))
	for _, a := range globalActions {
		globalIDs[a.ID] = true
	}

	return chw.renderActionsGrid(globalActions, viewOnlyActions(viewActions, globalIDs))
}

// Primitive returns the underlying tview primitive
func (chw *ContextHelpWidget) Primitive() tview.Primitive {
	return chw.TextView
}

func (chw *ContextHelpWidget) renderActionsGrid(globalActions, viewActions []controller.Action) int {
	numRows := HeaderHeight

	// global bindings fill whole columns so view bindings start in a fresh one
	globalActions = padToFullRows(globalActions, numRows)
	globalCols := len(globalActions) / numRows
	viewCols := (len(viewActions) + numRows - 1) / numRows
	totalCols := globalCols + viewCols
	if totalCols == 0 {
		chw.SetText("")
		chw.width = 0
		return 0
	}

	grid := make([][]cellData, numRows)
	for i := range grid {
		grid[i] = make([]cellData, totalCols)
	}
	fillSection(grid, globalActions, 0, sectionGlobal)
	fillSection(grid, viewActions, globalCols, sectionView)

	maxKey := columnMax(grid, totalCols, func(c cellData) int { return c.keyLen })
	maxLabel := columnMax(grid, totalCols, func(c cellData) int { return c.labelLen })

	lines := make([]string, numRows)
	for row := range grid {
		lines[row] = buildGridRow(grid[row], maxKey, maxLabel)
	}
	chw.SetText(" " + strings.Join(lines, "\n "))

	chw.width = maxLineWidth(lines) + 1
	return chw.width
}

// fillSection places actions column-major starting at colOffset
func fillSection(grid [][]cellData, actions []controller.Action, colOffset int, s section) {
	numRows := len(grid)
	for i, action := range actions {
		if action.ID == "" {
			continue // padding
		}

		keyStr := util.FormatKeyBinding(action.Key, action.Rune, action.Modifier)
		grid[i%numRows][colOffset+i/numRows] = cellData{
			key:      keyStr,
			label:    action.Label,
			keyLen:   len([]rune(keyStr)) + 2,
			labelLen: len([]rune(action.Label)),
			section:  s,
		}
	}
}

func columnMax(grid [][]cellData, numCols int, extract func(cellData) int) []int {
	result := make([]int, numCols)
	for col := 0; col < numCols; col++ {
		for row := range grid {
			if n := extract(grid[row][col]); n > result[col] {
				result[col] = n
			}
		}
	}
	return result
}

func buildGridRow(rowData []cellData, maxKey, maxLabel []int) string {
	var line strings.Builder
	numCols := len(rowData)

	for col, cell := range rowData {
		last := col == numCols-1

		if cell.key == "" {
			if !last {
				line.WriteString(strings.Repeat(" ", maxKey[col]+1+maxLabel[col]+HeaderColumnSpacing))
			}
			continue
		}

		scheme := getColorScheme(cell.section)
		fmt.Fprintf(&line, "%s<%s>%s", scheme.KeyColor, cell.key, scheme.LabelColor)
		if pad := maxKey[col] - cell.keyLen; pad > 0 {
			line.WriteString(strings.Repeat(" ", pad))
		}
		line.WriteString(" ")
		line.WriteString(cell.label)

		if !last {
			if pad := maxLabel[col] - cell.labelLen + HeaderColumnSpacing; pad > 0 {
				line.WriteString(strings.Repeat(" ", pad))
			}
		}
	}

	return line.String()
}

// padToFullRows appends zero values until len(items) is a multiple of numRows
func padToFullRows[T any](items []T, numRows int) []T {
	if numRows <= 0 || len(items)%numRows == 0 {
		return items
	}
	padded := make([]T, len(items), len(items)+numRows-len(items)%numRows)
	copy(padded, items)
	for len(padded)%numRows != 0 {
		var zero T
		padded = append(padded, zero)
	}
	return padded
}

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := visibleWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// visibleWidth counts runes outside [tview] color tags
func visibleWidth(s string) int {
	count := 0
	inTag := false
	for _, r := range s {
		switch {
		case r == '[':
			inTag = true
		case inTag && r == ']':
			inTag = false
		case !inTag:
			count++
		}
	}
	return count
}
