package component

import (
	"fmt"
	"strings"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/search"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// DefaultMaxVisibleOptions caps the dropdown height.
const DefaultMaxVisibleOptions = 8

// StructuredSearch is the structured-search input: committed tags on top,
// a text input below them and a dropdown of the options the session
// presents next. All state lives in the session; the widget only renders it
// and translates keys.
//
// Keys: Up/Down move the highlight, Enter picks the highlighted option or
// submits, Tab accepts the completion hint or ends a multi-value tag,
// Esc commits typed text, Backspace on an empty input removes the last tag.
type StructuredSearch struct {
	*tview.Box
	session    *model.SearchSession
	tags       *TagList
	input      *tview.InputField
	choices    []model.Choice // visible choices after text filtering
	highlight  int            // index into choices, -1 when none
	hint       string
	maxVisible int
	listenerID int
	hintColor  tcell.Color
}

// NewStructuredSearch creates the widget and subscribes it to the session.
func NewStructuredSearch(session *model.SearchSession) *StructuredSearch {
	colors := config.GetColors()

	input := tview.NewInputField()
	input.SetFieldBackgroundColor(colors.SearchBackgroundColor)
	input.SetFieldTextColor(colors.SearchTextColor)
	input.SetLabelColor(colors.SearchPromptColor)
	input.SetPlaceholderTextColor(colors.SearchPlaceholder)

	ss := &StructuredSearch{
		Box:        tview.NewBox(),
		session:    session,
		tags:       NewTagList(nil),
		input:      input,
		highlight:  -1,
		maxVisible: DefaultMaxVisibleOptions,
		hintColor:  colors.CompletionHintColor,
	}
	ss.listenerID = session.AddListener(ss.refresh)
	ss.refresh()
	return ss
}

// Session returns the session driven by the widget.
func (ss *StructuredSearch) Session() *model.SearchSession {
	return ss.session
}

// SetMaxVisibleOptions sets how many dropdown rows are drawn at most.
func (ss *StructuredSearch) SetMaxVisibleOptions(n int) *StructuredSearch {
	if n > 0 {
		ss.maxVisible = n
	}
	return ss
}

// SetPlaceholder sets the text shown while the input is empty.
func (ss *StructuredSearch) SetPlaceholder(text string) *StructuredSearch {
	ss.input.SetPlaceholder(text)
	return ss
}

// Choices returns the choices currently listed in the dropdown.
func (ss *StructuredSearch) Choices() []model.Choice {
	return ss.choices
}

// Highlighted returns the highlighted choice index, -1 when none.
func (ss *StructuredSearch) Highlighted() int {
	return ss.highlight
}

// Hint returns the completion hint drawn after the typed text.
func (ss *StructuredSearch) Hint() string {
	return ss.hint
}

// Cleanup unsubscribes from the session.
func (ss *StructuredSearch) Cleanup() {
	ss.session.RemoveListener(ss.listenerID)
}

// refresh pulls the session state into the child widgets.
func (ss *StructuredSearch) refresh() {
	if ss.input.GetText() != ss.session.SearchText() {
		ss.input.SetText(ss.session.SearchText())
	}
	ss.input.SetLabel(promptLabel(ss.session.Classification()))
	ss.tags.SetChips(ss.buildChips())
	ss.updateChoices()
}

func (ss *StructuredSearch) buildChips() []Chip {
	tags := ss.session.Tags()
	result := make([]Chip, 0, len(tags))
	for _, tag := range tags {
		bg := tcell.ColorDefault
		if tag.Filter != nil {
			bg = config.ParseTagColor(tag.Filter.TagColor, tcell.ColorDefault)
		}
		result = append(result, Chip{
			Label:      ChipLabel(tag),
			Background: bg,
			Disabled:   tag.Disabled,
		})
	}
	return result
}

// updateChoices filters the presented options by the typed text and resets
// the highlight. Asynchronous results are already matched by the provider.
func (ss *StructuredSearch) updateChoices() {
	text := strings.ToLower(strings.TrimSpace(ss.session.SearchText()))
	c := ss.session.Classification()
	async := c.AwaitingValue() && c.LastFilter.IsAsync()

	all := ss.session.Options()
	ss.choices = make([]model.Choice, 0, len(all))
	for _, choice := range all {
		if text == "" || async || matchesChoice(choice, text) {
			ss.choices = append(ss.choices, choice)
		}
	}

	ss.highlight = -1
	if text != "" {
		ss.highlight = ss.nextEnabled(-1, 1)
	}
	ss.updateHint()
}

func matchesChoice(choice model.Choice, text string) bool {
	return strings.Contains(strings.ToLower(choice.Key), text) ||
		strings.Contains(strings.ToLower(choice.Label()), text)
}

// updateHint recalculates the completion hint: the rest of the single
// choice whose key starts with the typed text.
func (ss *StructuredSearch) updateHint() {
	ss.hint = ""
	text := ss.session.SearchText()
	if text == "" {
		return
	}

	var matches []string
	for _, choice := range ss.choices {
		if choice.Disabled {
			continue
		}
		if rest, ok := completionSuffix(choice.Key, text); ok {
			matches = append(matches, rest)
		}
	}
	if len(matches) == 1 {
		ss.hint = matches[0]
	}
}

// completionSuffix returns the part of key after a case-insensitive prefix
// text. Both the comparison and the slice use key's own bytes.
func completionSuffix(key, text string) (string, bool) {
	if len(key) < len(text) || !strings.EqualFold(key[:len(text)], text) {
		return "", false
	}
	return key[len(text):], true
}

// nextEnabled returns the next enabled choice from index in direction dir,
// or -1 when there is none.
func (ss *StructuredSearch) nextEnabled(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(ss.choices); i += dir {
		if !ss.choices[i].Disabled {
			return i
		}
	}
	return -1
}

// Focus focuses the input so it draws its cursor.
func (ss *StructuredSearch) Focus(delegate func(p tview.Primitive)) {
	ss.Box.Focus(delegate)
	ss.input.Focus(delegate)
}

// Blur commits typed text and ends multi-value mode.
func (ss *StructuredSearch) Blur() {
	ss.input.Blur()
	ss.Box.Blur()
	ss.session.Blur()
}

// Draw renders tags, input, hint and dropdown.
func (ss *StructuredSearch) Draw(screen tcell.Screen) {
	ss.DrawForSubclass(screen, ss)
	x, y, width, height := ss.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	row := y
	if len(ss.tags.GetChips()) > 0 {
		tagHeight := min(ss.tags.Height(width), height-1)
		if tagHeight > 0 {
			ss.tags.SetRect(x, row, width, tagHeight)
			ss.tags.Draw(screen)
			row += tagHeight
		}
	}
	if row >= y+height {
		return
	}

	ss.input.SetRect(x, row, width, 1)
	ss.input.Draw(screen)
	ss.drawHint(screen, x, row, width)
	row++

	ss.drawOptions(screen, x, row, width, y+height-row)
}

func (ss *StructuredSearch) drawHint(screen tcell.Screen, x, y, width int) {
	if ss.hint == "" {
		return
	}
	hintX := x + tview.TaggedStringWidth(ss.input.GetLabel()) + tview.TaggedStringWidth(tview.Escape(ss.input.GetText()))
	if hintX >= x+width {
		return
	}
	tview.Print(screen, tview.Escape(ss.hint), hintX, y, x+width-hintX, tview.AlignLeft, ss.hintColor)
}

func (ss *StructuredSearch) drawOptions(screen tcell.Screen, x, y, width, height int) {
	if height <= 0 {
		return
	}
	colors := config.GetColors()

	if ss.session.Loading() {
		tview.Print(screen, colors.OptionLoadingColor+"  loading…", x, y, width, tview.AlignLeft, tcell.ColorDefault)
		return
	}
	if len(ss.choices) == 0 {
		if msg := ss.emptyMessage(); msg != "" {
			tview.Print(screen, colors.OptionNotFoundColor+"  "+tview.Escape(msg), x, y, width, tview.AlignLeft, tcell.ColorDefault)
		}
		return
	}

	rows := min(height, ss.maxVisible, len(ss.choices))
	// keep the highlight in view
	first := 0
	if ss.highlight >= rows {
		first = ss.highlight - rows + 1
	}

	for i := 0; i < rows; i++ {
		idx := first + i
		choice := ss.choices[idx]
		line := formatChoice(choice, colors)
		if idx == ss.highlight {
			style := tcell.StyleDefault.Background(colors.OptionSelectedBack)
			for col := x; col < x+width; col++ {
				screen.SetContent(col, y+i, ' ', nil, style)
			}
			tview.Print(screen, line, x, y+i, width, tview.AlignLeft, colors.OptionSelectedText)
			continue
		}
		tview.Print(screen, line, x, y+i, width, tview.AlignLeft, colors.OptionTextColor)
	}
}

// emptyMessage explains an empty dropdown.
func (ss *StructuredSearch) emptyMessage() string {
	text := strings.TrimSpace(ss.session.SearchText())
	c := ss.session.Classification()
	switch {
	case c.AwaitingValue() && text != "":
		return fmt.Sprintf("no suggestions, Enter keeps %q", text)
	case c.AwaitingValue():
		return "type a value"
	case text != "":
		return fmt.Sprintf("no matching filters, Enter searches %q", text)
	default:
		return ""
	}
}

// formatChoice renders one dropdown row with tview color tags.
func formatChoice(choice model.Choice, colors *config.ColorConfig) string {
	marker := "  "
	switch {
	case choice.Active:
		marker = colors.OptionActiveMarker + "✓ [-]"
	case choice.Group:
		marker = colors.OptionGroupMarker + "▸ [-]"
	}

	label := tview.Escape(choice.Label())
	if choice.Icon != "" {
		label = tview.Escape(choice.Icon) + " " + label
	}
	if choice.Disabled {
		label = colors.OptionDisabledColor + label + "[-]"
	}

	if hint := choice.Hint(); hint != "" {
		label += "  " + colors.OptionSubTextColor + tview.Escape(hint) + "[-]"
	}
	return marker + label
}

// InputHandler translates keys into session operations.
func (ss *StructuredSearch) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return ss.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			ss.moveHighlight(-1)
		case tcell.KeyDown:
			ss.moveHighlight(1)
		case tcell.KeyEnter:
			if choice, ok := ss.highlighted(); ok {
				ss.session.Select(choice.Key)
				return
			}
			ss.session.KeyDown(model.KeyEvent{Key: model.KeyEnter})
		case tcell.KeyTab:
			if ss.session.KeyDown(model.KeyEvent{Key: model.KeyTab}) {
				return
			}
			ss.acceptCompletion()
		case tcell.KeyEscape:
			ss.session.KeyDown(model.KeyEvent{Key: model.KeyEscape})
			ss.session.Blur()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if ss.session.KeyDown(model.KeyEvent{Key: model.KeyBackspace}) {
				return
			}
			ss.forwardToInput(event, setFocus)
		default:
			if event.Key() == tcell.KeyRune {
				ss.session.KeyDown(model.KeyEvent{Key: model.KeyRune, Rune: event.Rune()})
			}
			ss.forwardToInput(event, setFocus)
		}
	})
}

// forwardToInput lets the input edit its text and reports the new text to
// the session.
func (ss *StructuredSearch) forwardToInput(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	before := ss.input.GetText()
	if handler := ss.input.InputHandler(); handler != nil {
		handler(event, setFocus)
	}
	if after := ss.input.GetText(); after != before {
		ss.session.SetSearchText(after)
	}
}

func (ss *StructuredSearch) moveHighlight(dir int) {
	if next := ss.nextEnabled(ss.highlight, dir); next >= 0 {
		ss.highlight = next
	}
}

func (ss *StructuredSearch) highlighted() (model.Choice, bool) {
	if ss.highlight < 0 || ss.highlight >= len(ss.choices) {
		return model.Choice{}, false
	}
	choice := ss.choices[ss.highlight]
	return choice, !choice.Disabled
}

// acceptCompletion picks the highlighted choice, or the only choice left.
func (ss *StructuredSearch) acceptCompletion() {
	if choice, ok := ss.highlighted(); ok {
		ss.session.Select(choice.Key)
		return
	}
	if len(ss.choices) == 1 && !ss.choices[0].Disabled {
		ss.session.Select(ss.choices[0].Key)
	}
}

// promptLabel names what the input expects next.
func promptLabel(c search.Classification) string {
	switch c.Mode {
	case search.ModeOperators:
		return "operator> "
	case search.ModeValues:
		if c.LastFilter != nil {
			return c.LastFilter.Label() + "> "
		}
		return "value> "
	case search.ModeChildren:
		return c.LastFilter.Label() + "> "
	default:
		if c.Group != nil {
			return c.Group.Label() + "> "
		}
		return "search> "
	}
}

// ChipLabel renders a tag as "Name operator value" using the filter's
// display names where known.
func ChipLabel(tag model.Tag) string {
	if tag.Filter == nil {
		if tag.Term.Value != "" {
			return tag.Term.Value
		}
		return tag.Token
	}

	parts := []string{tag.Filter.Label()}
	if op := tag.Term.OperatorKey; op != "" {
		label := op
		for _, o := range tag.Filter.Operators {
			if o.Key == op {
				label = o.Label()
				break
			}
		}
		parts = append(parts, label)
	}
	if v := tag.Term.Value; v != "" {
		parts = append(parts, strings.ReplaceAll(v, search.ValueSeparator, ", "))
	}
	return strings.Join(parts, " ")
}
