package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/boolean-maybe/structsearch/catalog"
	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/internal/bootstrap"
	"github.com/boolean-maybe/structsearch/store"
	"github.com/boolean-maybe/structsearch/typeahead"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TestApp wraps the full MVC stack for integration testing with SimulationScreen
type TestApp struct {
	*bootstrap.Components
	Screen  tcell.SimulationScreen
	Store   *store.InMemoryStore
	Catalog *catalog.Catalog
	Queue   *typeahead.Queue
	t       *testing.T
}

// Option adjusts the session settings of a TestApp before it is assembled.
type Option func(*bootstrap.SessionSettings)

// WithClearAfterSearch empties the input after every submit.
func WithClearAfterSearch() Option {
	return func(s *bootstrap.SessionSettings) { s.ClearAfterSearch = true }
}

// NewTestApp assembles the application over the embedded filter catalog.
// Mirrors bootstrap.Bootstrap without logging, signals or a running event
// loop; typeahead results wait in Queue until the next Draw.
func NewTestApp(t *testing.T, opts ...Option) *TestApp {
	t.Helper()

	// Isolate config paths so tests don't read the real user config.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	config.ResetPathManager()
	t.Cleanup(config.ResetPathManager)

	st := store.NewInMemoryStore()
	cat, err := catalog.LoadFile("", st)
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	screen.SetSize(100, 40)
	screen.Clear()

	app := tview.NewApplication()
	app.SetScreen(screen)

	settings := bootstrap.SessionSettings{DefaultQueryKey: cat.DefaultQueryKey}
	for _, opt := range opts {
		opt(&settings)
	}

	queue := typeahead.NewQueue()
	components := bootstrap.Assemble(app, cat, settings, queue.Dispatch)

	// Note: Do NOT call app.Run() - we use Draw() + screen.Show() for synchronous testing
	app.SetRoot(components.RootLayout.GetPrimitive(), true).EnableMouse(false)
	// SetRoot focuses the layout itself; hand focus back to the active view
	components.RootLayout.OnFocus()

	ta := &TestApp{
		Components: components,
		Screen:     screen,
		Store:      st,
		Catalog:    cat,
		Queue:      queue,
		t:          t,
	}
	t.Cleanup(ta.Cleanup)
	ta.Draw()
	return ta
}

// Draw applies queued typeahead results, then forces a synchronous draw
// without running the app event loop
func (ta *TestApp) Draw() {
	ta.Queue.Drain()
	_, width, height := ta.Screen.GetContents()
	ta.RootLayout.GetPrimitive().SetRect(0, 0, width, height)
	ta.RootLayout.GetPrimitive().Draw(ta.Screen)
	ta.Screen.Show()
}

// SendKey simulates a key press by directly calling the input capture handler.
// Input flows through app's InputCapture → InputRouter.HandleInput.
// If InputCapture doesn't consume the event, it's forwarded to the focused primitive.
func (ta *TestApp) SendKey(key tcell.Key, ch rune, mod tcell.ModMask) {
	event := tcell.NewEventKey(key, ch, mod)
	consumed := false
	if capture := ta.App.GetInputCapture(); capture != nil {
		consumed = capture(event) == nil
	}

	if !consumed {
		if focused := ta.App.GetFocus(); focused != nil {
			if handler := focused.InputHandler(); handler != nil {
				handler(event, func(p tview.Primitive) { ta.App.SetFocus(p) })
			}
		}
	}

	ta.Draw()
}

// SendCtrl sends a Ctrl chord for a letter, e.g. SendCtrl(tcell.KeyCtrlL)
func (ta *TestApp) SendCtrl(key tcell.Key) {
	ta.SendKey(key, 0, tcell.ModCtrl)
}

// SendText types a string of characters into the focused primitive
func (ta *TestApp) SendText(text string) {
	for _, ch := range text {
		ta.SendKey(tcell.KeyRune, ch, tcell.ModNone)
	}
}

// WaitFor draws until cond holds, failing the test after two seconds.
func (ta *TestApp) WaitFor(cond func() bool) {
	ta.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		ta.Draw()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			ta.DumpScreen()
			ta.t.Fatal("timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// GetTextAt extracts text from a screen region starting at (x, y) with given width
func (ta *TestApp) GetTextAt(x, y, width int) string {
	contents, screenWidth, _ := ta.Screen.GetContents()
	var result strings.Builder

	for i := 0; i < width; i++ {
		cellIdx := y*screenWidth + (x + i)
		if cellIdx >= len(contents) {
			break
		}
		cell := contents[cellIdx]
		if len(cell.Runes) > 0 {
			result.WriteRune(cell.Runes[0])
		} else {
			result.WriteRune(' ')
		}
	}

	return strings.TrimSpace(result.String())
}

// FindText searches for a text string anywhere on the screen.
// Returns (found, x, y) where x, y are the coordinates of the first match.
func (ta *TestApp) FindText(needle string) (bool, int, int) {
	_, width, height := ta.Screen.GetContents()
	for y := 0; y < height; y++ {
		rowText := ta.GetTextAt(0, y, width)
		if x := strings.Index(rowText, needle); x >= 0 {
			return true, x, y
		}
	}
	return false, 0, 0
}

// DumpScreen prints the current screen content for debugging
func (ta *TestApp) DumpScreen() {
	_, width, height := ta.Screen.GetContents()
	ta.t.Logf("Screen size: %dx%d", width, height)
	for y := 0; y < height; y++ {
		if line := ta.GetTextAt(0, y, width); line != "" {
			ta.t.Logf("Row %2d: %s", y, line)
		}
	}
}

// Cleanup tears down the test app and releases resources.
// Safe to call more than once.
func (ta *TestApp) Cleanup() {
	if ta.Screen == nil {
		return
	}
	ta.Components.Cleanup()
	ta.Screen.Fini()
	ta.Screen = nil
}
