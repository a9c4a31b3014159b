package model

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	"dario.cat/mergo"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/search"
	"github.com/boolean-maybe/structsearch/typeahead"
)

// Key identifies the keys a session reacts to.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
)

// KeyEvent is a keystroke delivered to the session's input.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// SessionConfig configures a SearchSession. Zero fields take defaults.
type SessionConfig struct {
	Filters          []*search.Filter
	DefaultQueryKey  string
	ClearAfterSearch bool
	TypeaheadDelay   time.Duration
	DefaultValue     *search.Value

	// Clock drives the typeahead debounce; nil uses the real clock.
	Clock clock.Clock
	// Dispatch runs typeahead results on the UI goroutine. When nil, results
	// are queued and applied by the session's next call (see Flush).
	Dispatch typeahead.Dispatcher

	OnChange       func(tokens []string)
	OnSubmit       func(value search.Value)
	OnBlur         func()
	OnKeyDown      func(ev KeyEvent)
	OnOptionsError func(filterKey string, err error)
}

func defaultSessionConfig() SessionConfig {
	return SessionConfig{
		DefaultQueryKey: search.DefaultQueryKey,
		TypeaheadDelay:  typeahead.DefaultDelay,
	}
}

// SessionListener is called after any session state change
type SessionListener func()

// Choice is a presented option with its state for the current token list.
type Choice struct {
	search.Option
	Disabled bool
	Active   bool // value already selected in the tag being built
	Group    bool
}

// Hint returns the secondary text for the choice.
func (c Choice) Hint() string {
	if c.Disabled && c.DisabledHint != "" {
		return c.DisabledHint
	}
	return c.SubText
}

// Tag is a token prepared for display.
type Tag struct {
	Token    string
	Term     search.Term
	Filter   *search.Filter // nil for free text or unknown keys
	Disabled bool
}

// SearchSession holds the state of one structured-search input: the token
// list, the text being typed and the options presented next.
// It is not safe for concurrent use; drive it from one goroutine. Typeahead
// results reach it through SessionConfig.Dispatch or its own pending queue.
type SearchSession struct {
	id         string
	cfg        SessionConfig
	forest     []*search.Filter
	tokens     []string
	text       string
	options    []search.Option
	multiValue bool
	resolver   *typeahead.Resolver
	pending    *typeahead.Queue // nil when cfg.Dispatch is set
	flushing   bool

	listeners      map[int]SessionListener
	nextListenerID int
}

// NewSearchSession creates a session from cfg.
func NewSearchSession(cfg SessionConfig) *SearchSession {
	if err := mergo.Merge(&cfg, defaultSessionConfig()); err != nil {
		slog.Warn("failed to apply session defaults", "error", err)
	}

	s := &SearchSession{
		id:             config.GenerateRandomID(),
		cfg:            cfg,
		forest:         cfg.Filters,
		tokens:         []string{},
		listeners:      make(map[int]SessionListener),
		nextListenerID: 1,
	}
	dispatch := cfg.Dispatch
	if dispatch == nil {
		s.pending = typeahead.NewQueue()
		dispatch = s.pending.Dispatch
	}
	s.resolver = typeahead.NewResolver(typeahead.Config{
		Clock:         cfg.Clock,
		Delay:         cfg.TypeaheadDelay,
		Dispatch:      dispatch,
		OnResult:      s.applyTypeahead,
		OnStateChange: func(typeahead.State) { s.notifyListeners() },
	})
	if cfg.DefaultValue != nil {
		s.tokens = search.FromValue(*cfg.DefaultValue)
	}
	s.refreshOptions()
	slog.Debug("search session created", "id", s.id, "filters", len(s.forest))
	return s
}

// Flush applies typeahead results queued since the last call and returns
// how many callbacks ran. It is a no-op when SessionConfig.Dispatch is set.
// State accessors and mutators flush first, so callers only need it to
// pick up results while otherwise idle.
func (s *SearchSession) Flush() int {
	if s.pending == nil || s.flushing {
		return 0
	}
	s.flushing = true
	defer func() { s.flushing = false }()
	return s.pending.Drain()
}

// ID returns the session's random identifier.
func (s *SearchSession) ID() string {
	return s.id
}

// AddListener registers a callback for state changes.
// returns a listener ID that can be used to remove the listener.
func (s *SearchSession) AddListener(listener SessionListener) int {
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (s *SearchSession) RemoveListener(id int) {
	delete(s.listeners, id)
}

func (s *SearchSession) notifyListeners() {
	listeners := make([]SessionListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	for _, l := range listeners {
		l()
	}
}

// Filters returns the filter forest.
func (s *SearchSession) Filters() []*search.Filter {
	return s.forest
}

// DefaultQueryKey returns the key used for free text.
func (s *SearchSession) DefaultQueryKey() string {
	return s.cfg.DefaultQueryKey
}

// Tokens returns a copy of the token list.
func (s *SearchSession) Tokens() []string {
	s.Flush()
	return slices.Clone(s.tokens)
}

// DisplayTokens returns the tokens in display order (bare keys first).
func (s *SearchSession) DisplayTokens() []string {
	s.Flush()
	return search.FloatGroupKeys(s.tokens)
}

// Tags returns the display tokens with their filter and disabled state.
func (s *SearchSession) Tags() []Tag {
	s.Flush()
	display := s.DisplayTokens()
	tags := make([]Tag, 0, len(display))
	for _, token := range display {
		term := search.Decode(token)
		f := search.FindByKey(s.forest, term.FilterKey)
		tag := Tag{Token: token, Term: term, Filter: f}
		if f != nil {
			tag.Disabled = f.IsDisabled(s.tokens) || f.IsHidden(s.tokens)
		}
		tags = append(tags, tag)
	}
	return tags
}

// SearchText returns the text typed but not yet committed.
func (s *SearchSession) SearchText() string {
	s.Flush()
	return s.text
}

// MultiValue reports whether a multi-value tag is still open.
func (s *SearchSession) MultiValue() bool {
	s.Flush()
	return s.multiValue
}

// Classification classifies the current token list.
func (s *SearchSession) Classification() search.Classification {
	s.Flush()
	return search.Classify(s.forest, s.tokens, s.multiValue)
}

// Loading reports whether a provider call is outstanding for the value
// currently being entered.
func (s *SearchSession) Loading() bool {
	s.Flush()
	return s.resolver.Loading() && s.Classification().AwaitingValue()
}

// Value returns the structured value of the current token list.
func (s *SearchSession) Value() search.Value {
	s.Flush()
	return search.ToValue(s.tokens, s.forest)
}

// Options returns the presented options, hidden ones removed.
func (s *SearchSession) Options() []Choice {
	s.Flush()
	c := s.Classification()
	var selected []string
	if c.AwaitingValue() {
		selected = c.Last.Values()
	}

	choices := make([]Choice, 0, len(s.options))
	for _, opt := range s.options {
		if opt.IsHidden(s.tokens) {
			continue
		}
		choices = append(choices, Choice{
			Option:   opt,
			Disabled: opt.IsDisabled(s.tokens),
			Active:   slices.Contains(selected, opt.Key),
			Group:    search.FindByKey(s.forest, opt.Key).IsGroup(),
		})
	}
	return choices
}

// SetSearchText records typed text. Typing one of the scope's operators
// commits it at once; typing a value of an asynchronous filter schedules a
// provider call.
func (s *SearchSession) SetSearchText(text string) {
	s.Flush()
	s.text = text
	c := s.Classification()

	if text != "" && c.IsOperator(text) {
		s.commitText()
		return
	}

	if c.AwaitingValue() && c.LastFilter.IsAsync() {
		err := s.resolver.Schedule(typeahead.Request{
			FilterKey: c.LastFilter.Key,
			Text:      text,
			Fetch:     c.LastFilter.Typeahead,
		})
		if err != nil {
			slog.Debug("typeahead schedule rejected", "session", s.id, "error", err)
		}
	} else {
		s.options, _ = c.StaticOptions(s.tokens, text)
	}
	s.notifyListeners()
}

// Select merges a chosen option key or free text into the token list.
// Returns false when the merge was rejected.
func (s *SearchSession) Select(chosen string) bool {
	s.Flush()
	return s.Change(append(slices.Clone(s.tokens), chosen))
}

// Change applies a new token list proposed by the widget: an empty list
// clears, a shorter one is accepted as a removal, otherwise the last element
// is merged into the current tokens.
// Returns false when the merge was rejected.
func (s *SearchSession) Change(values []string) bool {
	s.Flush()
	if len(values) == 0 || values[0] == "" {
		s.text = ""
		s.multiValue = false
		s.setTokens([]string{})
		return true
	}

	s.text = ""
	if len(values) < len(s.tokens) {
		s.multiValue = false
		s.setTokens(s.removal(values))
		return true
	}

	chosen := values[len(values)-1]
	if chosen == "" {
		return false
	}

	r := search.ApplyNewValue(s.tokens, chosen, s.Classification(), s.cfg.DefaultQueryKey)
	if !r.Accepted {
		slog.Debug("merge rejected", "session", s.id, "chosen", chosen)
		s.notifyListeners()
		return false
	}
	s.multiValue = r.MultiValue
	if r.ResetOptions {
		s.options = nil
	}
	s.setTokens(r.Tokens)
	return true
}

// removal resolves a shorter proposed list. A single removed token goes
// through the group cascade; anything else is taken as given.
func (s *SearchSession) removal(values []string) []string {
	if len(values) == len(s.tokens)-1 {
		i := 0
		for i < len(values) && values[i] == s.tokens[i] {
			i++
		}
		if slices.Equal(values[i:], s.tokens[i+1:]) {
			return search.RemoveToken(s.tokens, i, s.forest)
		}
	}
	return slices.Clone(values)
}

// RemoveToken removes the token at index of Tokens(), cascading over a
// removed group's descendants.
func (s *SearchSession) RemoveToken(index int) {
	s.Flush()
	if index < 0 || index >= len(s.tokens) {
		return
	}
	s.multiValue = false
	s.setTokens(search.RemoveToken(s.tokens, index, s.forest))
}

// Deselect removes the first token equal to token.
func (s *SearchSession) Deselect(token string) {
	s.Flush()
	if i := slices.Index(s.tokens, token); i >= 0 {
		s.RemoveToken(i)
	}
}

// Blur ends multi-value mode and commits any typed text.
func (s *SearchSession) Blur() {
	s.Flush()
	if s.cfg.OnBlur != nil {
		s.cfg.OnBlur()
	}
	if s.multiValue {
		s.multiValue = false
		s.refreshOptions()
	}
	if s.text != "" {
		s.commitText()
		return
	}
	s.notifyListeners()
}

// KeyDown handles a keystroke: Enter submits, Tab ends multi-value mode and
// Backspace on empty text removes the last token.
// Returns true when the session consumed the key.
func (s *SearchSession) KeyDown(ev KeyEvent) bool {
	s.Flush()
	if s.cfg.OnKeyDown != nil {
		s.cfg.OnKeyDown(ev)
	}
	switch ev.Key {
	case KeyEnter:
		s.Submit()
		return true
	case KeyTab:
		if !s.multiValue {
			return false
		}
		s.multiValue = false
		s.refreshOptions()
		s.notifyListeners()
		return true
	case KeyBackspace:
		if s.text != "" || len(s.tokens) == 0 {
			return false
		}
		s.RemoveToken(len(s.tokens) - 1)
		return true
	}
	return false
}

// Submit commits pending text and emits the structured value.
// Returns false when there was nothing to submit.
func (s *SearchSession) Submit() bool {
	s.Flush()
	text := strings.TrimSpace(s.text)
	if len(s.tokens) == 0 && text == "" {
		return false
	}
	s.text = ""
	if text != "" {
		s.Select(text)
	}

	value := search.ToValue(s.tokens, s.forest)
	slog.Info("search submitted", "session", s.id, "filters", len(value.Filters), "groups", len(value.GroupFilterKeys))
	if s.cfg.OnSubmit != nil {
		s.cfg.OnSubmit(value)
	}

	s.text = ""
	if s.cfg.ClearAfterSearch {
		s.multiValue = false
		s.setTokens([]string{})
	}
	return true
}

// SetValue replaces the token list from a structured value, as a
// controlling caller does. OnChange is not called.
func (s *SearchSession) SetValue(v search.Value) {
	s.Flush()
	s.text = ""
	s.multiValue = false
	s.tokens = search.FromValue(v)
	s.options = nil
	s.refreshOptions()
	s.notifyListeners()
}

// Clear empties the token list and typed text.
func (s *SearchSession) Clear() {
	s.Flush()
	s.text = ""
	s.multiValue = false
	s.setTokens([]string{})
}

// SetFilters replaces the forest; the token list is kept.
func (s *SearchSession) SetFilters(forest []*search.Filter) {
	s.Flush()
	s.forest = forest
	s.refreshOptions()
	s.notifyListeners()
}

// Close cancels pending typeahead work.
func (s *SearchSession) Close() {
	s.resolver.Close()
}

func (s *SearchSession) commitText() {
	text := strings.TrimSpace(s.text)
	s.text = ""
	if text == "" {
		s.notifyListeners()
		return
	}
	s.Select(text)
}

func (s *SearchSession) setTokens(tokens []string) {
	s.tokens = tokens
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(slices.Clone(tokens))
	}
	s.refreshOptions()
	s.notifyListeners()
}

// refreshOptions recomputes the presented options after a token change.
func (s *SearchSession) refreshOptions() {
	c := s.Classification()

	if !c.AwaitingValue() || !c.LastFilter.IsAsync() {
		s.resolver.Cancel()
		s.options, _ = c.StaticOptions(s.tokens, s.text)
		return
	}

	// continuing a multi-value tag keeps the fetched options
	if !c.EndsWithOperator {
		return
	}
	s.options = nil
	err := s.resolver.Fetch(typeahead.Request{
		FilterKey: c.LastFilter.Key,
		Fetch:     c.LastFilter.Typeahead,
	})
	if err != nil {
		slog.Debug("typeahead fetch rejected", "session", s.id, "error", err)
	}
}

// applyTypeahead installs a provider result if the session still awaits a
// value for the same filter.
func (s *SearchSession) applyTypeahead(r typeahead.Result) {
	c := s.Classification()
	if !c.AwaitingValue() || c.LastFilter == nil || c.LastFilter.Key != r.FilterKey {
		slog.Debug("discarding typeahead result for inactive filter", "session", s.id, "filter", r.FilterKey)
		return
	}
	if r.Err != nil {
		slog.Debug("typeahead provider failed", "session", s.id, "filter", r.FilterKey, "error", r.Err)
		s.options = nil
		if s.cfg.OnOptionsError != nil {
			s.cfg.OnOptionsError(r.FilterKey, r.Err)
		}
		s.notifyListeners()
		return
	}
	s.options = r.Options
	s.notifyListeners()
}
