package model

import (
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"

	"github.com/boolean-maybe/structsearch/search"
)

func TestNewLayoutModel(t *testing.T) {
	lm := NewLayoutModel()

	if lm.GetContentViewID() != "" {
		t.Errorf("initial GetContentViewID() = %q, want empty", lm.GetContentViewID())
	}
	if lm.GetContentParams() != nil {
		t.Error("initial GetContentParams() should be nil")
	}
	if lm.GetRevision() != 0 {
		t.Errorf("initial GetRevision() = %d, want 0", lm.GetRevision())
	}
}

func TestLayoutModel_SetContentAndTouch(t *testing.T) {
	lm := NewLayoutModel()

	params := map[string]any{"section": "keys"}
	lm.SetContent(HelpViewID, params)
	params["section"] = "mutated"

	if lm.GetContentViewID() != HelpViewID {
		t.Errorf("GetContentViewID() = %q, want %q", lm.GetContentViewID(), HelpViewID)
	}
	if got := lm.GetContentParams()["section"]; got != "keys" {
		t.Errorf("params should be copied, got %v", got)
	}

	lm.Touch()
	lm.Touch()
	if lm.GetRevision() != 3 {
		t.Errorf("GetRevision() = %d, want 3", lm.GetRevision())
	}
	if lm.GetContentViewID() != HelpViewID {
		t.Error("Touch must not change the content view")
	}
}

func TestLayoutModel_Listeners(t *testing.T) {
	lm := NewLayoutModel()

	calls := 0
	id := lm.AddListener(func() { calls++ })

	lm.SetContent(SearchViewID, nil)
	lm.Touch()
	if calls != 2 {
		t.Errorf("listener calls = %d, want 2", calls)
	}

	lm.RemoveListener(id)
	lm.Touch()
	if calls != 2 {
		t.Errorf("listener called after RemoveListener")
	}
}

func TestHeaderConfig_Stats(t *testing.T) {
	hc := NewHeaderConfig()

	hc.SetBaseStat("Filters", "7", 0)
	hc.SetBaseStat("Version", "dev", 1)
	hc.SetViewStat("Tokens", "2", 0)
	hc.SetViewStat("Version", "override", 1)

	stats := hc.GetStats()
	want := []HeaderStat{
		{Name: "Filters", Value: "7", Order: 0},
		{Name: "Tokens", Value: "2", Order: 0},
		{Name: "Version", Value: "override", Order: 1},
	}
	if len(stats) != len(want) {
		t.Fatalf("GetStats() = %+v, want %+v", stats, want)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("stats[%d] = %+v, want %+v", i, stats[i], want[i])
		}
	}

	hc.ClearViewStats()
	if got := hc.GetStats(); len(got) != 2 || got[1].Value != "dev" {
		t.Errorf("after ClearViewStats got %+v", got)
	}
}

func TestHeaderConfig_Visibility(t *testing.T) {
	hc := NewHeaderConfig()
	calls := 0
	hc.AddListener(func() { calls++ })

	if !hc.IsVisible() || !hc.GetUserPreference() {
		t.Fatal("header should start visible")
	}

	hc.ToggleUserPreference()
	if hc.IsVisible() || hc.GetUserPreference() {
		t.Error("toggle should hide the header")
	}
	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}

	// unchanged visibility does not notify
	hc.SetVisible(false)
	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}
}

func TestSubmissionLog(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clk := fakeclock.NewFakeClock(start)
	log := NewSubmissionLog(2, clk)

	if _, ok := log.Latest(); ok {
		t.Fatal("empty log should have no latest entry")
	}

	notified := 0
	log.AddListener(func() { notified++ })

	first := search.Value{Filters: []search.Term{{FilterKey: "author", OperatorKey: "=", Value: "ann"}}}
	second := search.Value{GroupFilterKeys: []string{"attributes"}}
	third := search.Value{Filters: []search.Term{{FilterKey: "keywords", OperatorKey: "=", Value: "x"}}}

	log.Record(first)
	clk.Increment(time.Minute)
	log.Record(second)
	clk.Increment(time.Minute)
	entry := log.Record(third)

	if notified != 3 {
		t.Errorf("listener calls = %d, want 3", notified)
	}
	if log.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (bounded)", log.Len())
	}
	entries := log.Entries()
	if entries[0].Value.GroupFilterKeys[0] != "attributes" {
		t.Errorf("oldest entry should have been evicted, got %+v", entries[0])
	}
	if !entry.SubmittedAt.Equal(start.Add(2 * time.Minute)) {
		t.Errorf("SubmittedAt = %v, want %v", entry.SubmittedAt, start.Add(2*time.Minute))
	}
	latest, ok := log.Latest()
	if !ok || latest.Value.Filters[0].Value != "x" {
		t.Errorf("Latest() = %+v, %v", latest, ok)
	}
}
