package model

import (
	"slices"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"

	"github.com/boolean-maybe/structsearch/search"
)

// DefaultSubmissionLimit is how many submissions the log keeps.
const DefaultSubmissionLimit = 20

// Submission is one submitted search value.
type Submission struct {
	Value       search.Value
	SubmittedAt time.Time
}

// SubmissionListener is called after a submission is recorded
type SubmissionListener func()

// SubmissionLog keeps the most recent submitted values, newest last.
// Submissions only live for the process; nothing is persisted.
type SubmissionLog struct {
	mu             sync.RWMutex
	entries        []Submission
	limit          int
	clock          clock.Clock
	listeners      map[int]SubmissionListener
	nextListenerID int
}

// NewSubmissionLog creates a log bounded to limit entries (<= 0 uses the default).
// A nil clock uses the real clock.
func NewSubmissionLog(limit int, clk clock.Clock) *SubmissionLog {
	if limit <= 0 {
		limit = DefaultSubmissionLimit
	}
	if clk == nil {
		clk = clock.NewClock()
	}
	return &SubmissionLog{
		limit:          limit,
		clock:          clk,
		listeners:      make(map[int]SubmissionListener),
		nextListenerID: 1,
	}
}

// Record appends a submission, evicting the oldest past the limit.
func (sl *SubmissionLog) Record(v search.Value) Submission {
	sl.mu.Lock()
	entry := Submission{Value: v, SubmittedAt: sl.clock.Now()}
	sl.entries = append(sl.entries, entry)
	if over := len(sl.entries) - sl.limit; over > 0 {
		sl.entries = slices.Delete(sl.entries, 0, over)
	}
	sl.mu.Unlock()
	sl.notifyListeners()
	return entry
}

// Latest returns the newest submission
func (sl *SubmissionLog) Latest() (Submission, bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	if len(sl.entries) == 0 {
		return Submission{}, false
	}
	return sl.entries[len(sl.entries)-1], true
}

// Entries returns a copy of all submissions, oldest first
func (sl *SubmissionLog) Entries() []Submission {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return slices.Clone(sl.entries)
}

// Len returns the number of recorded submissions
func (sl *SubmissionLog) Len() int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return len(sl.entries)
}

// AddListener registers a callback for new submissions.
// returns a listener ID that can be used to remove the listener.
func (sl *SubmissionLog) AddListener(listener SubmissionListener) int {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	id := sl.nextListenerID
	sl.nextListenerID++
	sl.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (sl *SubmissionLog) RemoveListener(id int) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	delete(sl.listeners, id)
}

func (sl *SubmissionLog) notifyListeners() {
	sl.mu.RLock()
	listeners := make([]SubmissionListener, 0, len(sl.listeners))
	for _, l := range sl.listeners {
		listeners = append(listeners, l)
	}
	sl.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
