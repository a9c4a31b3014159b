package typeahead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"

	"github.com/boolean-maybe/structsearch/search"
)

// DefaultDelay is the quiet interval before a scheduled provider call.
const DefaultDelay = 400 * time.Millisecond

// ErrResolverClosed is returned for work requested after Close.
var ErrResolverClosed = errors.New("typeahead resolver closed")

// State is the resolver's position in its request cycle.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateFetching
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateDebouncing:
		return "debouncing"
	case StateFetching:
		return "fetching"
	case StateResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// Dispatcher runs fn on the goroutine that owns the caller's state.
type Dispatcher func(fn func())

// Request is one provider call for a filter.
type Request struct {
	FilterKey string
	Text      string
	Fetch     search.TypeaheadFunc
}

// Result is a completed provider call. Err is set when the provider failed.
type Result struct {
	Request
	Options []search.Option
	Err     error
}

// Config configures a Resolver. Clock defaults to the real clock, Delay to
// DefaultDelay and Dispatch to calling fn directly on the fetching goroutine.
type Config struct {
	Clock         clock.Clock
	Delay         time.Duration
	Dispatch      Dispatcher
	OnResult      func(Result)
	OnStateChange func(State)
}

// Resolver debounces and runs asynchronous option providers. Every new
// request supersedes the previous one: pending timers are stopped, in-flight
// calls are cancelled and their results are dropped.
type Resolver struct {
	clock    clock.Clock
	delay    time.Duration
	dispatch Dispatcher
	onResult func(Result)
	onState  func(State)

	mu         sync.Mutex
	generation uint64
	state      State
	timer      clock.Timer
	stopTimer  chan struct{}
	cancel     context.CancelFunc
	closed     bool
}

// NewResolver creates a resolver from cfg.
func NewResolver(cfg Config) *Resolver {
	r := &Resolver{
		clock:    cfg.Clock,
		delay:    cfg.Delay,
		dispatch: cfg.Dispatch,
		onResult: cfg.OnResult,
		onState:  cfg.OnStateChange,
	}
	if r.clock == nil {
		r.clock = clock.NewClock()
	}
	if r.delay < 0 {
		r.delay = 0
	}
	if r.dispatch == nil {
		r.dispatch = func(fn func()) { fn() }
	}
	return r
}

// Schedule runs req after the quiet interval unless another request arrives first.
func (r *Resolver) Schedule(req Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrResolverClosed
	}
	r.supersedeLocked()
	gen := r.generation

	if r.delay == 0 {
		go r.run(gen, req)
		return nil
	}

	timer := r.clock.NewTimer(r.delay)
	stop := make(chan struct{})
	r.timer, r.stopTimer = timer, stop
	r.state = StateDebouncing

	go func() {
		select {
		case <-timer.C():
			r.run(gen, req)
		case <-stop:
		}
	}()
	return nil
}

// Fetch runs req immediately.
func (r *Resolver) Fetch(req Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrResolverClosed
	}
	r.supersedeLocked()
	go r.run(r.generation, req)
	return nil
}

// Cancel drops any pending or in-flight request.
func (r *Resolver) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersedeLocked()
}

// Close cancels outstanding work and rejects further requests.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersedeLocked()
	r.closed = true
}

// State returns the current state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Loading reports whether a provider call is outstanding.
func (r *Resolver) Loading() bool {
	return r.State() == StateFetching
}

// Generation returns the id of the newest request.
func (r *Resolver) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

func (r *Resolver) isCurrent(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed && gen == r.generation
}

func (r *Resolver) supersedeLocked() {
	r.generation++
	if r.timer != nil {
		r.timer.Stop()
		close(r.stopTimer)
		r.timer, r.stopTimer = nil, nil
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.state = StateIdle
}

func (r *Resolver) run(gen uint64, req Request) {
	r.mu.Lock()
	if r.closed || gen != r.generation {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.timer, r.stopTimer = nil, nil
	r.cancel = cancel
	r.state = StateFetching
	r.mu.Unlock()
	r.notifyState(gen, StateFetching)

	slog.Debug("typeahead fetch", "filter", req.FilterKey, "text", req.Text, "generation", gen)
	options, err := call(ctx, req)
	cancel()

	r.mu.Lock()
	if gen != r.generation {
		r.mu.Unlock()
		slog.Debug("discarding stale typeahead result", "filter", req.FilterKey, "generation", gen)
		return
	}
	r.cancel = nil
	r.state = StateResolved
	if err != nil {
		r.state = StateIdle
	}
	state := r.state
	r.mu.Unlock()

	r.dispatch(func() {
		if !r.isCurrent(gen) {
			return
		}
		if r.onResult != nil {
			r.onResult(Result{Request: req, Options: options, Err: err})
		}
		if r.onState != nil {
			r.onState(state)
		}
	})
}

func (r *Resolver) notifyState(gen uint64, state State) {
	if r.onState == nil {
		return
	}
	r.dispatch(func() {
		if r.isCurrent(gen) {
			r.onState(state)
		}
	})
}

// call invokes the provider, turning a panic into an error.
func call(ctx context.Context, req Request) (options []search.Option, err error) {
	if req.Fetch == nil {
		return nil, fmt.Errorf("no typeahead provider for %q", req.FilterKey)
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("typeahead provider for %q panicked: %v", req.FilterKey, p)
		}
	}()
	return req.Fetch(ctx, req.Text)
}
