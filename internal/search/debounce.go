package search

import (
	"context"
	"sync"
	"time"

	"github.com/hyperjump/photofind/internal/models"
)

// Clock schedules deferred work. The real implementation wraps time.AfterFunc;
// tests inject a manual clock so supersede semantics are checked without
// wall-clock delays.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled call.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debounced is the outcome delivered to one Submit call.
type Debounced struct {
	Result *models.SearchResult
	Err    error
	// Superseded is set when a later Submit within the window replaced this
	// call; no search was executed for it.
	Superseded bool
}

// searchFunc is the underlying operation a Debouncer coalesces.
type searchFunc func(ctx context.Context, query *models.ParsedQuery, page *models.Pagination) (*models.SearchResult, error)

type pendingCall struct {
	timer Timer
	ch    chan Debounced
}

// Debouncer coalesces rapid successive searches: each Submit cancels the
// pending one, and only the last query issued within the window executes.
type Debouncer struct {
	window time.Duration
	clock  Clock
	run    searchFunc

	mu      sync.Mutex
	pending *pendingCall
}

// NewDebouncer creates a debouncer over run with the given coalescing window.
func NewDebouncer(window time.Duration, clock Clock, run searchFunc) *Debouncer {
	return &Debouncer{window: window, clock: clock, run: run}
}

// Submit schedules query after the window. The returned channel receives
// exactly one Debounced value: the search outcome, or Superseded when a later
// Submit cancelled this one.
func (d *Debouncer) Submit(ctx context.Context, query *models.ParsedQuery, page *models.Pagination) <-chan Debounced {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.timer.Stop()
		d.pending.ch <- Debounced{Superseded: true}
		close(d.pending.ch)
		d.pending = nil
	}

	call := &pendingCall{ch: make(chan Debounced, 1)}
	call.timer = d.clock.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.pending != call {
			// Already superseded; its channel was closed by the replacement.
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()

		result, err := d.run(ctx, query, page)
		call.ch <- Debounced{Result: result, Err: err}
		close(call.ch)
	})
	d.pending = call
	return call.ch
}

// Flush cancels any pending call without executing it.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.timer.Stop()
		d.pending.ch <- Debounced{Superseded: true}
		close(d.pending.ch)
		d.pending = nil
	}
}
