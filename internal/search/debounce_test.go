package search

import (
	"context"
	"testing"
	"time"

	"github.com/hyperjump/photofind/internal/models"
)

// manualClock collects scheduled callbacks; the test fires them explicitly.
type manualClock struct {
	timers []*manualTimer
}

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{fn: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs every scheduled, unstopped callback.
func (c *manualClock) fire() {
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			t.fn()
		}
	}
}

func countingSearch(calls *[]string) searchFunc {
	return func(ctx context.Context, query *models.ParsedQuery, page *models.Pagination) (*models.SearchResult, error) {
		*calls = append(*calls, query.Semantic.Keywords[0])
		return &models.SearchResult{TotalCount: len(*calls)}, nil
	}
}

func TestDebouncerExecutesAfterWindow(t *testing.T) {
	var calls []string
	clock := &manualClock{}
	d := NewDebouncer(100*time.Millisecond, clock, countingSearch(&calls))

	ch := d.Submit(context.Background(), keywordQuery("sunset"), nil)
	if len(calls) != 0 {
		t.Fatal("search ran before the window elapsed")
	}

	clock.fire()
	out := <-ch
	if out.Superseded || out.Err != nil {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if len(calls) != 1 || calls[0] != "sunset" {
		t.Errorf("calls = %v, want [sunset]", calls)
	}
}

func TestDebouncerSupersedesPending(t *testing.T) {
	var calls []string
	clock := &manualClock{}
	d := NewDebouncer(100*time.Millisecond, clock, countingSearch(&calls))

	first := d.Submit(context.Background(), keywordQuery("sun"), nil)
	second := d.Submit(context.Background(), keywordQuery("sunset"), nil)
	third := d.Submit(context.Background(), keywordQuery("sunset beach"), nil)

	for _, ch := range []<-chan Debounced{first, second} {
		out := <-ch
		if !out.Superseded {
			t.Errorf("expected superseded outcome, got %+v", out)
		}
	}

	clock.fire()
	out := <-third
	if out.Superseded || out.Err != nil {
		t.Fatalf("last call must execute: %+v", out)
	}
	if len(calls) != 1 || calls[0] != "sunset beach" {
		t.Errorf("calls = %v, want only the final query", calls)
	}
}

func TestDebouncerFlush(t *testing.T) {
	var calls []string
	clock := &manualClock{}
	d := NewDebouncer(100*time.Millisecond, clock, countingSearch(&calls))

	ch := d.Submit(context.Background(), keywordQuery("sunset"), nil)
	d.Flush()

	out := <-ch
	if !out.Superseded {
		t.Fatalf("flushed call must be superseded, got %+v", out)
	}
	clock.fire()
	if len(calls) != 0 {
		t.Errorf("flushed call still executed: %v", calls)
	}
}

func TestDebouncerSequentialWindows(t *testing.T) {
	var calls []string
	clock := &manualClock{}
	d := NewDebouncer(100*time.Millisecond, clock, countingSearch(&calls))

	ch1 := d.Submit(context.Background(), keywordQuery("beach"), nil)
	clock.fire()
	<-ch1

	ch2 := d.Submit(context.Background(), keywordQuery("mountain"), nil)
	clock.fire()
	<-ch2

	if len(calls) != 2 || calls[0] != "beach" || calls[1] != "mountain" {
		t.Errorf("calls = %v, want both sequential queries", calls)
	}
}
