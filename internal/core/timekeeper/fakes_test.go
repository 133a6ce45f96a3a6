package timekeeper

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"countdown/internal/core/countdown"
	"countdown/internal/remote"

	"github.com/sirupsen/logrus"
)

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) NewTicker(time.Duration) countdown.Ticker {
	ticker := &fakeTicker{ch: make(chan time.Time, 1)}
	clock.mu.Lock()
	clock.tickers = append(clock.tickers, ticker)
	clock.mu.Unlock()
	return ticker
}

// Advance moves the clock and fires every live ticker once.
func (clock *fakeClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(delta)
	now := clock.now
	tickers := append([]*fakeTicker(nil), clock.tickers...)
	clock.mu.Unlock()

	for _, ticker := range tickers {
		if ticker.stopped.Load() {
			continue
		}
		select {
		case ticker.ch <- now:
		default:
		}
	}
}

func (clock *fakeClock) liveTickers() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	live := 0
	for _, ticker := range clock.tickers {
		if !ticker.stopped.Load() {
			live++
		}
	}
	return live
}

func (clock *fakeClock) createdTickers() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.tickers)
}

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (ticker *fakeTicker) C() <-chan time.Time { return ticker.ch }

func (ticker *fakeTicker) Stop() { ticker.stopped.Store(true) }

type lookupFunc func(ctx context.Context, date string) remote.Outcome

func (fn lookupFunc) Lookup(ctx context.Context, date string) remote.Outcome {
	return fn(ctx, date)
}

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func nextEvent(t *testing.T, events <-chan Event, eventType EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				t.Fatalf("event channel closed while waiting for %s", eventType)
			}
			if event.Type == eventType {
				return event
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", eventType)
		}
	}
}

func assertNoEvent(t *testing.T, events <-chan Event, eventType EventType) {
	t.Helper()
	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type == eventType {
				t.Fatalf("unexpected %s event: %+v", eventType, event)
			}
		case <-deadline:
			return
		}
	}
}
