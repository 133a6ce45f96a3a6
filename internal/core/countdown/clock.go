package countdown

import "time"

// Clock abstracts the time source used by the refresh loop.
type Clock interface {
	Now() time.Time
	NewTicker(interval time.Duration) Ticker
}

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// NewTicker wraps time.NewTicker.
func (SystemClock) NewTicker(interval time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(interval)}
}

type systemTicker struct {
	ticker *time.Ticker
}

func (ticker *systemTicker) C() <-chan time.Time { return ticker.ticker.C }

func (ticker *systemTicker) Stop() { ticker.ticker.Stop() }
