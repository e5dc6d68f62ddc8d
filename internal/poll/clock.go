package poll

import "time"

// Ticker abstracts time.Ticker so tests can drive ticks manually.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. The default implementation wraps the real clock.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

type realTicker struct {
	t *time.Ticker
}

func (t *realTicker) C() <-chan time.Time { return t.t.C }
func (t *realTicker) Stop()               { t.t.Stop() }

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return realClock{} }
