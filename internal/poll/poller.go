// Package poll implements the fixed-interval refetch loop the dashboard
// views run on. One Poller owns one timer and one piece of state; views
// that need several feeds run several pollers, each independent of the
// others.
package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Fetcher loads one snapshot of remote state.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Snapshot is the current view of a polled feed. On a failed fetch Data
// keeps its previous value and Err reports the failure, so callers render
// stale data alongside the error (stale-while-revalidate). Loading is true
// only before the first fetch completes.
type Snapshot[T any] struct {
	UpdatedAt time.Time
	Err       error
	Data      T
	Loading   bool
}

// Poller refetches on a fixed interval. Fetches are issued on every tick
// regardless of whether the previous attempt succeeded; failures neither
// back off nor cancel the schedule.
type Poller[T any] struct {
	clock    Clock
	fetch    Fetcher[T]
	cancel   context.CancelFunc
	updates  chan Snapshot[T]
	done     chan struct{}
	name     string
	interval time.Duration

	mu   sync.Mutex
	snap Snapshot[T]
}

// Option configures a Poller.
type Option[T any] func(*Poller[T])

// WithClock replaces the wall clock, letting tests drive ticks.
func WithClock[T any](c Clock) Option[T] {
	return func(p *Poller[T]) { p.clock = c }
}

// New creates a poller for one feed. Start must be called before the
// poller produces anything.
func New[T any](name string, interval time.Duration, fetch Fetcher[T], opts ...Option[T]) *Poller[T] {
	p := &Poller[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
		clock:    SystemClock(),
		updates:  make(chan Snapshot[T], 1),
		done:     make(chan struct{}),
		snap:     Snapshot[T]{Loading: true},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the poll loop: one immediate fetch, then one per interval
// tick until ctx is canceled or Stop is called.
func (p *Poller[T]) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	go func() {
		defer close(p.done)

		p.refresh(ctx)

		ticker := p.clock.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				p.refresh(ctx)
			}
		}
	}()
}

// Stop cancels the loop and blocks until it has exited. No snapshot is
// published after Stop returns; a response still in flight is discarded.
func (p *Poller[T]) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

// Updates returns a channel carrying the latest snapshot. The channel has
// a one-element buffer and older unread snapshots are dropped, so a slow
// consumer always sees the freshest state.
func (p *Poller[T]) Updates() <-chan Snapshot[T] {
	return p.updates
}

// Snapshot returns the most recent snapshot.
func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

func (p *Poller[T]) refresh(ctx context.Context) {
	data, err := p.fetch(ctx)

	// The owner may have stopped us while the fetch was in flight; state
	// must not change after teardown.
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	if err != nil {
		p.snap.Err = err
		p.snap.Loading = false
	} else {
		p.snap = Snapshot[T]{Data: data, UpdatedAt: time.Now()}
	}
	snap := p.snap
	p.mu.Unlock()

	if err != nil {
		slog.Debug("poll fetch failed", "poller", p.name, "error", err)
	}

	p.publish(snap)
}

func (p *Poller[T]) publish(snap Snapshot[T]) {
	for {
		select {
		case p.updates <- snap:
			return
		default:
		}
		// Buffer full: drop the stale snapshot and retry.
		select {
		case <-p.updates:
		default:
		}
	}
}
