// Package notify implements the transient notification side-channel. A
// single Bus is created at the application root and handed to whatever
// needs to raise a notification; there is no package-level global, and a
// nil Bus is safe everywhere so callers never have to check whether one
// was installed.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fernwood/tally/internal/model"
	"github.com/google/uuid"
)

// DefaultAutoHide is how long a notification stays up before it removes
// itself, unless dismissed first.
const DefaultAutoHide = 30 * time.Second

// SetAsideCalculator asks the backend to compute a tax set-aside breakdown
// for an income amount. Implemented by the API client.
type SetAsideCalculator interface {
	CalculateSetAside(ctx context.Context, amount float64) (*model.SetAsideBreakdown, error)
}

// Bus owns the in-memory notification list, most-recent-first. Identity is
// tracked by id, never by position, so dismissal is stable under
// concurrent prepends.
type Bus struct {
	calc  SetAsideCalculator
	after func(time.Duration, func()) *time.Timer

	mu    sync.Mutex
	items []model.Notification
	subs  []chan struct{}
}

// Option configures a Bus.
type Option func(*Bus)

// WithAfterFunc replaces the auto-hide scheduler, letting tests fire
// expiry deterministically.
func WithAfterFunc(after func(time.Duration, func()) *time.Timer) Option {
	return func(b *Bus) { b.after = after }
}

// NewBus creates a notification bus. calc may be nil if set-aside
// notifications are never raised.
func NewBus(calc SetAsideCalculator, opts ...Option) *Bus {
	b := &Bus{
		calc:  calc,
		after: time.AfterFunc,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ShowIncomeSetAside fetches a set-aside breakdown for amount and raises
// an info notification carrying it. Calling this on a nil Bus or a Bus
// without a calculator is a no-op.
func (b *Bus) ShowIncomeSetAside(ctx context.Context, amount float64) error {
	if b == nil || b.calc == nil {
		return nil
	}

	breakdown, err := b.calc.CalculateSetAside(ctx, amount)
	if err != nil {
		return fmt.Errorf("failed to calculate set-aside: %w", err)
	}

	b.Push(model.Notification{
		Type:      model.NotificationInfo,
		Title:     "Income recorded",
		Message:   fmt.Sprintf("Set aside $%.2f of this $%.2f for taxes", breakdown.TotalSetAside, amount),
		Breakdown: breakdown.Breakdown,
		AutoHide:  DefaultAutoHide,
	})

	return nil
}

// RecentSource lists notifications the server has raised for this account.
// Implemented by the API client.
type RecentSource interface {
	RecentNotifications(ctx context.Context) ([]model.Notification, error)
}

// SeedRecent folds server-pushed notifications into the list. Entries whose
// id is already present are skipped; seeded entries get no auto-hide, they
// stay until dismissed.
func (b *Bus) SeedRecent(ctx context.Context, src RecentSource) error {
	if b == nil || src == nil {
		return nil
	}

	recent, err := src.RecentNotifications(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch recent notifications: %w", err)
	}

	// Oldest first, so the newest ends up on top.
	for i := len(recent) - 1; i >= 0; i-- {
		n := recent[i]
		if n.ID != "" && b.has(n.ID) {
			continue
		}
		n.AutoHide = 0
		b.Push(n)
	}

	return nil
}

func (b *Bus) has(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, n := range b.items {
		if n.ID == id {
			return true
		}
	}
	return false
}

// Push prepends a notification and returns its id. A missing id or
// timestamp is filled in. AutoHide > 0 schedules removal; dismissing first
// wins, and removal of an already-dismissed id is harmless.
func (b *Bus) Push(n model.Notification) string {
	if b == nil {
		return ""
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	b.mu.Lock()
	b.items = append([]model.Notification{n}, b.items...)
	b.mu.Unlock()

	if n.AutoHide > 0 {
		id := n.ID
		b.after(n.AutoHide, func() { b.Dismiss(id) })
	}

	slog.Debug("notification raised", "id", n.ID, "type", n.Type, "title", n.Title)
	b.notify()
	return n.ID
}

// Dismiss removes the notification with the given id, if still present.
func (b *Bus) Dismiss(id string) {
	if b == nil {
		return
	}

	b.mu.Lock()
	removed := false
	for i, n := range b.items {
		if n.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			removed = true
			break
		}
	}
	b.mu.Unlock()

	if removed {
		b.notify()
	}
}

// Notifications returns a copy of the list, most recent first.
func (b *Bus) Notifications() []model.Notification {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Notification, len(b.items))
	copy(out, b.items)
	return out
}

// Subscribe returns a channel that receives a signal whenever the list
// changes. The channel has a one-element buffer; coalesced signals mean
// "something changed", not one event per change.
func (b *Bus) Subscribe() <-chan struct{} {
	if b == nil {
		return nil
	}

	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

func (b *Bus) notify() {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
