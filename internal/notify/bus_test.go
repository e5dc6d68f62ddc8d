package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fernwood/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCalculator struct {
	breakdown *model.SetAsideBreakdown
	err       error
	gotAmount float64
}

func (s *stubCalculator) CalculateSetAside(_ context.Context, amount float64) (*model.SetAsideBreakdown, error) {
	s.gotAmount = amount
	if s.err != nil {
		return nil, s.err
	}
	return s.breakdown, nil
}

// manualTimers collects scheduled auto-hide callbacks so tests fire them
// explicitly.
type manualTimers struct {
	mu        sync.Mutex
	callbacks []func()
	delays    []time.Duration
}

func (m *manualTimers) afterFunc(d time.Duration, f func()) *time.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, f)
	m.delays = append(m.delays, d)
	return nil
}

func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	f := m.callbacks[i]
	m.mu.Unlock()
	f()
}

func TestBusPushPrependsMostRecentFirst(t *testing.T) {
	bus := NewBus(nil)

	bus.Push(model.Notification{Title: "first"})
	bus.Push(model.Notification{Title: "second"})
	bus.Push(model.Notification{Title: "third"})

	items := bus.Notifications()
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "first", items[2].Title)

	// Every notification got a stable id and a timestamp.
	for _, n := range items {
		assert.NotEmpty(t, n.ID)
		assert.False(t, n.Timestamp.IsZero())
	}
}

func TestBusDismissByIDSurvivesConcurrentPrepend(t *testing.T) {
	bus := NewBus(nil)

	bus.Push(model.Notification{Title: "C"})
	idB := bus.Push(model.Notification{Title: "B"})
	bus.Push(model.Notification{Title: "A"})

	// Another notification arrives between render and click; positions
	// shift but the id does not.
	bus.Push(model.Notification{Title: "newest"})

	bus.Dismiss(idB)

	titles := make([]string, 0, 3)
	for _, n := range bus.Notifications() {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"newest", "A", "C"}, titles)
}

func TestBusDismissUnknownIDIsHarmless(t *testing.T) {
	bus := NewBus(nil)
	bus.Push(model.Notification{Title: "only"})

	bus.Dismiss("no-such-id")

	assert.Len(t, bus.Notifications(), 1)
}

func TestBusAutoHide(t *testing.T) {
	timers := &manualTimers{}
	bus := NewBus(nil, WithAfterFunc(timers.afterFunc))

	bus.Push(model.Notification{Title: "ephemeral", AutoHide: DefaultAutoHide})
	bus.Push(model.Notification{Title: "sticky"})

	require.Len(t, timers.callbacks, 1)
	assert.Equal(t, DefaultAutoHide, timers.delays[0])

	timers.fire(0)

	items := bus.Notifications()
	require.Len(t, items, 1)
	assert.Equal(t, "sticky", items[0].Title)

	// Expiry after a manual dismissal must not remove anything else.
	timers.fire(0)
	assert.Len(t, bus.Notifications(), 1)
}

func TestBusShowIncomeSetAside(t *testing.T) {
	calc := &stubCalculator{
		breakdown: &model.SetAsideBreakdown{
			IncomeAmount:  1000,
			TotalSetAside: 300,
			Breakdown: []model.SetAsideLine{
				{Label: "Federal", Rate: 22, Amount: 220},
				{Label: "State", Rate: 8, Amount: 80},
			},
		},
	}
	timers := &manualTimers{}
	bus := NewBus(calc, WithAfterFunc(timers.afterFunc))

	require.NoError(t, bus.ShowIncomeSetAside(context.Background(), 1000))

	assert.InDelta(t, 1000, calc.gotAmount, 1e-9)

	items := bus.Notifications()
	require.Len(t, items, 1)
	assert.Equal(t, model.NotificationInfo, items[0].Type)
	assert.Contains(t, items[0].Message, "$300.00")
	assert.Len(t, items[0].Breakdown, 2)

	// Auto-hide was scheduled with the default delay.
	require.Len(t, timers.delays, 1)
	assert.Equal(t, DefaultAutoHide, timers.delays[0])
}

func TestBusShowIncomeSetAsideError(t *testing.T) {
	calcErr := errors.New("backend down")
	bus := NewBus(&stubCalculator{err: calcErr})

	err := bus.ShowIncomeSetAside(context.Background(), 500)

	assert.ErrorIs(t, err, calcErr)
	assert.Empty(t, bus.Notifications())
}

type stubRecentSource struct {
	recent []model.Notification
	err    error
}

func (s *stubRecentSource) RecentNotifications(_ context.Context) ([]model.Notification, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recent, nil
}

func TestBusSeedRecent(t *testing.T) {
	timers := &manualTimers{}
	bus := NewBus(nil, WithAfterFunc(timers.afterFunc))
	existing := bus.Push(model.Notification{ID: "srv-2", Title: "already shown"})

	src := &stubRecentSource{
		recent: []model.Notification{
			{ID: "srv-1", Title: "newest from server", AutoHide: DefaultAutoHide},
			{ID: "srv-2", Title: "duplicate"},
			{ID: "srv-3", Title: "oldest from server"},
		},
	}

	require.NoError(t, bus.SeedRecent(context.Background(), src))

	titles := make([]string, 0, 3)
	for _, n := range bus.Notifications() {
		titles = append(titles, n.Title)
	}
	// Server order preserved on top of what was already there, duplicate
	// id skipped, and no auto-hide timers scheduled for seeded entries.
	assert.Equal(t, []string{"newest from server", "oldest from server", "already shown"}, titles)
	assert.Equal(t, existing, bus.Notifications()[2].ID)
	assert.Empty(t, timers.callbacks)
}

func TestBusSeedRecentError(t *testing.T) {
	srcErr := errors.New("backend down")
	bus := NewBus(nil)

	err := bus.SeedRecent(context.Background(), &stubRecentSource{err: srcErr})

	assert.ErrorIs(t, err, srcErr)
	assert.Empty(t, bus.Notifications())
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *Bus

	assert.NoError(t, bus.ShowIncomeSetAside(context.Background(), 100))
	assert.NoError(t, bus.SeedRecent(context.Background(), &stubRecentSource{}))
	assert.Empty(t, bus.Push(model.Notification{Title: "x"}))
	bus.Dismiss("anything")
	assert.Nil(t, bus.Notifications())
	assert.Nil(t, bus.Subscribe())
}

func TestBusSubscribeSignalsOnChange(t *testing.T) {
	bus := NewBus(nil)
	ch := bus.Subscribe()

	id := bus.Push(model.Notification{Title: "hello"})

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal after push")
	}

	bus.Dismiss(id)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal after dismiss")
	}
}
