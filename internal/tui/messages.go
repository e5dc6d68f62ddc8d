package tui

import (
	"github.com/fernwood/tally/internal/model"
	"github.com/fernwood/tally/internal/poll"
)

// Poll feed messages. Each wraps the latest snapshot from its poller.
type dashboardMsg poll.Snapshot[*model.DashboardSnapshot]

type invoicesMsg poll.Snapshot[[]model.Invoice]

type clientsMsg poll.Snapshot[*model.ClientOverview]

// notificationsChangedMsg signals that the notification list changed and
// the overlay needs a repaint.
type notificationsChangedMsg struct{}
