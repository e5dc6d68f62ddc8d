// Package tui renders the live dashboard: stat cards, tax jar, income
// trend, recent transactions, invoice and client tabs, and the
// notification overlay. All data arrives through pollers; the TUI never
// fetches on its own.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fernwood/tally/internal/model"
	"github.com/fernwood/tally/internal/notify"
	"github.com/fernwood/tally/internal/poll"
)

// tab identifies one dashboard view.
type tab int

const (
	tabOverview tab = iota
	tabInvoices
	tabClients
)

var tabNames = []string{"Overview", "Invoices", "Clients"}

// Feeds are the poll channels the dashboard consumes. Each poller runs
// its own timer; the TUI just drains their update channels.
type Feeds struct {
	Dashboard *poll.Poller[*model.DashboardSnapshot]
	Invoices  *poll.Poller[[]model.Invoice]
	Clients   *poll.Poller[*model.ClientOverview]
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	feeds Feeds
	bus   *notify.Bus
	busCh <-chan struct{}

	dash     poll.Snapshot[*model.DashboardSnapshot]
	invoices poll.Snapshot[[]model.Invoice]
	clients  poll.Snapshot[*model.ClientOverview]

	txTable      table.Model
	invoiceTable table.Model
	clientTable  table.Model
	spinner      spinner.Model

	active tab
	width  int
	height int
}

// NewModel creates the dashboard model.
func NewModel(feeds Feeds, bus *notify.Bus) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))

	return Model{
		feeds:        feeds,
		bus:          bus,
		busCh:        bus.Subscribe(),
		dash:         poll.Snapshot[*model.DashboardSnapshot]{Loading: true},
		invoices:     poll.Snapshot[[]model.Invoice]{Loading: true},
		clients:      poll.Snapshot[*model.ClientOverview]{Loading: true},
		txTable:      newTransactionTable(),
		invoiceTable: newInvoiceTable(),
		clientTable:  newClientTable(),
		spinner:      sp,
	}
}

// Init starts the spinner and the feed listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		waitFor(m.feeds.Dashboard.Updates(), func(s poll.Snapshot[*model.DashboardSnapshot]) tea.Msg {
			return dashboardMsg(s)
		}),
		waitFor(m.feeds.Invoices.Updates(), func(s poll.Snapshot[[]model.Invoice]) tea.Msg {
			return invoicesMsg(s)
		}),
		waitFor(m.feeds.Clients.Updates(), func(s poll.Snapshot[*model.ClientOverview]) tea.Msg {
			return clientsMsg(s)
		}),
	}
	if m.busCh != nil {
		cmds = append(cmds, waitForSignal(m.busCh))
	}
	return tea.Batch(cmds...)
}

// waitFor blocks on a poll channel and converts the snapshot to a message.
// The command is re-issued after each receipt so the feed stays live.
func waitFor[T any](ch <-chan poll.Snapshot[T], wrap func(poll.Snapshot[T]) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(snap)
	}
}

func waitForSignal(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return notificationsChangedMsg{}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.active = (m.active + 1) % tab(len(tabNames))
			return m, nil
		case "1":
			m.active = tabOverview
			return m, nil
		case "2":
			m.active = tabInvoices
			return m, nil
		case "3":
			m.active = tabClients
			return m, nil
		case "n":
			// Dismiss the newest notification by its id, never by index.
			if items := m.bus.Notifications(); len(items) > 0 {
				m.bus.Dismiss(items[0].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardMsg:
		m.dash = poll.Snapshot[*model.DashboardSnapshot](msg)
		if m.dash.Data != nil {
			m.txTable.SetRows(transactionRows(m.dash.Data.RecentTransactions))
		}
		return m, waitFor(m.feeds.Dashboard.Updates(), func(s poll.Snapshot[*model.DashboardSnapshot]) tea.Msg {
			return dashboardMsg(s)
		})

	case invoicesMsg:
		m.invoices = poll.Snapshot[[]model.Invoice](msg)
		m.invoiceTable.SetRows(invoiceRows(m.invoices.Data))
		return m, waitFor(m.feeds.Invoices.Updates(), func(s poll.Snapshot[[]model.Invoice]) tea.Msg {
			return invoicesMsg(s)
		})

	case clientsMsg:
		m.clients = poll.Snapshot[*model.ClientOverview](msg)
		if m.clients.Data != nil {
			m.clientTable.SetRows(clientRows(m.clients.Data.Clients))
		}
		return m, waitFor(m.feeds.Clients.Updates(), func(s poll.Snapshot[*model.ClientOverview]) tea.Msg {
			return clientsMsg(s)
		})

	case notificationsChangedMsg:
		// The overlay reads the bus directly at render time; the message
		// just forces a repaint. Keep listening.
		return m, waitForSignal(m.busCh)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Delegate remaining messages to the focused table.
	var cmd tea.Cmd
	switch m.active {
	case tabInvoices:
		m.invoiceTable, cmd = m.invoiceTable.Update(msg)
	case tabClients:
		m.clientTable, cmd = m.clientTable.Update(msg)
	default:
		m.txTable, cmd = m.txTable.Update(msg)
	}
	return m, cmd
}
