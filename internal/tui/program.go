package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fernwood/tally/internal/api"
	"github.com/fernwood/tally/internal/model"
	"github.com/fernwood/tally/internal/notify"
	"github.com/fernwood/tally/internal/poll"
)

// invoicePageSize bounds how many invoices the dashboard feed pulls.
const invoicePageSize = 100

// Config holds everything needed to run the dashboard.
type Config struct {
	Client            *api.Client
	Bus               *notify.Bus
	DashboardInterval time.Duration
	ClientsInterval   time.Duration
}

// Run polls the API and displays the dashboard until the user quits or
// ctx is canceled. All pollers are stopped before Run returns, so no
// fetch can mutate anything after teardown.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Client == nil {
		return fmt.Errorf("api client is required")
	}
	if cfg.DashboardInterval <= 0 {
		cfg.DashboardInterval = 30 * time.Second
	}
	if cfg.ClientsInterval <= 0 {
		cfg.ClientsInterval = 60 * time.Second
	}

	feeds := Feeds{
		Dashboard: poll.New("dashboard", cfg.DashboardInterval, cfg.Client.Dashboard),
		Invoices: poll.New("invoices", cfg.DashboardInterval, func(ctx context.Context) ([]model.Invoice, error) {
			list, err := cfg.Client.ListInvoices(ctx, api.ListInvoicesOptions{Limit: invoicePageSize})
			if err != nil {
				return nil, err
			}
			return list.Invoices, nil
		}),
		Clients: poll.New("clients", cfg.ClientsInterval, cfg.Client.ClientOverview),
	}

	feeds.Dashboard.Start(ctx)
	feeds.Invoices.Start(ctx)
	feeds.Clients.Start(ctx)
	defer func() {
		feeds.Dashboard.Stop()
		feeds.Invoices.Stop()
		feeds.Clients.Stop()
	}()

	program := tea.NewProgram(
		NewModel(feeds, cfg.Bus),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	return nil
}
