package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fernwood/tally/internal/common"
	"github.com/fernwood/tally/internal/notify"
	"github.com/fernwood/tally/internal/session"
	"github.com/fernwood/tally/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the live dashboard",
		Long: `Open the interactive dashboard.

The dashboard polls the API on a fixed interval and keeps showing the
last good data while a refresh is in flight, so the screen never blanks
between fetches.`,
		RunE: runDashboard,
	}

	cmd.Flags().Duration("refresh", 0, "dashboard refresh interval (default 30s)")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close session store", "error", closeErr)
		}
	}()

	if _, err := store.Token(); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return common.NewUserError("not logged in; run `tally auth login`", common.ErrNotAuthenticated)
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	interval, _ := cmd.Flags().GetDuration("refresh")
	if interval == 0 {
		interval = viper.GetDuration("dashboard.refresh_interval")
	}

	bus := notify.NewBus(client)
	if err := bus.SeedRecent(ctx, client); err != nil {
		// Server notifications are decoration; the dashboard still opens.
		slog.Warn("Failed to seed server notifications", "error", err)
	}

	cfg := tui.Config{
		Client:            client,
		Bus:               bus,
		DashboardInterval: interval,
		ClientsInterval:   viper.GetDuration("dashboard.clients_interval"),
	}

	return tui.Run(ctx, cfg)
}
