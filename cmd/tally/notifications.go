package main

import (
	"fmt"

	"github.com/fernwood/tally/internal/cli"
	"github.com/spf13/cobra"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Server notifications and email digests",
	}

	cmd.AddCommand(notificationsListCmd())
	cmd.AddCommand(notificationsTestWeeklyCmd())

	return cmd
}

func notificationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show recent server notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			recent, err := client.RecentNotifications(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch notifications: %w", err)
			}

			if len(recent) == 0 {
				fmt.Println(cli.FormatInfo("No recent notifications")) //nolint:forbidigo // User-facing output
				return nil
			}

			for _, n := range recent {
				fmt.Printf("%s  [%s] %s — %s\n", //nolint:forbidigo // User-facing output
					n.Timestamp.Format("2006-01-02 15:04"), n.Type, n.Title, n.Message)
			}

			return nil
		},
	}
}

func notificationsTestWeeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-weekly",
		Short: "Send yourself a test weekly summary email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := client.SendWeeklySummaryTest(ctx); err != nil {
				return fmt.Errorf("failed to send weekly summary: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Weekly summary test email sent")) //nolint:forbidigo // User-facing output

			return nil
		},
	}
}
