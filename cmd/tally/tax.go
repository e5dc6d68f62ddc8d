package main

import (
	"fmt"
	"strconv"

	"github.com/fernwood/tally/internal/cli"
	"github.com/spf13/cobra"
)

func taxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Estimated-tax settings and summaries",
	}

	cmd.AddCommand(taxSettingsCmd())
	cmd.AddCommand(taxQuarterlyCmd())
	cmd.AddCommand(taxYTDCmd())
	cmd.AddCommand(taxSetAsideCmd())

	return cmd
}

func taxSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or update tax settings",
		Long: `Show the current estimated-tax settings, or update them when any
flag is set.`,
		RunE: runTaxSettings,
	}

	cmd.Flags().String("filing-status", "", "filing status (single, married-joint, ...)")
	cmd.Flags().String("state", "", "state of residence")
	cmd.Flags().Float64("federal-rate", -1, "federal rate percent")
	cmd.Flags().Float64("state-rate", -1, "state rate percent")
	cmd.Flags().Float64("set-aside", -1, "set-aside percentage of income")
	cmd.Flags().Bool("auto-set-aside", false, "suggest a set-aside whenever income arrives")

	return cmd
}

func runTaxSettings(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	settings, err := client.TaxSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch tax settings: %w", err)
	}

	changed := false
	if v, _ := cmd.Flags().GetString("filing-status"); v != "" {
		settings.FilingStatus = v
		changed = true
	}
	if v, _ := cmd.Flags().GetString("state"); v != "" {
		settings.State = v
		changed = true
	}
	if v, _ := cmd.Flags().GetFloat64("federal-rate"); v >= 0 {
		settings.FederalRate = v
		changed = true
	}
	if v, _ := cmd.Flags().GetFloat64("state-rate"); v >= 0 {
		settings.StateRate = v
		changed = true
	}
	if v, _ := cmd.Flags().GetFloat64("set-aside"); v >= 0 {
		settings.SetAsidePercentage = v
		changed = true
	}
	if cmd.Flags().Changed("auto-set-aside") {
		settings.AutoSetAside, _ = cmd.Flags().GetBool("auto-set-aside")
		changed = true
	}

	if changed {
		settings, err = client.UpdateTaxSettings(ctx, *settings)
		if err != nil {
			return fmt.Errorf("failed to update tax settings: %w", err)
		}
		fmt.Println(cli.FormatSuccess("Tax settings updated")) //nolint:forbidigo // User-facing output
	}

	body := fmt.Sprintf("Filing status:  %s (%s)\nFederal rate:   %.1f%%\nState rate:     %.1f%%\nSelf-emp rate:  %.1f%%\nSet aside:      %.1f%% of income\nAuto set-aside: %s",
		settings.FilingStatus, settings.State,
		settings.FederalRate, settings.StateRate, settings.SelfEmploymentRate,
		settings.SetAsidePercentage, strconv.FormatBool(settings.AutoSetAside))
	fmt.Println(cli.RenderBox("Tax Settings", body)) //nolint:forbidigo // User-facing output

	return nil
}

func taxQuarterlyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quarterly",
		Short: "Show quarterly deadlines and the current quarter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			dates, err := client.QuarterlyDates(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch quarterly dates: %w", err)
			}

			for _, d := range dates {
				marker := " "
				if d.Paid {
					marker = "✓"
				}
				fmt.Printf("%s %-4s due %s\n", marker, d.Quarter, formatDate(d.DueDate)) //nolint:forbidigo // User-facing output
			}

			summary, err := client.QuarterlySummary(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch quarterly summary: %w", err)
			}

			body := fmt.Sprintf("Income:        %s\nExpenses:      %s\nEstimated tax: %s\nSet aside:     %s\nStill to save: %s",
				formatMoney(summary.TotalIncome), formatMoney(summary.TotalExpenses),
				formatMoney(summary.EstimatedTax), formatMoney(summary.SetAsideToDate),
				formatMoney(summary.RemainingToSave))
			fmt.Println(cli.RenderBox(fmt.Sprintf("Quarter %s", summary.Quarter), body)) //nolint:forbidigo // User-facing output

			return nil
		},
	}
}

func taxYTDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ytd",
		Short: "Show the year-to-date tax position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			ytd, err := client.YTDLiability(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch YTD liability: %w", err)
			}

			body := fmt.Sprintf("Net income:    %s\nEstimated tax: %s\nPaid to date:  %s\nRemaining:     %s",
				formatMoney(ytd.NetIncome), formatMoney(ytd.EstimatedTax),
				formatMoney(ytd.PaidToDate), formatMoney(ytd.RemainingBalance))
			fmt.Println(cli.RenderBox(fmt.Sprintf("%d Tax Position", ytd.Year), body)) //nolint:forbidigo // User-facing output

			return nil
		},
	}
}

func taxSetAsideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-aside [amount]",
		Short: "Calculate the set-aside for an income amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount must be a positive number, got %q", args[0])
			}

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			breakdown, err := client.CalculateSetAside(ctx, amount)
			if err != nil {
				return fmt.Errorf("failed to calculate set-aside: %w", err)
			}

			lines := fmt.Sprintf("From %s of income, set aside %s:",
				formatMoney(breakdown.IncomeAmount), formatMoney(breakdown.TotalSetAside))
			for _, line := range breakdown.Breakdown {
				lines += fmt.Sprintf("\n  %s (%.1f%%): %s", line.Label, line.Rate, formatMoney(line.Amount))
			}
			fmt.Println(cli.RenderBox("Tax Set-Aside", lines)) //nolint:forbidigo // User-facing output

			return nil
		},
	}
}
