package main

import (
	"fmt"
	"strings"

	"github.com/fernwood/tally/internal/api"
	"github.com/fernwood/tally/internal/cli"
	"github.com/fernwood/tally/internal/model"
	"github.com/spf13/cobra"
)

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List and manage clients",
	}

	cmd.AddCommand(clientsListCmd())
	cmd.AddCommand(clientsAddCmd())
	cmd.AddCommand(clientsOverviewCmd())
	cmd.AddCommand(clientsQuickInvoiceCmd())

	return cmd
}

func clientsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE:  runClientsList,
	}

	cmd.Flags().String("status", "", "filter by status (active, inactive, pending, blocked)")
	cmd.Flags().String("search", "", "search name, email, or company")
	cmd.Flags().Int("page", 1, "result page")
	cmd.Flags().Int("limit", 20, "results per page")

	return cmd
}

func runClientsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts := api.ListClientsOptions{}
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		opts.Status = model.ClientStatus(strings.ToLower(raw))
	}
	opts.Search, _ = cmd.Flags().GetString("search")
	opts.Page, _ = cmd.Flags().GetInt("page")
	opts.Limit, _ = cmd.Flags().GetInt("limit")

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	list, err := client.ListClients(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}

	if len(list.Clients) == 0 {
		fmt.Println(cli.FormatInfo("No clients found")) //nolint:forbidigo // User-facing output
		return nil
	}

	for _, c := range list.Clients {
		fmt.Printf("%-10s %-24s %-28s %-8s owes %s\n", //nolint:forbidigo // User-facing output
			c.ID, c.Name, c.Email, c.Status, formatMoney(c.OutstandingBalance))
	}

	if list.Pagination.Pages > 1 {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Page %d of %d (%d total)", //nolint:forbidigo // User-facing output
			list.Pagination.Current, list.Pagination.Pages, list.Pagination.Total)))
	}

	return nil
}

func clientsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		RunE:  runClientsAdd,
	}

	cmd.Flags().String("name", "", "client name (required)")
	cmd.Flags().String("email", "", "client email (required)")
	cmd.Flags().String("company", "", "company name")
	cmd.Flags().Float64("rate", 0, "default hourly rate")
	cmd.Flags().String("payment-terms", "", "payment terms (e.g. net-30)")

	return cmd
}

func runClientsAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req := api.CreateClientRequest{}
	req.Name, _ = cmd.Flags().GetString("name")
	req.Email, _ = cmd.Flags().GetString("email")
	req.Company, _ = cmd.Flags().GetString("company")
	req.BillingInfo.DefaultRate, _ = cmd.Flags().GetFloat64("rate")
	req.BillingInfo.PaymentTerms, _ = cmd.Flags().GetString("payment-terms")

	if req.Name == "" {
		return fmt.Errorf("a --name is required")
	}
	if req.Email == "" {
		return fmt.Errorf("an --email is required")
	}

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	created, err := client.CreateClient(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added client %s (%s)", created.Name, created.ID))) //nolint:forbidigo // User-facing output

	return nil
}

func clientsOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show aggregate client stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			overview, err := client.ClientOverview(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch client overview: %w", err)
			}

			summary := fmt.Sprintf("Active clients: %d\nTotal billed:   %s\nOutstanding:    %s",
				overview.ActiveClients, formatMoney(overview.TotalBilled), formatMoney(overview.TotalOutstanding))
			fmt.Println(cli.RenderBox("Clients", summary)) //nolint:forbidigo // User-facing output

			if len(overview.TopClients) > 0 {
				fmt.Println(cli.FormatTitle("Top clients")) //nolint:forbidigo // User-facing output
				for _, c := range overview.TopClients {
					fmt.Printf("%-24s billed %s\n", c.Name, formatMoney(c.TotalBilled)) //nolint:forbidigo // User-facing output
				}
			}

			return nil
		},
	}
}

func clientsQuickInvoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quick-invoice [client-id]",
		Short: "Create a one-line invoice for a client",
		Long: `Create an invoice for a client in one step.

With --hours the amount is hours times the client's hourly rate; with
--amount the invoice is a flat fee.`,
		Args: cobra.ExactArgs(1),
		RunE: runClientsQuickInvoice,
	}

	cmd.Flags().String("description", "", "line item description (required)")
	cmd.Flags().Float64("hours", 0, "hours to bill at the client's rate")
	cmd.Flags().Float64("amount", 0, "flat amount to bill")

	return cmd
}

func runClientsQuickInvoice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	req := api.QuickInvoiceRequest{}
	req.Description, _ = cmd.Flags().GetString("description")
	req.Hours, _ = cmd.Flags().GetFloat64("hours")
	req.Amount, _ = cmd.Flags().GetFloat64("amount")

	if req.Description == "" {
		return fmt.Errorf("a --description is required")
	}
	if req.Hours == 0 && req.Amount == 0 {
		return fmt.Errorf("either --hours or --amount is required")
	}

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	inv, err := client.QuickInvoice(ctx, args[0], req)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("client %s not found", args[0])
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %s for %s (%s)", //nolint:forbidigo // User-facing output
		inv.InvoiceNumber, inv.Client.Name, formatMoney(inv.Total))))

	return nil
}
