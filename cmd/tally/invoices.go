package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fernwood/tally/internal/api"
	"github.com/fernwood/tally/internal/cli"
	"github.com/fernwood/tally/internal/metrics"
	"github.com/fernwood/tally/internal/model"
	"github.com/spf13/cobra"
)

func invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List and manage invoices",
	}

	cmd.AddCommand(invoicesListCmd())
	cmd.AddCommand(invoicesCreateCmd())
	cmd.AddCommand(invoicesStatusCmd())
	cmd.AddCommand(invoicesDeleteCmd())
	cmd.AddCommand(invoicesPDFCmd())
	cmd.AddCommand(invoicesEmailCmd())

	return cmd
}

func invoicesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE:  runInvoicesList,
	}

	cmd.Flags().String("status", "", "filter by status (draft, sent, pending, paid, overdue, cancelled)")
	cmd.Flags().String("search", "", "search invoice number or client name")
	cmd.Flags().Int("page", 1, "result page")
	cmd.Flags().Int("limit", 20, "results per page")

	return cmd
}

func runInvoicesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts := api.ListInvoicesOptions{}
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		status, err := parseInvoiceStatus(raw)
		if err != nil {
			return err
		}
		opts.Status = status
	}
	opts.Search, _ = cmd.Flags().GetString("search")
	opts.Page, _ = cmd.Flags().GetInt("page")
	opts.Limit, _ = cmd.Flags().GetInt("limit")

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	list, err := client.ListInvoices(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}

	if len(list.Invoices) == 0 {
		fmt.Println(cli.FormatInfo("No invoices found")) //nolint:forbidigo // User-facing output
		return nil
	}

	now := time.Now()
	summary := metrics.SummarizeInvoices(list.Invoices, now)
	header := fmt.Sprintf("%d pending (%s) · %d paid (%s) · %d overdue",
		summary.Pending, formatMoney(summary.TotalPending),
		summary.Paid, formatMoney(summary.TotalPaid),
		summary.Overdue)
	fmt.Println(cli.FormatTitle(header)) //nolint:forbidigo // User-facing output

	for _, inv := range list.Invoices {
		line := fmt.Sprintf("%-12s %-24s %-10s due %-12s %10s",
			inv.InvoiceNumber, inv.Client.Name, inv.Status, formatDate(inv.DueDate), formatMoney(inv.Total))
		if inv.IsOverdue(now) {
			line += "  " + cli.FormatWarning("overdue")
		}
		fmt.Println(line) //nolint:forbidigo // User-facing output
	}

	if list.Pagination.Pages > 1 {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Page %d of %d (%d total)", //nolint:forbidigo // User-facing output
			list.Pagination.Current, list.Pagination.Pages, list.Pagination.Total)))
	}

	return nil
}

func invoicesCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice",
		Long: `Create an invoice from line items.

Each --item is description:quantity:rate. The total preview shown before
submission applies the discount to the subtotal and taxes the discounted
amount, matching what the server will persist.

Example:
  tally invoices create --client c_123 \
    --item "Design work:10:75" --item "Hosting:1:25" \
    --tax-rate 10 --discount-rate 5 --due 2026-09-30`,
		RunE: runInvoicesCreate,
	}

	cmd.Flags().String("client", "", "client id (required)")
	cmd.Flags().StringArray("item", nil, "line item as description:quantity:rate (repeatable)")
	cmd.Flags().Float64("tax-rate", 0, "tax rate percent")
	cmd.Flags().Float64("discount-rate", 0, "discount rate percent")
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().String("notes", "", "invoice notes")

	return cmd
}

func runInvoicesCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	rawItems, _ := cmd.Flags().GetStringArray("item")
	items, err := parseInvoiceItems(rawItems)
	if err != nil {
		return err
	}

	req := api.CreateInvoiceRequest{Items: items}
	req.ClientID, _ = cmd.Flags().GetString("client")
	req.TaxRate, _ = cmd.Flags().GetFloat64("tax-rate")
	req.DiscountRate, _ = cmd.Flags().GetFloat64("discount-rate")
	req.DueDate, _ = cmd.Flags().GetString("due")
	req.Notes, _ = cmd.Flags().GetString("notes")

	if err := validateCreateInvoice(req); err != nil {
		return err
	}

	totals := model.ComputeInvoiceTotals(req.Items, req.TaxRate, req.DiscountRate)
	preview := fmt.Sprintf("Subtotal: %s\nDiscount: -%s\nTax:      %s\nTotal:    %s",
		formatMoney(totals.Subtotal), formatMoney(totals.Discount),
		formatMoney(totals.Tax), formatMoney(totals.Total))
	fmt.Println(cli.RenderBox("Invoice Preview", preview)) //nolint:forbidigo // User-facing output

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	inv, err := client.CreateInvoice(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %s for %s (%s)", //nolint:forbidigo // User-facing output
		inv.InvoiceNumber, inv.Client.Name, formatMoney(inv.Total))))

	return nil
}

func invoicesStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [invoice-id] [status]",
		Short: "Change an invoice's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			status, err := parseInvoiceStatus(args[1])
			if err != nil {
				return err
			}

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			inv, err := client.UpdateInvoiceStatus(ctx, args[0], status)
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("invoice %s not found", args[0])
				}
				return fmt.Errorf("failed to update invoice: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s is now %s", inv.InvoiceNumber, inv.Status))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func invoicesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [invoice-id]",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := client.DeleteInvoice(ctx, args[0]); err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("invoice %s not found", args[0])
				}
				return fmt.Errorf("failed to delete invoice: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted invoice %s", args[0]))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func invoicesPDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf [invoice-id]",
		Short: "Download an invoice as a PDF",
		Args:  cobra.ExactArgs(1),
		RunE:  runInvoicesPDF,
	}

	cmd.Flags().StringP("output", "o", "", "output file (default <invoice-id>.pdf)")

	return cmd
}

func runInvoicesPDF(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = args[0] + ".pdf"
	}

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	body, err := client.InvoicePDF(ctx, args[0])
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("invoice %s not found", args[0])
		}
		return fmt.Errorf("failed to download PDF: %w", err)
	}
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			slog.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}

	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %s (%d bytes)", output, written))) //nolint:forbidigo // User-facing output

	return nil
}

func invoicesEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email [invoice-id]",
		Short: "Email an invoice to its client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			req := api.EmailInvoiceRequest{}
			req.To, _ = cmd.Flags().GetString("to")
			req.Message, _ = cmd.Flags().GetString("message")

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := client.EmailInvoice(ctx, args[0], req); err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("invoice %s not found", args[0])
				}
				return fmt.Errorf("failed to email invoice: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Emailed invoice %s", args[0]))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().String("to", "", "override recipient email")
	cmd.Flags().String("message", "", "custom message body")

	return cmd
}
