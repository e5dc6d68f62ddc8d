package main

import (
	"fmt"
	"strings"

	"github.com/fernwood/tally/internal/api"
	"github.com/fernwood/tally/internal/cli"
	"github.com/fernwood/tally/internal/metrics"
	"github.com/fernwood/tally/internal/model"
	"github.com/fernwood/tally/internal/notify"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List and manage transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsAddCmd())
	cmd.AddCommand(transactionsCategorizeCmd())
	cmd.AddCommand(transactionsSuggestionsCmd())
	cmd.AddCommand(transactionsRetrainCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE:  runTransactionsList,
	}

	cmd.Flags().String("type", "", "filter by type (income, expense, transfer)")
	cmd.Flags().String("classification", "", "filter by classification (business, personal, mixed, unknown)")
	cmd.Flags().String("category", "", "filter by category")
	cmd.Flags().String("search", "", "search merchant or description")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Int("page", 1, "result page")
	cmd.Flags().Int("limit", 20, "results per page")
	cmd.Flags().Bool("breakdown", false, "show per-category totals instead of rows")

	return cmd
}

func runTransactionsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts := api.ListTransactionsOptions{}
	if raw, _ := cmd.Flags().GetString("type"); raw != "" {
		opts.Type = model.TransactionType(strings.ToLower(raw))
	}
	if raw, _ := cmd.Flags().GetString("classification"); raw != "" {
		opts.Classification = model.BusinessClassification(strings.ToLower(raw))
	}
	opts.Category, _ = cmd.Flags().GetString("category")
	opts.Search, _ = cmd.Flags().GetString("search")
	opts.StartDate, _ = cmd.Flags().GetString("start")
	opts.EndDate, _ = cmd.Flags().GetString("end")
	opts.Page, _ = cmd.Flags().GetInt("page")
	opts.Limit, _ = cmd.Flags().GetInt("limit")

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	list, err := client.ListTransactions(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	if len(list.Transactions) == 0 {
		fmt.Println(cli.FormatInfo("No transactions found")) //nolint:forbidigo // User-facing output
		return nil
	}

	if breakdown, _ := cmd.Flags().GetBool("breakdown"); breakdown {
		for _, entry := range metrics.CategoryBreakdown(list.Transactions) {
			fmt.Printf("%-28s %10s (%d)\n", entry.Category, formatMoney(entry.Amount), entry.Count) //nolint:forbidigo // User-facing output
		}
		return nil
	}

	for _, tx := range list.Transactions {
		sign := "-"
		if tx.Type == model.TransactionIncome {
			sign = "+"
		}
		category := tx.Category.Primary
		if category == "" {
			category = "—"
		} else if tx.Category.IsLowConfidence() {
			category += " ?"
		}
		fmt.Printf("%s  %-28s %-20s %s%s\n", //nolint:forbidigo // User-facing output
			formatDate(tx.Date), tx.MerchantName, category, sign, formatMoney(tx.Amount))
	}

	if list.Pagination.Pages > 1 {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Page %d of %d (%d total)", //nolint:forbidigo // User-facing output
			list.Pagination.Current, list.Pagination.Pages, list.Pagination.Total)))
	}

	return nil
}

func transactionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a manual transaction",
		Long: `Record a transaction that didn't come from a bank feed.

Recording income also shows the tax set-aside suggestion for the amount,
the same reminder the dashboard raises when income arrives.`,
		RunE: runTransactionsAdd,
	}

	cmd.Flags().Float64("amount", 0, "amount (required, positive)")
	cmd.Flags().String("type", "expense", "transaction type (income, expense, transfer)")
	cmd.Flags().String("date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().String("merchant", "", "merchant or payer name")
	cmd.Flags().String("description", "", "description")
	cmd.Flags().String("notes", "", "notes")

	return cmd
}

func runTransactionsAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req := api.ManualTransactionRequest{}
	req.Amount, _ = cmd.Flags().GetFloat64("amount")
	rawType, _ := cmd.Flags().GetString("type")
	req.Type = model.TransactionType(strings.ToLower(rawType))
	req.Date, _ = cmd.Flags().GetString("date")
	req.MerchantName, _ = cmd.Flags().GetString("merchant")
	req.Description, _ = cmd.Flags().GetString("description")
	req.Notes, _ = cmd.Flags().GetString("notes")

	if err := validateManualTransaction(req); err != nil {
		return err
	}

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	tx, err := client.CreateManualTransaction(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s %s on %s", //nolint:forbidigo // User-facing output
		tx.Type, formatMoney(tx.Amount), formatDate(tx.Date))))

	if tx.Type == model.TransactionIncome {
		showSetAsideReminder(cmd, client, tx.Amount)
	}

	return nil
}

// showSetAsideReminder raises the income set-aside notification and prints
// it. The reminder is best-effort; a failure never fails the command.
func showSetAsideReminder(cmd *cobra.Command, client *api.Client, amount float64) {
	bus := notify.NewBus(client)
	if err := bus.ShowIncomeSetAside(cmd.Context(), amount); err != nil {
		return
	}

	items := bus.Notifications()
	if len(items) == 0 {
		return
	}

	n := items[0]
	lines := make([]string, 0, len(n.Breakdown)+1)
	lines = append(lines, n.Message)
	for _, line := range n.Breakdown {
		lines = append(lines, fmt.Sprintf("  %s (%.1f%%): %s", line.Label, line.Rate, formatMoney(line.Amount)))
	}

	fmt.Println(cli.RenderBox(n.Title, strings.Join(lines, "\n"))) //nolint:forbidigo // User-facing output
}

func transactionsCategorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize [transaction-id]",
		Short: "Assign a category to a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runTransactionsCategorize,
	}

	cmd.Flags().String("primary", "", "primary category (required)")
	cmd.Flags().String("detailed", "", "detailed category")
	cmd.Flags().String("classification", "", "business classification (business, personal, mixed)")

	return cmd
}

func runTransactionsCategorize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	req := api.CategorizeRequest{}
	req.Primary, _ = cmd.Flags().GetString("primary")
	req.Detailed, _ = cmd.Flags().GetString("detailed")
	if raw, _ := cmd.Flags().GetString("classification"); raw != "" {
		req.BusinessClassification = model.BusinessClassification(strings.ToLower(raw))
	}

	if req.Primary == "" {
		return fmt.Errorf("a --primary category is required")
	}

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	tx, err := client.CategorizeTransaction(ctx, args[0], req)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("transaction %s not found", args[0])
		}
		return fmt.Errorf("failed to categorize transaction: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s is now %s", tx.MerchantName, tx.Category.Primary))) //nolint:forbidigo // User-facing output

	return nil
}

func transactionsSuggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions [transaction-id]",
		Short: "Show category suggestions for a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			suggestions, err := client.CategorizationSuggestions(ctx, args[0])
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("transaction %s not found", args[0])
				}
				return fmt.Errorf("failed to fetch suggestions: %w", err)
			}

			if len(suggestions) == 0 {
				fmt.Println(cli.FormatInfo("No suggestions for this transaction")) //nolint:forbidigo // User-facing output
				return nil
			}

			for _, s := range suggestions {
				confidence := fmt.Sprintf("%.0f%%", s.Confidence*100)
				fmt.Printf("%-28s %-28s %s\n", s.Primary, s.Detailed, confidence) //nolint:forbidigo // User-facing output
			}

			return nil
		},
	}
}

func transactionsRetrainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retrain",
		Short: "Retrain the categorization model from your corrections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			result, err := client.RetrainModel(ctx)
			if err != nil {
				return fmt.Errorf("failed to retrain model: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Retrain %s: %d samples, model %s", //nolint:forbidigo // User-facing output
				result.Status, result.SamplesUsed, result.ModelVersion)))

			return nil
		},
	}
}
