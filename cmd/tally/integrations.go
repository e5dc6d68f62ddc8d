package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fernwood/tally/internal/api"
	"github.com/fernwood/tally/internal/cli"
	"github.com/fernwood/tally/internal/common"
	"github.com/fernwood/tally/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func integrationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrations",
		Short: "Bank feeds and file imports",
	}

	cmd.AddCommand(integrationsListCmd())
	cmd.AddCommand(integrationsConnectCmd())
	cmd.AddCommand(integrationsCompleteCmd())
	cmd.AddCommand(integrationsSyncCmd())
	cmd.AddCommand(integrationsDisconnectCmd())
	cmd.AddCommand(integrationsUploadCmd())
	cmd.AddCommand(integrationsImportOFXCmd())

	return cmd
}

func integrationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connected bank feeds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			integrations, err := client.Integrations(ctx)
			if err != nil {
				return fmt.Errorf("failed to list integrations: %w", err)
			}

			if len(integrations) == 0 {
				fmt.Println(cli.FormatInfo("No integrations connected")) //nolint:forbidigo // User-facing output
				return nil
			}

			for _, ig := range integrations {
				synced := "never synced"
				if !ig.LastSyncedAt.IsZero() {
					synced = "synced " + ig.LastSyncedAt.Format("2006-01-02 15:04")
				}
				fmt.Printf("%-10s %-20s %-10s %d accounts, %s\n", //nolint:forbidigo // User-facing output
					ig.ID, ig.Name, ig.Status, ig.AccountCount, synced)
			}

			return nil
		},
	}
}

func integrationsConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect [provider]",
		Short: "Start linking a bank feed",
		Long: `Start a link flow with a feed provider.

The server returns a link URL; open it in a browser to finish
connecting. The feed appears in 'tally integrations list' once linked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			session, err := client.Connect(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to start link flow: %w", err)
			}

			fmt.Println(cli.FormatInfo("Open this URL to finish connecting:")) //nolint:forbidigo // User-facing output
			fmt.Println(session.URL)                                           //nolint:forbidigo // User-facing output

			return nil
		},
	}
}

func integrationsCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete [provider]",
		Short: "Finish linking a bank feed",
		Long: `Finish a link flow started with 'tally integrations connect'.

If the provider redirect cannot reach the server directly, copy the
code and state parameters from the redirect URL and pass them here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			code, _ := cmd.Flags().GetString("code")
			state, _ := cmd.Flags().GetString("state")

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			integration, err := client.ExchangeOAuthCallback(ctx, api.OAuthCallbackRequest{
				Provider: args[0],
				Code:     code,
				State:    state,
			})
			if err != nil {
				return fmt.Errorf("failed to complete link flow: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Connected %s (%d accounts)", //nolint:forbidigo // User-facing output
				integration.Name, integration.AccountCount)))

			return nil
		},
	}

	cmd.Flags().String("code", "", "authorization code from the provider redirect")
	cmd.Flags().String("state", "", "state parameter from the provider redirect")
	if err := cmd.MarkFlagRequired("code"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	if err := cmd.MarkFlagRequired("state"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	return cmd
}

func integrationsSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [integration-id]",
		Short: "Refresh a feed now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			result, err := client.Sync(ctx, args[0])
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("integration %s not found", args[0])
				}
				return fmt.Errorf("failed to sync: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Synced: %d new, %d updated", //nolint:forbidigo // User-facing output
				result.NewTransactions, result.UpdatedTransactions)))

			return nil
		},
	}
}

func integrationsDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect [integration-id]",
		Short: "Disconnect a feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := client.Disconnect(ctx, args[0]); err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("integration %s not found", args[0])
				}
				return fmt.Errorf("failed to disconnect: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Disconnected %s", args[0]))) //nolint:forbidigo // User-facing output

			return nil
		},
	}
}

func integrationsUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload [csv-file]",
		Short: "Upload a CSV of transactions",
		Long:  `Upload a CSV export for server-side import and deduplication.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil {
					slog.Warn("Failed to close CSV file", "error", closeErr)
				}
			}()

			client, store, err := newAPIClient()
			if err != nil {
				return err
			}
			defer closeStore(store)

			result, err := client.UploadCSV(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return fmt.Errorf("failed to upload CSV: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d, skipped %d, errors %d", //nolint:forbidigo // User-facing output
				result.Imported, result.Skipped, result.Errors)))

			return nil
		},
	}
}

func integrationsImportOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from
your bank. Files are parsed locally and each transaction is recorded
through the API.

Examples:
  # Import a single file
  tally integrations import-ofx ~/Downloads/chase_jan.qfx

  # Import everything in a directory
  tally integrations import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "preview import without saving")
	cmd.Flags().BoolP("verbose", "v", false, "show each parsed transaction")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, statErr := os.Stat(pattern); statErr == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	parser := ofx.NewParser()
	var parsed []ofx.ImportedTransaction
	for _, path := range allFiles {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		txns, err := parser.ParseFile(f)
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close OFX file", "path", path, "error", closeErr)
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		common.LogInfo("Parsed OFX file", common.Fields{"path": path, "transactions": len(txns)})
		parsed = append(parsed, txns...)
	}

	if verbose {
		for _, tx := range parsed {
			fmt.Printf("%s  %-10s %-28s %s\n", //nolint:forbidigo // User-facing output
				tx.Date.Format("2006-01-02"), tx.Type, tx.MerchantName, formatMoney(tx.Amount))
		}
	}

	if dryRun {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions from %d files, nothing saved", //nolint:forbidigo // User-facing output
			len(parsed), len(allFiles))))
		return nil
	}

	client, store, err := newAPIClient()
	if err != nil {
		return err
	}
	defer closeStore(store)

	bar := progressbar.NewOptions(len(parsed),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	imported := 0
	var failed int
	for _, tx := range parsed {
		req := api.ManualTransactionRequest{
			Date:         tx.Date.Format("2006-01-02"),
			Type:         tx.Type,
			MerchantName: tx.MerchantName,
			Description:  tx.Description,
			Amount:       tx.Amount,
		}

		if _, err := client.CreateManualTransaction(ctx, req); err != nil {
			failed++
			common.LogError(err, "Failed to import transaction", common.Fields{"merchant": tx.MerchantName})
		} else {
			imported++
		}

		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	msg := fmt.Sprintf("Imported %d transactions", imported)
	if failed > 0 {
		msg += fmt.Sprintf(" (%d failed)", failed)
	}
	fmt.Println(cli.FormatSuccess(msg)) //nolint:forbidigo // User-facing output

	return nil
}
