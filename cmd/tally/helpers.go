package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fernwood/tally/internal/api"
	"github.com/fernwood/tally/internal/common"
	"github.com/fernwood/tally/internal/model"
	"github.com/fernwood/tally/internal/session"
	"github.com/spf13/viper"
)

// openSession opens the local session store with proper path expansion.
func openSession() (*session.Store, error) {
	path := common.ExpandPath(viper.GetString("session.path"))
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve session path: %w", err)
		}
	}

	store, err := session.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return store, nil
}

// newAPIClient builds an API client backed by the local session store.
// The caller must Close the returned store.
func newAPIClient() (*api.Client, *session.Store, error) {
	store, err := openSession()
	if err != nil {
		return nil, nil, err
	}

	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		_ = store.Close()
		return nil, nil, common.NewUserError("no API URL configured; set api.base_url or --api-url", common.ErrMissingConfig)
	}

	opts := []api.Option{api.WithTokenSource(store)}
	if timeout := viper.GetDuration("api.timeout"); timeout > 0 {
		opts = append(opts, api.WithTimeout(timeout))
	}

	return api.New(baseURL, opts...), store, nil
}

func closeStore(store *session.Store) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close session store", "error", err)
	}
}

// parseInvoiceItems parses repeated --item flags of the form
// "description:quantity:rate" into invoice line items.
func parseInvoiceItems(raw []string) ([]model.InvoiceItem, error) {
	items := make([]model.InvoiceItem, 0, len(raw))

	for _, spec := range raw {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return nil, common.NewValidationError("item", fmt.Sprintf("%q must be description:quantity:rate", spec))
		}

		qty, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, common.NewValidationError("item", fmt.Sprintf("quantity %q is not a number", parts[1]))
		}

		rate, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, common.NewValidationError("item", fmt.Sprintf("rate %q is not a number", parts[2]))
		}

		items = append(items, model.InvoiceItem{
			Description: strings.TrimSpace(parts[0]),
			Quantity:    qty,
			Rate:        rate,
			Amount:      qty * rate,
		})
	}

	return items, nil
}

// validateCreateInvoice mirrors the server's create rules so obvious
// mistakes fail before a request is made.
func validateCreateInvoice(req api.CreateInvoiceRequest) error {
	if req.ClientID == "" {
		return common.NewValidationError("client", "a client id is required")
	}
	if len(req.Items) == 0 {
		return common.NewValidationError("items", "at least one line item is required")
	}

	for i, item := range req.Items {
		if strings.TrimSpace(item.Description) == "" {
			return common.NewValidationError("items", fmt.Sprintf("item %d has no description", i+1))
		}
		if item.Quantity <= 0 {
			return common.NewValidationError("items", fmt.Sprintf("item %d quantity must be positive", i+1))
		}
		if item.Rate < 0 {
			return common.NewValidationError("items", fmt.Sprintf("item %d rate cannot be negative", i+1))
		}
	}

	if req.TaxRate < 0 || req.TaxRate > 100 {
		return common.NewValidationError("tax-rate", "must be between 0 and 100")
	}
	if req.DiscountRate < 0 || req.DiscountRate > 100 {
		return common.NewValidationError("discount-rate", "must be between 0 and 100")
	}

	return nil
}

// validateManualTransaction mirrors the server's rules for manual entry.
func validateManualTransaction(req api.ManualTransactionRequest) error {
	if req.Amount == 0 {
		return common.NewValidationError("amount", "must be non-zero")
	}

	switch req.Type {
	case model.TransactionIncome, model.TransactionExpense, model.TransactionTransfer:
	default:
		return common.NewValidationError("type", fmt.Sprintf("%q is not income, expense, or transfer", req.Type))
	}

	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			return common.NewValidationError("date", fmt.Sprintf("%q is not YYYY-MM-DD", req.Date))
		}
	}

	return nil
}

// parseStatus validates an invoice status argument.
func parseInvoiceStatus(s string) (model.InvoiceStatus, error) {
	status := model.InvoiceStatus(strings.ToLower(s))
	switch status {
	case model.InvoiceDraft, model.InvoiceSent, model.InvoicePending,
		model.InvoicePaid, model.InvoiceOverdue, model.InvoiceCancelled:
		return status, nil
	default:
		return "", common.NewValidationError("status", fmt.Sprintf("unknown status %q", s))
	}
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02")
}
