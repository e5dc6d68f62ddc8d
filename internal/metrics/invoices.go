// Package metrics holds the pure derived-metrics calculators the dashboard
// renders from. Every function is a fold over wire records: no I/O, no
// clock reads (callers pass the reference time), and malformed or empty
// input degrades to a zero-valued result rather than an error.
package metrics

import (
	"time"

	"github.com/fernwood/tally/internal/model"
)

// InvoiceSummary is the stat-card summary for a list of invoices. All
// fields are always present; an empty or nil input produces the zero value.
type InvoiceSummary struct {
	Pending        int
	Paid           int
	Overdue        int
	ThisMonth      int
	TotalPending   float64
	TotalPaid      float64
	ThisMonthValue float64
}

// SummarizeInvoices folds invoices into the dashboard summary. "This month"
// means created in ref's calendar month and year. Sums are plain float64
// addition over the total field, matching what the server renders elsewhere.
func SummarizeInvoices(records []model.Invoice, ref time.Time) InvoiceSummary {
	var s InvoiceSummary

	for _, inv := range records {
		switch inv.Status {
		case model.InvoicePending:
			s.Pending++
			s.TotalPending += inv.Total
			if inv.DueDate.Before(ref) {
				s.Overdue++
			}
		case model.InvoicePaid:
			s.Paid++
			s.TotalPaid += inv.Total
		}

		if inv.CreatedAt.Year() == ref.Year() && inv.CreatedAt.Month() == ref.Month() {
			s.ThisMonth++
			s.ThisMonthValue += inv.Total
		}
	}

	return s
}
