package metrics

import (
	"testing"
	"time"

	"github.com/fernwood/tally/internal/model"
	"github.com/stretchr/testify/assert"
)

var ref = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

func invoice(status model.InvoiceStatus, total float64, created, due time.Time) model.Invoice {
	return model.Invoice{Status: status, Total: total, CreatedAt: created, DueDate: due}
}

func TestSummarizeInvoices(t *testing.T) {
	lastMonth := ref.AddDate(0, -1, 0)
	nextWeek := ref.AddDate(0, 0, 7)
	lastWeek := ref.AddDate(0, 0, -7)

	tests := []struct {
		name    string
		records []model.Invoice
		want    InvoiceSummary
	}{
		{
			name:    "nil input yields zero summary",
			records: nil,
			want:    InvoiceSummary{},
		},
		{
			name:    "empty input yields zero summary",
			records: []model.Invoice{},
			want:    InvoiceSummary{},
		},
		{
			name: "mixed statuses",
			records: []model.Invoice{
				invoice(model.InvoicePending, 100.25, ref, nextWeek),
				invoice(model.InvoicePending, 200.50, lastMonth, lastWeek),
				invoice(model.InvoicePaid, 300, lastMonth, lastWeek),
				invoice(model.InvoiceDraft, 400, ref, nextWeek),
				invoice(model.InvoiceCancelled, 500, lastMonth, lastWeek),
			},
			want: InvoiceSummary{
				Pending:        2,
				Paid:           1,
				Overdue:        1,
				ThisMonth:      2,
				TotalPending:   300.75,
				TotalPaid:      300,
				ThisMonthValue: 500.25,
			},
		},
		{
			name: "same month last year is not this month",
			records: []model.Invoice{
				invoice(model.InvoicePaid, 100, ref.AddDate(-1, 0, 0), nextWeek),
			},
			want: InvoiceSummary{Paid: 1, TotalPaid: 100},
		},
		{
			name: "due date in the future is not overdue",
			records: []model.Invoice{
				invoice(model.InvoicePending, 100, lastMonth, nextWeek),
			},
			want: InvoiceSummary{Pending: 1, TotalPending: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummarizeInvoices(tt.records, ref))
		})
	}
}

func TestSummarizeInvoicesPartition(t *testing.T) {
	records := []model.Invoice{
		invoice(model.InvoicePending, 10, ref, ref),
		invoice(model.InvoicePaid, 20, ref, ref),
		invoice(model.InvoiceDraft, 30, ref, ref),
		invoice(model.InvoiceSent, 40, ref, ref),
		invoice(model.InvoiceOverdue, 50, ref, ref),
		invoice(model.InvoiceCancelled, 60, ref, ref),
	}

	s := SummarizeInvoices(records, ref)

	// Pending and paid partition the list with the other statuses.
	other := len(records) - s.Pending - s.Paid
	assert.Equal(t, 4, other)

	// Pending and paid sums never exceed the grand total.
	var grand float64
	for _, inv := range records {
		grand += inv.Total
	}
	assert.LessOrEqual(t, s.TotalPending+s.TotalPaid, grand)
}
