package main

import (
	"testing"

	"github.com/fernwood/tally/internal/api"
	"github.com/fernwood/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceItems(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []model.InvoiceItem
		wantErr bool
	}{
		{
			name:  "single item",
			input: []string{"Design work:10:75"},
			want: []model.InvoiceItem{
				{Description: "Design work", Quantity: 10, Rate: 75, Amount: 750},
			},
		},
		{
			name:  "fractional quantity",
			input: []string{"Consulting:2.5:120"},
			want: []model.InvoiceItem{
				{Description: "Consulting", Quantity: 2.5, Rate: 120, Amount: 300},
			},
		},
		{
			name:    "missing rate",
			input:   []string{"Design work:10"},
			wantErr: true,
		},
		{
			name:    "non-numeric quantity",
			input:   []string{"Design work:ten:75"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInvoiceItems(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateCreateInvoice(t *testing.T) {
	valid := api.CreateInvoiceRequest{
		ClientID: "c_123",
		Items: []model.InvoiceItem{
			{Description: "Work", Quantity: 1, Rate: 100, Amount: 100},
		},
		TaxRate:      10,
		DiscountRate: 5,
	}

	tests := []struct {
		mutate  func(*api.CreateInvoiceRequest)
		name    string
		wantErr bool
	}{
		{name: "valid request", mutate: func(*api.CreateInvoiceRequest) {}},
		{
			name:    "missing client",
			mutate:  func(r *api.CreateInvoiceRequest) { r.ClientID = "" },
			wantErr: true,
		},
		{
			name:    "no items",
			mutate:  func(r *api.CreateInvoiceRequest) { r.Items = nil },
			wantErr: true,
		},
		{
			name:    "zero quantity",
			mutate:  func(r *api.CreateInvoiceRequest) { r.Items[0].Quantity = 0 },
			wantErr: true,
		},
		{
			name:    "negative rate",
			mutate:  func(r *api.CreateInvoiceRequest) { r.Items[0].Rate = -1 },
			wantErr: true,
		},
		{
			name:    "tax rate over 100",
			mutate:  func(r *api.CreateInvoiceRequest) { r.TaxRate = 150 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.Items = append([]model.InvoiceItem(nil), valid.Items...)
			tt.mutate(&req)

			err := validateCreateInvoice(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateManualTransaction(t *testing.T) {
	tests := []struct {
		name    string
		req     api.ManualTransactionRequest
		wantErr bool
	}{
		{
			name: "valid income",
			req:  api.ManualTransactionRequest{Amount: 500, Type: model.TransactionIncome, Date: "2026-08-01"},
		},
		{
			name: "valid expense without date",
			req:  api.ManualTransactionRequest{Amount: 25, Type: model.TransactionExpense},
		},
		{
			name:    "zero amount",
			req:     api.ManualTransactionRequest{Amount: 0, Type: model.TransactionIncome},
			wantErr: true,
		},
		{
			name:    "unknown type",
			req:     api.ManualTransactionRequest{Amount: 10, Type: "refund"},
			wantErr: true,
		},
		{
			name:    "bad date format",
			req:     api.ManualTransactionRequest{Amount: 10, Type: model.TransactionIncome, Date: "08/01/2026"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateManualTransaction(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseInvoiceStatus(t *testing.T) {
	status, err := parseInvoiceStatus("Paid")
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePaid, status)

	_, err = parseInvoiceStatus("archived")
	assert.Error(t, err)
}
