// Package model defines the wire-format records returned by the dashboard
// API, plus the small amount of contract math that lives on them.
package model

import "time"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

// Invoice statuses. The API also reports "pending" for invoices that have
// been sent but not yet paid; the dashboard metrics key off that value.
const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// InvoiceItem is a single line item on an invoice.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// InvoiceClient is the client summary embedded in an invoice.
type InvoiceClient struct {
	Name    string `json:"name"`
	Company string `json:"company"`
}

// Invoice is an invoice record as returned by the API.
type Invoice struct {
	IssueDate     time.Time     `json:"issueDate"`
	DueDate       time.Time     `json:"dueDate"`
	CreatedAt     time.Time     `json:"createdAt"`
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Currency      string        `json:"currency"`
	Status        InvoiceStatus `json:"status"`
	Client        InvoiceClient `json:"client"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxRate       float64       `json:"taxRate"`
	DiscountRate  float64       `json:"discountRate"`
	Total         float64       `json:"total"`
}

// InvoiceTotals is the result of computing an invoice preview.
type InvoiceTotals struct {
	Subtotal float64
	Discount float64
	Tax      float64
	Total    float64
}

// ComputeInvoiceTotals computes invoice totals from line items. The server
// runs the same computation when persisting; the two must agree, so the
// order of operations here is fixed: discount applies to the subtotal, tax
// applies to the discounted amount.
func ComputeInvoiceTotals(items []InvoiceItem, taxRate, discountRate float64) InvoiceTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Quantity * item.Rate
	}

	discount := subtotal * discountRate / 100
	taxable := subtotal - discount
	tax := taxable * taxRate / 100

	return InvoiceTotals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxable + tax,
	}
}

// IsOverdue reports whether the invoice is awaiting payment past its due
// date, relative to now.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoicePending && i.DueDate.Before(now)
}
