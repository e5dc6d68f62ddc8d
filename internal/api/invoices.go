package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fernwood/tally/internal/model"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

// ListInvoicesOptions filter an invoice listing. Zero values are omitted
// from the query.
type ListInvoicesOptions struct {
	Status model.InvoiceStatus
	Search string
	Page   int
	Limit  int
}

// InvoiceList is one page of invoices.
type InvoiceList struct {
	Invoices   []model.Invoice `json:"invoices"`
	Pagination Pagination      `json:"pagination"`
}

// ListInvoices fetches one page of invoices.
func (c *Client) ListInvoices(ctx context.Context, opts ListInvoicesOptions) (*InvoiceList, error) {
	endpoint := query("/api/invoices", map[string]string{
		"page":   intParam(opts.Page),
		"limit":  intParam(opts.Limit),
		"status": string(opts.Status),
		"search": opts.Search,
	})

	var list InvoiceList
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateInvoiceRequest is the payload for creating an invoice. The server
// recomputes totals; clients send line items and rates only.
type CreateInvoiceRequest struct {
	ClientID     string              `json:"clientId"`
	Currency     string              `json:"currency,omitempty"`
	IssueDate    string              `json:"issueDate,omitempty"`
	DueDate      string              `json:"dueDate,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Items        []model.InvoiceItem `json:"items"`
	TaxRate      float64             `json:"taxRate"`
	DiscountRate float64             `json:"discountRate"`
}

// CreateInvoice creates an invoice and returns the persisted record.
func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*model.Invoice, error) {
	var inv model.Invoice
	if err := c.doJSON(ctx, http.MethodPost, "/api/invoices", req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateInvoiceStatus transitions an invoice to a new status.
func (c *Client) UpdateInvoiceStatus(ctx context.Context, id string, status model.InvoiceStatus) (*model.Invoice, error) {
	payload := struct {
		Status model.InvoiceStatus `json:"status"`
	}{Status: status}

	var inv model.Invoice
	endpoint := fmt.Sprintf("/api/invoices/%s/status", url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodPatch, endpoint, payload, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeleteInvoice removes an invoice.
func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	endpoint := "/api/invoices/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}

// InvoicePDF streams the rendered PDF for an invoice. The caller owns the
// returned reader.
func (c *Client) InvoicePDF(ctx context.Context, id string) (io.ReadCloser, error) {
	endpoint := fmt.Sprintf("/api/invoices/%s/pdf", url.PathEscape(id))
	return c.download(ctx, endpoint)
}

// EmailInvoiceRequest addresses an invoice email.
type EmailInvoiceRequest struct {
	To      string `json:"to,omitempty"`
	Message string `json:"message,omitempty"`
}

// EmailInvoice asks the server to email the invoice to its client, or to
// an explicit recipient.
func (c *Client) EmailInvoice(ctx context.Context, id string, req EmailInvoiceRequest) error {
	endpoint := fmt.Sprintf("/api/invoices/%s/email", url.PathEscape(id))
	return c.doJSON(ctx, http.MethodPost, endpoint, req, nil)
}

func intParam(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
