package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fernwood/tally/internal/model"
)

// ListClientsOptions filter a client listing.
type ListClientsOptions struct {
	Status model.ClientStatus
	Search string
	Page   int
	Limit  int
}

// ClientList is one page of clients.
type ClientList struct {
	Clients    []model.Client `json:"clients"`
	Pagination Pagination     `json:"pagination"`
}

// ListClients fetches one page of clients.
func (c *Client) ListClients(ctx context.Context, opts ListClientsOptions) (*ClientList, error) {
	endpoint := query("/api/clients", map[string]string{
		"page":   intParam(opts.Page),
		"limit":  intParam(opts.Limit),
		"status": string(opts.Status),
		"search": opts.Search,
	})

	var list ClientList
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateClientRequest creates a client record.
type CreateClientRequest struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Company     string            `json:"company,omitempty"`
	BillingInfo model.BillingInfo `json:"billingInfo,omitempty"`
}

// CreateClient creates a client and returns the persisted record.
func (c *Client) CreateClient(ctx context.Context, req CreateClientRequest) (*model.Client, error) {
	var client model.Client
	if err := c.doJSON(ctx, http.MethodPost, "/api/clients", req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// QuickInvoiceRequest raises a single-line invoice against a client using
// their billing defaults.
type QuickInvoiceRequest struct {
	Description string  `json:"description"`
	Hours       float64 `json:"hours,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
}

// QuickInvoice creates an invoice for a client in one call.
func (c *Client) QuickInvoice(ctx context.Context, clientID string, req QuickInvoiceRequest) (*model.Invoice, error) {
	endpoint := fmt.Sprintf("/api/clients/%s/quick-invoice", url.PathEscape(clientID))

	var inv model.Invoice
	if err := c.doJSON(ctx, http.MethodPost, endpoint, req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ClientOverview fetches the aggregate client dashboard.
func (c *Client) ClientOverview(ctx context.Context) (*model.ClientOverview, error) {
	var overview model.ClientOverview
	if err := c.doJSON(ctx, http.MethodGet, "/api/clients/dashboard", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}
