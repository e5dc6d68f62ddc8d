package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Integration is one connected bank or platform feed.
type Integration struct {
	LastSyncedAt time.Time `json:"lastSyncedAt"`
	ID           string    `json:"id"`
	Provider     string    `json:"provider"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	AccountCount int       `json:"accountCount"`
}

// Integrations lists connected feeds.
func (c *Client) Integrations(ctx context.Context) ([]Integration, error) {
	var payload struct {
		Integrations []Integration `json:"integrations"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/integrations", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Integrations, nil
}

// ConnectSession is the server's handle for starting a provider link flow.
// The user completes the flow in a browser; the provider redirects back to
// the server, which finishes the exchange.
type ConnectSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// Connect starts a link flow with a provider.
func (c *Client) Connect(ctx context.Context, provider string) (*ConnectSession, error) {
	payload := struct {
		Provider string `json:"provider"`
	}{Provider: provider}

	var session ConnectSession
	if err := c.doJSON(ctx, http.MethodPost, "/api/integrations/connect", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// OAuthCallbackRequest forwards a provider redirect back to the server for
// token exchange. The exchange itself is entirely server-side.
type OAuthCallbackRequest struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	State    string `json:"state"`
}

// ExchangeOAuthCallback completes a link flow.
func (c *Client) ExchangeOAuthCallback(ctx context.Context, req OAuthCallbackRequest) (*Integration, error) {
	var integration Integration
	if err := c.doJSON(ctx, http.MethodPost, "/api/integrations/oauth/callback", req, &integration); err != nil {
		return nil, err
	}
	return &integration, nil
}

// SyncResult reports a manual sync run.
type SyncResult struct {
	NewTransactions     int `json:"newTransactions"`
	UpdatedTransactions int `json:"updatedTransactions"`
}

// Sync triggers a refresh of one integration's feed.
func (c *Client) Sync(ctx context.Context, id string) (*SyncResult, error) {
	endpoint := fmt.Sprintf("/api/integrations/%s/sync", url.PathEscape(id))

	var result SyncResult
	if err := c.doJSON(ctx, http.MethodPost, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Disconnect unlinks an integration.
func (c *Client) Disconnect(ctx context.Context, id string) error {
	endpoint := "/api/integrations/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}

// ImportResult reports a CSV upload.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// UploadCSV uploads a CSV of transactions for server-side import.
func (c *Client) UploadCSV(ctx context.Context, filename string, content io.Reader) (*ImportResult, error) {
	var result ImportResult
	if err := c.upload(ctx, "/api/integrations/upload", "file", filename, content, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
