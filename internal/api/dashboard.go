package api

import (
	"context"
	"net/http"

	"github.com/fernwood/tally/internal/model"
)

// Dashboard fetches the aggregate dashboard snapshot.
func (c *Client) Dashboard(ctx context.Context) (*model.DashboardSnapshot, error) {
	var snapshot model.DashboardSnapshot
	if err := c.doJSON(ctx, http.MethodGet, "/api/dashboard", nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
