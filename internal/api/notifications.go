package api

import (
	"context"
	"net/http"

	"github.com/fernwood/tally/internal/model"
)

// RecentNotifications fetches server-generated notifications so the local
// widget can fold them into its list.
func (c *Client) RecentNotifications(ctx context.Context) ([]model.Notification, error) {
	var payload struct {
		Notifications []model.Notification `json:"notifications"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/notifications/recent", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Notifications, nil
}

// SendWeeklySummaryTest asks the server to send a test weekly summary
// email to the signed-in user.
func (c *Client) SendWeeklySummaryTest(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/notifications/test/weekly-summary", nil, nil)
}
