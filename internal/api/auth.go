package api

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Login exchanges credentials for a bearer token. The token is opaque to
// the client; persistence is the session store's job.
func (c *Client) Login(ctx context.Context, email, password string) (*oauth2.Token, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", payload, &resp); err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: resp.Token,
		TokenType:   "Bearer",
		Expiry:      resp.ExpiresAt,
	}, nil
}
