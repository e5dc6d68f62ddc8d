package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestClientSendsBearerTokenWhenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok-abc"})))

	require.NoError(t, c.doJSON(context.Background(), http.MethodGet, "/api/dashboard", nil, nil))
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

type erroringTokenSource struct{}

func (erroringTokenSource) Token() (*oauth2.Token, error) {
	return nil, assert.AnError
}

func TestClientSendsNoTokenWithoutSession(t *testing.T) {
	tests := []struct {
		name   string
		client func(baseURL string) *Client
	}{
		{
			name:   "no token source",
			client: func(u string) *Client { return New(u) },
		},
		{
			name: "token source without a session",
			client: func(u string) *Client {
				return New(u, WithTokenSource(erroringTokenSource{}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			var hadAuth bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				_, hadAuth = r.Header["Authorization"]
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			c := tt.client(srv.URL)
			require.NoError(t, c.doJSON(context.Background(), http.MethodGet, "/x", nil, nil))

			// Unauthenticated requests go out without the header at all.
			assert.False(t, hadAuth, "unexpected Authorization header %q", gotAuth)
		})
	}
}

func TestClientSetsJSONContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	payload := map[string]string{"hello": "world"}
	require.NoError(t, c.doJSON(context.Background(), http.MethodPost, "/x", payload, nil))

	assert.Equal(t, "application/json", gotContentType)
}

func TestClientResolvesBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		endpoint string
		want     string
	}{
		{
			name:     "absolute base",
			baseURL:  "https://api.example.com",
			endpoint: "/api/dashboard",
			want:     "https://api.example.com/api/dashboard",
		},
		{
			name:     "trailing slash trimmed",
			baseURL:  "https://api.example.com/",
			endpoint: "/api/dashboard",
			want:     "https://api.example.com/api/dashboard",
		},
		{
			name:     "empty base keeps endpoint as-is",
			baseURL:  "",
			endpoint: "/api/dashboard",
			want:     "/api/dashboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.baseURL)
			assert.Equal(t, tt.want, c.resolve(tt.endpoint))
		})
	}
}

func TestClientNon2xxBecomesAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "error field",
			status:      http.StatusUnprocessableEntity,
			body:        `{"error": "invoice has no items"}`,
			wantMessage: "invoice has no items",
		},
		{
			name:        "message field",
			status:      http.StatusBadRequest,
			body:        `{"message": "missing client id"}`,
			wantMessage: "missing client id",
		},
		{
			name:        "error field wins over message",
			status:      http.StatusBadRequest,
			body:        `{"error": "nope", "message": "other"}`,
			wantMessage: "nope",
		},
		{
			name:        "unparseable body falls back to status text",
			status:      http.StatusInternalServerError,
			body:        `<html>boom</html>`,
			wantMessage: "Internal Server Error",
		},
		{
			name:        "empty body falls back to status text",
			status:      http.StatusUnauthorized,
			body:        "",
			wantMessage: "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			err := c.doJSON(context.Background(), http.MethodGet, "/x", nil, nil)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestClientNetworkFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL)
	err := c.doJSON(context.Background(), http.MethodGet, "/x", nil, nil)

	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "network failure must not be an *Error")
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(&Error{Status: http.StatusNotFound}))
	assert.False(t, IsNotFound(&Error{Status: http.StatusBadRequest}))
	assert.False(t, IsNotFound(assert.AnError))

	assert.True(t, IsUnauthorized(&Error{Status: http.StatusUnauthorized}))
	assert.False(t, IsUnauthorized(nil))
}

func TestQueryOmitsEmptyParams(t *testing.T) {
	got := query("/api/invoices", map[string]string{
		"page":   "2",
		"status": "",
		"search": "acme",
	})
	assert.Equal(t, "/api/invoices?page=2&search=acme", got)

	assert.Equal(t, "/api/invoices", query("/api/invoices", map[string]string{"status": ""}))
}
