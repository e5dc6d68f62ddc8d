package api

import (
	"context"
	"io"
	"net/http"
)

// Branding is the business identity applied to invoices and emails.
type Branding struct {
	BusinessName   string `json:"businessName"`
	TagLine        string `json:"tagLine"`
	LogoURL        string `json:"logoUrl"`
	PrimaryColor   string `json:"primaryColor"`
	AccentColor    string `json:"accentColor"`
	EmailSignature string `json:"emailSignature"`
}

// GetBranding fetches the current branding settings.
func (c *Client) GetBranding(ctx context.Context) (*Branding, error) {
	var branding Branding
	if err := c.doJSON(ctx, http.MethodGet, "/api/branding", nil, &branding); err != nil {
		return nil, err
	}
	return &branding, nil
}

// UpdateBranding replaces the branding settings.
func (c *Client) UpdateBranding(ctx context.Context, branding Branding) (*Branding, error) {
	var updated Branding
	if err := c.doJSON(ctx, http.MethodPut, "/api/branding", branding, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UploadLogo uploads a logo image and returns the updated branding.
func (c *Client) UploadLogo(ctx context.Context, filename string, content io.Reader) (*Branding, error) {
	var branding Branding
	if err := c.upload(ctx, "/api/branding/logo", "logo", filename, content, nil, &branding); err != nil {
		return nil, err
	}
	return &branding, nil
}

// DeleteLogo removes the uploaded logo.
func (c *Client) DeleteLogo(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/branding/logo", nil, nil)
}

// ColorPalette fetches colors extracted from the uploaded logo.
func (c *Client) ColorPalette(ctx context.Context) ([]string, error) {
	var payload struct {
		Colors []string `json:"colors"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/branding/color-palette", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Colors, nil
}

// SendTestEmail sends a branded test email to the given address.
func (c *Client) SendTestEmail(ctx context.Context, to string) error {
	payload := struct {
		To string `json:"to"`
	}{To: to}
	return c.doJSON(ctx, http.MethodPost, "/api/branding/test-email", payload, nil)
}
