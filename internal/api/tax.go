package api

import (
	"context"
	"net/http"

	"github.com/fernwood/tally/internal/model"
)

// TaxSettings fetches the user's estimated-tax configuration.
func (c *Client) TaxSettings(ctx context.Context) (*model.TaxSettings, error) {
	var settings model.TaxSettings
	if err := c.doJSON(ctx, http.MethodGet, "/api/tax/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateTaxSettings replaces the estimated-tax configuration.
func (c *Client) UpdateTaxSettings(ctx context.Context, settings model.TaxSettings) (*model.TaxSettings, error) {
	var updated model.TaxSettings
	if err := c.doJSON(ctx, http.MethodPut, "/api/tax/settings", settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// QuarterlyDates fetches the estimated-tax deadlines for the year.
func (c *Client) QuarterlyDates(ctx context.Context) ([]model.QuarterlyDate, error) {
	var payload struct {
		Dates []model.QuarterlyDate `json:"dates"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/tax/quarterly-dates", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Dates, nil
}

// QuarterlySummary fetches the current quarter's tax position.
func (c *Client) QuarterlySummary(ctx context.Context) (*model.QuarterlySummary, error) {
	var summary model.QuarterlySummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/tax/quarterly-summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// YTDLiability fetches the year-to-date estimated tax position.
func (c *Client) YTDLiability(ctx context.Context) (*model.YTDLiability, error) {
	var liability model.YTDLiability
	if err := c.doJSON(ctx, http.MethodGet, "/api/tax/ytd-liability", nil, &liability); err != nil {
		return nil, err
	}
	return &liability, nil
}

// CalculateSetAside asks the server how much of an income amount to set
// aside for taxes. Satisfies notify.SetAsideCalculator.
func (c *Client) CalculateSetAside(ctx context.Context, amount float64) (*model.SetAsideBreakdown, error) {
	payload := struct {
		Amount float64 `json:"amount"`
	}{Amount: amount}

	var breakdown model.SetAsideBreakdown
	if err := c.doJSON(ctx, http.MethodPost, "/api/tax/calculate-set-aside", payload, &breakdown); err != nil {
		return nil, err
	}
	return &breakdown, nil
}
