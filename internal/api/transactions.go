package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fernwood/tally/internal/model"
)

// ListTransactionsOptions filter a transaction listing.
type ListTransactionsOptions struct {
	Type           model.TransactionType
	Classification model.BusinessClassification
	Category       string
	Search         string
	StartDate      string
	EndDate        string
	Page           int
	Limit          int
}

// TransactionList is one page of transactions.
type TransactionList struct {
	Transactions []model.Transaction `json:"transactions"`
	Pagination   Pagination          `json:"pagination"`
}

// ListTransactions fetches one page of transactions.
func (c *Client) ListTransactions(ctx context.Context, opts ListTransactionsOptions) (*TransactionList, error) {
	endpoint := query("/api/transactions", map[string]string{
		"page":                   intParam(opts.Page),
		"limit":                  intParam(opts.Limit),
		"type":                   string(opts.Type),
		"businessClassification": string(opts.Classification),
		"category":               opts.Category,
		"search":                 opts.Search,
		"startDate":              opts.StartDate,
		"endDate":                opts.EndDate,
	})

	var list TransactionList
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ManualTransactionRequest creates a transaction by hand, outside any
// linked account feed.
type ManualTransactionRequest struct {
	Date         string                `json:"date"`
	Type         model.TransactionType `json:"type"`
	MerchantName string                `json:"merchantName,omitempty"`
	Description  string                `json:"description,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	Amount       float64               `json:"amount"`
}

// CreateManualTransaction records a manual transaction.
func (c *Client) CreateManualTransaction(ctx context.Context, req ManualTransactionRequest) (*model.Transaction, error) {
	var tx model.Transaction
	if err := c.doJSON(ctx, http.MethodPost, "/api/transactions/manual", req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// CategorizeRequest re-categorizes a transaction. User assignments carry
// full confidence.
type CategorizeRequest struct {
	Primary                string                       `json:"primary"`
	Detailed               string                       `json:"detailed,omitempty"`
	BusinessClassification model.BusinessClassification `json:"businessClassification,omitempty"`
	TaxDeductible          *model.TaxDeductible         `json:"taxDeductible,omitempty"`
}

// CategorizeTransaction assigns a category to a transaction.
func (c *Client) CategorizeTransaction(ctx context.Context, id string, req CategorizeRequest) (*model.Transaction, error) {
	endpoint := fmt.Sprintf("/api/transactions/%s/categorize", url.PathEscape(id))

	var tx model.Transaction
	if err := c.doJSON(ctx, http.MethodPut, endpoint, req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// CategorizationSuggestions fetches alternative categories for a
// transaction, ranked by the server's model.
func (c *Client) CategorizationSuggestions(ctx context.Context, id string) ([]model.CategorySuggestion, error) {
	endpoint := fmt.Sprintf("/api/transactions/%s/categorization-suggestions", url.PathEscape(id))

	var payload struct {
		Suggestions []model.CategorySuggestion `json:"suggestions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Suggestions, nil
}

// RetrainResult reports a model retraining run.
type RetrainResult struct {
	Status       string `json:"status"`
	SamplesUsed  int    `json:"samplesUsed"`
	ModelVersion string `json:"modelVersion"`
}

// RetrainModel asks the server to retrain the categorization model from
// the user's corrections.
func (c *Client) RetrainModel(ctx context.Context) (*RetrainResult, error) {
	var result RetrainResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/transactions/retrain-model", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
