package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fernwood/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListInvoicesBuildsQuery(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(InvoiceList{
			Invoices:   []model.Invoice{{ID: "inv-1", Status: model.InvoicePending, Total: 125}},
			Pagination: Pagination{Current: 2, Pages: 5, Total: 93},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	list, err := c.ListInvoices(context.Background(), ListInvoicesOptions{
		Page:   2,
		Limit:  20,
		Status: model.InvoicePending,
		Search: "acme",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/invoices", gotPath)
	assert.Equal(t, "limit=20&page=2&search=acme&status=pending", gotQuery)
	require.Len(t, list.Invoices, 1)
	assert.Equal(t, "inv-1", list.Invoices[0].ID)
	assert.Equal(t, 93, list.Pagination.Total)
}

func TestUpdateInvoiceStatus(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(model.Invoice{ID: "inv-1", Status: model.InvoicePaid})
	}))
	defer srv.Close()

	c := New(srv.URL)
	inv, err := c.UpdateInvoiceStatus(context.Background(), "inv-1", model.InvoicePaid)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/invoices/inv-1/status", gotPath)
	assert.Equal(t, map[string]string{"status": "paid"}, gotBody)
	assert.Equal(t, model.InvoicePaid, inv.Status)
}

func TestInvoicePDFStreamsBinary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/invoices/inv-9/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	body, err := c.InvoicePDF(context.Background(), "inv-9")
	require.NoError(t, err)
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestInvoicePDFErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "invoice not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.InvoicePDF(context.Background(), "missing")

	assert.True(t, IsNotFound(err))
}

func TestCalculateSetAside(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tax/calculate-set-aside", r.URL.Path)

		var req struct {
			Amount float64 `json:"amount"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.InDelta(t, 2000, req.Amount, 1e-9)

		_ = json.NewEncoder(w).Encode(model.SetAsideBreakdown{
			IncomeAmount:  2000,
			TotalSetAside: 600,
			Breakdown: []model.SetAsideLine{
				{Label: "Federal", Rate: 22, Amount: 440},
				{Label: "Self-employment", Rate: 8, Amount: 160},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	breakdown, err := c.CalculateSetAside(context.Background(), 2000)
	require.NoError(t, err)

	assert.InDelta(t, 600, breakdown.TotalSetAside, 1e-9)
	assert.Len(t, breakdown.Breakdown, 2)
}

func TestDashboardDecodesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"monthlySummary": {"period": "2026-08", "income": 5400, "expenses": 1200, "net": 4200},
			"taxJarStatus": {"currentAmount": 750, "estimatedQuarterlyPayment": 1000},
			"incomeTrend": [{"year": 2026, "month": 8, "total": 5400, "count": 4}],
			"recentTransactions": [
				{"id": "tx-1", "type": "income", "amount": 1200,
				 "category": {"primary": "Consulting", "confidence": 0.92}}
			]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	snap, err := c.Dashboard(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 4200, snap.MonthlySummary.Net, 1e-9)
	assert.Equal(t, model.JarYellow, snap.TaxJarStatus.Status())
	require.Len(t, snap.RecentTransactions, 1)
	assert.True(t, snap.RecentTransactions[0].Category.IsHighConfidence())
}

func TestUploadCSVSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()

		assert.Equal(t, "transactions.csv", header.Filename)
		data, _ := io.ReadAll(file)
		assert.Contains(t, string(data), "date,amount")

		_ = json.NewEncoder(w).Encode(ImportResult{Imported: 12, Skipped: 2})
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.UploadCSV(context.Background(), "transactions.csv", strings.NewReader("date,amount\n2026-08-01,99.50\n"))
	require.NoError(t, err)

	assert.Equal(t, 12, result.Imported)
	assert.Equal(t, 2, result.Skipped)
}

func TestLoginReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "casey@example.com", req.Email)

		_, _ = w.Write([]byte(`{"token": "tok-xyz", "expiresAt": "2026-09-30T00:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	tok, err := c.Login(context.Background(), "casey@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "tok-xyz", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, 2026, tok.Expiry.Year())
}
