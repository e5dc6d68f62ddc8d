package model

import "time"

// Account is a linked financial account as shown on the dashboard.
type Account struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Institution string  `json:"institution"`
	Currency    string  `json:"currency"`
	Balance     float64 `json:"balance"`
}

// PeriodSummary aggregates income and expenses over one period.
type PeriodSummary struct {
	Period   string  `json:"period"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// TrendPoint is one month in the income trend series.
type TrendPoint struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Label renders the point as "Jan 2026" for display.
func (p TrendPoint) Label() string {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// Alert is a server-generated attention item.
type Alert struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// CategoryAmount is one slice of the dashboard category breakdown.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Count    int     `json:"count"`
}

// DashboardSnapshot is the aggregate returned by GET /api/dashboard.
type DashboardSnapshot struct {
	LastUpdated        time.Time        `json:"lastUpdated"`
	MonthlySummary     PeriodSummary    `json:"monthlySummary"`
	QuarterlySummary   PeriodSummary    `json:"quarterlySummary"`
	TaxJarStatus       TaxJarStatus     `json:"taxJarStatus"`
	Accounts           []Account        `json:"accounts"`
	RecentTransactions []Transaction    `json:"recentTransactions"`
	IncomeTrend        []TrendPoint     `json:"incomeTrend"`
	Alerts             []Alert          `json:"alerts"`
	CategoryBreakdown  []CategoryAmount `json:"categoryBreakdown"`
}
