package model

import "time"

// JarStatus is the traffic-light state of the quarterly tax jar.
type JarStatus string

// Jar statuses.
const (
	JarGreen  JarStatus = "green"
	JarYellow JarStatus = "yellow"
	JarRed    JarStatus = "red"
)

// Jar progress thresholds, in percent of the estimated quarterly payment.
const (
	jarGreenThreshold  = 90
	jarYellowThreshold = 70
)

// TaxJarStatus reports how much has been set aside toward the next
// estimated quarterly tax payment.
type TaxJarStatus struct {
	NextQuarterlyDue          time.Time `json:"nextQuarterlyDue"`
	Recommendations           []string  `json:"recommendations"`
	CurrentAmount             float64   `json:"currentAmount"`
	TargetPercentage          float64   `json:"targetPercentage"`
	EstimatedQuarterlyPayment float64   `json:"estimatedQuarterlyPayment"`
}

// Progress returns the jar fill percentage, capped at 100. A zero or
// negative estimated payment yields 0 rather than dividing by it.
func (t TaxJarStatus) Progress() float64 {
	if t.EstimatedQuarterlyPayment <= 0 {
		return 0
	}
	progress := t.CurrentAmount / t.EstimatedQuarterlyPayment * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// Status maps jar progress to a traffic-light color: >=90 green,
// >=70 yellow, otherwise red.
func (t TaxJarStatus) Status() JarStatus {
	switch progress := t.Progress(); {
	case progress >= jarGreenThreshold:
		return JarGreen
	case progress >= jarYellowThreshold:
		return JarYellow
	default:
		return JarRed
	}
}

// TaxSettings are the user's estimated-tax configuration.
type TaxSettings struct {
	FilingStatus       string  `json:"filingStatus"`
	State              string  `json:"state"`
	FederalRate        float64 `json:"federalRate"`
	StateRate          float64 `json:"stateRate"`
	SelfEmploymentRate float64 `json:"selfEmploymentRate"`
	SetAsidePercentage float64 `json:"setAsidePercentage"`
	AutoSetAside       bool    `json:"autoSetAside"`
}

// QuarterlyDate is one estimated-tax deadline.
type QuarterlyDate struct {
	DueDate time.Time `json:"dueDate"`
	Quarter string    `json:"quarter"`
	Paid    bool      `json:"paid"`
}

// QuarterlySummary reports income and estimated liability for one quarter.
type QuarterlySummary struct {
	Quarter          string  `json:"quarter"`
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	EstimatedTax     float64 `json:"estimatedTax"`
	SetAsideToDate   float64 `json:"setAsideToDate"`
	RemainingToSave  float64 `json:"remainingToSave"`
}

// YTDLiability is the year-to-date estimated tax position.
type YTDLiability struct {
	Year             int     `json:"year"`
	NetIncome        float64 `json:"netIncome"`
	EstimatedTax     float64 `json:"estimatedTax"`
	PaidToDate       float64 `json:"paidToDate"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// SetAsideLine is one component of a set-aside breakdown.
type SetAsideLine struct {
	Label  string  `json:"label"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// SetAsideBreakdown is the server's answer to "how much of this income
// should I put in the tax jar".
type SetAsideBreakdown struct {
	Breakdown     []SetAsideLine `json:"breakdown"`
	IncomeAmount  float64        `json:"incomeAmount"`
	TotalSetAside float64        `json:"totalSetAside"`
}
