package model

import "time"

// TransactionType distinguishes money in, money out, and internal moves.
type TransactionType string

// Transaction types.
const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// BusinessClassification tags a transaction as business or personal use.
type BusinessClassification string

// Business classifications.
const (
	ClassificationBusiness BusinessClassification = "business"
	ClassificationPersonal BusinessClassification = "personal"
	ClassificationMixed    BusinessClassification = "mixed"
	ClassificationUnknown  BusinessClassification = "unknown"
)

// Confidence thresholds for model-assigned categories. These are part of
// the product contract: below the low bar the UI asks the user to confirm,
// above the high bar it badges the category as AI-assigned.
const (
	LowConfidenceThreshold  = 0.5
	HighConfidenceThreshold = 0.8
)

// Category is a model- or user-assigned transaction category.
type Category struct {
	Primary    string  `json:"primary"`
	Detailed   string  `json:"detailed"`
	Confidence float64 `json:"confidence"`
}

// IsLowConfidence reports whether the categorization needs user review.
func (c Category) IsLowConfidence() bool {
	return c.Confidence < LowConfidenceThreshold
}

// IsHighConfidence reports whether the categorization can be badged as a
// confident automatic assignment.
func (c Category) IsHighConfidence() bool {
	return c.Confidence > HighConfidenceThreshold
}

// TaxDeductible captures the deduction status of a transaction.
type TaxDeductible struct {
	DeductionType string `json:"deductionType"`
	Notes         string `json:"notes"`
	IsDeductible  bool   `json:"isDeductible"`
}

// Transaction is a transaction record as returned by the API.
type Transaction struct {
	Date                   time.Time              `json:"date"`
	ID                     string                 `json:"id"`
	Type                   TransactionType        `json:"type"`
	MerchantName           string                 `json:"merchantName"`
	Description            string                 `json:"description"`
	Notes                  string                 `json:"notes"`
	BusinessClassification BusinessClassification `json:"businessClassification"`
	Category               Category               `json:"category"`
	TaxDeductible          TaxDeductible          `json:"taxDeductible"`
	Amount                 float64                `json:"amount"`
}

// CategorySuggestion is one alternative category offered for a transaction.
type CategorySuggestion struct {
	Primary    string  `json:"primary"`
	Detailed   string  `json:"detailed"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}
