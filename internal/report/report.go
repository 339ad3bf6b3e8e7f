// Package report implements the reporting/aggregation engine: derived
// statistical views over a user's expenses, guarded by a self-or-admin
// access policy. All DTOs here are per-request snapshots with no identity
// of their own.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuickSummary is the headline view over one date range.
type QuickSummary struct {
	Username             string          `json:"username"`
	GeneratedAt          time.Time       `json:"generated_at"`
	GeneratedBy          string          `json:"generated_by"`
	DateRange            string          `json:"date_range"`
	Period               string          `json:"period"`
	TotalExpense         decimal.Decimal `json:"total_expense"`
	TotalCount           int             `json:"total_count"`
	AverageExpenseAmount decimal.Decimal `json:"average_expense_amount"`
	TopCategory          string          `json:"top_category"`
	TopCategoryAmount    decimal.Decimal `json:"top_category_amount"`
}

// CategoryBreakdown is one category's share of the range total. Percentage
// is rounded to two decimals; a zero grand total forces zero percentages.
type CategoryBreakdown struct {
	Category      string          `json:"category"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Count         int             `json:"count"`
	AverageAmount decimal.Decimal `json:"average_amount"`
	Percentage    float64         `json:"percentage"`
}

// TimeBasedReport is one time bucket. TopCategories holds at most three
// entries with percentages relative to this bucket's total, not the grand
// total.
type TimeBasedReport struct {
	Period        string              `json:"period"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Count         int                 `json:"count"`
	AverageAmount decimal.Decimal     `json:"average_amount"`
	TopCategories []CategoryBreakdown `json:"top_categories"`
}

// TopExpense is one entry of a top-N listing.
type TopExpense struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Notes      *string         `json:"notes,omitempty"`
	HasReceipt bool            `json:"has_receipt"`
}

// DetailedReport composes the four views over a single fetched-and-filtered
// expense set, so all sections describe the same snapshot.
type DetailedReport struct {
	Summary     QuickSummary        `json:"summary"`
	Categories  []CategoryBreakdown `json:"categories"`
	Timeline    []TimeBasedReport   `json:"timeline"`
	TopExpenses []TopExpense        `json:"top_expenses"`
}
