package report

import (
	"fmt"
	"time"

	"github.com/spendwise/expense-tracker/internal"
)

const (
	// DefaultLastNDays is the lookback window of a quick summary.
	DefaultLastNDays = 30
	// DefaultTopLimit is the default and clamp target for top-N listings.
	DefaultTopLimit = 10
	// MaxTopLimit bounds top-N listings.
	MaxTopLimit = 100
	// MaxRangeDays bounds any report's date span.
	MaxRangeDays = 365
)

// QuickSummaryParams describes a last-N-days summary request.
type QuickSummaryParams struct {
	TargetUsername string
	LastNDays      int
}

// Normalize applies defaults and validates bounds.
func (p *QuickSummaryParams) Normalize() *internal.AppError {
	if p.LastNDays == 0 {
		p.LastNDays = DefaultLastNDays
	}
	if p.LastNDays < 1 || p.LastNDays > MaxRangeDays {
		return internal.NewValidationFieldError("last_n_days",
			fmt.Sprintf("last_n_days must be between 1 and %d", MaxRangeDays),
			internal.ErrCodeInvalidDays)
	}
	return nil
}

// RangeParams is the common explicit date-range request: [start, end), with
// start strictly before end and a bounded span.
type RangeParams struct {
	StartDate      time.Time
	EndDate        time.Time
	TargetUsername string
}

func (p *RangeParams) Validate() *internal.AppError {
	if p.StartDate.IsZero() {
		return internal.NewValidationFieldError("start_date", "start_date is required", internal.ErrCodeInvalidDateRange)
	}
	if p.EndDate.IsZero() {
		return internal.NewValidationFieldError("end_date", "end_date is required", internal.ErrCodeInvalidDateRange)
	}
	if !p.StartDate.Before(p.EndDate) {
		return internal.NewValidationFieldError("start_date", "start_date must be before end_date", internal.ErrCodeInvalidDateRange)
	}
	if p.EndDate.Sub(p.StartDate) > MaxRangeDays*24*time.Hour {
		return internal.NewValidationFieldError("end_date",
			fmt.Sprintf("date range must not exceed %d days", MaxRangeDays),
			internal.ErrCodeDateRangeTooWide)
	}
	return nil
}

// RangeLabel is the human-readable form of the range.
func (p *RangeParams) RangeLabel() string {
	return p.StartDate.Format("2006-01-02") + " to " + p.EndDate.Format("2006-01-02")
}

// TimeBasedParams describes a bucketed trend request.
type TimeBasedParams struct {
	RangeParams
	GroupBy Granularity
}

func (p *TimeBasedParams) Normalize() *internal.AppError {
	if appErr := p.RangeParams.Validate(); appErr != nil {
		return appErr
	}
	if p.GroupBy == "" {
		p.GroupBy = GroupByMonth
	}
	if !p.GroupBy.Valid() {
		return internal.NewValidationFieldError("group_by",
			"group_by must be one of day, week, month, year",
			internal.ErrCodeInvalidGroupBy)
	}
	return nil
}

// TopExpensesParams describes a top-N request. Out-of-range limits are
// rejected here, unlike the composite report.
type TopExpensesParams struct {
	RangeParams
	Limit int
}

func (p *TopExpensesParams) Normalize() *internal.AppError {
	if appErr := p.RangeParams.Validate(); appErr != nil {
		return appErr
	}
	if p.Limit == 0 {
		p.Limit = DefaultTopLimit
	}
	if p.Limit < 1 || p.Limit > MaxTopLimit {
		return internal.NewValidationFieldError("limit",
			fmt.Sprintf("limit must be between 1 and %d", MaxTopLimit),
			internal.ErrCodeInvalidLimit)
	}
	return nil
}

// DetailedParams describes a composite report request. The top-expenses
// limit is clamped to the default instead of rejected, preserving the
// behavior existing callers rely on.
type DetailedParams struct {
	RangeParams
	TopExpensesLimit int
}

func (p *DetailedParams) Normalize() *internal.AppError {
	if appErr := p.RangeParams.Validate(); appErr != nil {
		return appErr
	}
	if p.TopExpensesLimit < 1 || p.TopExpensesLimit > MaxTopLimit {
		p.TopExpensesLimit = DefaultTopLimit
	}
	return nil
}
