package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spendwise/expense-tracker/internal/core/events"
	"github.com/spendwise/expense-tracker/internal/expense"
)

// ExpenseSource supplies candidate expenses for a date range, unfiltered by
// owner; the composer filters by the resolved target itself.
type ExpenseSource interface {
	FetchByDateRange(start, end time.Time) ([]*expense.Expense, error)
}

// Service orchestrates access resolution, fetching, filtering and the
// aggregation primitives into the individual report kinds. Every report is
// a single synchronous computation; concurrent requests share nothing but
// the read-only collaborators.
type Service struct {
	access *AccessValidator
	source ExpenseSource
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(access *AccessValidator, source ExpenseSource, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		access: access,
		source: source,
		bus:    bus,
		logger: logger,
	}
}

// QuickSummary aggregates the target user's last-N-days expenses into
// headline totals.
func (s *Service) QuickSummary(ctx context.Context, requestingUsername string, p QuickSummaryParams) (*QuickSummary, error) {
	if appErr := p.Normalize(); appErr != nil {
		return nil, appErr
	}

	end := time.Now()
	start := end.AddDate(0, 0, -p.LastNDays)
	rangeLabel := start.Format("2006-01-02") + " to " + end.Format("2006-01-02")
	period := fmt.Sprintf("Last %d days", p.LastNDays)

	owned, decision, err := s.prepare(ctx, requestingUsername, p.TargetUsername, start, end, "quick summary", rangeLabel)
	if err != nil {
		return nil, err
	}

	summary := s.buildSummary(owned, decision.TargetUsername, requestingUsername, rangeLabel, period)
	return &summary, nil
}

// CategoryBreakdown returns per-category totals and shares for the range.
func (s *Service) CategoryBreakdown(ctx context.Context, requestingUsername string, p RangeParams) ([]CategoryBreakdown, error) {
	if appErr := p.Validate(); appErr != nil {
		return nil, appErr
	}

	owned, _, err := s.prepare(ctx, requestingUsername, p.TargetUsername, p.StartDate, p.EndDate, "category breakdown", p.RangeLabel())
	if err != nil {
		return nil, err
	}

	return Breakdown(owned), nil
}

// TimeBasedReport returns bucketed totals with per-bucket top categories.
func (s *Service) TimeBasedReport(ctx context.Context, requestingUsername string, p TimeBasedParams) ([]TimeBasedReport, error) {
	if appErr := p.Normalize(); appErr != nil {
		return nil, appErr
	}

	owned, _, err := s.prepare(ctx, requestingUsername, p.TargetUsername, p.StartDate, p.EndDate, "time-based report", p.RangeLabel())
	if err != nil {
		return nil, err
	}

	return s.buildTimeline(owned, p.GroupBy), nil
}

// TopExpenses returns the N highest-amount expenses of the range.
func (s *Service) TopExpenses(ctx context.Context, requestingUsername string, p TopExpensesParams) ([]TopExpense, error) {
	if appErr := p.Normalize(); appErr != nil {
		return nil, appErr
	}

	owned, _, err := s.prepare(ctx, requestingUsername, p.TargetUsername, p.StartDate, p.EndDate, "top expenses", p.RangeLabel())
	if err != nil {
		return nil, err
	}

	return TopN(owned, p.Limit), nil
}

// DetailedReport composes all four views. Expenses are fetched and filtered
// exactly once and the same slice feeds every section, so the composite
// describes one consistent snapshot.
func (s *Service) DetailedReport(ctx context.Context, requestingUsername string, p DetailedParams) (*DetailedReport, error) {
	if appErr := p.Normalize(); appErr != nil {
		return nil, appErr
	}

	owned, decision, err := s.prepare(ctx, requestingUsername, p.TargetUsername, p.StartDate, p.EndDate, "detailed report", p.RangeLabel())
	if err != nil {
		return nil, err
	}

	return &DetailedReport{
		Summary:     s.buildSummary(owned, decision.TargetUsername, requestingUsername, p.RangeLabel(), p.RangeLabel()),
		Categories:  Breakdown(owned),
		Timeline:    s.buildTimeline(owned, GroupByMonth),
		TopExpenses: TopN(owned, p.TopExpensesLimit),
	}, nil
}

// prepare runs the shared pipeline head: resolve access, notify audit,
// fetch the range and filter to the resolved target. No expenses matching
// is not a failure; an empty slice comes back.
func (s *Service) prepare(ctx context.Context, requestingUsername, targetUsername string, start, end time.Time, kind, rangeLabel string) ([]*expense.Expense, AccessDecision, error) {
	decision, err := s.access.ResolveTarget(requestingUsername, targetUsername)
	if err != nil {
		return nil, AccessDecision{}, err
	}

	s.notifyAudit(ctx, requestingUsername, decision.TargetUsername, kind, rangeLabel)

	candidates, err := s.source.FetchByDateRange(start, end)
	if err != nil {
		s.logger.Error("failed to fetch expenses for report",
			"error", err,
			"report_kind", kind,
			"target_username", decision.TargetUsername)
		return nil, decision, err
	}

	owned := make([]*expense.Expense, 0, len(candidates))
	for _, e := range candidates {
		if e.Username == decision.TargetUsername {
			owned = append(owned, e)
		}
	}

	s.logger.Debug("report candidates filtered",
		"report_kind", kind,
		"policy", decision.Policy,
		"candidates", len(candidates),
		"owned", len(owned))

	return owned, decision, nil
}

// notifyAudit publishes the compliance event. Audit failure never fails the
// report; the bus dispatches asynchronously and logs handler errors itself.
func (s *Service) notifyAudit(ctx context.Context, actor, targetUser, kind, rangeLabel string) {
	detail := fmt.Sprintf("%s for %s (%s)", kind, targetUser, rangeLabel)
	event := events.NewReportGeneratedEvent(actor, targetUser, kind, detail)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish report audit event", "error", err, "actor", actor)
	}
}

func (s *Service) buildSummary(owned []*expense.Expense, targetUsername, requestingUsername, rangeLabel, period string) QuickSummary {
	reduced := Summarize(owned)
	return QuickSummary{
		Username:             targetUsername,
		GeneratedAt:          time.Now(),
		GeneratedBy:          requestingUsername,
		DateRange:            rangeLabel,
		Period:               period,
		TotalExpense:         reduced.Total,
		TotalCount:           reduced.Count,
		AverageExpenseAmount: reduced.Average,
		TopCategory:          reduced.TopCategory,
		TopCategoryAmount:    reduced.TopCategoryAmount,
	}
}

const bucketTopCategories = 3

func (s *Service) buildTimeline(owned []*expense.Expense, groupBy Granularity) []TimeBasedReport {
	buckets := Bucket(owned, groupBy)
	timeline := make([]TimeBasedReport, 0, len(buckets))

	for _, bucket := range buckets {
		reduced := Summarize(bucket.Expenses)

		// percentages here are relative to the bucket's own total
		topCategories := Breakdown(bucket.Expenses)
		if len(topCategories) > bucketTopCategories {
			topCategories = topCategories[:bucketTopCategories]
		}

		timeline = append(timeline, TimeBasedReport{
			Period:        bucket.Label,
			TotalAmount:   reduced.Total,
			Count:         reduced.Count,
			AverageAmount: reduced.Average,
			TopCategories: topCategories,
		})
	}

	return timeline
}
