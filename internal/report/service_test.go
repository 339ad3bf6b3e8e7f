package report_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spendwise/expense-tracker/internal/core/events"
	"github.com/spendwise/expense-tracker/internal/expense"
	"github.com/spendwise/expense-tracker/internal/report"
	"github.com/spendwise/expense-tracker/internal/user"
)

// Mock expense source for testing
type mockExpenseSource struct {
	expenses   []*expense.Expense
	fetchError error
}

func (m *mockExpenseSource) FetchByDateRange(start, end time.Time) ([]*expense.Expense, error) {
	if m.fetchError != nil {
		return nil, m.fetchError
	}
	matched := make([]*expense.Expense, 0)
	for _, e := range m.expenses {
		if !e.CreatedAt.Before(start) && e.CreatedAt.Before(end) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

var _ = Describe("ReportService", func() {
	var (
		directory *mockUserDirectory
		source    *mockExpenseSource
		bus       *events.EventBus
		audited   chan events.Event
		service   *report.Service
		ctx       context.Context

		start time.Time
		end   time.Time
	)

	rangeOf := func() report.RangeParams {
		return report.RangeParams{StartDate: start, EndDate: end}
	}

	BeforeEach(func() {
		ctx = context.Background()
		start = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

		directory = newMockUserDirectory()
		directory.addUser("alice", user.RoleUser)
		directory.addUser("bob", user.RoleUser)
		directory.addUser("root", user.RoleAdmin)

		source = &mockExpenseSource{}

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		audited = make(chan events.Event, 16)
		bus.Subscribe(events.EventTypeReportGenerated, func(_ context.Context, event events.Event) error {
			audited <- event
			return nil
		})

		service = report.NewService(report.NewAccessValidator(directory, logger), source, bus, logger)
	})

	seedExpenses := func() {
		day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
		source.expenses = []*expense.Expense{
			makeExpense("alice", "Food", "50.00", day),
			makeExpense("alice", "Travel", "200.00", day.AddDate(0, 0, 2)),
			makeExpense("bob", "Office", "999.00", day),
		}
	}

	Describe("CategoryBreakdown", func() {
		Context("when a user views their own data", func() {
			It("should aggregate only that user's expenses", func() {
				seedExpenses()

				breakdown, err := service.CategoryBreakdown(ctx, "alice", rangeOf())

				Expect(err).ToNot(HaveOccurred())
				Expect(breakdown).To(HaveLen(2))
				Expect(breakdown[0].Category).To(Equal("Travel"))
				Expect(breakdown[0].Percentage).To(Equal(80.0))
				Expect(breakdown[1].Category).To(Equal("Food"))
			})

			It("should publish an audit event for the request", func() {
				seedExpenses()

				_, err := service.CategoryBreakdown(ctx, "alice", rangeOf())
				Expect(err).ToNot(HaveOccurred())

				var event events.Event
				Eventually(audited).Should(Receive(&event))
				generated, ok := event.(*events.ReportGeneratedEvent)
				Expect(ok).To(BeTrue())
				Expect(generated.Actor).To(Equal("alice"))
				Expect(generated.TargetUser).To(Equal("alice"))
			})
		})

		Context("when a regular user targets another user", func() {
			It("should deny the request", func() {
				seedExpenses()
				p := rangeOf()
				p.TargetUsername = "bob"

				_, err := service.CategoryBreakdown(ctx, "alice", p)

				Expect(err).To(MatchError(report.ErrOwnReportsOnly))
			})
		})

		Context("when an admin targets another user", func() {
			It("should aggregate the target's expenses", func() {
				seedExpenses()
				p := rangeOf()
				p.TargetUsername = "bob"

				breakdown, err := service.CategoryBreakdown(ctx, "root", p)

				Expect(err).ToNot(HaveOccurred())
				Expect(breakdown).To(HaveLen(1))
				Expect(breakdown[0].Category).To(Equal("Office"))
			})

			It("should record the admin as actor and the target separately", func() {
				seedExpenses()
				p := rangeOf()
				p.TargetUsername = "bob"

				_, err := service.CategoryBreakdown(ctx, "root", p)
				Expect(err).ToNot(HaveOccurred())

				var event events.Event
				Eventually(audited).Should(Receive(&event))
				generated := event.(*events.ReportGeneratedEvent)
				Expect(generated.Actor).To(Equal("root"))
				Expect(generated.TargetUser).To(Equal("bob"))
			})

			It("should report a missing target as not found", func() {
				p := rangeOf()
				p.TargetUsername = "nobody"

				_, err := service.CategoryBreakdown(ctx, "root", p)

				Expect(err).To(MatchError(report.ErrTargetUserNotFound))
			})
		})

		Context("when the requester is unknown", func() {
			It("should reject the request", func() {
				_, err := service.CategoryBreakdown(ctx, "ghost", rangeOf())

				Expect(err).To(MatchError(report.ErrInvalidRequestingUser))
			})
		})

		Context("when the range is invalid", func() {
			It("should reject before touching the source", func() {
				source.fetchError = errors.New("should not be called")

				_, err := service.CategoryBreakdown(ctx, "alice", report.RangeParams{})

				Expect(err).To(HaveOccurred())
			})
		})

		Context("when the source fails", func() {
			It("should propagate the error unchanged", func() {
				fetchErr := errors.New("connection reset")
				source.fetchError = fetchErr

				_, err := service.CategoryBreakdown(ctx, "alice", rangeOf())

				Expect(err).To(MatchError(fetchErr))
			})
		})
	})

	Describe("QuickSummary", func() {
		It("should summarize the recent window for the requester", func() {
			now := time.Now()
			source.expenses = []*expense.Expense{
				makeExpense("alice", "Food", "50.00", now.AddDate(0, 0, -1)),
				makeExpense("alice", "Travel", "200.00", now.AddDate(0, 0, -3)),
				makeExpense("alice", "Food", "10.00", now.AddDate(0, 0, -40)),
				makeExpense("bob", "Office", "500.00", now.AddDate(0, 0, -1)),
			}

			summary, err := service.QuickSummary(ctx, "alice", report.QuickSummaryParams{})

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.Username).To(Equal("alice"))
			Expect(summary.GeneratedBy).To(Equal("alice"))
			Expect(summary.Period).To(Equal("Last 30 days"))
			Expect(summary.TotalCount).To(Equal(2))
			Expect(summary.TotalExpense.Equal(dec("250.00"))).To(BeTrue())
			Expect(summary.AverageExpenseAmount.Equal(dec("125.00"))).To(BeTrue())
			Expect(summary.TopCategory).To(Equal("Travel"))
		})

		It("should return a well-formed zero summary when no expenses match", func() {
			summary, err := service.QuickSummary(ctx, "alice", report.QuickSummaryParams{})

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.TotalCount).To(Equal(0))
			Expect(summary.TotalExpense.IsZero()).To(BeTrue())
			Expect(summary.TopCategory).To(Equal(report.NoCategory))
		})

		It("should reject an invalid window", func() {
			_, err := service.QuickSummary(ctx, "alice", report.QuickSummaryParams{LastNDays: 500})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("TimeBasedReport", func() {
		It("should bucket by the requested granularity with per-bucket top categories", func() {
			seedExpenses()
			p := report.TimeBasedParams{RangeParams: rangeOf(), GroupBy: report.GroupByDay}

			timeline, err := service.TimeBasedReport(ctx, "alice", p)

			Expect(err).ToNot(HaveOccurred())
			Expect(timeline).To(HaveLen(2))
			Expect(timeline[0].Period).To(Equal("2024-03-10"))
			Expect(timeline[0].TotalAmount.Equal(dec("50.00"))).To(BeTrue())
			Expect(timeline[0].TopCategories).To(HaveLen(1))
			Expect(timeline[1].Period).To(Equal("2024-03-12"))
		})

		It("should return an empty timeline when nothing matches", func() {
			timeline, err := service.TimeBasedReport(ctx, "alice", report.TimeBasedParams{RangeParams: rangeOf()})

			Expect(err).ToNot(HaveOccurred())
			Expect(timeline).NotTo(BeNil())
			Expect(timeline).To(BeEmpty())
		})
	})

	Describe("TopExpenses", func() {
		It("should return the requester's largest expenses", func() {
			seedExpenses()
			p := report.TopExpensesParams{RangeParams: rangeOf(), Limit: 1}

			top, err := service.TopExpenses(ctx, "alice", p)

			Expect(err).ToNot(HaveOccurred())
			Expect(top).To(HaveLen(1))
			Expect(top[0].Amount.Equal(dec("200.00"))).To(BeTrue())
		})

		It("should reject an out-of-range limit", func() {
			p := report.TopExpensesParams{RangeParams: rangeOf(), Limit: 1000}

			_, err := service.TopExpenses(ctx, "alice", p)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DetailedReport", func() {
		It("should compose all sections over the same snapshot", func() {
			seedExpenses()
			p := report.DetailedParams{RangeParams: rangeOf()}

			detailed, err := service.DetailedReport(ctx, "alice", p)

			Expect(err).ToNot(HaveOccurred())
			Expect(detailed.Summary.TotalCount).To(Equal(2))
			Expect(detailed.Summary.TotalExpense.Equal(dec("250.00"))).To(BeTrue())
			Expect(detailed.Categories).To(HaveLen(2))
			Expect(detailed.Timeline).To(HaveLen(1))
			Expect(detailed.Timeline[0].Period).To(Equal("2024-03"))
			Expect(detailed.TopExpenses).To(HaveLen(2))
		})

		It("should fall back to the default top limit for out-of-range values", func() {
			seedExpenses()
			p := report.DetailedParams{RangeParams: rangeOf(), TopExpensesLimit: 1000}

			detailed, err := service.DetailedReport(ctx, "alice", p)

			Expect(err).ToNot(HaveOccurred())
			Expect(detailed.TopExpenses).To(HaveLen(2))
		})

		It("should publish a single audit event for the composite", func() {
			seedExpenses()
			p := report.DetailedParams{RangeParams: rangeOf()}

			_, err := service.DetailedReport(ctx, "alice", p)
			Expect(err).ToNot(HaveOccurred())

			Eventually(audited).Should(Receive())
			Consistently(audited).ShouldNot(Receive())
		})

		It("should return well-formed empty sections when nothing matches", func() {
			detailed, err := service.DetailedReport(ctx, "alice", report.DetailedParams{RangeParams: rangeOf()})

			Expect(err).ToNot(HaveOccurred())
			Expect(detailed.Summary.TotalCount).To(Equal(0))
			Expect(detailed.Categories).To(BeEmpty())
			Expect(detailed.Timeline).To(BeEmpty())
			Expect(detailed.TopExpenses).To(BeEmpty())
		})
	})
})
