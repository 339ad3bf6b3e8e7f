package report_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spendwise/expense-tracker/internal"
	"github.com/spendwise/expense-tracker/internal/report"
)

// fieldCode digs the per-field code out of a validation error's details.
func fieldCode(appErr *internal.AppError) string {
	details, ok := appErr.Details.(internal.ValidationErrors)
	if !ok || len(details.Errors) == 0 {
		return ""
	}
	return details.Errors[0].Code
}

var _ = Describe("Report params", func() {
	var start, end time.Time

	BeforeEach(func() {
		start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	})

	Describe("QuickSummaryParams", func() {
		It("should default the window to thirty days", func() {
			p := report.QuickSummaryParams{}

			Expect(p.Normalize()).To(BeNil())
			Expect(p.LastNDays).To(Equal(report.DefaultLastNDays))
		})

		It("should accept the bounds of the window", func() {
			for _, days := range []int{1, 365} {
				p := report.QuickSummaryParams{LastNDays: days}
				Expect(p.Normalize()).To(BeNil())
			}
		})

		It("should reject a negative window", func() {
			p := report.QuickSummaryParams{LastNDays: -1}

			appErr := p.Normalize()
			Expect(appErr).NotTo(BeNil())
			Expect(fieldCode(appErr)).To(Equal(string(internal.ErrCodeInvalidDays)))
		})

		It("should reject a window beyond one year", func() {
			p := report.QuickSummaryParams{LastNDays: 366}

			Expect(p.Normalize()).NotTo(BeNil())
		})
	})

	Describe("RangeParams", func() {
		It("should accept a valid range", func() {
			p := report.RangeParams{StartDate: start, EndDate: end}

			Expect(p.Validate()).To(BeNil())
		})

		It("should require both dates", func() {
			p := report.RangeParams{EndDate: end}
			Expect(p.Validate()).NotTo(BeNil())

			p = report.RangeParams{StartDate: start}
			Expect(p.Validate()).NotTo(BeNil())
		})

		It("should reject start equal to end", func() {
			p := report.RangeParams{StartDate: start, EndDate: start}

			appErr := p.Validate()
			Expect(appErr).NotTo(BeNil())
			Expect(fieldCode(appErr)).To(Equal(string(internal.ErrCodeInvalidDateRange)))
		})

		It("should reject start after end", func() {
			p := report.RangeParams{StartDate: end, EndDate: start}

			Expect(p.Validate()).NotTo(BeNil())
		})

		It("should reject a span beyond one year", func() {
			p := report.RangeParams{StartDate: start, EndDate: start.AddDate(0, 0, 366)}

			appErr := p.Validate()
			Expect(appErr).NotTo(BeNil())
			Expect(fieldCode(appErr)).To(Equal(string(internal.ErrCodeDateRangeTooWide)))
		})

		It("should format the range label", func() {
			p := report.RangeParams{StartDate: start, EndDate: end}

			Expect(p.RangeLabel()).To(Equal("2024-01-01 to 2024-02-01"))
		})
	})

	Describe("TimeBasedParams", func() {
		It("should default the granularity to month", func() {
			p := report.TimeBasedParams{RangeParams: report.RangeParams{StartDate: start, EndDate: end}}

			Expect(p.Normalize()).To(BeNil())
			Expect(p.GroupBy).To(Equal(report.GroupByMonth))
		})

		It("should accept every known granularity", func() {
			for _, g := range []report.Granularity{report.GroupByDay, report.GroupByWeek, report.GroupByMonth, report.GroupByYear} {
				p := report.TimeBasedParams{
					RangeParams: report.RangeParams{StartDate: start, EndDate: end},
					GroupBy:     g,
				}
				Expect(p.Normalize()).To(BeNil())
			}
		})

		It("should reject an unknown granularity", func() {
			p := report.TimeBasedParams{
				RangeParams: report.RangeParams{StartDate: start, EndDate: end},
				GroupBy:     "quarter",
			}

			appErr := p.Normalize()
			Expect(appErr).NotTo(BeNil())
			Expect(fieldCode(appErr)).To(Equal(string(internal.ErrCodeInvalidGroupBy)))
		})
	})

	Describe("TopExpensesParams", func() {
		It("should default the limit to ten", func() {
			p := report.TopExpensesParams{RangeParams: report.RangeParams{StartDate: start, EndDate: end}}

			Expect(p.Normalize()).To(BeNil())
			Expect(p.Limit).To(Equal(report.DefaultTopLimit))
		})

		It("should reject an out-of-range limit", func() {
			for _, limit := range []int{-5, 101} {
				p := report.TopExpensesParams{
					RangeParams: report.RangeParams{StartDate: start, EndDate: end},
					Limit:       limit,
				}
				appErr := p.Normalize()
				Expect(appErr).NotTo(BeNil())
				Expect(fieldCode(appErr)).To(Equal(string(internal.ErrCodeInvalidLimit)))
			}
		})
	})

	Describe("DetailedParams", func() {
		It("should clamp an out-of-range top limit to the default instead of rejecting", func() {
			for _, limit := range []int{-5, 0, 101} {
				p := report.DetailedParams{
					RangeParams:      report.RangeParams{StartDate: start, EndDate: end},
					TopExpensesLimit: limit,
				}
				Expect(p.Normalize()).To(BeNil())
				Expect(p.TopExpensesLimit).To(Equal(report.DefaultTopLimit))
			}
		})

		It("should keep an in-range top limit", func() {
			p := report.DetailedParams{
				RangeParams:      report.RangeParams{StartDate: start, EndDate: end},
				TopExpensesLimit: 25,
			}

			Expect(p.Normalize()).To(BeNil())
			Expect(p.TopExpensesLimit).To(Equal(25))
		})

		It("should still validate the date range", func() {
			p := report.DetailedParams{TopExpensesLimit: 5}

			Expect(p.Normalize()).NotTo(BeNil())
		})
	})
})
