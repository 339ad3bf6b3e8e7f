package report_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spendwise/expense-tracker/internal/expense"
	"github.com/spendwise/expense-tracker/internal/report"
)

var _ = Describe("PeriodLabel", func() {
	// Wednesday of ISO week 11
	ts := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

	It("should format day labels as YYYY-MM-DD", func() {
		Expect(report.PeriodLabel(ts, report.GroupByDay)).To(Equal("2024-03-13"))
	})

	It("should format week labels with ISO year and zero-padded week", func() {
		Expect(report.PeriodLabel(ts, report.GroupByWeek)).To(Equal("2024-W11"))
	})

	It("should format month labels as YYYY-MM", func() {
		Expect(report.PeriodLabel(ts, report.GroupByMonth)).To(Equal("2024-03"))
	})

	It("should format year labels as YYYY", func() {
		Expect(report.PeriodLabel(ts, report.GroupByYear)).To(Equal("2024"))
	})

	Context("around ISO year boundaries", func() {
		It("should assign early January days to the previous ISO year when the week belongs there", func() {
			// 2021-01-01 is a Friday in ISO week 53 of 2020
			newYear := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
			Expect(report.PeriodLabel(newYear, report.GroupByWeek)).To(Equal("2020-W53"))
		})

		It("should zero-pad single-digit week numbers", func() {
			early := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
			Expect(report.PeriodLabel(early, report.GroupByWeek)).To(Equal("2024-W02"))
		})
	})
})

var _ = Describe("Bucket", func() {
	Context("when expenses span two weeks", func() {
		It("should produce one bucket per week in ascending order", func() {
			// Monday of week 10 and Monday of week 11
			week10 := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
			week11 := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)

			expenses := []*expense.Expense{
				makeExpense("alice", "Food", "10.00", week11),
				makeExpense("alice", "Food", "20.00", week10),
				makeExpense("alice", "Travel", "30.00", week11),
			}

			buckets := report.Bucket(expenses, report.GroupByWeek)

			Expect(buckets).To(HaveLen(2))
			Expect(buckets[0].Label).To(Equal("2024-W10"))
			Expect(buckets[0].Expenses).To(HaveLen(1))
			Expect(buckets[1].Label).To(Equal("2024-W11"))
			Expect(buckets[1].Expenses).To(HaveLen(2))
		})
	})

	Context("when expenses span months", func() {
		It("should order labels chronologically", func() {
			expenses := []*expense.Expense{
				makeExpense("alice", "Food", "10.00", time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)),
				makeExpense("alice", "Food", "10.00", time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)),
				makeExpense("alice", "Food", "10.00", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)),
			}

			buckets := report.Bucket(expenses, report.GroupByMonth)

			Expect(buckets).To(HaveLen(3))
			Expect(buckets[0].Label).To(Equal("2024-02"))
			Expect(buckets[1].Label).To(Equal("2024-12"))
			Expect(buckets[2].Label).To(Equal("2025-01"))
		})
	})

	Context("with no expenses", func() {
		It("should return an empty slice", func() {
			Expect(report.Bucket(nil, report.GroupByDay)).To(BeEmpty())
		})
	})
})
