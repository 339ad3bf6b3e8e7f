package report_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spendwise/expense-tracker/internal/expense"
	"github.com/spendwise/expense-tracker/internal/report"
)

var _ = Describe("TopN", func() {
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	Context("with more expenses than the limit", func() {
		It("should return the largest amounts in descending order", func() {
			expenses := []*expense.Expense{
				makeExpense("alice", "Food", "10.00", day),
				makeExpense("alice", "Travel", "300.00", day),
				makeExpense("alice", "Office", "50.00", day),
				makeExpense("alice", "Travel", "120.00", day),
			}

			top := report.TopN(expenses, 2)

			Expect(top).To(HaveLen(2))
			Expect(top[0].Amount.Equal(dec("300.00"))).To(BeTrue())
			Expect(top[1].Amount.Equal(dec("120.00"))).To(BeTrue())
		})
	})

	Context("with fewer expenses than the limit", func() {
		It("should return everything without padding", func() {
			expenses := []*expense.Expense{
				makeExpense("alice", "Food", "10.00", day),
			}

			top := report.TopN(expenses, 10)

			Expect(top).To(HaveLen(1))
		})
	})

	Context("when amounts tie", func() {
		It("should keep input order between equal amounts", func() {
			first := makeExpense("alice", "Food", "100.00", day)
			first.ID = 1
			second := makeExpense("alice", "Travel", "100.00", day)
			second.ID = 2

			top := report.TopN([]*expense.Expense{first, second}, 2)

			Expect(top[0].ID).To(Equal(int64(1)))
			Expect(top[1].ID).To(Equal(int64(2)))
		})
	})

	It("should carry the receipt flag and notes through", func() {
		url := "https://receipts.example.com/1.pdf"
		notes := "client lunch"
		withReceipt := makeExpense("alice", "Food", "40.00", day)
		withReceipt.ReceiptURL = &url
		withReceipt.Notes = &notes
		without := makeExpense("alice", "Food", "30.00", day)

		top := report.TopN([]*expense.Expense{withReceipt, without}, 2)

		Expect(top[0].HasReceipt).To(BeTrue())
		Expect(top[0].Notes).To(Equal(&notes))
		Expect(top[1].HasReceipt).To(BeFalse())
	})

	Context("with no expenses", func() {
		It("should return an empty, non-nil slice", func() {
			top := report.TopN(nil, 5)

			Expect(top).NotTo(BeNil())
			Expect(top).To(BeEmpty())
		})
	})
})
