package report

import (
	"sort"

	"github.com/spendwise/expense-tracker/internal/expense"
)

// TopN returns the limit highest-amount expenses in descending order.
// Equal amounts keep their input order.
func TopN(expenses []*expense.Expense, limit int) []TopExpense {
	result := make([]TopExpense, 0)
	if limit <= 0 || len(expenses) == 0 {
		return result
	}

	ordered := make([]*expense.Expense, len(expenses))
	copy(ordered, expenses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Amount.GreaterThan(ordered[j].Amount)
	})

	if limit > len(ordered) {
		limit = len(ordered)
	}

	for _, e := range ordered[:limit] {
		result = append(result, TopExpense{
			ID:         e.ID,
			Title:      e.Title,
			Category:   e.Category,
			Amount:     e.Amount,
			Date:       e.CreatedAt,
			Notes:      e.Notes,
			HasReceipt: e.HasReceipt(),
		})
	}
	return result
}
