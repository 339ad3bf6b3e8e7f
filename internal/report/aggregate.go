package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-tracker/internal/expense"
)

// NoCategory is reported as the top category of an empty expense set.
const NoCategory = "N/A"

var oneHundred = decimal.NewFromInt(100)

// Summary holds the reduced totals of one expense set.
type Summary struct {
	Total             decimal.Decimal
	Count             int
	Average           decimal.Decimal
	TopCategory       string
	TopCategoryAmount decimal.Decimal
}

// Summarize reduces an expense list to totals, average and the dominant
// category. Ties on category totals keep the category seen first in input
// order. An empty list yields zeros and "N/A".
func Summarize(expenses []*expense.Expense) Summary {
	if len(expenses) == 0 {
		return Summary{
			Total:             decimal.Zero,
			Average:           decimal.Zero,
			TopCategory:       NoCategory,
			TopCategoryAmount: decimal.Zero,
		}
	}

	total := decimal.Zero
	categoryTotals := make(map[string]decimal.Decimal)
	categoryOrder := make([]string, 0)

	for _, e := range expenses {
		total = total.Add(e.Amount)
		if _, seen := categoryTotals[e.Category]; !seen {
			categoryOrder = append(categoryOrder, e.Category)
		}
		categoryTotals[e.Category] = categoryTotals[e.Category].Add(e.Amount)
	}

	topCategory := categoryOrder[0]
	topAmount := categoryTotals[topCategory]
	for _, category := range categoryOrder[1:] {
		// strict greater-than keeps the first-seen category on ties
		if amount := categoryTotals[category]; amount.GreaterThan(topAmount) {
			topCategory = category
			topAmount = amount
		}
	}

	count := len(expenses)
	average := total.Div(decimal.NewFromInt(int64(count))).Round(2)

	return Summary{
		Total:             total,
		Count:             count,
		Average:           average,
		TopCategory:       topCategory,
		TopCategoryAmount: topAmount,
	}
}

// Breakdown groups expenses by category and computes each category's share
// of the grand total, ordered by descending total amount. A zero grand
// total forces every percentage to zero.
func Breakdown(expenses []*expense.Expense) []CategoryBreakdown {
	result := make([]CategoryBreakdown, 0)
	if len(expenses) == 0 {
		return result
	}

	grandTotal := decimal.Zero
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, e := range expenses {
		grandTotal = grandTotal.Add(e.Amount)
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
		counts[e.Category]++
	}

	for _, category := range order {
		categoryTotal := totals[category]
		count := counts[category]

		var percentage float64
		if !grandTotal.IsZero() {
			pct := categoryTotal.Mul(oneHundred).Div(grandTotal)
			percentage, _ = pct.Round(2).Float64()
		}

		result = append(result, CategoryBreakdown{
			Category:      category,
			TotalAmount:   categoryTotal,
			Count:         count,
			AverageAmount: categoryTotal.Div(decimal.NewFromInt(int64(count))).Round(2),
			Percentage:    percentage,
		})
	}

	// stable so equal totals keep first-seen ordering
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalAmount.GreaterThan(result[j].TotalAmount)
	})

	return result
}
