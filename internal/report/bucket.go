package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/spendwise/expense-tracker/internal/expense"
)

// Granularity selects the time-bucket size of a time-based report.
type Granularity string

const (
	GroupByDay   Granularity = "day"
	GroupByWeek  Granularity = "week"
	GroupByMonth Granularity = "month"
	GroupByYear  Granularity = "year"
)

func (g Granularity) Valid() bool {
	switch g {
	case GroupByDay, GroupByWeek, GroupByMonth, GroupByYear:
		return true
	}
	return false
}

// PeriodLabel formats the bucket label for a point in time. Labels are
// zero-padded so lexicographic order equals chronological order. Weeks use
// ISO-8601 numbering: weeks start on Monday and belong to the year holding
// at least four of their days.
func PeriodLabel(t time.Time, g Granularity) string {
	switch g {
	case GroupByDay:
		return t.Format("2006-01-02")
	case GroupByWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case GroupByYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// TimeBucket is one labeled group of expenses sharing a period.
type TimeBucket struct {
	Label    string
	Expenses []*expense.Expense
}

// Bucket groups expenses into labeled periods, emitted ascending by label.
func Bucket(expenses []*expense.Expense, g Granularity) []TimeBucket {
	grouped := make(map[string][]*expense.Expense)
	labels := make([]string, 0)

	for _, e := range expenses {
		label := PeriodLabel(e.CreatedAt, g)
		if _, seen := grouped[label]; !seen {
			labels = append(labels, label)
		}
		grouped[label] = append(grouped[label], e)
	}

	sort.Strings(labels)

	buckets := make([]TimeBucket, 0, len(labels))
	for _, label := range labels {
		buckets = append(buckets, TimeBucket{Label: label, Expenses: grouped[label]})
	}
	return buckets
}
