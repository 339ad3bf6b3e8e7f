package postgres

import (
	"time"

	"github.com/spendwise/expense-tracker/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(e *expense.Expense) error {
	return r.db.Create(e).Error
}

func (r *ExpenseRepository) GetByID(id int64) (*expense.Expense, error) {
	var e expense.Expense
	err := r.db.Where("id = ?", id).First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) GetByUsername(username string, limit int) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Where("username = ?", username).
		Order("created_at DESC").
		Limit(limit).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) Update(e *expense.Expense) error {
	e.UpdatedAt = time.Now()
	return r.db.Save(e).Error
}

func (r *ExpenseRepository) Delete(id int64) error {
	return r.db.Delete(&expense.Expense{}, id).Error
}

// FetchByDateRange returns all expenses in [start, end) ordered by creation
// time. Owner filtering is the caller's job.
func (r *ExpenseRepository) FetchByDateRange(start, end time.Time) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&expenses).Error
	return expenses, err
}
