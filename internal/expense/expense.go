package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the main expense entity. CreatedAt doubles as the business
// date of the expense; reports bucket and range-filter on it.
type Expense struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	Username        string          `json:"username" gorm:"column:username;not null;index"`
	Title           string          `json:"title" gorm:"column:title;not null"`
	Category        string          `json:"category" gorm:"column:category;not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"column:amount;type:numeric(14,2);not null"`
	Notes           *string         `json:"notes,omitempty" gorm:"column:notes"`
	ReceiptURL      *string         `json:"receipt_url,omitempty" gorm:"column:receipt_url"`
	ReceiptFileName *string         `json:"receipt_filename,omitempty" gorm:"column:receipt_filename"`
	CreatedAt       time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) HasReceipt() bool {
	return e.ReceiptURL != nil && *e.ReceiptURL != ""
}

// Repository defines the data access methods for expenses.
type Repository interface {
	Create(e *Expense) error
	GetByID(id int64) (*Expense, error)
	GetByUsername(username string, limit int) ([]*Expense, error)
	Update(e *Expense) error
	Delete(id int64) error

	// FetchByDateRange returns every expense with created_at in [start, end),
	// regardless of owner. Callers filter by owner themselves.
	FetchByDateRange(start, end time.Time) ([]*Expense, error)
}
