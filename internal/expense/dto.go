package expense

import (
	"time"

	"github.com/shopspring/decimal"

	errors "github.com/spendwise/expense-tracker/internal"
	"github.com/spendwise/expense-tracker/internal/core/validation"
)

// CreateExpenseDTO is the request payload for creating an expense.
type CreateExpenseDTO struct {
	Title           string          `json:"title"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           *string         `json:"notes,omitempty"`
	ReceiptURL      *string         `json:"receipt_url,omitempty"`
	ReceiptFileName *string         `json:"receipt_filename,omitempty"`
	ExpenseDate     *time.Time      `json:"expense_date,omitempty"`
}

func (dto CreateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("category", dto.Category).Required().MaxLength(100)
	v.Field("amount", dto.Amount).NonNegativeDecimal(errors.ErrCodeInvalidAmount)
	if dto.ExpenseDate != nil {
		v.Field("expense_date", *dto.ExpenseDate).NotFuture()
	}
	return v.Validate()
}

// UpdateExpenseDTO carries the mutable fields of an expense. Nil fields are
// left untouched.
type UpdateExpenseDTO struct {
	Title           *string          `json:"title,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	ReceiptURL      *string          `json:"receipt_url,omitempty"`
	ReceiptFileName *string          `json:"receipt_filename,omitempty"`
}

func (dto UpdateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Title != nil {
		v.Field("title", *dto.Title).Required().MaxLength(200)
	}
	if dto.Category != nil {
		v.Field("category", *dto.Category).Required().MaxLength(100)
	}
	if dto.Amount != nil {
		v.Field("amount", *dto.Amount).NonNegativeDecimal(errors.ErrCodeInvalidAmount)
	}
	return v.Validate()
}
