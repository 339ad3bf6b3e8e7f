package expense

import (
	"log/slog"
	"time"

	"github.com/spendwise/expense-tracker/internal"
	"github.com/spendwise/expense-tracker/internal/user"
)

// listCap bounds how many expenses a plain listing returns.
const listCap = 500

// Service handles expense business logic.
type Service struct {
	repo   Repository
	users  user.Repository
	logger *slog.Logger
}

func NewService(repo Repository, users user.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

func (s *Service) CreateExpense(username string, dto CreateExpenseDTO) (*Expense, error) {
	if appErr := dto.Validate(); appErr != nil {
		s.logger.Error("expense validation failed", "error", appErr, "username", username)
		return nil, appErr
	}

	now := time.Now()
	createdAt := now
	if dto.ExpenseDate != nil {
		createdAt = *dto.ExpenseDate
	}

	e := &Expense{
		Username:        username,
		Title:           dto.Title,
		Category:        dto.Category,
		Amount:          dto.Amount,
		Notes:           dto.Notes,
		ReceiptURL:      dto.ReceiptURL,
		ReceiptFileName: dto.ReceiptFileName,
		CreatedAt:       createdAt,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create expense", "error", err, "username", username)
		return nil, err
	}

	s.logger.Info("expense created",
		"expense_id", e.ID,
		"username", username,
		"amount", e.Amount.String(),
		"category", e.Category)

	return e, nil
}

// GetExpense retrieves one expense; owners see their own, admins see all.
func (s *Service) GetExpense(id int64, requestingUsername string) (*Expense, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, internal.ErrExpenseNotFound
	}

	if e.Username != requestingUsername {
		requester, uerr := s.users.GetByUsername(requestingUsername)
		if uerr != nil || !requester.IsAdmin() {
			s.logger.Warn("unauthorized access to expense",
				"expense_id", id,
				"requesting_username", requestingUsername,
				"owner", e.Username)
			return nil, internal.ErrUnauthorizedAccess
		}
	}

	return e, nil
}

func (s *Service) ListExpenses(username string) ([]*Expense, error) {
	expenses, err := s.repo.GetByUsername(username, listCap)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "username", username)
		return nil, err
	}
	return expenses, nil
}

func (s *Service) UpdateExpense(id int64, requestingUsername string, dto UpdateExpenseDTO) (*Expense, error) {
	if appErr := dto.Validate(); appErr != nil {
		s.logger.Error("expense update validation failed", "error", appErr, "expense_id", id)
		return nil, appErr
	}

	e, err := s.GetExpense(id, requestingUsername)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		e.Title = *dto.Title
	}
	if dto.Category != nil {
		e.Category = *dto.Category
	}
	if dto.Amount != nil {
		e.Amount = *dto.Amount
	}
	if dto.Notes != nil {
		e.Notes = dto.Notes
	}
	if dto.ReceiptURL != nil {
		e.ReceiptURL = dto.ReceiptURL
	}
	if dto.ReceiptFileName != nil {
		e.ReceiptFileName = dto.ReceiptFileName
	}
	e.UpdatedAt = time.Now()

	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, err
	}

	s.logger.Info("expense updated", "expense_id", id, "username", requestingUsername)
	return e, nil
}

func (s *Service) DeleteExpense(id int64, requestingUsername string) error {
	if _, err := s.GetExpense(id, requestingUsername); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return err
	}

	s.logger.Info("expense deleted", "expense_id", id, "username", requestingUsername)
	return nil
}

// FetchByDateRange exposes the raw date-range fetch consumed by the
// reporting engine. No owner filter is applied here.
func (s *Service) FetchByDateRange(start, end time.Time) ([]*Expense, error) {
	return s.repo.FetchByDateRange(start, end)
}
