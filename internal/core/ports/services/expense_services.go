package services

import (
	"context"

	"github.com/expenso-app/expenso_backend/internal/core/domain"
	"github.com/expenso-app/expenso_backend/internal/dto"
)

// ExpenseSvcFacade defines operations for recording and reading expenses.
type ExpenseSvcFacade interface {
	// CreateExpense validates and persists a new expense.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error)

	// GetExpenseByID retrieves a single expense.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses ordered by date descending.
	ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error)
}
