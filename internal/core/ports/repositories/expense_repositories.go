package repositories

import (
	"context"

	"github.com/expenso-app/expenso_backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a single expense by its identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	// ListExpenses retrieves expenses ordered by date descending.
	ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error)
	// ListAllExpenses retrieves every stored expense, for analytics and export.
	ListAllExpenses(ctx context.Context) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense. Expenses are immutable once saved.
	SaveExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
