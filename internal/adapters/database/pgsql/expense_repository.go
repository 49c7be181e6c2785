package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portsrepo "github.com/expenso-app/expenso_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExpenseRepository implements the expense repository ports using pgxpool.
type PgxExpenseRepository struct {
	db *pgxpool.Pool
}

// NewExpenseRepository creates a new PgxExpenseRepository.
func NewExpenseRepository(db *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{db: db}
}

// Ensure PgxExpenseRepository implements the repository facade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

// SaveExpense inserts a new expense. Expenses are immutable, so there is no
// conflict clause: a duplicate ID is an error.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (
			expense_id, merchant, amount, currency_code, category, date, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		expense.ExpenseID, expense.Merchant, expense.Amount, expense.CurrencyCode,
		expense.Category, expense.Date, expense.Notes, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting expense: %w", err)
	}
	return nil
}

// FindExpenseByID retrieves a single expense by its identifier.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT expense_id, merchant, amount, currency_code, category, date, notes, created_at
		FROM expenses
		WHERE expense_id = $1
	`
	expense := &domain.Expense{}
	err := r.db.QueryRow(ctx, query, expenseID).Scan(
		&expense.ExpenseID, &expense.Merchant, &expense.Amount, &expense.CurrencyCode,
		&expense.Category, &expense.Date, &expense.Notes, &expense.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding expense: %w", err)
	}
	return expense, nil
}

// ListExpenses retrieves a page of expenses ordered by date descending.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT expense_id, merchant, amount, currency_code, category, date, notes, created_at
		FROM expenses
		ORDER BY date DESC, expense_id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListAllExpenses retrieves every stored expense for analytics and export.
func (r *PgxExpenseRepository) ListAllExpenses(ctx context.Context) ([]domain.Expense, error) {
	query := `
		SELECT expense_id, merchant, amount, currency_code, category, date, notes, created_at
		FROM expenses
		ORDER BY expense_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing all expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func scanExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(
			&expense.ExpenseID, &expense.Merchant, &expense.Amount, &expense.CurrencyCode,
			&expense.Category, &expense.Date, &expense.Notes, &expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning expense row: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}
