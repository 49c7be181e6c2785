package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portsrepo "github.com/expenso-app/expenso_backend/internal/core/ports/repositories"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo}
}

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense validates and persists a new expense. Malformed input is
// rejected here, before normalization is ever involved.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Merchant) == "" {
		return nil, fmt.Errorf("%w: merchant must not be empty", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, fmt.Errorf("%w: category must not be empty", apperrors.ErrValidation)
	}
	if err := validateCurrencyCode(req.Currency); err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be a calendar date (YYYY-MM-DD)", apperrors.ErrValidation)
	}

	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		Merchant:     strings.TrimSpace(req.Merchant),
		Amount:       req.Amount,
		CurrencyCode: req.Currency,
		Category:     req.Category,
		Date:         date,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, fmt.Errorf("failed to create expense in service: %w", err)
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("currency", expense.CurrencyCode))
	return &expense, nil
}

// GetExpenseByID retrieves a single expense.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense in service: %w", err)
	}
	return expense, nil
}

// ListExpenses retrieves expenses ordered by date descending.
func (s *expenseService) ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses in service: %w", err)
	}
	return expenses, nil
}

// validateCurrencyCode enforces the uppercase 3-letter ISO 4217 shape.
func validateCurrencyCode(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}
	for _, r := range code {
		if !unicode.IsUpper(r) || !unicode.IsLetter(r) {
			return fmt.Errorf("%w: currency code must be uppercase letters", apperrors.ErrValidation)
		}
	}
	return nil
}
