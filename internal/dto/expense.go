package dto

import (
	"time"

	"github.com/expenso-app/expenso_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record a new expense.
// Field names mirror what the frontend form submits.
type CreateExpenseRequest struct {
	Merchant string          `json:"merchant" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required,iso4217code"`
	Category string          `json:"category" binding:"required"`
	Date     string          `json:"date" binding:"required,datetime=2006-01-02"`
	Notes    string          `json:"notes"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	Merchant  string          `json:"merchant"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Category  string          `json:"category"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ExpenseID,
		Merchant:  e.Merchant,
		Amount:    e.Amount,
		Currency:  e.CurrencyCode,
		Category:  e.Category,
		Date:      e.Date.Format("2006-01-02"),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to a slice of ExpenseResponse DTOs.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
