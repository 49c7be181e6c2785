package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single recorded expense in its original currency.
// Expenses are immutable once persisted.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (UUID)
	Merchant     string          `json:"merchant"`
	Amount       decimal.Decimal `json:"amount"`       // Positive, recorded currency
	CurrencyCode string          `json:"currencyCode"` // ISO 4217, e.g. "USD"
	Category     string          `json:"category"`
	Date         time.Time       `json:"date"` // Calendar date, UTC midnight
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// NormalizedExpense is an Expense together with its base-currency equivalent.
// It is derived per analytics request and never persisted, so rate-table
// corrections show up on the next query without any migration.
type NormalizedExpense struct {
	Expense
	BaseCurrency string          `json:"baseCurrency"`
	BaseAmount   decimal.Decimal `json:"baseAmount"` // Amount × rate, rounded to minor units
}
