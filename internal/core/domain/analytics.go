package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed base-currency spending for one category.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// MerchantTotal is the summed base-currency spending for one merchant.
type MerchantTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyTotal is the summed base-currency spending for one calendar month.
// Period is the first day of the month, UTC midnight.
type MonthlyTotal struct {
	Period time.Time       `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

// SkippedExpenses records expenses excluded from an analytics report because
// no exchange rate could be resolved for them.
type SkippedExpenses struct {
	Count      int      `json:"count"`
	ExpenseIDs []string `json:"expenseIDs"`
}

// AnalyticsReport aggregates a set of expenses, all normalized to one base
// currency. ByMerchant holds at most the top 20 merchants by total, descending;
// OverTime is ordered chronologically. Only months present in the input appear.
type AnalyticsReport struct {
	BaseCurrency string          `json:"baseCurrency"`
	ByCategory   []CategoryTotal `json:"byCategory"`
	ByMerchant   []MerchantTotal `json:"byMerchant"`
	OverTime     []MonthlyTotal  `json:"overTime"`
	Skipped      SkippedExpenses `json:"skipped"`
}
