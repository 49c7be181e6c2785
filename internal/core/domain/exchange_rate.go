package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the conversion multiplier from a currency to the configured
// base currency, effective on a specific calendar date. Rates are
// point-in-time: the rate for a given (currency, date) pair never changes
// retroactively.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyCode   string          `json:"currencyCode"`   // ISO 4217, e.g. "EUR"
	Rate           decimal.Decimal `json:"rate"`           // Positive multiplier to base currency
	RateDate       time.Time       `json:"rateDate"`       // Calendar date the rate is effective
	CreatedAt      time.Time       `json:"createdAt"`
}
