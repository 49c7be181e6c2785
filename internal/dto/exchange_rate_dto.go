package dto

import (
	"time"

	"github.com/expenso-app/expenso_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange
// rate to the base currency.
type CreateExchangeRateRequest struct {
	Currency string          `json:"currency" binding:"required,iso4217code"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
	Date     string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Rate      decimal.Decimal `json:"rate"`
	Date      string          `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:        rate.ExchangeRateID,
		Currency:  rate.CurrencyCode,
		Rate:      rate.Rate,
		Date:      rate.RateDate.Format("2006-01-02"),
		CreatedAt: rate.CreatedAt,
	}
}
