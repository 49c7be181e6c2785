package services

import (
	"context"
	"time"

	"github.com/expenso-app/expenso_backend/internal/core/domain"
	"github.com/expenso-app/expenso_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateSvcFacade defines operations for managing the rate table the
// resolver reads from.
type ExchangeRateSvcFacade interface {
	// CreateExchangeRate validates and persists a new rate to the base currency.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error)

	// GetRate retrieves the rate effective for a currency on a date, falling
	// back to the most recent prior rate when the exact date has none.
	GetRate(ctx context.Context, currencyCode string, on time.Time) (*domain.ExchangeRate, error)
}

// RateResolver resolves the conversion multiplier from a currency to the base
// currency for a specific date. Implementations cache by (currency, date) for
// the lifetime of one aggregation request.
type RateResolver interface {
	// RateFor returns the positive multiplier converting the currency to the
	// base currency on the given date. The base currency itself resolves to 1
	// without any lookup. A missing rate, after fallback, returns an error
	// wrapping apperrors.ErrRateUnavailable.
	RateFor(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error)
}
