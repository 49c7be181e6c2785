package repositories

import (
	"context"
	"time"

	"github.com/expenso-app/expenso_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRate retrieves the rate for a currency effective exactly on a date.
	// Returns apperrors.ErrNotFound when no rate exists for that date.
	FindRate(ctx context.Context, currencyCode string, on time.Time) (*domain.ExchangeRate, error)
	// FindLatestRateBefore retrieves the most recent rate for a currency dated
	// strictly before the given date. Returns apperrors.ErrNotFound when the
	// currency has no earlier rate at all.
	FindLatestRateBefore(ctx context.Context, currencyCode string, before time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
