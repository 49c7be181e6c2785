package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portsrepo "github.com/expenso-app/expenso_backend/internal/core/ports/repositories"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// exchangeRateService implements the ExchangeRateSvcFacade interface
type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	baseCurrency string
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, baseCurrency string) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:     rateRepo,
		baseCurrency: baseCurrency,
	}
}

// Ensure exchangeRateService implements the ExchangeRateSvcFacade interface
var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate to the base
// currency.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	// Input validation (basic format) is handled by DTO binding tags.

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.Currency == s.baseCurrency {
		return nil, fmt.Errorf("%w: base currency %s always has rate 1", apperrors.ErrValidation, s.baseCurrency)
	}

	rateDate, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be a calendar date (YYYY-MM-DD)", apperrors.ErrValidation)
	}

	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   req.Currency,
		Rate:           req.Rate,
		RateDate:       rateDate,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("currency", rate.CurrencyCode),
			slog.String("rate_date", req.Date))
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	return &rate, nil
}

// GetRate retrieves the rate effective for a currency on a date, applying the
// same most-recent-prior fallback the resolver uses.
func (s *exchangeRateService) GetRate(ctx context.Context, currencyCode string, on time.Time) (*domain.ExchangeRate, error) {
	if err := validateCurrencyCode(currencyCode); err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindRate(ctx, currencyCode, on)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}

	rate, err = s.rateRepo.FindLatestRateBefore(ctx, currencyCode, on)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no rate for %s on or before %s", apperrors.ErrNotFound, currencyCode, on.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}
