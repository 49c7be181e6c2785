package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portsrepo "github.com/expenso-app/expenso_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{db: db}
}

// Ensure PgxExchangeRateRepository implements the repository facade
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate persists a new exchange rate. One rate per (currency, date):
// rates are point-in-time and never change retroactively.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (exchange_rate_id, currency_code, rate, rate_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		rate.ExchangeRateID, rate.CurrencyCode, rate.Rate, rate.RateDate, rate.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: rate for %s on %s already exists",
				apperrors.ErrDuplicate, rate.CurrencyCode, rate.RateDate.Format("2006-01-02"))
		}
		return fmt.Errorf("error inserting exchange rate: %w", err)
	}
	return nil
}

// FindRate retrieves the rate for a currency effective exactly on a date.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, currencyCode string, on time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, currency_code, rate, rate_date, created_at
		FROM exchange_rates
		WHERE currency_code = $1 AND rate_date = $2
	`
	return r.queryRate(ctx, query, currencyCode, on)
}

// FindLatestRateBefore retrieves the most recent rate for a currency dated
// strictly before the given date.
func (r *PgxExchangeRateRepository) FindLatestRateBefore(ctx context.Context, currencyCode string, before time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, currency_code, rate, rate_date, created_at
		FROM exchange_rates
		WHERE currency_code = $1 AND rate_date < $2
		ORDER BY rate_date DESC
		LIMIT 1
	`
	return r.queryRate(ctx, query, currencyCode, before)
}

func (r *PgxExchangeRateRepository) queryRate(ctx context.Context, query, currencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	rate := &domain.ExchangeRate{}
	err := r.db.QueryRow(ctx, query, currencyCode, date).Scan(
		&rate.ExchangeRateID, &rate.CurrencyCode, &rate.Rate, &rate.RateDate, &rate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	return rate, nil
}
