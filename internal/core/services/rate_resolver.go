package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	portsrepo "github.com/expenso-app/expenso_backend/internal/core/ports/repositories"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// rateResolver resolves (currency, date) pairs to a multiplier into the base
// currency. The cache is scoped to one resolver instance, and a resolver
// instance is scoped to one aggregation request, so concurrent requests never
// share entries. Entries never expire within that lifetime: rates are
// point-in-time and immutable once resolved.
type rateResolver struct {
	rateRepo      portsrepo.ExchangeRateReader
	baseCurrency  string
	lookupTimeout time.Duration

	mu    sync.RWMutex
	cache map[string]decimal.Decimal
	group singleflight.Group
}

// NewRateResolver creates a resolver with a fresh cache. Callers should create
// one per analytics request.
func NewRateResolver(rateRepo portsrepo.ExchangeRateReader, baseCurrency string, lookupTimeout time.Duration) portssvc.RateResolver {
	return &rateResolver{
		rateRepo:      rateRepo,
		baseCurrency:  baseCurrency,
		lookupTimeout: lookupTimeout,
		cache:         make(map[string]decimal.Decimal),
	}
}

var _ portssvc.RateResolver = (*rateResolver)(nil)

// RateFor returns the conversion multiplier for a currency on a date. The
// base currency resolves to 1 without any lookup. When the exact date has no
// rate, the most recent prior rate for that currency is used; when none exists
// at all, or the lookup times out, the error wraps apperrors.ErrRateUnavailable.
func (r *rateResolver) RateFor(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error) {
	if currencyCode == r.baseCurrency {
		return decimal.NewFromInt(1), nil
	}

	key := currencyCode + "|" + date.Format("2006-01-02")

	r.mu.RLock()
	cached, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	// Coalesce concurrent lookups for the same key into a single repository
	// call; the winner populates the cache for everyone.
	result, err, _ := r.group.Do(key, func() (any, error) {
		rate, err := r.lookup(ctx, currencyCode, date)
		if err != nil {
			return decimal.Decimal{}, err
		}
		r.mu.Lock()
		r.cache[key] = rate
		r.mu.Unlock()
		return rate, nil
	})
	if err != nil {
		return decimal.Decimal{}, err
	}
	return result.(decimal.Decimal), nil
}

func (r *rateResolver) lookup(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error) {
	lookupCtx := ctx
	if r.lookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, r.lookupTimeout)
		defer cancel()
	}

	rate, err := r.rateRepo.FindRate(lookupCtx, currencyCode, date)
	if err == nil {
		return rate.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Decimal{}, rateLookupFailure(currencyCode, date, err)
	}

	// No rate for the exact date: fall back to the most recent prior date with
	// a known rate for this currency.
	rate, err = r.rateRepo.FindLatestRateBefore(lookupCtx, currencyCode, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Decimal{}, fmt.Errorf("%w: no rate for %s on or before %s", apperrors.ErrRateUnavailable, currencyCode, date.Format("2006-01-02"))
		}
		return decimal.Decimal{}, rateLookupFailure(currencyCode, date, err)
	}
	return rate.Rate, nil
}

// rateLookupFailure maps transport failures, including timeouts, to
// ErrRateUnavailable so the caller treats them as a per-expense failure.
func rateLookupFailure(currencyCode string, date time.Time, err error) error {
	return fmt.Errorf("%w: lookup failed for %s on %s: %v", apperrors.ErrRateUnavailable, currencyCode, date.Format("2006-01-02"), err)
}
