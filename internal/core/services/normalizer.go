package services

import (
	"context"

	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
)

// Normalizer converts stored expenses into their base-currency equivalent.
// It is a pure computation: its only side effect is through the resolver's
// cache reads and fills.
type Normalizer struct {
	resolver     portssvc.RateResolver
	baseCurrency string
}

// NewNormalizer creates a Normalizer bound to one resolver and base currency.
func NewNormalizer(resolver portssvc.RateResolver, baseCurrency string) *Normalizer {
	return &Normalizer{
		resolver:     resolver,
		baseCurrency: baseCurrency,
	}
}

// Normalize computes the base-currency amount for one expense, rounded
// half-to-even to the base currency's minor units so aggregate sums stay
// stable under reordering. A failure wrapping apperrors.ErrRateUnavailable is
// per-expense and must not abort the rest of the batch.
func (n *Normalizer) Normalize(ctx context.Context, expense domain.Expense) (domain.NormalizedExpense, error) {
	// Base-currency expenses pass through untouched: baseAmount == amount
	// exactly, with no lookup and no rounding.
	if expense.CurrencyCode == n.baseCurrency {
		return domain.NormalizedExpense{
			Expense:      expense,
			BaseCurrency: n.baseCurrency,
			BaseAmount:   expense.Amount,
		}, nil
	}

	rate, err := n.resolver.RateFor(ctx, expense.CurrencyCode, expense.Date)
	if err != nil {
		return domain.NormalizedExpense{}, err
	}

	baseAmount := expense.Amount.Mul(rate).RoundBank(domain.MinorUnits(n.baseCurrency))
	return domain.NormalizedExpense{
		Expense:      expense,
		BaseCurrency: n.baseCurrency,
		BaseAmount:   baseAmount,
	}, nil
}
