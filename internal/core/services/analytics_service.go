package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portsrepo "github.com/expenso-app/expenso_backend/internal/core/ports/repositories"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// topMerchantCount bounds the by-merchant view to keep the dashboard legible.
const topMerchantCount = 20

// analyticsService implements the AnalyticsSvcFacade interface
type analyticsService struct {
	BaseService
	expenseRepo    portsrepo.ExpenseReader
	rateRepo       portsrepo.ExchangeRateReader
	baseCurrency   string
	storageTimeout time.Duration
	rateTimeout    time.Duration
	workers        int
}

// AnalyticsServiceOption is a functional option for configuring the analytics service
type AnalyticsServiceOption func(*analyticsService)

// WithStorageTimeout bounds the expense listing call.
func WithStorageTimeout(d time.Duration) AnalyticsServiceOption {
	return func(s *analyticsService) {
		s.storageTimeout = d
	}
}

// WithRateLookupTimeout bounds each individual rate lookup.
func WithRateLookupTimeout(d time.Duration) AnalyticsServiceOption {
	return func(s *analyticsService) {
		s.rateTimeout = d
	}
}

// WithNormalizeWorkers sets the size of the normalization worker pool.
func WithNormalizeWorkers(n int) AnalyticsServiceOption {
	return func(s *analyticsService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewAnalyticsService creates a new analytics service with the provided options
func NewAnalyticsService(expenseRepo portsrepo.ExpenseReader, rateRepo portsrepo.ExchangeRateReader, baseCurrency string, options ...AnalyticsServiceOption) portssvc.AnalyticsSvcFacade {
	svc := &analyticsService{
		expenseRepo:  expenseRepo,
		rateRepo:     rateRepo,
		baseCurrency: baseCurrency,
		workers:      8,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure analyticsService implements the AnalyticsSvcFacade interface
var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

// normalizeResult is one slot of the index-stable normalization output.
type normalizeResult struct {
	normalized domain.NormalizedExpense
	skippedID  string
}

// Aggregate loads every stored expense, normalizes each to the base currency
// and reduces the results into the three aggregate views. Expenses without a
// resolvable rate are excluded and counted in Skipped; storage failures abort
// the whole request with ErrStorageUnavailable.
func (s *analyticsService) Aggregate(ctx context.Context) (*domain.AnalyticsReport, error) {
	expenses, err := s.listExpenses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for analytics")
		return nil, err
	}

	results, err := s.normalizeAll(ctx, expenses)
	if err != nil {
		return nil, err
	}

	report := s.reduce(results)

	s.LogInfo(ctx, "Analytics report generated",
		slog.String("base_currency", s.baseCurrency),
		slog.Int("expense_count", len(expenses)),
		slog.Int("skipped_count", report.Skipped.Count))
	return report, nil
}

func (s *analyticsService) listExpenses(ctx context.Context) ([]domain.Expense, error) {
	listCtx := ctx
	if s.storageTimeout > 0 {
		var cancel context.CancelFunc
		listCtx, cancel = context.WithTimeout(ctx, s.storageTimeout)
		defer cancel()
	}

	expenses, err := s.expenseRepo.ListAllExpenses(listCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return expenses, nil
}

// normalizeAll fans the batch out across a bounded worker pool, writing each
// result into its input index so the outcome is independent of scheduling.
// Rate failures land in the result slot instead of failing the group.
func (s *analyticsService) normalizeAll(ctx context.Context, expenses []domain.Expense) ([]normalizeResult, error) {
	resolver := NewRateResolver(s.rateRepo, s.baseCurrency, s.rateTimeout)
	normalizer := NewNormalizer(resolver, s.baseCurrency)

	results := make([]normalizeResult, len(expenses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range expenses {
		g.Go(func() error {
			normalized, err := normalizer.Normalize(gctx, expenses[i])
			if err != nil {
				if errors.Is(err, apperrors.ErrRateUnavailable) {
					s.LogWarn(gctx, "Excluding expense with unresolvable rate",
						slog.String("expense_id", expenses[i].ExpenseID),
						slog.String("currency", expenses[i].CurrencyCode))
					results[i] = normalizeResult{skippedID: expenses[i].ExpenseID}
					return nil
				}
				return err
			}
			results[i] = normalizeResult{normalized: normalized}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reduce performs the sequential summation step. Results are visited in
// expense-ID order, a canonical order independent of input sequence, so the
// report is bit-for-bit reproducible for a fixed expense set and rate table.
func (s *analyticsService) reduce(results []normalizeResult) *domain.AnalyticsReport {
	ordered := make([]normalizeResult, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool {
		return canonicalKey(ordered[i]) < canonicalKey(ordered[j])
	})

	categoryTotals := make(map[string]decimal.Decimal)
	var categoryOrder []string

	merchantTotals := make(map[string]decimal.Decimal)
	var merchantOrder []string

	monthTotals := make(map[time.Time]decimal.Decimal)
	var monthOrder []time.Time

	skipped := domain.SkippedExpenses{ExpenseIDs: []string{}}

	for _, result := range ordered {
		if result.skippedID != "" {
			skipped.Count++
			skipped.ExpenseIDs = append(skipped.ExpenseIDs, result.skippedID)
			continue
		}
		expense := result.normalized

		if _, seen := categoryTotals[expense.Category]; !seen {
			categoryOrder = append(categoryOrder, expense.Category)
		}
		categoryTotals[expense.Category] = categoryTotals[expense.Category].Add(expense.BaseAmount)

		if _, seen := merchantTotals[expense.Merchant]; !seen {
			merchantOrder = append(merchantOrder, expense.Merchant)
		}
		merchantTotals[expense.Merchant] = merchantTotals[expense.Merchant].Add(expense.BaseAmount)

		month := monthOf(expense.Date)
		if _, seen := monthTotals[month]; !seen {
			monthOrder = append(monthOrder, month)
		}
		monthTotals[month] = monthTotals[month].Add(expense.BaseAmount)
	}

	report := &domain.AnalyticsReport{
		BaseCurrency: s.baseCurrency,
		ByCategory:   make([]domain.CategoryTotal, 0, len(categoryOrder)),
		ByMerchant:   make([]domain.MerchantTotal, 0, len(merchantOrder)),
		OverTime:     make([]domain.MonthlyTotal, 0, len(monthOrder)),
		Skipped:      skipped,
	}

	for _, name := range categoryOrder {
		report.ByCategory = append(report.ByCategory, domain.CategoryTotal{Name: name, Total: categoryTotals[name]})
	}

	// Merchants: descending by total, stable so ties keep first-seen order,
	// truncated to the top entries.
	for _, name := range merchantOrder {
		report.ByMerchant = append(report.ByMerchant, domain.MerchantTotal{Name: name, Total: merchantTotals[name]})
	}
	sort.SliceStable(report.ByMerchant, func(i, j int) bool {
		return report.ByMerchant[i].Total.GreaterThan(report.ByMerchant[j].Total)
	})
	if len(report.ByMerchant) > topMerchantCount {
		report.ByMerchant = report.ByMerchant[:topMerchantCount]
	}

	// Months: chronological; months absent from the input do not appear.
	sort.Slice(monthOrder, func(i, j int) bool { return monthOrder[i].Before(monthOrder[j]) })
	for _, month := range monthOrder {
		report.OverTime = append(report.OverTime, domain.MonthlyTotal{Period: month, Total: monthTotals[month]})
	}

	return report
}

func canonicalKey(r normalizeResult) string {
	if r.skippedID != "" {
		return r.skippedID
	}
	return r.normalized.ExpenseID
}

// monthOf truncates a date to the first of its month, UTC midnight.
func monthOf(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
