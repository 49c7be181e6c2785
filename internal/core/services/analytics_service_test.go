package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type AnalyticsServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockRateRepo    *MockExchangeRateRepository
	service         portssvc.AnalyticsSvcFacade
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewAnalyticsService(suite.mockExpenseRepo, suite.mockRateRepo, "USD")
}

func testExpense(id, merchant, amount, currency, category, date string) domain.Expense {
	parsedDate, _ := time.ParseInLocation("2006-01-02", date, time.UTC)
	return domain.Expense{
		ExpenseID:    id,
		Merchant:     merchant,
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: currency,
		Category:     category,
		Date:         parsedDate,
	}
}

func (suite *AnalyticsServiceTestSuite) stubRate(currency, date, rate string) {
	parsedDate, _ := time.ParseInLocation("2006-01-02", date, time.UTC)
	stored := &domain.ExchangeRate{
		CurrencyCode: currency,
		Rate:         decimal.RequireFromString(rate),
		RateDate:     parsedDate,
	}
	suite.mockRateRepo.On("FindRate", mock.Anything, currency, parsedDate).Return(stored, nil)
}

func (suite *AnalyticsServiceTestSuite) stubMissingRate(currency, date string) {
	parsedDate, _ := time.ParseInLocation("2006-01-02", date, time.UTC)
	suite.mockRateRepo.On("FindRate", mock.Anything, currency, parsedDate).Return(nil, apperrors.ErrNotFound)
	suite.mockRateRepo.On("FindLatestRateBefore", mock.Anything, currency, parsedDate).Return(nil, apperrors.ErrNotFound)
}

func findBucket(buckets []domain.CategoryTotal, name string) (decimal.Decimal, bool) {
	for _, bucket := range buckets {
		if bucket.Name == name {
			return bucket.Total, true
		}
	}
	return decimal.Decimal{}, false
}

func (suite *AnalyticsServiceTestSuite) TestAggregate_MixedCurrencies() {
	ctx := context.Background()
	expenses := []domain.Expense{
		testExpense("e1", "Starbucks", "100.00", "USD", "Food", "2024-03-05"),
		testExpense("e2", "Cafe Roma", "50.00", "EUR", "Food", "2024-03-10"),
		testExpense("e3", "Uber", "30.00", "USD", "Travel", "2024-04-01"),
	}

	suite.mockExpenseRepo.On("ListAllExpenses", mock.Anything).Return(expenses, nil).Once()
	suite.stubRate("EUR", "2024-03-10", "1.10")

	report, err := suite.service.Aggregate(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal("USD", report.BaseCurrency)

	food, ok := findBucket(report.ByCategory, "Food")
	suite.Require().True(ok)
	suite.True(food.Equal(decimal.RequireFromString("155.00")), "Food total is %s", food)

	travel, ok := findBucket(report.ByCategory, "Travel")
	suite.Require().True(ok)
	suite.True(travel.Equal(decimal.RequireFromString("30.00")))

	// Merchants descending by normalized total.
	suite.Require().Len(report.ByMerchant, 3)
	suite.Equal("Starbucks", report.ByMerchant[0].Name)
	suite.Equal("Cafe Roma", report.ByMerchant[1].Name)
	suite.Equal("Uber", report.ByMerchant[2].Name)

	// Months chronological; April appears even though March dominates.
	suite.Require().Len(report.OverTime, 2)
	suite.Equal("2024-03", report.OverTime[0].Period.Format("2006-01"))
	suite.True(report.OverTime[0].Total.Equal(decimal.RequireFromString("155.00")))
	suite.Equal("2024-04", report.OverTime[1].Period.Format("2006-01"))

	suite.Zero(report.Skipped.Count)
	suite.Empty(report.Skipped.ExpenseIDs)
}

func (suite *AnalyticsServiceTestSuite) TestAggregate_SkipsExpensesWithoutRates() {
	ctx := context.Background()
	expenses := []domain.Expense{
		testExpense("e1", "Starbucks", "100.00", "USD", "Food", "2024-03-05"),
		testExpense("e2", "Harrods", "80.00", "GBP", "Shopping", "2024-03-12"),
	}

	suite.mockExpenseRepo.On("ListAllExpenses", mock.Anything).Return(expenses, nil).Once()
	suite.stubMissingRate("GBP", "2024-03-12")

	report, err := suite.service.Aggregate(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, report.Skipped.Count)
	suite.Equal([]string{"e2"}, report.Skipped.ExpenseIDs)

	// The skipped expense contributes to no aggregate view.
	_, ok := findBucket(report.ByCategory, "Shopping")
	suite.False(ok)
	suite.Len(report.ByMerchant, 1)
	suite.Equal("Starbucks", report.ByMerchant[0].Name)
}

func (suite *AnalyticsServiceTestSuite) TestAggregate_StorageFailureAborts() {
	ctx := context.Background()

	suite.mockExpenseRepo.On("ListAllExpenses", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	report, err := suite.service.Aggregate(ctx)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrStorageUnavailable)
}

func (suite *AnalyticsServiceTestSuite) TestAggregate_ResultIndependentOfInputOrder() {
	ctx := context.Background()
	expenses := []domain.Expense{
		testExpense("e1", "Starbucks", "100.00", "USD", "Food", "2024-03-05"),
		testExpense("e2", "Cafe Roma", "50.00", "EUR", "Food", "2024-03-10"),
		testExpense("e3", "Uber", "30.00", "USD", "Travel", "2024-04-01"),
		testExpense("e4", "Harrods", "80.00", "GBP", "Shopping", "2024-03-12"),
	}
	reversed := []domain.Expense{expenses[3], expenses[2], expenses[1], expenses[0]}

	suite.mockExpenseRepo.On("ListAllExpenses", mock.Anything).Return(expenses, nil).Once()
	suite.mockExpenseRepo.On("ListAllExpenses", mock.Anything).Return(reversed, nil).Once()
	suite.stubRate("EUR", "2024-03-10", "1.10")
	suite.stubMissingRate("GBP", "2024-03-12")

	first, err := suite.service.Aggregate(ctx)
	suite.Require().NoError(err)
	second, err := suite.service.Aggregate(ctx)
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *AnalyticsServiceTestSuite) TestAggregate_MerchantViewBoundedToTopTwenty() {
	ctx := context.Background()
	var expenses []domain.Expense
	for i := 1; i <= 25; i++ {
		expenses = append(expenses, testExpense(
			fmt.Sprintf("e%02d", i),
			fmt.Sprintf("Merchant %02d", i),
			fmt.Sprintf("%d.00", i),
			"USD", "Misc", "2024-03-05",
		))
	}

	suite.mockExpenseRepo.On("ListAllExpenses", mock.Anything).Return(expenses, nil).Once()

	report, err := suite.service.Aggregate(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(report.ByMerchant, 20)

	// Descending by total: the five smallest spenders fall off.
	suite.Equal("Merchant 25", report.ByMerchant[0].Name)
	suite.Equal("Merchant 06", report.ByMerchant[19].Name)
	for i := 1; i < len(report.ByMerchant); i++ {
		suite.True(report.ByMerchant[i-1].Total.GreaterThanOrEqual(report.ByMerchant[i].Total))
	}

	// The bound applies only to the merchant view; category totals still
	// cover every expense.
	misc, ok := findBucket(report.ByCategory, "Misc")
	suite.Require().True(ok)
	suite.True(misc.Equal(decimal.RequireFromString("325.00")))
}

func (suite *AnalyticsServiceTestSuite) TestAggregate_CategoryAndMonthlySumsAgree() {
	ctx := context.Background()
	expenses := []domain.Expense{
		testExpense("e1", "Starbucks", "10.00", "USD", "Food", "2024-01-15"),
		testExpense("e2", "Cafe Roma", "33.33", "EUR", "Food", "2024-02-20"),
		testExpense("e3", "Uber", "7.25", "USD", "Travel", "2024-02-25"),
		testExpense("e4", "Delta", "412.00", "EUR", "Travel", "2024-05-01"),
	}

	suite.mockExpenseRepo.On("ListAllExpenses", mock.Anything).Return(expenses, nil).Once()
	suite.stubRate("EUR", "2024-02-20", "1.0850")
	suite.stubRate("EUR", "2024-05-01", "1.0731")

	report, err := suite.service.Aggregate(ctx)

	suite.Require().NoError(err)

	categorySum := decimal.Zero
	for _, bucket := range report.ByCategory {
		categorySum = categorySum.Add(bucket.Total)
	}
	monthlySum := decimal.Zero
	for _, bucket := range report.OverTime {
		monthlySum = monthlySum.Add(bucket.Total)
	}

	suite.True(categorySum.Equal(monthlySum), "category sum %s != monthly sum %s", categorySum, monthlySum)
}

func (suite *AnalyticsServiceTestSuite) TestAggregate_EmptyExpenseSet() {
	ctx := context.Background()

	suite.mockExpenseRepo.On("ListAllExpenses", mock.Anything).Return([]domain.Expense{}, nil).Once()

	report, err := suite.service.Aggregate(ctx)

	suite.Require().NoError(err)
	suite.Empty(report.ByCategory)
	suite.Empty(report.ByMerchant)
	suite.Empty(report.OverTime)
	suite.Zero(report.Skipped.Count)
}

// --- Run Suite ---
func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}
