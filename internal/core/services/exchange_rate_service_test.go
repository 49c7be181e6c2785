package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/core/services"
	"github.com/expenso-app/expenso_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, currencyCode string, on time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, on)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestRateBefore(ctx context.Context, currencyCode string, before time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, "USD")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		Currency: "EUR",
		Rate:     decimal.NewFromFloat(1.08),
		Date:     "2024-03-15",
	}

	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal("EUR", rate.CurrencyCode)
	suite.True(req.Rate.Equal(rate.Rate))
	suite.Equal("2024-03-15", rate.RateDate.Format("2006-01-02"))

	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		Currency: "EUR",
		Rate:     decimal.Zero,
		Date:     "2024-03-15",
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "must be positive")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_BaseCurrencyRejected() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		Currency: "USD",
		Rate:     decimal.NewFromInt(1),
		Date:     "2024-03-15",
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_DuplicatePassthrough() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		Currency: "EUR",
		Rate:     decimal.NewFromFloat(1.08),
		Date:     "2024-03-15",
	}

	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(apperrors.ErrDuplicate).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_ExactDate() {
	ctx := context.Background()
	on := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	stored := &domain.ExchangeRate{ExchangeRateID: "r1", CurrencyCode: "EUR", Rate: decimal.NewFromFloat(1.08), RateDate: on}

	suite.mockRateRepo.On("FindRate", ctx, "EUR", on).Return(stored, nil).Once()

	rate, err := suite.service.GetRate(ctx, "EUR", on)

	suite.Require().NoError(err)
	suite.Equal(stored, rate)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestRateBefore")
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_FallsBackToPriorDate() {
	ctx := context.Background()
	on := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	prior := &domain.ExchangeRate{
		ExchangeRateID: "r1",
		CurrencyCode:   "EUR",
		Rate:           decimal.NewFromFloat(1.07),
		RateDate:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRateRepo.On("FindRate", ctx, "EUR", on).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestRateBefore", ctx, "EUR", on).Return(prior, nil).Once()

	rate, err := suite.service.GetRate(ctx, "EUR", on)

	suite.Require().NoError(err)
	suite.Equal(prior, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_NotFound() {
	ctx := context.Background()
	on := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.mockRateRepo.On("FindRate", ctx, "XXX", on).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestRateBefore", ctx, "XXX", on).Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.GetRate(ctx, "XXX", on)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
