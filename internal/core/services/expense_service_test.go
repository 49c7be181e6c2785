package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/core/services"
	"github.com/expenso-app/expenso_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListAllExpenses(ctx context.Context) ([]domain.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

// --- Test Suite ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	service         portssvc.ExpenseSvcFacade
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo)
}

func validCreateExpenseRequest() dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		Merchant: "Blue Bottle Coffee",
		Amount:   decimal.NewFromFloat(12.50),
		Currency: "USD",
		Category: "Food",
		Date:     "2024-03-15",
	}
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := validCreateExpenseRequest()

	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.NotEmpty(expense.ExpenseID)
	suite.Equal(req.Merchant, expense.Merchant)
	suite.True(req.Amount.Equal(expense.Amount))
	suite.Equal(req.Currency, expense.CurrencyCode)
	suite.Equal(req.Category, expense.Category)
	suite.Equal("2024-03-15", expense.Date.Format("2006-01-02"))

	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonPositiveAmount() {
	ctx := context.Background()
	req := validCreateExpenseRequest()
	req.Amount = decimal.Zero

	expense, err := suite.service.CreateExpense(ctx, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "must be positive")
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense")
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_EmptyMerchant() {
	ctx := context.Background()
	req := validCreateExpenseRequest()
	req.Merchant = "   "

	expense, err := suite.service.CreateExpense(ctx, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense")
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_InvalidCurrencyCode() {
	ctx := context.Background()

	for _, code := range []string{"us", "usd", "USDD", "U$D"} {
		req := validCreateExpenseRequest()
		req.Currency = code

		expense, err := suite.service.CreateExpense(ctx, req)

		suite.Require().Error(err, "code %q should be rejected", code)
		suite.Nil(expense)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense")
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_InvalidDate() {
	ctx := context.Background()
	req := validCreateExpenseRequest()
	req.Date = "15/03/2024"

	expense, err := suite.service.CreateExpense(ctx, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense")
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RepoError() {
	ctx := context.Background()
	req := validCreateExpenseRequest()
	dbErr := errors.New("connection refused")

	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(dbErr).Once()

	expense, err := suite.service.CreateExpense(ctx, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, dbErr)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_NotFound() {
	ctx := context.Background()
	expenseID := "missing-id"

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(nil, apperrors.ErrNotFound).Once()

	expense, err := suite.service.GetExpenseByID(ctx, expenseID)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_Success() {
	ctx := context.Background()
	stored := []domain.Expense{
		{ExpenseID: "e1", Merchant: "A", Amount: decimal.NewFromInt(5), CurrencyCode: "USD", Category: "Food"},
		{ExpenseID: "e2", Merchant: "B", Amount: decimal.NewFromInt(7), CurrencyCode: "EUR", Category: "Travel"},
	}

	suite.mockExpenseRepo.On("ListExpenses", ctx, 10, 0).Return(stored, nil).Once()

	expenses, err := suite.service.ListExpenses(ctx, 10, 0)

	suite.Require().NoError(err)
	suite.Len(expenses, 2)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
