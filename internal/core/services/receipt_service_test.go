package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TextRecognizer ---
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) Recognize(ctx context.Context, image []byte, filename string) (string, error) {
	args := m.Called(ctx, image, filename)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type ReceiptServiceTestSuite struct {
	suite.Suite
	mockRecognizer *MockTextRecognizer
	service        portssvc.ReceiptSvcFacade
}

func (suite *ReceiptServiceTestSuite) SetupTest() {
	suite.mockRecognizer = new(MockTextRecognizer)
	suite.service = services.NewReceiptService(suite.mockRecognizer)
}

func (suite *ReceiptServiceTestSuite) TestParseReceipt_Success() {
	ctx := context.Background()
	image := []byte{0xFF, 0xD8}
	text := "TRADER JOE'S\n123 Main St\nMilk 3.49\nBread 2.99\nTOTAL 6.48\n2024-03-15"

	suite.mockRecognizer.On("Recognize", ctx, image, "receipt.jpg").Return(text, nil).Once()

	draft, err := suite.service.ParseReceipt(ctx, image, "receipt.jpg")

	suite.Require().NoError(err)
	suite.Require().NotNil(draft)
	suite.Require().NotNil(draft.Merchant)
	suite.Equal("TRADER JOE'S", *draft.Merchant)
	suite.Require().NotNil(draft.Amount)
	suite.True(draft.Amount.Equal(decimal.RequireFromString("6.48")))
	suite.Require().NotNil(draft.Date)
	suite.Equal("2024-03-15", draft.Date.Format("2006-01-02"))

	suite.mockRecognizer.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestParseReceipt_RecognitionFailure() {
	ctx := context.Background()
	image := []byte{0xFF, 0xD8}

	suite.mockRecognizer.On("Recognize", ctx, image, "receipt.jpg").Return("", errors.New("upstream timeout")).Once()

	draft, err := suite.service.ParseReceipt(ctx, image, "receipt.jpg")

	suite.Require().Error(err)
	suite.Nil(draft)
	suite.ErrorIs(err, apperrors.ErrRecognitionFailed)
	suite.mockRecognizer.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestExtractDraft_PrefersKeywordLineAmount() {
	// The line items are larger than the keyword-line amount, but the keyword
	// line wins.
	text := "CORNER DELI\nFancy Ham 99.99\nSubtotal 12.00\nTotal due 13.08"

	draft := suite.service.ExtractDraft(text)

	suite.Require().NotNil(draft.Amount)
	suite.True(draft.Amount.Equal(decimal.RequireFromString("13.08")), "amount is %s", draft.Amount)
}

func (suite *ReceiptServiceTestSuite) TestExtractDraft_FallsBackToLargestAmount() {
	text := "CORNER DELI\nItem 4.25\nItem 18.75\nItem 2.10"

	draft := suite.service.ExtractDraft(text)

	suite.Require().NotNil(draft.Amount)
	suite.True(draft.Amount.Equal(decimal.RequireFromString("18.75")))
}

func (suite *ReceiptServiceTestSuite) TestExtractDraft_AmountWithThousandsSeparator() {
	text := "ELECTRONICS STORE\nTOTAL 1,299.99"

	draft := suite.service.ExtractDraft(text)

	suite.Require().NotNil(draft.Amount)
	suite.True(draft.Amount.Equal(decimal.RequireFromString("1299.99")))
}

func (suite *ReceiptServiceTestSuite) TestExtractDraft_MerchantSkipsNumericAndShortLines() {
	text := "\n#1\n01/02/2024 10:31\nGREEN GROCER\nTotal 9.99"

	draft := suite.service.ExtractDraft(text)

	suite.Require().NotNil(draft.Merchant)
	suite.Equal("GREEN GROCER", *draft.Merchant)
}

func (suite *ReceiptServiceTestSuite) TestExtractDraft_SlashDate() {
	text := "GREEN GROCER\n03/15/2024\nTotal 9.99"

	draft := suite.service.ExtractDraft(text)

	suite.Require().NotNil(draft.Date)
	suite.Equal("2024-03-15", draft.Date.Format("2006-01-02"))
}

func (suite *ReceiptServiceTestSuite) TestExtractDraft_IsoDatePreferred() {
	text := "GREEN GROCER\nPrinted 2024-03-15 at 03/99/20\nTotal 9.99"

	draft := suite.service.ExtractDraft(text)

	suite.Require().NotNil(draft.Date)
	suite.Equal("2024-03-15", draft.Date.Format("2006-01-02"))
}

func (suite *ReceiptServiceTestSuite) TestExtractDraft_GarbageYieldsEmptyDraft() {
	draft := suite.service.ExtractDraft("...\n42\n--")

	suite.Nil(draft.Merchant)
	suite.Nil(draft.Amount)
	suite.Nil(draft.Date)
	suite.True(draft.Empty())
}

func (suite *ReceiptServiceTestSuite) TestExtractDraft_EmptyText() {
	draft := suite.service.ExtractDraft("")

	suite.True(draft.Empty())
}

// --- Run Suite ---
func TestReceiptService(t *testing.T) {
	suite.Run(t, new(ReceiptServiceTestSuite))
}
