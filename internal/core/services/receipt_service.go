package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var (
	// amountPattern matches currency-shaped numbers like 12.50 or 1,234.56.
	amountPattern = regexp.MustCompile(`\b\d[\d,]*\.\d{2}\b`)
	// totalKeywordPattern marks lines likely to carry the receipt total.
	totalKeywordPattern = regexp.MustCompile(`(?i)total|amount|balance|due`)
	// numericLinePattern matches lines made only of digits and punctuation,
	// which are never merchant names.
	numericLinePattern = regexp.MustCompile(`^[\d\s.,:/#*$-]+$`)
	// slashDatePattern matches dates like 01/25/2023 or 1-25-23.
	slashDatePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	// isoDatePattern matches dates like 2023-01-25.
	isoDatePattern = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
)

// minMerchantLength filters out OCR noise lines too short to be a name.
const minMerchantLength = 3

// receiptService implements the ReceiptSvcFacade interface
type receiptService struct {
	BaseService
	recognizer portssvc.TextRecognizer
}

// NewReceiptService creates a new receipt service backed by the given OCR
// recognizer.
func NewReceiptService(recognizer portssvc.TextRecognizer) portssvc.ReceiptSvcFacade {
	return &receiptService{recognizer: recognizer}
}

// Ensure receiptService implements the ReceiptSvcFacade interface
var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// ParseReceipt sends the image to the OCR backend and extracts a draft from
// whatever text comes back. Recognition transport failures abort with
// ErrRecognitionFailed; unparseable text just yields an empty draft.
func (s *receiptService) ParseReceipt(ctx context.Context, image []byte, filename string) (*domain.ReceiptDraft, error) {
	text, err := s.recognizer.Recognize(ctx, image, filename)
	if err != nil {
		s.LogError(ctx, err, "OCR recognition failed", slog.String("filename", filename))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRecognitionFailed, err)
	}

	draft := s.ExtractDraft(text)
	s.LogInfo(ctx, "Receipt parsed",
		slog.Bool("merchant_found", draft.Merchant != nil),
		slog.Bool("amount_found", draft.Amount != nil),
		slog.Bool("date_found", draft.Date != nil))
	return &draft, nil
}

// ExtractDraft extracts merchant, amount and date from raw receipt text.
// Every field is best-effort: malformed input degrades to an absent field,
// never an error.
func (s *receiptService) ExtractDraft(rawText string) domain.ReceiptDraft {
	return domain.ReceiptDraft{
		Merchant: extractMerchant(rawText),
		Amount:   extractAmount(rawText),
		Date:     extractDate(rawText),
	}
}

// extractMerchant returns the first non-empty, non-numeric line of meaningful
// length. Receipts almost always open with the merchant name.
func extractMerchant(text string) *string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minMerchantLength {
			continue
		}
		if numericLinePattern.MatchString(line) {
			continue
		}
		return &line
	}
	return nil
}

// extractAmount prefers the largest currency-shaped number on a line carrying
// a total-like keyword, then falls back to the largest such number anywhere.
func extractAmount(text string) *decimal.Decimal {
	var keywordAmounts []decimal.Decimal
	for _, line := range strings.Split(text, "\n") {
		if !totalKeywordPattern.MatchString(line) {
			continue
		}
		keywordAmounts = append(keywordAmounts, amountsIn(line)...)
	}
	if best := largest(keywordAmounts); best != nil {
		return best
	}
	return largest(amountsIn(text))
}

func amountsIn(text string) []decimal.Decimal {
	var amounts []decimal.Decimal
	for _, match := range amountPattern.FindAllString(text, -1) {
		amount, err := decimal.NewFromString(strings.ReplaceAll(match, ",", ""))
		if err != nil || amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		amounts = append(amounts, amount)
	}
	return amounts
}

func largest(amounts []decimal.Decimal) *decimal.Decimal {
	if len(amounts) == 0 {
		return nil
	}
	best := amounts[0]
	for _, amount := range amounts[1:] {
		if amount.GreaterThan(best) {
			best = amount
		}
	}
	return &best
}

// extractDate returns the first token matching a recognized date pattern,
// normalized to a UTC calendar date.
func extractDate(text string) *time.Time {
	if match := isoDatePattern.FindString(text); match != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", match, time.UTC); err == nil {
			return &parsed
		}
	}

	match := slashDatePattern.FindString(text)
	if match == "" {
		return nil
	}
	normalized := strings.ReplaceAll(match, "-", "/")
	for _, layout := range []string{"01/02/2006", "01/02/06", "1/2/2006", "1/2/06"} {
		if parsed, err := time.ParseInLocation(layout, normalized, time.UTC); err == nil {
			return &parsed
		}
	}
	return nil
}
