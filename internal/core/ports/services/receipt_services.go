package services

import (
	"context"

	"github.com/expenso-app/expenso_backend/internal/core/domain"
)

// TextRecognizer is the boundary to the external OCR backend. It returns the
// raw recognized text for an uploaded receipt image.
type TextRecognizer interface {
	Recognize(ctx context.Context, image []byte, filename string) (string, error)
}

// ReceiptSvcFacade defines operations for OCR-assisted expense entry.
type ReceiptSvcFacade interface {
	// ParseReceipt runs recognition on an image and extracts a draft from the
	// recognized text. Only recognition transport failures produce an error;
	// unparseable text yields a draft with absent fields.
	ParseReceipt(ctx context.Context, image []byte, filename string) (*domain.ReceiptDraft, error)

	// ExtractDraft extracts a best-effort draft from raw receipt text. It is
	// pure, idempotent and never fails; absence of a field is the only failure
	// signal.
	ExtractDraft(rawText string) domain.ReceiptDraft
}
