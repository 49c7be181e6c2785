package dto

import (
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiptDraftResponse is the parsed draft returned by the OCR endpoint.
// Every field is optional; the form keeps its previous value for any field
// that is absent.
type ReceiptDraftResponse struct {
	Merchant *string          `json:"merchant,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Date     *string          `json:"date,omitempty"`
}

// ToReceiptDraftResponse converts a domain.ReceiptDraft to ReceiptDraftResponse DTO
func ToReceiptDraftResponse(draft *domain.ReceiptDraft) ReceiptDraftResponse {
	response := ReceiptDraftResponse{
		Merchant: draft.Merchant,
		Amount:   draft.Amount,
	}
	if draft.Date != nil {
		formatted := draft.Date.Format("2006-01-02")
		response.Date = &formatted
	}
	return response
}
