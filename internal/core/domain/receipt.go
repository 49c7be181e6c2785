package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptDraft is a best-effort partial expense extracted from receipt OCR
// text. Each field is independently present or absent; an absent field is the
// only failure signal extraction produces. A draft only ever pre-fills a
// submission form and is discarded after the merge.
type ReceiptDraft struct {
	Merchant *string          `json:"merchant,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Date     *time.Time       `json:"date,omitempty"`
}

// Empty reports whether no field could be extracted.
func (d ReceiptDraft) Empty() bool {
	return d.Merchant == nil && d.Amount == nil && d.Date == nil
}
