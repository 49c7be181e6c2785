package dto

import (
	"github.com/expenso-app/expenso_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BucketResponse is one (label, total) aggregation pair.
type BucketResponse struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyBucketResponse is one month's total, labelled YYYY-MM.
type MonthlyBucketResponse struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// SkippedResponse reports expenses excluded for lack of an exchange rate.
type SkippedResponse struct {
	Count      int      `json:"count"`
	ExpenseIDs []string `json:"expense_ids"`
}

// AnalyticsResponse is the full analytics payload consumed by the dashboard
// charts. Key names follow the frontend's observed usage.
type AnalyticsResponse struct {
	BaseCurrency string                  `json:"base_currency"`
	ByCategory   []BucketResponse        `json:"by_category"`
	ByMerchant   []BucketResponse        `json:"by_merchant"`
	OverTime     []MonthlyBucketResponse `json:"over_time"`
	Skipped      SkippedResponse         `json:"skipped"`
}

// ToAnalyticsResponse converts a domain analytics report to a DTO response
func ToAnalyticsResponse(report *domain.AnalyticsReport) AnalyticsResponse {
	response := AnalyticsResponse{
		BaseCurrency: report.BaseCurrency,
		ByCategory:   make([]BucketResponse, len(report.ByCategory)),
		ByMerchant:   make([]BucketResponse, len(report.ByMerchant)),
		OverTime:     make([]MonthlyBucketResponse, len(report.OverTime)),
		Skipped: SkippedResponse{
			Count:      report.Skipped.Count,
			ExpenseIDs: report.Skipped.ExpenseIDs,
		},
	}
	if response.Skipped.ExpenseIDs == nil {
		response.Skipped.ExpenseIDs = []string{}
	}

	for i, bucket := range report.ByCategory {
		response.ByCategory[i] = BucketResponse{Name: bucket.Name, Total: bucket.Total}
	}
	for i, bucket := range report.ByMerchant {
		response.ByMerchant[i] = BucketResponse{Name: bucket.Name, Total: bucket.Total}
	}
	for i, bucket := range report.OverTime {
		response.OverTime[i] = MonthlyBucketResponse{
			Date:  bucket.Period.Format("2006-01"),
			Total: bucket.Total,
		}
	}

	return response
}
