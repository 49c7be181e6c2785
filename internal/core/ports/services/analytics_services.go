package services

import (
	"context"

	"github.com/expenso-app/expenso_backend/internal/core/domain"
)

// AnalyticsSvcFacade defines the aggregation operation behind GET /analytics.
type AnalyticsSvcFacade interface {
	// Aggregate normalizes every stored expense to the base currency and sums
	// them by category, merchant (top 20) and calendar month. Expenses whose
	// currency cannot be resolved are excluded and reported in Skipped rather
	// than failing the request.
	Aggregate(ctx context.Context) (*domain.AnalyticsReport, error)
}
