package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/dto"
	"github.com/expenso-app/expenso_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analyticsHandler handles HTTP requests for the aggregated dashboard data.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

// newAnalyticsHandler creates a new analyticsHandler.
func newAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{
		analyticsService: as,
	}
}

// registerAnalyticsRoutes registers routes related to analytics.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)

	rg.GET("/analytics", h.getAnalytics)
}

// getAnalytics godoc
// @Summary Get expense analytics
// @Description Aggregates all expenses into base-currency totals by category, merchant and month. Expenses lacking an exchange rate are skipped and reported, not failed.
// @Tags analytics
// @Produce  json
// @Success 200 {object} dto.AnalyticsResponse
// @Failure 500 {object} map[string]string "Failed to compute analytics"
// @Failure 503 {object} map[string]string "Expense storage unavailable"
// @Router /analytics [get]
func (h *analyticsHandler) getAnalytics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to compute analytics")

	report, err := h.analyticsService.Aggregate(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrStorageUnavailable) {
			logger.Error("Expense storage unavailable for analytics", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Expense storage is unavailable"})
		} else {
			logger.Error("Failed to compute analytics", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		}
		return
	}

	logger.Info("Analytics computed successfully",
		slog.Int("categories", len(report.ByCategory)),
		slog.Int("merchants", len(report.ByMerchant)),
		slog.Int("months", len(report.OverTime)),
		slog.Int("skipped", report.Skipped.Count),
	)
	c.JSON(http.StatusOK, dto.ToAnalyticsResponse(report))
}
