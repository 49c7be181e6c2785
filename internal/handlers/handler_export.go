package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportHandler handles CSV export requests.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

// newExportHandler creates a new exportHandler.
func newExportHandler(es portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{
		exportService: es,
	}
}

// registerExportRoutes registers routes related to data export.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)

	export := rg.Group("/export")
	{
		export.GET("/csv", h.exportCSV)
	}
}

// exportCSV godoc
// @Summary Export expenses as CSV
// @Description Streams every stored expense as CSV in its original recorded currency, one row per expense.
// @Tags export
// @Produce  text/csv
// @Success 200 {string} string "CSV payload"
// @Failure 500 {object} map[string]string "Failed to export expenses"
// @Router /export/csv [get]
func (h *exportHandler) exportCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to export expenses as CSV")

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="expenses.csv"`)

	if err := h.exportService.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers may already be written; the broken CSV body signals failure.
		logger.Error("Failed to export expenses as CSV", slog.String("error", err.Error()))
		c.Status(http.StatusInternalServerError)
		return
	}

	logger.Info("Expenses exported successfully")
}
