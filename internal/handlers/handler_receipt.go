package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/expenso-app/expenso_backend/internal/apperrors"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/dto"
	"github.com/expenso-app/expenso_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxReceiptImageBytes caps uploaded receipt images at 10 MiB.
const maxReceiptImageBytes = 10 << 20

// receiptHandler handles OCR-assisted expense entry requests.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

// newReceiptHandler creates a new receiptHandler.
func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{
		receiptService: rs,
	}
}

// registerReceiptRoutes registers routes related to receipt OCR.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(receiptService)

	ocr := rg.Group("/ocr")
	{
		ocr.POST("/receipt", h.parseReceipt)
	}
}

// parseReceipt godoc
// @Summary Parse a receipt image
// @Description Runs OCR on an uploaded receipt image and extracts a best-effort expense draft (merchant, amount, date). Fields that cannot be extracted are absent, never guessed.
// @Tags receipts
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Receipt image"
// @Success 200 {object} dto.ReceiptDraftResponse
// @Failure 400 {object} map[string]string "Missing or unreadable image file"
// @Failure 502 {object} map[string]string "Text recognition backend failed"
// @Router /ocr/receipt [post]
func (h *receiptHandler) parseReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing receipt image in request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt image file is required"})
		return
	}
	if fileHeader.Size > maxReceiptImageBytes {
		logger.Warn("Receipt image too large", slog.Int64("size", fileHeader.Size))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt image exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Warn("Failed to open uploaded receipt image", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read receipt image"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		logger.Warn("Failed to read uploaded receipt image", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read receipt image"})
		return
	}

	logger.Info("Received receipt for parsing",
		slog.String("filename", fileHeader.Filename),
		slog.Int64("size", fileHeader.Size),
	)

	draft, err := h.receiptService.ParseReceipt(c.Request.Context(), image, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecognitionFailed) {
			logger.Error("Text recognition failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Text recognition failed"})
		} else {
			logger.Error("Failed to parse receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse receipt"})
		}
		return
	}

	logger.Info("Receipt parsed",
		slog.Bool("has_merchant", draft.Merchant != nil),
		slog.Bool("has_amount", draft.Amount != nil),
		slog.Bool("has_date", draft.Date != nil),
	)
	c.JSON(http.StatusOK, dto.ToReceiptDraftResponse(draft))
}
