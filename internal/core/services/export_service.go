package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	portsrepo "github.com/expenso-app/expenso_backend/internal/core/ports/repositories"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
)

// csvHeader lists the exported columns. Export carries the raw recorded
// values: no currency normalization is applied.
var csvHeader = []string{"id", "merchant", "amount", "currency", "category", "date"}

// exportService implements the ExportSvcFacade interface
type exportService struct {
	BaseService
	expenseRepo portsrepo.ExpenseReader
}

// NewExportService creates a new export service.
func NewExportService(expenseRepo portsrepo.ExpenseReader) portssvc.ExportSvcFacade {
	return &exportService{expenseRepo: expenseRepo}
}

// Ensure exportService implements the ExportSvcFacade interface
var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// ExportCSV writes all stored expenses to w as CSV. encoding/csv quotes fields
// containing delimiters or quotes per RFC 4180.
func (s *exportService) ExportCSV(ctx context.Context, w io.Writer) error {
	expenses, err := s.expenseRepo.ListAllExpenses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for export")
		return fmt.Errorf("failed to list expenses for export: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, expense := range expenses {
		row := []string{
			expense.ExpenseID,
			expense.Merchant,
			expense.Amount.StringFixed(2),
			expense.CurrencyCode,
			expense.Category,
			expense.Date.Format("2006-01-02"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}

	s.LogInfo(ctx, "Expenses exported to CSV", slog.Int("row_count", len(expenses)))
	return nil
}
