package services

import (
	"context"
	"io"
)

// ExportSvcFacade defines the CSV export operation.
type ExportSvcFacade interface {
	// ExportCSV writes all stored expenses to w as CSV, one row per expense,
	// with the original (unconverted) recorded values.
	ExportCSV(ctx context.Context, w io.Writer) error
}
