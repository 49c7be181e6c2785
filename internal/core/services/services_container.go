package services

import (
	portsrepo "github.com/expenso-app/expenso_backend/internal/core/ports/repositories"
	portssvc "github.com/expenso-app/expenso_backend/internal/core/ports/services"
	"github.com/expenso-app/expenso_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, recognizer portssvc.TextRecognizer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Expense = NewExpenseService(repos.ExpenseRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, cfg.BaseCurrency)
	container.Analytics = NewAnalyticsService(
		repos.ExpenseRepo,
		repos.ExchangeRateRepo,
		cfg.BaseCurrency,
		WithStorageTimeout(cfg.StorageTimeout),
		WithRateLookupTimeout(cfg.RateLookupTimeout),
		WithNormalizeWorkers(cfg.NormalizeWorkers),
	)
	container.Receipt = NewReceiptService(recognizer)
	container.Export = NewExportService(repos.ExpenseRepo)

	return container
}
