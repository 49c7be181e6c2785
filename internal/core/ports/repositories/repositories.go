package repositories

// RepositoryProvider bundles the repository implementations the service layer
// needs, so wiring stays in one place at startup.
type RepositoryProvider struct {
	ExpenseRepo      ExpenseRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
}
