package repositories

import "context"

// Truncater empties every table of the store.
type Truncater interface {
	TruncateAll(ctx context.Context) error
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ClientRepo      ClientRepositoryFacade
	RateRepo        RateRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	Maintenance     Truncater
}
