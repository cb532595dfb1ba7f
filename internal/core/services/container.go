package services

import (
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
)

// NewContainer creates a new service container with properly initialized dependencies.
// Volume caches belong to the container, so build one per run.
func NewContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.RateResolver = NewRateResolver(repos.RateRepo)
	container.MonthlyVolume = NewMonthlyVolumeService(repos.TransactionRepo, container.RateResolver)
	container.TierResolver = NewTierResolver(
		container.MonthlyVolume,
		WithClientReader(repos.ClientRepo),
	)
	container.FeeCalculator = NewFeeCalculator(
		container.RateResolver,
		container.TierResolver,
		WithTransactionReader(repos.TransactionRepo),
	)
	container.Discrepancy = NewDiscrepancyService(repos.TransactionRepo, container.FeeCalculator, container.MonthlyVolume)
	container.Import = NewImportService(repos)

	return container
}
