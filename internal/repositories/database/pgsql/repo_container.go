package pgsql

import (
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	clientRepo := newPgxClientRepository(dbPool)
	rateRepo := newPgxRateRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	maintenanceRepo := newPgxMaintenanceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ClientRepo:      clientRepo,
		RateRepo:        rateRepo,
		TransactionRepo: transactionRepo,
		Maintenance:     maintenanceRepo,
	}
}
