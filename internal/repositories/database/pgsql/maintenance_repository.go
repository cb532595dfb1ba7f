package pgsql

import (
	"context"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxMaintenanceRepository implements store-wide operations.
type PgxMaintenanceRepository struct {
	BaseRepository
}

func newPgxMaintenanceRepository(db *pgxpool.Pool) *PgxMaintenanceRepository {
	return &PgxMaintenanceRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.Truncater = (*PgxMaintenanceRepository)(nil)

// TruncateAll empties transactions, rates and clients and restarts their id sequences.
func (r *PgxMaintenanceRepository) TruncateAll(ctx context.Context) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE TABLE transactions, rates, clients RESTART IDENTITY CASCADE`); err != nil {
		return apperrors.NewAppError(500, "failed to truncate tables", err)
	}
	return r.Commit(ctx, tx)
}
