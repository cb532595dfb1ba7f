package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	"github.com/SscSPs/fx_fee_engine/internal/models"
	"github.com/SscSPs/fx_fee_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxClientRepository implements the ClientRepositoryFacade interface using pgxpool.
type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new PgxClientRepository.
func newPgxClientRepository(db *pgxpool.Pool) *PgxClientRepository {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// FindClientByExternalID retrieves a client by its external id.
func (r *PgxClientRepository) FindClientByExternalID(ctx context.Context, externalID string) (*domain.Client, error) {
	query := `
		SELECT id, client_id, name, registered_at, tier_locked, tier_locked_value
		FROM clients
		WHERE client_id = $1;
	`

	var m models.Client
	err := r.Pool.QueryRow(ctx, query, externalID).Scan(
		&m.ID, &m.ClientID, &m.Name, &m.RegisteredAt, &m.TierLocked, &m.TierLockedValue,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("client " + externalID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find client", err)
	}

	client := mapping.ToDomainClient(m)
	return &client, nil
}

// UpsertClient inserts a client or replaces the row with the same external id.
func (r *PgxClientRepository) UpsertClient(ctx context.Context, client domain.Client) (*domain.Client, bool, error) {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (client_id, name, registered_at, tier_locked, tier_locked_value)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (client_id) DO UPDATE SET
			name = EXCLUDED.name,
			registered_at = EXCLUDED.registered_at,
			tier_locked = EXCLUDED.tier_locked,
			tier_locked_value = EXCLUDED.tier_locked_value
		RETURNING id, (xmax = 0) AS inserted;
	`

	var inserted bool
	err := r.Pool.QueryRow(ctx, query,
		m.ClientID, m.Name, m.RegisteredAt, m.TierLocked, m.TierLockedValue,
	).Scan(&m.ID, &inserted)
	if err != nil {
		return nil, false, apperrors.NewAppError(500, "failed to upsert client", err)
	}

	stored := mapping.ToDomainClient(m)
	return &stored, inserted, nil
}
