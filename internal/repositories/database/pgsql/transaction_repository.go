package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	"github.com/SscSPs/fx_fee_engine/internal/models"
	"github.com/SscSPs/fx_fee_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// joinedTransactionColumns selects a transaction and its client, if any.
const joinedTransactionColumns = `
	t.id, t.transaction_id, t.client_external_id, t.client_id, t.amount,
	t.source_currency, t.target_currency, t.created_at, t.refunded_at,
	t.original_fee, t.original_final_amount,
	c.id, c.client_id, c.name, c.registered_at, c.tier_locked, c.tier_locked_value
	FROM transactions t
	LEFT JOIN clients c ON c.id = t.client_id`

// PgxTransactionRepository implements the TransactionRepositoryFacade interface using pgxpool.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new PgxTransactionRepository.
func newPgxTransactionRepository(db *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// RangeForClient lists the client's transactions created in [start, end).
func (r *PgxTransactionRepository) RangeForClient(ctx context.Context, clientID int64, start, end time.Time) ([]domain.VolumeRow, error) {
	query := `
		SELECT amount, source_currency, created_at, refunded_at
		FROM transactions
		WHERE client_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY id;
	`

	rows, err := r.Pool.Query(ctx, query, clientID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for client", err)
	}
	defer rows.Close()

	var result []domain.VolumeRow
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.Amount, &m.SourceCurrency, &m.CreatedAt, &m.RefundedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		result = append(result, mapping.ToDomainVolumeRow(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transactions", err)
	}
	return result, nil
}

// FindTransactionByExternalID retrieves a transaction with its client.
func (r *PgxTransactionRepository) FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	query := `SELECT ` + joinedTransactionColumns + `
		WHERE t.transaction_id = $1;`

	tx, err := scanJoinedTransaction(r.Pool.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + externalID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction", err)
	}
	return &tx, nil
}

// ListTransactionsWithOriginals retrieves every transaction carrying both legacy figures.
func (r *PgxTransactionRepository) ListTransactionsWithOriginals(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + joinedTransactionColumns + `
		WHERE t.original_fee IS NOT NULL AND t.original_final_amount IS NOT NULL
		ORDER BY t.id;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		tx, err := scanJoinedTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		result = append(result, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transactions", err)
	}
	return result, nil
}

// UpsertTransaction inserts a transaction or replaces the row with the same external id.
func (r *PgxTransactionRepository) UpsertTransaction(ctx context.Context, tx domain.Transaction) (bool, error) {
	m := mapping.ToModelTransaction(tx)
	query := `
		INSERT INTO transactions (
			transaction_id, client_external_id, client_id, amount, source_currency, target_currency,
			created_at, refunded_at, original_fee, original_final_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (transaction_id) DO UPDATE SET
			client_external_id = EXCLUDED.client_external_id,
			client_id = EXCLUDED.client_id,
			amount = EXCLUDED.amount,
			source_currency = EXCLUDED.source_currency,
			target_currency = EXCLUDED.target_currency,
			created_at = EXCLUDED.created_at,
			refunded_at = EXCLUDED.refunded_at,
			original_fee = EXCLUDED.original_fee,
			original_final_amount = EXCLUDED.original_final_amount
		RETURNING (xmax = 0) AS inserted;
	`

	var inserted bool
	err := r.Pool.QueryRow(ctx, query,
		m.TransactionID, m.ClientExternalID, m.ClientID, m.Amount, m.SourceCurrency, m.TargetCurrency,
		m.CreatedAt, m.RefundedAt, m.OriginalFee, m.OriginalFinalAmount,
	).Scan(&inserted)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to upsert transaction", err)
	}
	return inserted, nil
}

func scanJoinedTransaction(row pgx.Row) (domain.Transaction, error) {
	var (
		m models.Transaction
		c models.JoinedClient
	)
	err := row.Scan(
		&m.ID, &m.TransactionID, &m.ClientExternalID, &m.ClientID, &m.Amount,
		&m.SourceCurrency, &m.TargetCurrency, &m.CreatedAt, &m.RefundedAt,
		&m.OriginalFee, &m.OriginalFinalAmount,
		&c.ID, &c.ClientID, &c.Name, &c.RegisteredAt, &c.TierLocked, &c.TierLockedValue,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m, mapping.ToDomainJoinedClient(c)), nil
}
