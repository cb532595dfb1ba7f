package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	"github.com/SscSPs/fx_fee_engine/internal/models"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
	"github.com/SscSPs/fx_fee_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateRepository implements the RateRepositoryFacade interface using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

// newPgxRateRepository creates a new PgxRateRepository.
func newPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

// FindApplicableRate retrieves the latest rate for the exact pair that is valid on date.
// Only the calendar day of date is compared.
func (r *PgxRateRepository) FindApplicableRate(ctx context.Context, sourceCurrency, targetCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT id, source_currency, target_currency, rate, valid_from
		FROM rates
		WHERE source_currency = $1 AND target_currency = $2 AND valid_from <= $3::date
		ORDER BY valid_from DESC
		LIMIT 1;
	`

	day := calendar.DateOnly(date)
	var m models.Rate
	err := r.Pool.QueryRow(ctx, query, sourceCurrency, targetCurrency, day.Format(calendar.DateLayout)).Scan(
		&m.ID, &m.SourceCurrency, &m.TargetCurrency, &m.Rate, &m.ValidFrom,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no rate %s/%s on %s", sourceCurrency, targetCurrency, day.Format(calendar.DateLayout)))
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	rate := mapping.ToDomainRate(m)
	return &rate, nil
}

// UpsertRate inserts a rate or replaces the one for the same pair and day.
func (r *PgxRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) (bool, error) {
	m := mapping.ToModelRate(rate)
	query := `
		INSERT INTO rates (source_currency, target_currency, rate, valid_from)
		VALUES ($1, $2, $3, $4::date)
		ON CONFLICT (source_currency, target_currency, valid_from) DO UPDATE SET
			rate = EXCLUDED.rate
		RETURNING (xmax = 0) AS inserted;
	`

	var inserted bool
	err := r.Pool.QueryRow(ctx, query,
		m.SourceCurrency, m.TargetCurrency, m.Rate, calendar.DateOnly(m.ValidFrom).Format(calendar.DateLayout),
	).Scan(&inserted)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to upsert exchange rate", err)
	}
	return inserted, nil
}
