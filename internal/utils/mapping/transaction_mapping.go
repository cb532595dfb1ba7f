package mapping

import (
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/SscSPs/fx_fee_engine/internal/models"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ToModelTransaction converts a domain Transaction to a model Transaction. The
// client reference is taken from d.Client when it is set.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		ID:                  d.ID,
		TransactionID:       d.ExternalID,
		ClientExternalID:    d.ClientExternalID,
		Amount:              d.Amount,
		SourceCurrency:      d.SourceCurrency,
		TargetCurrency:      d.TargetCurrency,
		CreatedAt:           toTimestamp(&d.CreatedAt),
		RefundedAt:          toTimestamp(d.RefundedAt),
		OriginalFee:         toNullDecimal(d.OriginalFee),
		OriginalFinalAmount: toNullDecimal(d.OriginalFinalAmount),
	}
	if d.Client != nil && d.Client.ID != 0 {
		m.ClientID = pgtype.Int8{Int64: d.Client.ID, Valid: true}
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction. An
// unreadable created_at becomes the zero time.
func ToDomainTransaction(m models.Transaction, client *domain.Client) domain.Transaction {
	d := domain.Transaction{
		ID:               m.ID,
		ExternalID:       m.TransactionID,
		ClientExternalID: m.ClientExternalID,
		Client:           client,
		Amount:           m.Amount,
		SourceCurrency:   m.SourceCurrency,
		TargetCurrency:   m.TargetCurrency,
		CreatedAt:        timestampOrZero(m.CreatedAt),
	}
	if m.RefundedAt.Valid && m.RefundedAt.InfinityModifier == pgtype.Finite {
		refunded := m.RefundedAt.Time
		d.RefundedAt = &refunded
	}
	if m.OriginalFee.Valid {
		fee := m.OriginalFee.Decimal
		d.OriginalFee = &fee
	}
	if m.OriginalFinalAmount.Valid {
		final := m.OriginalFinalAmount.Decimal
		d.OriginalFinalAmount = &final
	}
	return d
}

// ToDomainVolumeRow keeps the columns volume aggregation reads.
func ToDomainVolumeRow(m models.Transaction) domain.VolumeRow {
	row := domain.VolumeRow{
		Amount:         m.Amount,
		SourceCurrency: m.SourceCurrency,
		CreatedAt:      timestampOrZero(m.CreatedAt),
	}
	if m.RefundedAt.Valid && m.RefundedAt.InfinityModifier == pgtype.Finite {
		refunded := m.RefundedAt.Time
		row.RefundedAt = &refunded
	}
	return row
}

func timestampOrZero(ts pgtype.Timestamp) time.Time {
	if !ts.Valid || ts.InfinityModifier != pgtype.Finite {
		return time.Time{}
	}
	return ts.Time
}

func toTimestamp(t *time.Time) pgtype.Timestamp {
	if t == nil || t.IsZero() {
		return pgtype.Timestamp{}
	}
	return pgtype.Timestamp{Time: *t, Valid: true}
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
