package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/SscSPs/fx_fee_engine/internal/models"
	"github.com/SscSPs/fx_fee_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMapping_NullableLock(t *testing.T) {
	locked := true
	value := "GOLD"
	d := domain.Client{ID: 7, ExternalID: "C001", Name: "Alpha", TierLocked: &locked, TierLockedValue: &value}

	m := mapping.ToModelClient(d)
	assert.Equal(t, pgtype.Bool{Bool: true, Valid: true}, m.TierLocked)
	assert.Equal(t, pgtype.Text{String: "GOLD", Valid: true}, m.TierLockedValue)
	assert.Equal(t, d, mapping.ToDomainClient(m))

	plain := mapping.ToModelClient(domain.Client{ExternalID: "C002"})
	assert.False(t, plain.TierLocked.Valid)
	assert.False(t, plain.TierLockedValue.Valid)
	back := mapping.ToDomainClient(plain)
	assert.Nil(t, back.TierLocked)
	assert.Nil(t, back.TierLockedValue)
}

func TestToDomainJoinedClient(t *testing.T) {
	assert.Nil(t, mapping.ToDomainJoinedClient(models.JoinedClient{}))

	c := mapping.ToDomainJoinedClient(models.JoinedClient{
		ID:       pgtype.Int8{Int64: 3, Valid: true},
		ClientID: pgtype.Text{String: "C003", Valid: true},
		Name:     pgtype.Text{String: "Gamma", Valid: true},
	})
	require.NotNil(t, c)
	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, "C003", c.ExternalID)
	assert.True(t, c.RegisteredAt.IsZero())
}

func TestTransactionMapping(t *testing.T) {
	created := time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)
	fee := decimal.RequireFromString("2.44")
	d := domain.Transaction{
		ExternalID:       "T1",
		ClientExternalID: "C001",
		Client:           &domain.Client{ID: 4},
		Amount:           decimal.RequireFromString("100.00"),
		SourceCurrency:   "EUR",
		TargetCurrency:   "USD",
		CreatedAt:        created,
		OriginalFee:      &fee,
	}

	m := mapping.ToModelTransaction(d)
	assert.Equal(t, pgtype.Int8{Int64: 4, Valid: true}, m.ClientID)
	assert.True(t, m.CreatedAt.Valid)
	assert.False(t, m.RefundedAt.Valid)
	assert.True(t, m.OriginalFee.Valid)
	assert.False(t, m.OriginalFinalAmount.Valid)

	back := mapping.ToDomainTransaction(m, nil)
	assert.Equal(t, created, back.CreatedAt)
	assert.Nil(t, back.RefundedAt)
	require.NotNil(t, back.OriginalFee)
	assert.True(t, fee.Equal(*back.OriginalFee))
	assert.Nil(t, back.OriginalFinalAmount)
}

func TestToDomainVolumeRow_UnreadableTimestamp(t *testing.T) {
	row := mapping.ToDomainVolumeRow(models.Transaction{
		Amount:     decimal.RequireFromString("10.00"),
		CreatedAt:  pgtype.Timestamp{Valid: true, InfinityModifier: pgtype.Infinity},
		RefundedAt: pgtype.Timestamp{Time: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Valid: true},
	})

	assert.False(t, row.HasTimestamp())
	require.NotNil(t, row.RefundedAt)
}
