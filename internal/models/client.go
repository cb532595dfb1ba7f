package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Client is a row of the clients table.
type Client struct {
	ID              int64       `db:"id"`
	ClientID        string      `db:"client_id"` // external id, unique
	Name            string      `db:"name"`
	RegisteredAt    time.Time   `db:"registered_at"`
	TierLocked      pgtype.Bool `db:"tier_locked"`
	TierLockedValue pgtype.Text `db:"tier_locked_value"`
}

// JoinedClient holds the client columns of a LEFT JOIN. Every field is null when
// the transaction has no resolved client.
type JoinedClient struct {
	ID              pgtype.Int8
	ClientID        pgtype.Text
	Name            pgtype.Text
	RegisteredAt    pgtype.Timestamp
	TierLocked      pgtype.Bool
	TierLockedValue pgtype.Text
}
