package models

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
// Note: ClientID is null when client_external_id did not resolve at import time.
type Transaction struct {
	ID                  int64               `db:"id"`
	TransactionID       string              `db:"transaction_id"`
	ClientExternalID    string              `db:"client_external_id"`
	ClientID            pgtype.Int8         `db:"client_id"`
	Amount              decimal.Decimal     `db:"amount"`
	SourceCurrency      string              `db:"source_currency"`
	TargetCurrency      string              `db:"target_currency"`
	CreatedAt           pgtype.Timestamp    `db:"created_at"`
	RefundedAt          pgtype.Timestamp    `db:"refunded_at"`
	OriginalFee         decimal.NullDecimal `db:"original_fee"`
	OriginalFinalAmount decimal.NullDecimal `db:"original_final_amount"`
}
