package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is a row of the rates table. Rate is numeric(18,8).
type Rate struct {
	ID             int64           `db:"id"`
	SourceCurrency string          `db:"source_currency"`
	TargetCurrency string          `db:"target_currency"`
	Rate           decimal.Decimal `db:"rate"`
	ValidFrom      time.Time       `db:"valid_from"` // date column
}
