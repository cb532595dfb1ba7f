package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundWindow is how long after creation a refund still disqualifies a
// transaction from the monthly volume.
const RefundWindow = 72 * time.Hour

// Transaction is a single currency conversion requested by a client.
type Transaction struct {
	ID                  int64            `json:"id"`
	ExternalID          string           `json:"transactionID"`
	ClientExternalID    string           `json:"clientID"`
	Client              *Client          `json:"client,omitempty"` // nil when the client reference did not resolve
	Amount              decimal.Decimal  `json:"amount"`
	SourceCurrency      string           `json:"sourceCurrency"`
	TargetCurrency      string           `json:"targetCurrency"`
	CreatedAt           time.Time        `json:"createdAt"`
	RefundedAt          *time.Time       `json:"refundedAt,omitempty"`
	OriginalFee         *decimal.Decimal `json:"originalFee,omitempty"`
	OriginalFinalAmount *decimal.Decimal `json:"originalFinalAmount,omitempty"`
}

// HasOriginalFigures reports whether the legacy fee and final amount were both imported.
func (t Transaction) HasOriginalFigures() bool {
	return t.OriginalFee != nil && t.OriginalFinalAmount != nil
}

// VolumeRow is the slice of a transaction needed for monthly volume aggregation.
// A zero CreatedAt marks a row whose timestamp could not be read.
type VolumeRow struct {
	Amount         decimal.Decimal
	SourceCurrency string
	CreatedAt      time.Time
	RefundedAt     *time.Time
}

// Qualifies reports whether the row counts towards monthly volume: it was never
// refunded, or refunded strictly more than RefundWindow after creation.
func (r VolumeRow) Qualifies() bool {
	if r.RefundedAt == nil {
		return true
	}
	return r.RefundedAt.After(r.CreatedAt.Add(RefundWindow))
}

// HasTimestamp is false for rows whose creation time could not be read.
func (r VolumeRow) HasTimestamp() bool {
	return !r.CreatedAt.IsZero()
}
