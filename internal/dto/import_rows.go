package dto

import "strings"

// ClientRow is a parsed line of clients.csv.
type ClientRow struct {
	Line            int    `validate:"-"`
	ClientID        string `validate:"required,max=10"`
	Name            string `validate:"required"`
	RegisteredAt    string `validate:"required,datetime=2006-01-02"`
	TierLocked      string `validate:"-"`
	TierLockedValue string `validate:"omitempty,oneof=BRONZE SILVER GOLD"`
}

// RateRow is a parsed line of rates.csv.
type RateRow struct {
	Line      int    `validate:"-"`
	Source    string `validate:"required,ccy"`
	Target    string `validate:"required,ccy"`
	Rate      string `validate:"required,posdecimal"`
	ValidFrom string `validate:"required,datetime=2006-01-02"`
}

// TransactionRow is a parsed line of transactions.csv.
type TransactionRow struct {
	Line                int    `validate:"-"`
	TransactionID       string `validate:"required,max=20"`
	ClientID            string `validate:"required"`
	Amount              string `validate:"required,posmoney2"`
	SourceCurrency      string `validate:"required,ccy"`
	TargetCurrency      string `validate:"required,ccy"`
	CreatedAt           string `validate:"required,datetime=2006-01-02 15:04:05"`
	RefundedAt          string `validate:"omitempty,datetime=2006-01-02 15:04:05"`
	OriginalFee         string `validate:"omitempty,money2"`
	OriginalFinalAmount string `validate:"omitempty,money2"`
}

// ToClientRow extracts the client columns from a record.
func ToClientRow(r Record) ClientRow {
	return ClientRow{
		Line:            r.Line,
		ClientID:        r.Get("client_id"),
		Name:            r.Get("name"),
		RegisteredAt:    r.Get("registered_at"),
		TierLocked:      r.Get("tier_locked"),
		TierLockedValue: strings.ToUpper(r.Get("tier_locked_value")),
	}
}

// ToRateRow extracts the rate columns from a record, upper-casing currency codes.
func ToRateRow(r Record) RateRow {
	return RateRow{
		Line:      r.Line,
		Source:    strings.ToUpper(r.Get("source")),
		Target:    strings.ToUpper(r.Get("target")),
		Rate:      r.Get("rate"),
		ValidFrom: r.Get("valid_from"),
	}
}

// ToTransactionRow extracts the transaction columns from a record, upper-casing currency codes.
func ToTransactionRow(r Record) TransactionRow {
	return TransactionRow{
		Line:                r.Line,
		TransactionID:       r.Get("transaction_id"),
		ClientID:            r.Get("client_id"),
		Amount:              r.Get("amount"),
		SourceCurrency:      strings.ToUpper(r.Get("source_currency")),
		TargetCurrency:      strings.ToUpper(r.Get("target_currency")),
		CreatedAt:           r.Get("created_at"),
		RefundedAt:          r.Get("refunded_at"),
		OriginalFee:         r.Get("original_fee"),
		OriginalFinalAmount: r.Get("original_final_amount"),
	}
}

// IsTierLocked follows the legacy truthiness rule: anything but "" or "0" locks.
func (c ClientRow) IsTierLocked() bool {
	return c.TierLocked != "" && c.TierLocked != "0"
}
