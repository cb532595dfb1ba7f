package domain

import "github.com/shopspring/decimal"

// UnknownClientName is reported when a transaction has no resolved client.
const UnknownClientName = "(unknown client)"

// FeeCalculationResult is the outcome of pricing one transaction. It is never persisted.
type FeeCalculationResult struct {
	TransactionID  string
	ClientName     string
	Amount         decimal.Decimal
	SourceCurrency string
	TargetCurrency string
	Rate           decimal.Decimal // rounded to 4 digits, the rate actually applied
	Converted      decimal.Decimal
	Tier           Tier
	FeeRate        decimal.Decimal
	Fee            decimal.Decimal
	FinalAmount    decimal.Decimal
}

// MonthSnapshot is the volume and derived tier of one calendar month.
type MonthSnapshot struct {
	Month      string
	VolumeEUR  decimal.Decimal
	Tier       Tier
	HasHistory bool
}

// TierBreakdown explains how a client's tier was derived for a date.
type TierBreakdown struct {
	ClientID     string
	ClientName   string
	Date         string
	Locked       bool
	LockedValue  string
	Current      MonthSnapshot
	Previous     MonthSnapshot
	GraceWindow  bool
	ResolvedTier Tier
}
