package domain

import "github.com/shopspring/decimal"

// DiscrepancyClass names the probable cause of a mismatch with legacy figures.
type DiscrepancyClass string

const (
	ClassRateOrConverted        DiscrepancyClass = "RATE_OR_CONVERTED"
	ClassAnomalyFeeRate         DiscrepancyClass = "ANOMALY_FEE_RATE"
	ClassMissingHistoryForGrace DiscrepancyClass = "MISSING_HISTORY_FOR_GRACE"
	ClassTierOrRules            DiscrepancyClass = "TIER_OR_RULES"
	ClassRounding               DiscrepancyClass = "ROUNDING"
)

// Discrepancy compares a recomputed fee with the one stored at import time.
// When Err is set the recomputation failed and only the identifiers are meaningful.
type Discrepancy struct {
	TransactionID    string
	ClientID         string
	CreatedAt        string
	SourceCurrency   string
	TargetCurrency   string
	Amount           decimal.Decimal
	Err              error
	Class            DiscrepancyClass
	OriginalFee      decimal.Decimal
	OriginalFinal    decimal.Decimal
	ImpliedConverted decimal.Decimal
	ImpliedFeeRate   decimal.Decimal
	Rate             decimal.Decimal
	Converted        decimal.Decimal
	Tier             Tier
	FeeRate          decimal.Decimal
	Fee              decimal.Decimal
	FinalAmount      decimal.Decimal
}

// SectionStats counts the outcome of importing one CSV file.
type SectionStats struct {
	Processed int
	Created   int
	Updated   int
	Warnings  int
	Errors    int
}

// ImportReport aggregates the statistics of an import run.
type ImportReport struct {
	DryRun       bool
	Clients      SectionStats
	Rates        SectionStats
	Transactions SectionStats
}
