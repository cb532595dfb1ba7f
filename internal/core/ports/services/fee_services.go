package services

import (
	"context"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResolverSvc resolves the exchange rate between two currencies on a date.
type RateResolverSvc interface {
	// GetRate returns apperrors.ErrRateNotFound when no direct, inverse or pivot
	// chain exists.
	GetRate(ctx context.Context, sourceCurrency, targetCurrency string, date time.Time) (decimal.Decimal, error)
}

// MonthlyVolumeSvc aggregates a client's qualifying volume in EUR per calendar month.
type MonthlyVolumeSvc interface {
	// MonthlyVolumeEUR sums the qualifying transactions of the month containing day.
	MonthlyVolumeEUR(ctx context.Context, client *domain.Client, day time.Time) (decimal.Decimal, error)

	// HasHistory reports whether the month containing day has any qualifying transaction.
	HasHistory(ctx context.Context, client *domain.Client, day time.Time) (bool, error)
}

// TierResolverSvc determines the pricing tier of a client.
type TierResolverSvc interface {
	ResolveTier(ctx context.Context, client *domain.Client, date time.Time) (domain.Tier, error)

	// Breakdown loads the client by external id and explains its tier on date.
	Breakdown(ctx context.Context, clientExternalID string, date time.Time) (*domain.TierBreakdown, error)
}

// FeeCalculatorSvc prices transactions.
type FeeCalculatorSvc interface {
	Calculate(ctx context.Context, tx domain.Transaction) (*domain.FeeCalculationResult, error)

	// CalculateByID loads the transaction by external id and prices it.
	CalculateByID(ctx context.Context, transactionExternalID string) (*domain.FeeCalculationResult, error)
}

// DiscrepancySvc compares recomputed fees with legacy figures.
type DiscrepancySvc interface {
	// Report returns one entry per mismatching or failing transaction, ordered by id.
	Report(ctx context.Context) ([]domain.Discrepancy, error)
}
