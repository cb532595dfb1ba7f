package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
)

// RateStore defines the read side of exchange rate storage used by rate resolution.
type RateStore interface {
	// FindApplicableRate returns the rate for the exact pair with the latest
	// ValidFrom on or before date. It returns apperrors.ErrNotFound when none exists.
	FindApplicableRate(ctx context.Context, sourceCurrency, targetCurrency string, date time.Time) (*domain.ExchangeRate, error)
}

// RateWriter defines write operations for exchange rate data
type RateWriter interface {
	// UpsertRate stores a rate keyed by pair and ValidFrom. It reports whether a new row was created.
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) (bool, error)
}

// RateRepositoryFacade combines all rate-related repository interfaces
type RateRepositoryFacade interface {
	RateStore
	RateWriter
}
