package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
	"github.com/SscSPs/fx_fee_engine/internal/utils/money"
	"github.com/shopspring/decimal"
)

// rateResolver implements the RateResolverSvc interface
type rateResolver struct {
	BaseService
	rateRepo portsrepo.RateStore
}

// NewRateResolver creates a resolver reading rates from repo. Results are not cached.
func NewRateResolver(repo portsrepo.RateStore) portssvc.RateResolverSvc {
	return &rateResolver{rateRepo: repo}
}

var _ portssvc.RateResolverSvc = (*rateResolver)(nil)

// GetRate tries, in order: identity, direct, inverse, then a two-leg chain through
// each pivot currency where every leg is direct or inverse.
func (s *rateResolver) GetRate(ctx context.Context, sourceCurrency, targetCurrency string, date time.Time) (decimal.Decimal, error) {
	source := normalizeCode(sourceCurrency)
	target := normalizeCode(targetCurrency)
	day := calendar.DateOnly(date)

	if source == "" || target == "" {
		return decimal.Zero, fmt.Errorf("%w: empty currency code (%q -> %q)", apperrors.ErrRateNotFound, sourceCurrency, targetCurrency)
	}
	if source == target {
		return decimal.NewFromInt(1), nil
	}

	rate, ok, err := s.directOrInverse(ctx, source, target, day)
	if err != nil {
		return decimal.Zero, err
	}
	if ok {
		return rate, nil
	}

	for _, pivot := range domain.PivotCurrencies {
		if pivot == source || pivot == target {
			continue
		}

		toPivot, ok, err := s.directOrInverse(ctx, source, pivot, day)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			continue
		}

		fromPivot, ok, err := s.directOrInverse(ctx, pivot, target, day)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			continue
		}

		s.LogDebug(ctx, "Rate resolved through pivot",
			slog.String("source", source),
			slog.String("target", target),
			slog.String("pivot", pivot))
		return money.MulRate(toPivot, fromPivot), nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s -> %s on %s", apperrors.ErrRateNotFound, source, target, day.Format(calendar.DateLayout))
}

// directOrInverse returns the stored direct rate verbatim, or the inverse of the
// stored reverse rate when it is positive.
func (s *rateResolver) directOrInverse(ctx context.Context, source, target string, day time.Time) (decimal.Decimal, bool, error) {
	direct, err := s.find(ctx, source, target, day)
	if err != nil {
		return decimal.Zero, false, err
	}
	if direct != nil {
		return direct.Rate, true, nil
	}

	reverse, err := s.find(ctx, target, source, day)
	if err != nil {
		return decimal.Zero, false, err
	}
	if reverse == nil {
		return decimal.Zero, false, nil
	}

	inverted, ok := money.InvertRate(reverse.Rate)
	return inverted, ok, nil
}

// find maps ErrNotFound to a nil rate.
func (s *rateResolver) find(ctx context.Context, source, target string, day time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindApplicableRate(ctx, source, target, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find rate %s/%s: %w", source, target, err)
	}
	return rate, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
