package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
	"github.com/SscSPs/fx_fee_engine/internal/utils/money"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// monthlyVolumeService implements the MonthlyVolumeSvc interface. Its caches
// live as long as the instance.
type monthlyVolumeService struct {
	BaseService
	txRepo       portsrepo.TransactionStore
	rateResolver portssvc.RateResolverSvc
	volumes      *cache.Cache // decimal.Decimal by client:month
	history      *cache.Cache // bool by client:month
}

// NewMonthlyVolumeService creates an aggregator with empty caches.
func NewMonthlyVolumeService(txRepo portsrepo.TransactionStore, rateResolver portssvc.RateResolverSvc) portssvc.MonthlyVolumeSvc {
	return &monthlyVolumeService{
		txRepo:       txRepo,
		rateResolver: rateResolver,
		volumes:      cache.New(cache.NoExpiration, 0),
		history:      cache.New(cache.NoExpiration, 0),
	}
}

var _ portssvc.MonthlyVolumeSvc = (*monthlyVolumeService)(nil)

func monthCacheKey(client *domain.Client, day time.Time) string {
	return fmt.Sprintf("%d:%s", client.ID, calendar.MonthKey(day))
}

// MonthlyVolumeEUR sums qualifying rows in EUR. Rows without a readable timestamp
// or without an EUR rate are left out of the sum but still count as history.
func (s *monthlyVolumeService) MonthlyVolumeEUR(ctx context.Context, client *domain.Client, day time.Time) (decimal.Decimal, error) {
	if client == nil {
		return decimal.Zero, apperrors.NewValidationError("monthly volume requires a client")
	}

	key := monthCacheKey(client, day)
	if cached, found := s.volumes.Get(key); found {
		return cached.(decimal.Decimal), nil
	}

	rows, err := s.qualifyingRows(ctx, client, day)
	if err != nil {
		return decimal.Zero, err
	}
	s.history.Set(key, len(rows) > 0, cache.NoExpiration)

	sum := decimal.Zero
	for _, row := range rows {
		if !row.HasTimestamp() {
			s.LogWarn(ctx, "Monthly volume: unreadable transaction timestamp, row skipped",
				slog.String("client_id", client.ExternalID))
			continue
		}

		amount := money.NormalizeMoney(row.Amount)
		source := normalizeCode(row.SourceCurrency)
		if source == domain.VolumeCurrency {
			sum = money.Add(sum, amount)
			continue
		}

		rate, err := s.rateResolver.GetRate(ctx, source, domain.VolumeCurrency, row.CreatedAt)
		if err != nil {
			if !errors.Is(err, apperrors.ErrRateNotFound) {
				return decimal.Zero, err
			}
			s.LogWarn(ctx, "Monthly volume: missing FX rate for conversion to EUR, row skipped",
				slog.String("client_id", client.ExternalID),
				slog.String("source", source),
				slog.String("target", domain.VolumeCurrency),
				slog.String("date", row.CreatedAt.Format(calendar.DateLayout)))
			continue
		}
		sum = money.Add(sum, money.MulRound(amount, rate, money.MoneyScale))
	}

	s.volumes.Set(key, sum, cache.NoExpiration)
	return sum, nil
}

// HasHistory reports whether the month has at least one qualifying row.
func (s *monthlyVolumeService) HasHistory(ctx context.Context, client *domain.Client, day time.Time) (bool, error) {
	if client == nil {
		return false, apperrors.NewValidationError("monthly history requires a client")
	}

	key := monthCacheKey(client, day)
	if cached, found := s.history.Get(key); found {
		return cached.(bool), nil
	}

	rows, err := s.qualifyingRows(ctx, client, day)
	if err != nil {
		return false, err
	}

	has := len(rows) > 0
	s.history.Set(key, has, cache.NoExpiration)
	return has, nil
}

func (s *monthlyVolumeService) qualifyingRows(ctx context.Context, client *domain.Client, day time.Time) ([]domain.VolumeRow, error) {
	start, end := calendar.MonthWindow(day)
	rows, err := s.txRepo.RangeForClient(ctx, client.ID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for monthly volume",
			slog.String("client_id", client.ExternalID),
			slog.String("month", calendar.MonthKey(day)))
		return nil, fmt.Errorf("failed to load transactions for client %s: %w", client.ExternalID, err)
	}

	var qualifying []domain.VolumeRow
	for _, row := range rows {
		if row.Qualifies() {
			qualifying = append(qualifying, row)
		}
	}
	return qualifying, nil
}
