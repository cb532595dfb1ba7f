package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
)

// GraceLastDay is the last day of a month on which the previous month's GOLD
// tier can still lift a SILVER month.
const GraceLastDay = 15

// tierResolver implements the TierResolverSvc interface
type tierResolver struct {
	BaseService
	volumes    portssvc.MonthlyVolumeSvc
	clientRepo portsrepo.ClientReader
}

// TierResolverOption is a functional option for configuring the tier resolver
type TierResolverOption func(*tierResolver)

// WithClientReader enables Breakdown, which looks clients up by external id.
func WithClientReader(repo portsrepo.ClientReader) TierResolverOption {
	return func(s *tierResolver) {
		s.clientRepo = repo
	}
}

// NewTierResolver creates a tier resolver on top of a volume aggregator.
func NewTierResolver(volumes portssvc.MonthlyVolumeSvc, options ...TierResolverOption) portssvc.TierResolverSvc {
	svc := &tierResolver{volumes: volumes}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TierResolverSvc = (*tierResolver)(nil)

// ResolveTier returns the locked tier when the client has one. Otherwise the tier
// follows the current month's volume, lifted by the grace rule during the first
// half of the month.
func (s *tierResolver) ResolveTier(ctx context.Context, client *domain.Client, date time.Time) (domain.Tier, error) {
	if client == nil {
		return "", apperrors.NewValidationError("tier resolution requires a client")
	}

	if client.IsTierLocked() {
		return s.lockedTier(ctx, client), nil
	}

	current, err := s.tierForMonth(ctx, client, date)
	if err != nil {
		return "", err
	}

	if date.Day() > GraceLastDay {
		return current, nil
	}

	prevMonth := calendar.FirstOfPreviousMonth(date)
	hasHistory, err := s.volumes.HasHistory(ctx, client, prevMonth)
	if err != nil {
		return "", err
	}
	if !hasHistory {
		return current, nil
	}

	previous, err := s.tierForMonth(ctx, client, prevMonth)
	if err != nil {
		return "", err
	}

	resolved := domain.ApplyGrace(current, previous)
	if resolved != current {
		s.LogDebug(ctx, "Grace period applied",
			slog.String("client_id", client.ExternalID),
			slog.String("current_tier", string(current)),
			slog.String("previous_tier", string(previous)))
	}
	return resolved, nil
}

// lockedTier falls back to BRONZE for an absent or unknown locked value.
func (s *tierResolver) lockedTier(ctx context.Context, client *domain.Client) domain.Tier {
	if tier, ok := client.LockedTier(); ok {
		return tier
	}
	s.LogWarn(ctx, "Invalid locked tier value, defaulting to BRONZE",
		slog.String("client_id", client.ExternalID),
		slog.String("tier_locked_value", client.LockedValue()))
	return domain.TierBronze
}

func (s *tierResolver) tierForMonth(ctx context.Context, client *domain.Client, day time.Time) (domain.Tier, error) {
	volume, err := s.volumes.MonthlyVolumeEUR(ctx, client, day)
	if err != nil {
		return "", err
	}
	return domain.ClassifyVolume(volume), nil
}

// Breakdown reports both months' volumes regardless of a locked tier.
func (s *tierResolver) Breakdown(ctx context.Context, clientExternalID string, date time.Time) (*domain.TierBreakdown, error) {
	if s.clientRepo == nil {
		return nil, fmt.Errorf("tier breakdown needs a client reader")
	}

	client, err := s.clientRepo.FindClientByExternalID(ctx, clientExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", clientExternalID, err)
	}

	current, err := s.snapshot(ctx, client, date)
	if err != nil {
		return nil, err
	}
	previous, err := s.snapshot(ctx, client, calendar.FirstOfPreviousMonth(date))
	if err != nil {
		return nil, err
	}

	resolved, err := s.ResolveTier(ctx, client, date)
	if err != nil {
		return nil, err
	}

	return &domain.TierBreakdown{
		ClientID:     client.ExternalID,
		ClientName:   client.Name,
		Date:         date.Format(calendar.DateLayout),
		Locked:       client.IsTierLocked(),
		LockedValue:  client.LockedValue(),
		Current:      current,
		Previous:     previous,
		GraceWindow:  date.Day() <= GraceLastDay,
		ResolvedTier: resolved,
	}, nil
}

func (s *tierResolver) snapshot(ctx context.Context, client *domain.Client, day time.Time) (domain.MonthSnapshot, error) {
	volume, err := s.volumes.MonthlyVolumeEUR(ctx, client, day)
	if err != nil {
		return domain.MonthSnapshot{}, err
	}
	hasHistory, err := s.volumes.HasHistory(ctx, client, day)
	if err != nil {
		return domain.MonthSnapshot{}, err
	}
	return domain.MonthSnapshot{
		Month:      calendar.MonthKey(day),
		VolumeEUR:  volume,
		Tier:       domain.ClassifyVolume(volume),
		HasHistory: hasHistory,
	}, nil
}
