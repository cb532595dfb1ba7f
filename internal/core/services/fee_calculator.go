package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
	"github.com/SscSPs/fx_fee_engine/internal/utils/money"
)

// feeCalculator implements the FeeCalculatorSvc interface
type feeCalculator struct {
	BaseService
	rateResolver portssvc.RateResolverSvc
	tierResolver portssvc.TierResolverSvc
	txRepo       portsrepo.TransactionReader
}

// FeeCalculatorOption is a functional option for configuring the fee calculator
type FeeCalculatorOption func(*feeCalculator)

// WithTransactionReader enables CalculateByID.
func WithTransactionReader(repo portsrepo.TransactionReader) FeeCalculatorOption {
	return func(s *feeCalculator) {
		s.txRepo = repo
	}
}

// NewFeeCalculator wires the calculator to its resolvers.
func NewFeeCalculator(rateResolver portssvc.RateResolverSvc, tierResolver portssvc.TierResolverSvc, options ...FeeCalculatorOption) portssvc.FeeCalculatorSvc {
	svc := &feeCalculator{
		rateResolver: rateResolver,
		tierResolver: tierResolver,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FeeCalculatorSvc = (*feeCalculator)(nil)

// Calculate converts the amount at the 4-digit rate, picks the tier and charges
// the tier's fee on the converted amount.
func (s *feeCalculator) Calculate(ctx context.Context, tx domain.Transaction) (*domain.FeeCalculationResult, error) {
	source := normalizeCode(tx.SourceCurrency)
	target := normalizeCode(tx.TargetCurrency)

	rate, err := s.rateResolver.GetRate(ctx, source, target, tx.CreatedAt)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotFound) {
			s.LogError(ctx, err, "Fee calculation: missing FX rate",
				slog.String("transaction_id", tx.ExternalID),
				slog.String("source", source),
				slog.String("target", target),
				slog.String("date", tx.CreatedAt.Format(calendar.DateLayout)))
		}
		return nil, fmt.Errorf("failed to calculate fee for %s: %w", tx.ExternalID, err)
	}

	rateForConversion := money.RoundRate(rate)
	amount := money.NormalizeMoney(tx.Amount)
	converted := money.MulRound(amount, rateForConversion, money.MoneyScale)

	tier := domain.TierBronze
	clientName := domain.UnknownClientName
	if tx.Client != nil {
		clientName = tx.Client.Name
		tier, err = s.tierResolver.ResolveTier(ctx, tx.Client, tx.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tier for %s: %w", tx.ExternalID, err)
		}
	} else {
		s.LogWarn(ctx, "Fee calculation: transaction has no client relation, defaulting tier to BRONZE",
			slog.String("transaction_id", tx.ExternalID),
			slog.String("client_external_id", tx.ClientExternalID))
	}

	if tier == domain.TierBronze && (source == domain.FloorCurrency || target == domain.FloorCurrency) {
		tier = domain.TierSilver
	}

	feeRate, err := tier.FeeRate()
	if err != nil {
		return nil, err
	}

	fee := money.MulRound(converted, feeRate, money.MoneyScale)

	return &domain.FeeCalculationResult{
		TransactionID:  tx.ExternalID,
		ClientName:     clientName,
		Amount:         amount,
		SourceCurrency: source,
		TargetCurrency: target,
		Rate:           rateForConversion,
		Converted:      converted,
		Tier:           tier,
		FeeRate:        feeRate,
		Fee:            fee,
		FinalAmount:    money.Sub(converted, fee),
	}, nil
}

// CalculateByID loads the transaction and prices it.
func (s *feeCalculator) CalculateByID(ctx context.Context, transactionExternalID string) (*domain.FeeCalculationResult, error) {
	if s.txRepo == nil {
		return nil, fmt.Errorf("fee calculation by id needs a transaction reader")
	}

	tx, err := s.txRepo.FindTransactionByExternalID(ctx, transactionExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionExternalID, err)
	}
	return s.Calculate(ctx, *tx)
}
