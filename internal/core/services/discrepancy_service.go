package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
	"github.com/SscSPs/fx_fee_engine/internal/utils/money"
	"github.com/shopspring/decimal"
)

// Tolerances used when guessing why a legacy figure differs.
var (
	convertedTolerance = decimal.RequireFromString("0.02")
	anyTierTolerance   = decimal.RequireFromString("0.0006")
	tierTolerance      = decimal.RequireFromString("0.0003")
)

const impliedRateScale int32 = 6

// discrepancyService implements the DiscrepancySvc interface
type discrepancyService struct {
	BaseService
	txRepo        portsrepo.TransactionReader
	feeCalculator portssvc.FeeCalculatorSvc
	volumes       portssvc.MonthlyVolumeSvc
}

// NewDiscrepancyService creates the legacy comparison report service.
func NewDiscrepancyService(txRepo portsrepo.TransactionReader, feeCalculator portssvc.FeeCalculatorSvc, volumes portssvc.MonthlyVolumeSvc) portssvc.DiscrepancySvc {
	return &discrepancyService{
		txRepo:        txRepo,
		feeCalculator: feeCalculator,
		volumes:       volumes,
	}
}

var _ portssvc.DiscrepancySvc = (*discrepancyService)(nil)

// Report recomputes every transaction carrying legacy figures and keeps the ones
// that fail or differ.
func (s *discrepancyService) Report(ctx context.Context) ([]domain.Discrepancy, error) {
	txs, err := s.txRepo.ListTransactionsWithOriginals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions with original figures")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var report []domain.Discrepancy
	for _, tx := range txs {
		d := domain.Discrepancy{
			TransactionID:  tx.ExternalID,
			ClientID:       tx.ClientExternalID,
			CreatedAt:      tx.CreatedAt.Format(calendar.DateTimeLayout),
			SourceCurrency: tx.SourceCurrency,
			TargetCurrency: tx.TargetCurrency,
			Amount:         tx.Amount,
			OriginalFee:    money.NormalizeMoney(*tx.OriginalFee),
			OriginalFinal:  money.NormalizeMoney(*tx.OriginalFinalAmount),
		}
		d.ImpliedConverted = money.Add(d.OriginalFee, d.OriginalFinal)
		d.ImpliedFeeRate = money.TruncDiv(d.OriginalFee, d.ImpliedConverted, impliedRateScale)

		result, err := s.feeCalculator.Calculate(ctx, tx)
		if err != nil {
			d.Err = err
			report = append(report, d)
			continue
		}

		if d.OriginalFee.Equal(result.Fee) && d.OriginalFinal.Equal(result.FinalAmount) {
			continue
		}

		d.Rate = result.Rate
		d.Converted = result.Converted
		d.Tier = result.Tier
		d.FeeRate = result.FeeRate
		d.Fee = result.Fee
		d.FinalAmount = result.FinalAmount

		d.Class, err = s.classify(ctx, tx, d)
		if err != nil {
			return nil, err
		}
		report = append(report, d)
	}

	s.LogInfo(ctx, "Discrepancy report built",
		slog.Int("checked", len(txs)),
		slog.Int("discrepancies", len(report)))
	return report, nil
}

// classify returns the first matching cause.
func (s *discrepancyService) classify(ctx context.Context, tx domain.Transaction, d domain.Discrepancy) (domain.DiscrepancyClass, error) {
	if d.ImpliedConverted.Sub(d.Converted).Abs().GreaterThan(convertedTolerance) {
		return domain.ClassRateOrConverted, nil
	}

	if !isNear(d.ImpliedFeeRate, domain.FeeRateBronze, anyTierTolerance) &&
		!isNear(d.ImpliedFeeRate, domain.FeeRateSilver, anyTierTolerance) &&
		!isNear(d.ImpliedFeeRate, domain.FeeRateGold, anyTierTolerance) {
		return domain.ClassAnomalyFeeRate, nil
	}

	if tx.CreatedAt.Day() <= GraceLastDay &&
		isNear(d.ImpliedFeeRate, domain.FeeRateGold, tierTolerance) &&
		!isNear(d.FeeRate, domain.FeeRateGold, tierTolerance) &&
		tx.Client != nil {
		prevVolume, err := s.volumes.MonthlyVolumeEUR(ctx, tx.Client, calendar.FirstOfPreviousMonth(tx.CreatedAt))
		if err != nil {
			return "", err
		}
		if prevVolume.IsZero() {
			return domain.ClassMissingHistoryForGrace, nil
		}
	}

	if !isNear(d.ImpliedFeeRate, d.FeeRate, tierTolerance) {
		return domain.ClassTierOrRules, nil
	}
	return domain.ClassRounding, nil
}

func isNear(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}
