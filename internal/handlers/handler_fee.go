package handlers

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/platform/logging"
	"github.com/SscSPs/fx_fee_engine/internal/utils/money"
)

// feeHandler handles the fee calculation and legacy comparison commands.
type feeHandler struct {
	feeCalculator portssvc.FeeCalculatorSvc
	discrepancies portssvc.DiscrepancySvc
}

func newFeeHandler(fc portssvc.FeeCalculatorSvc, ds portssvc.DiscrepancySvc) *feeHandler {
	return &feeHandler{
		feeCalculator: fc,
		discrepancies: ds,
	}
}

func registerFeeCommands(r *Router, fc portssvc.FeeCalculatorSvc, ds portssvc.DiscrepancySvc) {
	h := newFeeHandler(fc, ds)
	r.Handle("calculate-fee", "<transaction_id>", h.calculateFee)
	r.Handle("discrepancy-report", "", h.discrepancyReport)
}

func (h *feeHandler) calculateFee(ctx context.Context, args []string, out io.Writer) error {
	pos, err := parseArgs(flag.NewFlagSet("calculate-fee", flag.ContinueOnError), args, 1)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("Received request to calculate fee", slog.String("transaction_id", pos[0]))

	r, err := h.feeCalculator.CalculateByID(ctx, pos[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Transaction: %s\n", r.TransactionID)
	fmt.Fprintf(out, "Client: %s\n", r.ClientName)
	fmt.Fprintf(out, "Amount: %s %s → %s\n", money.Format(r.Amount), r.SourceCurrency, r.TargetCurrency)
	fmt.Fprintf(out, "Rate: %s\n", money.FormatRate(r.Rate))
	fmt.Fprintf(out, "Converted: %s\n", money.Format(r.Converted))
	fmt.Fprintf(out, "Tier: %s\n", r.Tier)
	fmt.Fprintf(out, "Fee: %s\n", money.Format(r.Fee))
	fmt.Fprintf(out, "Final: %s\n", money.Format(r.FinalAmount))
	return nil
}

func (h *feeHandler) discrepancyReport(ctx context.Context, args []string, out io.Writer) error {
	if _, err := parseArgs(flag.NewFlagSet("discrepancy-report", flag.ContinueOnError), args, 0); err != nil {
		return err
	}

	report, err := h.discrepancies.Report(ctx)
	if err != nil {
		return err
	}
	if len(report) == 0 {
		return nil
	}

	fmt.Fprintf(out, "Discrepancies found: %d\n\n", len(report))
	for _, d := range report {
		writeDiscrepancy(out, d)
	}
	return nil
}

func writeDiscrepancy(out io.Writer, d domain.Discrepancy) {
	fmt.Fprintf(out, "%s:\n", d.TransactionID)
	if d.Err != nil {
		fmt.Fprintf(out, "  Error: %s\n\n", d.Err)
		return
	}

	fmt.Fprintf(out, "  Type: %s | Tier: %s\n", d.Class, d.Tier)
	fmt.Fprintf(out, "  Original fee: %s | Calculated fee: %s\n", money.Format(d.OriginalFee), money.Format(d.Fee))
	fmt.Fprintf(out, "  Original final: %s | Calculated final: %s\n", money.Format(d.OriginalFinal), money.Format(d.FinalAmount))
	fmt.Fprintf(out, "  Implied converted: %s | Our converted: %s\n", money.Format(d.ImpliedConverted), money.Format(d.Converted))
	fmt.Fprintf(out, "  Implied feeRate: %s | Our feeRate: %s\n\n", d.ImpliedFeeRate.StringFixed(6), money.FormatRate(d.FeeRate))
}
