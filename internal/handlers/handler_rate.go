package handlers

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
	"github.com/SscSPs/fx_fee_engine/internal/utils/money"
)

// rateHandler handles the test-rate command.
type rateHandler struct {
	rateResolver portssvc.RateResolverSvc
}

func registerRateCommands(r *Router, svc portssvc.RateResolverSvc) {
	h := &rateHandler{rateResolver: svc}
	r.Handle("test-rate", "<SRC> <TGT> <YYYY-MM-DD>", h.testRate)
}

func (h *rateHandler) testRate(ctx context.Context, args []string, out io.Writer) error {
	pos, err := parseArgs(flag.NewFlagSet("test-rate", flag.ContinueOnError), args, 3)
	if err != nil {
		return err
	}
	source, target, rawDate := pos[0], pos[1], pos[2]

	date, err := calendar.ParseDate(rawDate)
	if err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrUsage)
	}

	rate, err := h.rateResolver.GetRate(ctx, source, target, date)
	if errors.Is(err, apperrors.ErrRateNotFound) {
		fmt.Fprintf(out, "Rate not found for %s → %s at %s\n", source, target, rawDate)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Rate %s → %s at %s: %s\n", source, target, rawDate, rate.StringFixed(money.RateScale))
	return nil
}
