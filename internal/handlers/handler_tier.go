package handlers

import (
	"context"
	"flag"
	"fmt"
	"io"

	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
	"github.com/SscSPs/fx_fee_engine/internal/utils/money"
)

// tierHandler handles the debug-tier command.
type tierHandler struct {
	tierResolver portssvc.TierResolverSvc
}

func registerTierCommands(r *Router, svc portssvc.TierResolverSvc) {
	h := &tierHandler{tierResolver: svc}
	r.Handle("debug-tier", "<client_id> <YYYY-MM-DD>", h.debugTier)
}

func (h *tierHandler) debugTier(ctx context.Context, args []string, out io.Writer) error {
	pos, err := parseArgs(flag.NewFlagSet("debug-tier", flag.ContinueOnError), args, 2)
	if err != nil {
		return err
	}
	date, err := calendar.ParseDate(pos[1])
	if err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrUsage)
	}

	b, err := h.tierResolver.Breakdown(ctx, pos[0], date)
	if err != nil {
		return err
	}

	locked := "no"
	if b.Locked {
		locked = "true"
		if b.LockedValue != "" {
			locked = b.LockedValue
		}
	}

	fmt.Fprintf(out, "Client: %s (%s)\n", b.ClientName, b.ClientID)
	fmt.Fprintf(out, "Date: %s\n", b.Date)
	fmt.Fprintf(out, "Locked tier: %s\n\n", locked)
	fmt.Fprintf(out, "Current month volume (EUR): %s => tier by volume: %s\n", money.Format(b.Current.VolumeEUR), b.Current.Tier)
	fmt.Fprintf(out, "Prev month volume (EUR): %s => tier by volume: %s\n\n", money.Format(b.Previous.VolumeEUR), b.Previous.Tier)
	fmt.Fprintf(out, "Resolved tier (with grace): %s\n", b.ResolvedTier)
	return nil
}
