package handlers

import (
	"context"

	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/platform/config"
)

// MigrateFunc applies pending schema migrations and reports whether any ran.
type MigrateFunc func(ctx context.Context) (bool, error)

// RegisterCommands sets up every subcommand, injecting dependencies using interfaces.
func RegisterCommands(
	r *Router,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	migrate MigrateFunc,
) {
	registerMigrateCommands(r, migrate)
	registerImportCommands(r, cfg, services.Import)
	registerFeeCommands(r, services.FeeCalculator, services.Discrepancy)
	registerTierCommands(r, services.TierResolver)
	registerRateCommands(r, services.RateResolver)
}
