package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Tier is the pricing tier of a client. Tiers are totally ordered
// BRONZE < SILVER < GOLD.
type Tier string

const (
	TierBronze Tier = "BRONZE"
	TierSilver Tier = "SILVER"
	TierGold   Tier = "GOLD"
)

// Monthly EUR volume upper bounds (inclusive) of the two lower tiers.
var (
	BronzeVolumeLimit = decimal.NewFromInt(10000)
	SilverVolumeLimit = decimal.NewFromInt(50000)
)

// Fee percentages charged on the converted amount.
var (
	FeeRateBronze = decimal.RequireFromString("0.0275")
	FeeRateSilver = decimal.RequireFromString("0.0225")
	FeeRateGold   = decimal.RequireFromString("0.0175")
)

// ParseTier matches a tier name case-insensitively.
func ParseTier(value string) (Tier, bool) {
	switch Tier(strings.ToUpper(strings.TrimSpace(value))) {
	case TierBronze:
		return TierBronze, true
	case TierSilver:
		return TierSilver, true
	case TierGold:
		return TierGold, true
	}
	return "", false
}

// IsValid reports whether t is one of the three known tiers.
func (t Tier) IsValid() bool {
	return t.Rank() > 0
}

// Rank orders tiers; unknown tiers rank below BRONZE.
func (t Tier) Rank() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	}
	return 0
}

// FeeRate returns the fee percentage charged for the tier.
func (t Tier) FeeRate() (decimal.Decimal, error) {
	switch t {
	case TierBronze:
		return FeeRateBronze, nil
	case TierSilver:
		return FeeRateSilver, nil
	case TierGold:
		return FeeRateGold, nil
	}
	return decimal.Zero, fmt.Errorf("unknown tier %q", string(t))
}

// ClassifyVolume maps a monthly EUR volume onto a tier.
func ClassifyVolume(eurVolume decimal.Decimal) Tier {
	switch {
	case eurVolume.LessThanOrEqual(BronzeVolumeLimit):
		return TierBronze
	case eurVolume.LessThanOrEqual(SilverVolumeLimit):
		return TierSilver
	default:
		return TierGold
	}
}

// ApplyGrace lifts a SILVER month back to GOLD when the previous month was GOLD.
// It never promotes BRONZE and never demotes.
func ApplyGrace(current, previous Tier) Tier {
	if previous != TierGold {
		return current
	}
	switch current {
	case TierSilver:
		return TierGold
	case TierBronze, TierGold:
		return current
	}
	return current
}
