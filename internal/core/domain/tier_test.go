package domain_test

import (
	"testing"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyVolume(t *testing.T) {
	tests := []struct {
		volume string
		want   domain.Tier
	}{
		{"0.00", domain.TierBronze},
		{"10000.00", domain.TierBronze},
		{"10000.01", domain.TierSilver},
		{"50000.00", domain.TierSilver},
		{"50000.01", domain.TierGold},
		{"1000000", domain.TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.volume, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyVolume(decimal.RequireFromString(tt.volume)))
		})
	}
}

func TestApplyGrace(t *testing.T) {
	tests := []struct {
		name     string
		current  domain.Tier
		previous domain.Tier
		want     domain.Tier
	}{
		{"silver after gold is lifted", domain.TierSilver, domain.TierGold, domain.TierGold},
		{"bronze after gold stays bronze", domain.TierBronze, domain.TierGold, domain.TierBronze},
		{"gold after gold stays gold", domain.TierGold, domain.TierGold, domain.TierGold},
		{"silver after silver stays silver", domain.TierSilver, domain.TierSilver, domain.TierSilver},
		{"gold after bronze is not demoted", domain.TierGold, domain.TierBronze, domain.TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ApplyGrace(tt.current, tt.previous))
		})
	}
}

func TestParseTier(t *testing.T) {
	for _, in := range []string{"gold", "GOLD", " Gold "} {
		tier, ok := domain.ParseTier(in)
		assert.True(t, ok, in)
		assert.Equal(t, domain.TierGold, tier)
	}

	_, ok := domain.ParseTier("platinum")
	assert.False(t, ok)
	_, ok = domain.ParseTier("")
	assert.False(t, ok)
}

func TestTier_Order(t *testing.T) {
	assert.Less(t, domain.TierBronze.Rank(), domain.TierSilver.Rank())
	assert.Less(t, domain.TierSilver.Rank(), domain.TierGold.Rank())
	assert.True(t, domain.TierSilver.IsValid())
	assert.False(t, domain.Tier("gold").IsValid())
}

func TestTier_FeeRate(t *testing.T) {
	tests := map[domain.Tier]string{
		domain.TierBronze: "0.0275",
		domain.TierSilver: "0.0225",
		domain.TierGold:   "0.0175",
	}
	for tier, want := range tests {
		rate, err := tier.FeeRate()
		require.NoError(t, err)
		assert.Equal(t, want, rate.StringFixed(4))
	}

	_, err := domain.Tier("PLATINUM").FeeRate()
	assert.Error(t, err)
}
