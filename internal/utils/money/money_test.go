package money_test

import (
	"math/rand"
	"testing"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "integer gets padded", input: "10", want: "10.00"},
		{name: "one fractional digit", input: "2.5", want: "2.50"},
		{name: "exact two digits", input: "108.50", want: "108.50"},
		{name: "excess digits are dropped not rounded", input: "2.567", want: "2.56"},
		{name: "trailing dot", input: "7.", want: "7.00"},
		{name: "leading dot", input: ".5", want: "0.50"},
		{name: "surrounding whitespace", input: "  3.1 ", want: "3.10"},
		{name: "empty is zero", input: "", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseMoney(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, money.Format(got))
		})
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	_, err := money.ParseMoney("12,50")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNormalizeMoney(t *testing.T) {
	assert.Equal(t, "9.99", money.Format(money.NormalizeMoney(dec("9.999"))))
	assert.Equal(t, "12.00", money.Format(money.NormalizeMoney(dec("12"))))
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		scale int32
		want  string
	}{
		{name: "below half stays", input: "2.44125", scale: 2, want: "2.44"},
		{name: "exact half rounds up", input: "1.005", scale: 2, want: "1.01"},
		{name: "above half rounds up", input: "2.446875", scale: 2, want: "2.45"},
		{name: "carry into integer part", input: "9.995", scale: 2, want: "10.00"},
		{name: "carry through several digits", input: "99.9999", scale: 3, want: "100.000"},
		{name: "negative rounds away from zero", input: "-1.235", scale: 2, want: "-1.24"},
		{name: "already at scale", input: "1.08", scale: 4, want: "1.0800"},
		{name: "rate to four digits", input: "1.08745", scale: 4, want: "1.0875"},
		{name: "only the next digit counts", input: "0.12349999", scale: 4, want: "0.1235"},
		{name: "scale zero", input: "2.5", scale: 0, want: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.RoundHalfUp(dec(tt.input), tt.scale)
			assert.Equal(t, tt.want, got.StringFixed(tt.scale))
		})
	}
}

func TestMulRound(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{name: "EUR to USD conversion", a: "100.00", b: "1.0850", want: "108.50"},
		{name: "silver fee", a: "108.50", b: "0.0225", want: "2.44"},
		{name: "silver fee rounding up", a: "108.75", b: "0.0225", want: "2.45"},
		{name: "gold fee", a: "108.50", b: "0.0175", want: "1.90"},
		{name: "bronze fee", a: "108.50", b: "0.0275", want: "2.98"},
		{name: "volume conversion", a: "10.00", b: "0.9219", want: "9.22"},
		{name: "digits beyond six are ignored", a: "0.01", b: "0.4999999", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.MulRound(dec(tt.a), dec(tt.b), money.MoneyScale)
			assert.Equal(t, tt.want, money.Format(got))
		})
	}
}

func TestMulRound_WithinHalfCentOfExactProduct(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	half := dec("0.005")

	for i := 0; i < 2000; i++ {
		amount := decimal.New(rnd.Int63n(10_000_000)+1, -2)
		rate := money.RoundRate(decimal.New(rnd.Int63n(300_000_000)+1, -8))
		exact := amount.Mul(rate)

		got := money.MulRound(amount, rate, money.MoneyScale)
		again := money.MulRound(amount, rate, money.MoneyScale)

		require.True(t, got.Equal(again), "not deterministic for %s * %s", amount, rate)
		require.True(t, got.GreaterThanOrEqual(exact.Sub(half)), "%s * %s = %s, got %s", amount, rate, exact, got)

		// An exact half cent rounds up, landing on the upper bound itself.
		upper := exact.Add(half)
		if upper.Equal(upper.Truncate(money.MoneyScale)) {
			require.True(t, got.Equal(upper), "%s * %s = %s is a tie, got %s", amount, rate, exact, got)
			continue
		}
		require.True(t, got.LessThan(upper), "%s * %s = %s, got %s", amount, rate, exact, got)
	}
}

func TestMulRound_ExactHalfCentRoundsUp(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{a: "36967.50", b: "1.698", want: "62770.82"},
		{a: "0.10", b: "0.05", want: "0.01"},
		{a: "1.00", b: "1.005", want: "1.01"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"x"+tt.b, func(t *testing.T) {
			exact := dec(tt.a).Mul(dec(tt.b))
			got := money.MulRound(dec(tt.a), dec(tt.b), money.MoneyScale)

			assert.Equal(t, tt.want, money.Format(got))
			assert.True(t, got.Equal(exact.Add(dec("0.005"))))
		})
	}
}

func TestAddSub(t *testing.T) {
	assert.Equal(t, "12.50", money.Format(money.Add(dec("10.00"), dec("2.50"))))
	assert.Equal(t, "106.06", money.Format(money.Sub(dec("108.50"), dec("2.44"))))
	assert.Equal(t, "-0.01", money.Format(money.Sub(dec("1.00"), dec("1.01"))))
}

func TestRoundRate(t *testing.T) {
	assert.Equal(t, "1.0850", money.FormatRate(money.RoundRate(dec("1.08500000"))))
	assert.Equal(t, "0.9217", money.FormatRate(money.RoundRate(dec("0.92165898"))))
	assert.Equal(t, "1", money.RoundRate(decimal.NewFromInt(1)).String())
}

func TestInvertRate(t *testing.T) {
	inv, ok := money.InvertRate(dec("1.0850"))
	require.True(t, ok)
	assert.Equal(t, "0.92165898", inv.StringFixed(8))

	_, ok = money.InvertRate(decimal.Zero)
	assert.False(t, ok)

	_, ok = money.InvertRate(dec("-1.2"))
	assert.False(t, ok)
}

func TestInvertRate_RoundTrip(t *testing.T) {
	tolerance := dec("0.0000001")
	for _, raw := range []string{"1.0850", "0.9340", "1.2", "12.5", "0.00012345", "3.99999999"} {
		r := dec(raw)
		inv, ok := money.InvertRate(r)
		require.True(t, ok)
		back, ok := money.InvertRate(inv)
		require.True(t, ok)

		relErr := back.Sub(r).Abs().Div(r)
		assert.True(t, relErr.LessThanOrEqual(tolerance), "round trip of %s gave %s", raw, back)
	}
}

func TestTruncDiv(t *testing.T) {
	assert.Equal(t, "0.022488", money.TruncDiv(dec("2.44"), dec("108.50"), 6).StringFixed(6))
	assert.Equal(t, "0.333333", money.TruncDiv(dec("1"), dec("3"), 6).StringFixed(6))
	assert.True(t, money.TruncDiv(dec("1"), decimal.Zero, 6).IsZero())
}

func TestMulRate(t *testing.T) {
	assert.Equal(t, "1.01336479", money.MulRate(dec("1.0850"), dec("0.93397677")).StringFixed(8))
}
