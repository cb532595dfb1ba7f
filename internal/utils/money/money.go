// Package money holds the fixed-point helpers every fee and volume figure goes
// through. All arithmetic is exact decimal arithmetic; binary floating point is
// never used because the results have to reproduce historical ledger figures.
package money

import (
	"fmt"
	"strings"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	// MoneyScale is the number of fractional digits of every monetary amount.
	MoneyScale int32 = 2
	// IntermediateScale is the precision products are truncated to before rounding.
	IntermediateScale int32 = 6
	// RateScale is the maximum precision of a stored or derived exchange rate.
	RateScale int32 = 8
	// ConversionRateScale is the precision a rate is rounded to before it converts an amount.
	ConversionRateScale int32 = 4
)

var (
	one  = decimal.NewFromInt(1)
	five = decimal.NewFromInt(5)
)

// ParseMoney pads or truncates a textual amount to exactly two fractional digits.
// Excess digits are dropped, not rounded. An empty string is zero.
func ParseMoney(value string) (decimal.Decimal, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return decimal.Zero, nil
	}

	intPart, frac, hasDot := strings.Cut(v, ".")
	if hasDot {
		if intPart == "" || intPart == "-" || intPart == "+" {
			intPart += "0"
		}
		v = intPart + "." + (frac + "00")[:MoneyScale]
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, value)
	}
	return d, nil
}

// NormalizeMoney truncates an amount to two fractional digits.
func NormalizeMoney(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(MoneyScale)
}

// RoundHalfUp keeps scale fractional digits. When the first dropped digit is 5 or
// more the last kept digit moves one unit away from zero, carrying as needed.
func RoundHalfUp(d decimal.Decimal, scale int32) decimal.Decimal {
	kept := d.Truncate(scale)
	next := d.Sub(kept).Shift(scale + 1).Abs().Truncate(0)
	if next.LessThan(five) {
		return kept
	}

	unit := decimal.New(1, -scale)
	if d.IsNegative() {
		return kept.Sub(unit)
	}
	return kept.Add(unit)
}

// MulRound multiplies a by b at six fractional digits and rounds the product
// half-up to scale.
func MulRound(a, b decimal.Decimal, scale int32) decimal.Decimal {
	return RoundHalfUp(a.Mul(b).Truncate(IntermediateScale), scale)
}

// Add sums two amounts at money scale.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Truncate(MoneyScale)
}

// Sub subtracts b from a at money scale.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Truncate(MoneyScale)
}

// RoundRate rounds a rate half-up to the precision used for conversions.
func RoundRate(rate decimal.Decimal) decimal.Decimal {
	return RoundHalfUp(rate, ConversionRateScale)
}

// InvertRate returns 1/rate truncated to eight fractional digits. It reports false
// for rates that are not strictly positive.
func InvertRate(rate decimal.Decimal) (decimal.Decimal, bool) {
	if !rate.IsPositive() {
		return decimal.Zero, false
	}
	q, _ := one.QuoRem(rate, RateScale)
	return q, true
}

// TruncDiv divides a by b and truncates the quotient to scale digits. A zero
// divisor yields zero.
func TruncDiv(a, b decimal.Decimal, scale int32) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	q, _ := a.QuoRem(b, scale)
	return q
}

// MulRate chains two rates, truncating the product to eight fractional digits.
func MulRate(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Truncate(RateScale)
}

// Format renders an amount with exactly two fractional digits.
func Format(d decimal.Decimal) string {
	return NormalizeMoney(d).StringFixed(MoneyScale)
}

// FormatRate renders a conversion rate or fee rate with four fractional digits.
func FormatRate(d decimal.Decimal) string {
	return d.StringFixed(ConversionRateScale)
}
