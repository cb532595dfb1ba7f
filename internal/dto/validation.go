package dto

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	decimalPattern      = regexp.MustCompile(`^\d+(\.\d+)?$`)
	money2Pattern       = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// NewValidator returns a validator with the import rules registered:
// ccy (three upper-case letters), posdecimal (unsigned decimal > 0),
// money2 (unsigned, at most two fractional digits) and posmoney2 (money2 > 0).
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "ccy", func(fl validator.FieldLevel) bool {
		return currencyCodePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "posdecimal", func(fl validator.FieldLevel) bool {
		return isPositive(fl.Field().String(), decimalPattern)
	})
	mustRegister(v, "money2", func(fl validator.FieldLevel) bool {
		return money2Pattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "posmoney2", func(fl validator.FieldLevel) bool {
		return isPositive(fl.Field().String(), money2Pattern)
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func isPositive(value string, pattern *regexp.Regexp) bool {
	if !pattern.MatchString(value) {
		return false
	}
	d, err := decimal.NewFromString(value)
	return err == nil && d.IsPositive()
}

// FieldErrors maps struct field names to the failed validation tag. A nil or
// non-validation error yields an empty map.
func FieldErrors(err error) map[string]string {
	failed := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			failed[fe.Field()] = fe.Tag()
		}
	}
	return failed
}
