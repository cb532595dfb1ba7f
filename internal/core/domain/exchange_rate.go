package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the rate for one currency pair effective from a calendar date.
// One unit of SourceCurrency buys Rate units of TargetCurrency.
type ExchangeRate struct {
	ID             int64           `json:"id"`
	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	ValidFrom      time.Time       `json:"validFrom"`
	Rate           decimal.Decimal `json:"rate"`
}

// PivotCurrencies are tried in order when neither a direct nor an inverse rate exists.
var PivotCurrencies = []string{"EUR", "USD", "CHF"}

// VolumeCurrency is the currency monthly volumes are expressed in.
const VolumeCurrency = "EUR"

// FloorCurrency is the currency that lifts BRONZE pricing to SILVER on either leg.
const FloorCurrency = "CHF"
