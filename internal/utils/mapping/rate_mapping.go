package mapping

import (
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/SscSPs/fx_fee_engine/internal/models"
)

// ToModelRate converts a domain ExchangeRate to a model Rate
func ToModelRate(d domain.ExchangeRate) models.Rate {
	return models.Rate{
		ID:             d.ID,
		SourceCurrency: d.SourceCurrency,
		TargetCurrency: d.TargetCurrency,
		Rate:           d.Rate,
		ValidFrom:      d.ValidFrom,
	}
}

// ToDomainRate converts a model Rate to a domain ExchangeRate
func ToDomainRate(m models.Rate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ID:             m.ID,
		SourceCurrency: m.SourceCurrency,
		TargetCurrency: m.TargetCurrency,
		Rate:           m.Rate,
		ValidFrom:      m.ValidFrom,
	}
}
