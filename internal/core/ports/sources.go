package ports

import (
	"context"

	"github.com/SscSPs/fx_fee_engine/internal/dto"
)

// Import file sections, read in this order.
const (
	SectionClients      = "clients"
	SectionRates        = "rates"
	SectionTransactions = "transactions"
)

// RecordSource supplies the rows of one import section.
type RecordSource interface {
	// Records returns the rows of section in file order. A missing section yields
	// an error wrapping os.ErrNotExist.
	Records(ctx context.Context, section string) ([]dto.Record, error)
}
