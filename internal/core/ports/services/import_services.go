package services

import (
	"context"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/SscSPs/fx_fee_engine/internal/core/ports"
	"github.com/SscSPs/fx_fee_engine/internal/dto"
)

// ImportSvc loads clients, rates and transactions from flat records.
type ImportSvc interface {
	Import(ctx context.Context, source ports.RecordSource, req dto.ImportRequest) (*domain.ImportReport, error)
}
