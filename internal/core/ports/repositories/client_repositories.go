package repositories

import (
	"context"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByExternalID returns apperrors.ErrNotFound for an unknown id.
	FindClientByExternalID(ctx context.Context, externalID string) (*domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// UpsertClient stores a client keyed by its external id and reports whether it was created.
	// The returned client carries the storage id.
	UpsertClient(ctx context.Context, client domain.Client) (*domain.Client, bool, error)
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
