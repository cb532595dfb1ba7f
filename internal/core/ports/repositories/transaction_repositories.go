package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
)

// TransactionStore defines the read access needed by monthly volume aggregation.
type TransactionStore interface {
	// RangeForClient returns every transaction of the client created in [start, end),
	// refunded or not.
	RangeForClient(ctx context.Context, clientID int64, start, end time.Time) ([]domain.VolumeRow, error)
}

// TransactionReader defines lookups of full transaction records
type TransactionReader interface {
	// FindTransactionByExternalID loads a transaction with its client, if any.
	FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error)

	// ListTransactionsWithOriginals returns, ordered by id, the transactions that
	// carry both the legacy fee and the legacy final amount.
	ListTransactionsWithOriginals(ctx context.Context) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// UpsertTransaction stores a transaction keyed by its external id and reports
	// whether it was created.
	UpsertTransaction(ctx context.Context, tx domain.Transaction) (bool, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionStore
	TransactionReader
	TransactionWriter
}
