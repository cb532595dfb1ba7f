// Package memory is a process-local implementation of the repository ports.
// It backs dry-run imports and service fixtures.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
)

type storedTransaction struct {
	tx       domain.Transaction
	clientID int64 // 0 when the client reference did not resolve
}

// Store keeps clients, rates and transactions in maps guarded by one lock.
type Store struct {
	mu sync.RWMutex

	nextClientID int64
	nextRateID   int64
	nextTxID     int64

	clients      map[string]*domain.Client        // by external id
	rates        map[string][]domain.ExchangeRate // by "SRC/TGT", sorted by ValidFrom
	transactions map[string]*storedTransaction    // by external id
}

var (
	_ repositories.ClientRepositoryFacade      = (*Store)(nil)
	_ repositories.RateRepositoryFacade        = (*Store)(nil)
	_ repositories.TransactionRepositoryFacade = (*Store)(nil)
	_ repositories.Truncater                   = (*Store)(nil)
)

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

// Provider exposes the store through every repository port.
func (s *Store) Provider() repositories.RepositoryProvider {
	return repositories.RepositoryProvider{
		ClientRepo:      s,
		RateRepo:        s,
		TransactionRepo: s,
		Maintenance:     s,
	}
}

func (s *Store) reset() {
	s.nextClientID, s.nextRateID, s.nextTxID = 0, 0, 0
	s.clients = make(map[string]*domain.Client)
	s.rates = make(map[string][]domain.ExchangeRate)
	s.transactions = make(map[string]*storedTransaction)
}

// TruncateAll removes every record and restarts the id sequences.
func (s *Store) TruncateAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func pairKey(source, target string) string {
	return source + "/" + target
}

// FindClientByExternalID returns a copy of the stored client.
func (s *Store) FindClientByExternalID(ctx context.Context, externalID string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[externalID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", externalID))
	}
	clone := *c
	return &clone, nil
}

// UpsertClient creates or replaces a client by external id.
func (s *Store) UpsertClient(ctx context.Context, client domain.Client) (*domain.Client, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.clients[client.ExternalID]
	if ok {
		client.ID = existing.ID
	} else {
		s.nextClientID++
		client.ID = s.nextClientID
	}
	stored := client
	s.clients[client.ExternalID] = &stored
	return &client, !ok, nil
}

// FindApplicableRate returns the latest rate for the pair valid on date's calendar day.
func (s *Store) FindApplicableRate(ctx context.Context, sourceCurrency, targetCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := calendar.DateOnly(date)
	rates := s.rates[pairKey(sourceCurrency, targetCurrency)]
	for i := len(rates) - 1; i >= 0; i-- {
		if !rates[i].ValidFrom.After(day) {
			r := rates[i]
			return &r, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no rate %s/%s on %s", sourceCurrency, targetCurrency, day.Format(calendar.DateLayout)))
}

// UpsertRate creates or replaces the rate for (pair, ValidFrom).
func (s *Store) UpsertRate(ctx context.Context, rate domain.ExchangeRate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rate.ValidFrom = calendar.DateOnly(rate.ValidFrom)
	key := pairKey(rate.SourceCurrency, rate.TargetCurrency)
	rates := s.rates[key]
	for i := range rates {
		if rates[i].ValidFrom.Equal(rate.ValidFrom) {
			rate.ID = rates[i].ID
			rates[i] = rate
			return false, nil
		}
	}

	s.nextRateID++
	rate.ID = s.nextRateID
	rates = append(rates, rate)
	sort.Slice(rates, func(i, j int) bool { return rates[i].ValidFrom.Before(rates[j].ValidFrom) })
	s.rates[key] = rates
	return true, nil
}

// UpsertTransaction creates or replaces a transaction by external id.
func (s *Store) UpsertTransaction(ctx context.Context, tx domain.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var clientID int64
	if tx.Client != nil {
		clientID = tx.Client.ID
	}
	tx.Client = nil

	existing, ok := s.transactions[tx.ExternalID]
	if ok {
		tx.ID = existing.tx.ID
	} else {
		s.nextTxID++
		tx.ID = s.nextTxID
	}
	s.transactions[tx.ExternalID] = &storedTransaction{tx: tx, clientID: clientID}
	return !ok, nil
}

// RangeForClient lists the client's transactions created in [start, end).
func (s *Store) RangeForClient(ctx context.Context, clientID int64, start, end time.Time) ([]domain.VolumeRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []domain.VolumeRow
	for _, st := range s.sortedTransactions() {
		if st.clientID != clientID || st.tx.CreatedAt.Before(start) || !st.tx.CreatedAt.Before(end) {
			continue
		}
		rows = append(rows, domain.VolumeRow{
			Amount:         st.tx.Amount,
			SourceCurrency: st.tx.SourceCurrency,
			CreatedAt:      st.tx.CreatedAt,
			RefundedAt:     st.tx.RefundedAt,
		})
	}
	return rows, nil
}

// FindTransactionByExternalID returns the transaction with its client attached.
func (s *Store) FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.transactions[externalID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", externalID))
	}
	tx := s.hydrate(st)
	return &tx, nil
}

// ListTransactionsWithOriginals returns transactions carrying both legacy figures, by id.
func (s *Store) ListTransactionsWithOriginals(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Transaction
	for _, st := range s.sortedTransactions() {
		if st.tx.HasOriginalFigures() {
			out = append(out, s.hydrate(st))
		}
	}
	return out, nil
}

// sortedTransactions orders by id. Callers hold the lock.
func (s *Store) sortedTransactions() []*storedTransaction {
	list := make([]*storedTransaction, 0, len(s.transactions))
	for _, st := range s.transactions {
		list = append(list, st)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].tx.ID < list[j].tx.ID })
	return list
}

// hydrate attaches a copy of the client. Callers hold the lock.
func (s *Store) hydrate(st *storedTransaction) domain.Transaction {
	tx := st.tx
	if st.clientID == 0 {
		return tx
	}
	for _, c := range s.clients {
		if c.ID == st.clientID {
			clone := *c
			tx.Client = &clone
			break
		}
	}
	return tx
}
