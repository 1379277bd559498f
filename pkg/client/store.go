package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/finance-dashboard/internal/report"
	"github.com/frahmantamala/finance-dashboard/internal/transaction"
	"github.com/shopspring/decimal"
)

// TransactionStore caches one user's transaction list and keeps it current
// across mutations. A failed refresh keeps the previous snapshot so readers
// never see a spurious empty list.
type TransactionStore struct {
	client *Client
	logger *slog.Logger

	mu      sync.RWMutex
	txs     []*Transaction
	fetched bool
}

func NewTransactionStore(client *Client, logger *slog.Logger) *TransactionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionStore{
		client: client,
		logger: logger,
	}
}

// Fetch refreshes the cache. On error the stale snapshot is kept and the
// error returned.
func (s *TransactionStore) Fetch(ctx context.Context, opts ListOptions) error {
	txs, err := s.client.ListTransactions(ctx, opts)
	if err != nil {
		s.logger.Warn("transaction fetch failed, keeping cached snapshot", "error", err)
		return err
	}

	s.mu.Lock()
	s.txs = txs
	s.fetched = true
	s.mu.Unlock()
	return nil
}

func (s *TransactionStore) Create(ctx context.Context, input TransactionInput) (*Transaction, error) {
	tx, err := s.client.CreateTransaction(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.txs = append(s.txs, tx)
	s.mu.Unlock()
	return tx, nil
}

func (s *TransactionStore) Update(ctx context.Context, id int64, input TransactionInput) (*Transaction, error) {
	tx, err := s.client.UpdateTransaction(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i, cached := range s.txs {
		if cached.ID == id {
			s.txs[i] = tx
			break
		}
	}
	s.mu.Unlock()
	return tx, nil
}

func (s *TransactionStore) Delete(ctx context.Context, id int64) (*Transaction, error) {
	tx, err := s.client.DeleteTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i, cached := range s.txs {
		if cached.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return tx, nil
}

// All returns a copy of the cached snapshot.
func (s *TransactionStore) All() []*Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

func (s *TransactionStore) Fetched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}

// Recent returns the n newest cached transactions by date.
func (s *TransactionStore) Recent(n int) []*Transaction {
	domain, index := s.snapshot()
	recent := report.Recent(domain, n)

	out := make([]*Transaction, len(recent))
	for i, tx := range recent {
		out[i] = index[tx.ID]
	}
	return out
}

// MonthlyExpenses sums cached expenses for ref's month.
func (s *TransactionStore) MonthlyExpenses(ref time.Time) decimal.Decimal {
	domain, _ := s.snapshot()
	return report.MonthlyExpenses(domain, ref)
}

// Balances nets cached income against expense per context.
func (s *TransactionStore) Balances() report.Balances {
	domain, _ := s.snapshot()
	return report.ComputeBalances(domain)
}

// BalanceSeries returns the cumulative balance over time for a context,
// or for everything when context is empty.
func (s *TransactionStore) BalanceSeries(txContext string) []report.SeriesPoint {
	domain, _ := s.snapshot()
	return report.BalanceSeries(domain, txContext)
}

// snapshot converts the cache into the domain shape the report package
// works on. Unparseable amounts count as zero.
func (s *TransactionStore) snapshot() ([]*transaction.Transaction, map[int64]*Transaction) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	domain := make([]*transaction.Transaction, 0, len(s.txs))
	index := make(map[int64]*Transaction, len(s.txs))
	for _, tx := range s.txs {
		amount, err := decimal.NewFromString(tx.Amount.String())
		if err != nil {
			s.logger.Warn("skipping amount parse failure", "transaction_id", tx.ID, "amount", tx.Amount)
			amount = decimal.Zero
		}

		domain = append(domain, &transaction.Transaction{
			ID:      tx.ID,
			Type:    tx.Type,
			Context: tx.Context,
			Amount:  transaction.NewAmount(amount),
			Date:    tx.Date,
		})
		index[tx.ID] = tx
	}
	return domain, index
}
