package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
)

// LedgerRepository serves ledger transactions and journal entries seeded by the caller.
type LedgerRepository struct {
	mu           sync.RWMutex
	transactions []domain.LedgerTransaction
	entries      []domain.JournalEntry
}

// NewLedgerRepository returns an empty ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

var (
	_ portsrepo.LedgerReader       = (*LedgerRepository)(nil)
	_ portsrepo.JournalEntryReader = (*LedgerRepository)(nil)
)

// AddTransactions seeds ledger lines.
func (r *LedgerRepository) AddTransactions(txns ...domain.LedgerTransaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, txns...)
}

// AddJournalEntries seeds journal entry headers.
func (r *LedgerRepository) AddJournalEntries(entries ...domain.JournalEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
}

func (r *LedgerRepository) FindLedgerTransactionsByDateRange(_ context.Context, start, end time.Time) ([]domain.LedgerTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.LedgerTransaction, 0)
	for _, txn := range r.transactions {
		if inRange(txn.TransactionDate, start, end) {
			out = append(out, txn)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TransactionDate.Before(out[j].TransactionDate) })
	return out, nil
}

func (r *LedgerRepository) FindJournalEntriesByDateRange(_ context.Context, start, end time.Time) ([]domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.JournalEntry, 0)
	for _, entry := range r.entries {
		if inRange(entry.EntryDate, start, end) {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryDate.Before(out[j].EntryDate) })
	return out, nil
}

func inRange(t, start, end time.Time) bool {
	d := domain.DateOnly(t)
	return !d.Before(start) && !d.After(end)
}
