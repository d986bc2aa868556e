package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_periods/internal/core/domain"
)

// LedgerReader exposes posted ledger lines by date.
type LedgerReader interface {
	// FindLedgerTransactionsByDateRange returns transactions dated within [start, end].
	FindLedgerTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.LedgerTransaction, error)
}

// JournalEntryReader exposes journal entry headers by date.
type JournalEntryReader interface {
	// FindJournalEntriesByDateRange returns entries dated within [start, end] in every status.
	FindJournalEntriesByDateRange(ctx context.Context, start, end time.Time) ([]domain.JournalEntry, error)
}
