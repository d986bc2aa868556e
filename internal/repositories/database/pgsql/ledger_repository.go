package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_periods/internal/apperrors"
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_periods/internal/models"
	"github.com/SscSPs/ledger_periods/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the read side over ledger_transactions and journal_entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.LedgerReader       = (*PgxLedgerRepository)(nil)
	_ portsrepo.JournalEntryReader = (*PgxLedgerRepository)(nil)
)

// FindLedgerTransactionsByDateRange returns transactions dated within [start, end].
func (r *PgxLedgerRepository) FindLedgerTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.LedgerTransaction, error) {
	query := `
		SELECT transaction_id::text, debit, credit, transaction_date
		FROM ledger_transactions
		WHERE transaction_date BETWEEN $1 AND $2
		ORDER BY transaction_date, transaction_id`

	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(start), domain.DateOnly(end))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger transactions", err)
	}
	defer rows.Close()

	txns := make([]domain.LedgerTransaction, 0)
	for rows.Next() {
		var m models.LedgerTransaction
		if err := rows.Scan(&m.TransactionID, &m.Debit, &m.Credit, &m.TransactionDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger transaction row", err)
		}
		txns = append(txns, mapping.ToDomainLedgerTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger transactions", err)
	}
	return txns, nil
}

// FindJournalEntriesByDateRange returns journal entries dated within [start, end], any status.
func (r *PgxLedgerRepository) FindJournalEntriesByDateRange(ctx context.Context, start, end time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT journal_id::text, is_balanced, status, entry_date
		FROM journal_entries
		WHERE entry_date BETWEEN $1 AND $2
		ORDER BY entry_date, journal_id`

	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(start), domain.DateOnly(end))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0)
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(&m.JournalID, &m.IsBalanced, &m.Status, &m.EntryDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entries", err)
	}
	return entries, nil
}
