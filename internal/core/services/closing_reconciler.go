package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_periods/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type closingReconciler struct {
	BaseService
	ledgerRepo  portsrepo.LedgerReader
	journalRepo portsrepo.JournalEntryReader
}

// NewClosingReconciler creates the reconciler used when closing a period.
func NewClosingReconciler(ledgerRepo portsrepo.LedgerReader, journalRepo portsrepo.JournalEntryReader) portssvc.ClosingReconcilerSvc {
	return &closingReconciler{ledgerRepo: ledgerRepo, journalRepo: journalRepo}
}

// Summarize totals ledger activity dated within [start, end] and counts posted, unbalanced journal entries.
func (r *closingReconciler) Summarize(ctx context.Context, start, end time.Time) (*domain.ReconciliationSummary, error) {
	txns, err := r.ledgerRepo.FindLedgerTransactionsByDateRange(ctx, start, end)
	if err != nil {
		r.LogError(ctx, err, "Failed to load ledger transactions for reconciliation")
		return nil, fmt.Errorf("failed to load ledger transactions: %w", err)
	}

	entries, err := r.journalRepo.FindJournalEntriesByDateRange(ctx, start, end)
	if err != nil {
		r.LogError(ctx, err, "Failed to load journal entries for reconciliation")
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}

	summary := &domain.ReconciliationSummary{
		TransactionCount: len(txns),
		TotalDebits:      decimal.Zero,
		TotalCredits:     decimal.Zero,
	}
	for _, txn := range txns {
		summary.TotalDebits = summary.TotalDebits.Add(txn.Debit)
		summary.TotalCredits = summary.TotalCredits.Add(txn.Credit)
	}
	for _, entry := range entries {
		if entry.BlocksClose() {
			summary.UnbalancedEntries++
		}
	}

	r.LogDebug(ctx, "Reconciliation summary computed",
		slog.Int("transaction_count", summary.TransactionCount),
		slog.String("total_debits", summary.TotalDebits.String()),
		slog.String("total_credits", summary.TotalCredits.String()),
		slog.Int("unbalanced_entries", summary.UnbalancedEntries))
	return summary, nil
}
