package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalDraft    JournalStatus = "DRAFT"
	JournalPosted   JournalStatus = "POSTED"
	JournalReversed JournalStatus = "REVERSED"
)

// LedgerTransaction is a posted ledger line as seen by period close.
type LedgerTransaction struct {
	TransactionID   string          `json:"transactionID"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// JournalEntry is the part of a journal entry period close cares about.
type JournalEntry struct {
	JournalID  string        `json:"journalID"`
	IsBalanced bool          `json:"isBalanced"`
	Status     JournalStatus `json:"status"`
	EntryDate  time.Time     `json:"entryDate"`
}

// BlocksClose reports whether the entry is posted but unbalanced. Drafts never block.
func (e JournalEntry) BlocksClose() bool {
	return !e.IsBalanced && e.Status == JournalPosted
}

// ReconciliationSummary is the derived, non-persisted result of aggregating a period's activity.
type ReconciliationSummary struct {
	TransactionCount  int             `json:"transactionCount"`
	TotalDebits       decimal.Decimal `json:"totalDebits"`
	TotalCredits      decimal.Decimal `json:"totalCredits"`
	UnbalancedEntries int             `json:"unbalancedEntries"`
}

// CloseResult is returned by a successful close.
type CloseResult struct {
	Period  AccountingPeriod      `json:"period"`
	Summary ReconciliationSummary `json:"summary"`
}
