package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountingPeriod is a row of accounting_periods.
type AccountingPeriod struct {
	PeriodID       string     `json:"periodID"`       // Primary Key (UUID)
	OrganizationID *string    `json:"organizationID"` // NULL for the global scope
	Name           string     `json:"name"`
	PeriodType     string     `json:"periodType"` // MONTH, QUARTER, YEAR
	StartDate      time.Time  `json:"startDate"`  // DATE
	EndDate        time.Time  `json:"endDate"`    // DATE
	Status         string     `json:"status"`     // OPEN, CLOSED, LOCKED
	ClosedAt       *time.Time `json:"closedAt"`
	ClosedBy       *string    `json:"closedBy"`
	Notes          *string    `json:"notes"`
	AuditFields
}

// LedgerTransaction is a row of ledger_transactions.
type LedgerTransaction struct {
	TransactionID   string          `json:"transactionID"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// JournalEntry is a row of journal_entries.
type JournalEntry struct {
	JournalID  string    `json:"journalID"`
	IsBalanced bool      `json:"isBalanced"`
	Status     string    `json:"status"` // DRAFT, POSTED, REVERSED
	EntryDate  time.Time `json:"entryDate"`
}
