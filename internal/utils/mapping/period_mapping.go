package mapping

import (
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	"github.com/SscSPs/ledger_periods/internal/models"
)

// ToModelPeriod converts a domain AccountingPeriod to a model AccountingPeriod
func ToModelPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:       d.PeriodID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		PeriodType:     string(d.PeriodType),
		StartDate:      domain.DateOnly(d.StartDate),
		EndDate:        domain.DateOnly(d.EndDate),
		Status:         string(d.Status),
		ClosedAt:       d.ClosedAt,
		ClosedBy:       d.ClosedBy,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model AccountingPeriod to a domain AccountingPeriod
func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:       m.PeriodID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		PeriodType:     domain.PeriodType(m.PeriodType),
		StartDate:      domain.DateOnly(m.StartDate),
		EndDate:        domain.DateOnly(m.EndDate),
		Status:         domain.PeriodStatus(m.Status),
		ClosedAt:       m.ClosedAt,
		ClosedBy:       m.ClosedBy,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriodSlice converts a slice of model periods to domain periods
func ToDomainPeriodSlice(ms []models.AccountingPeriod) []domain.AccountingPeriod {
	ds := make([]domain.AccountingPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPeriod(m)
	}
	return ds
}

// ToDomainLedgerTransaction converts a model LedgerTransaction to its domain form
func ToDomainLedgerTransaction(m models.LedgerTransaction) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		TransactionID:   m.TransactionID,
		Debit:           m.Debit,
		Credit:          m.Credit,
		TransactionDate: domain.DateOnly(m.TransactionDate),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to its domain form
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalID:  m.JournalID,
		IsBalanced: m.IsBalanced,
		Status:     domain.JournalStatus(m.Status),
		EntryDate:  domain.DateOnly(m.EntryDate),
	}
}
