package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_periods/internal/core/domain"
	"github.com/SscSPs/ledger_periods/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestToModelPeriod_TruncatesDates(t *testing.T) {
	org := "org-a"
	p := domain.AccountingPeriod{
		PeriodID:       "p1",
		OrganizationID: &org,
		PeriodType:     domain.PeriodQuarter,
		StartDate:      time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC),
		EndDate:        time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC),
		Status:         domain.PeriodLocked,
	}

	m := ToModelPeriod(p)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.StartDate)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), m.EndDate)
	assert.Equal(t, "QUARTER", m.PeriodType)
	assert.Equal(t, "LOCKED", m.Status)
	assert.Same(t, &org, m.OrganizationID)
}

func TestToDomainJournalEntry(t *testing.T) {
	e := ToDomainJournalEntry(models.JournalEntry{JournalID: "j1", IsBalanced: false, Status: "POSTED", EntryDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)})

	assert.True(t, e.BlocksClose())
	assert.Equal(t, time.UTC, e.EntryDate.Location())
}
