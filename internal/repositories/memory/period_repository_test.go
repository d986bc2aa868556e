package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_periods/internal/apperrors"
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func d(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

func newPeriod(id string, scope *string, start, end string, status domain.PeriodStatus) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:       id,
		OrganizationID: scope,
		Name:           id,
		PeriodType:     domain.PeriodMonth,
		StartDate:      d(start),
		EndDate:        d(end),
		Status:         status,
	}
}

type PeriodRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo *PeriodRepository
}

func (s *PeriodRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = NewPeriodRepository()
}

func (s *PeriodRepositoryTestSuite) TestInsertAndFind() {
	p := newPeriod("jan", nil, "2024-01-01", "2024-01-31", domain.PeriodOpen)
	s.Require().NoError(s.repo.InsertPeriod(s.ctx, p))

	found, err := s.repo.FindPeriodByID(s.ctx, "jan")
	s.Require().NoError(err)
	s.Equal(p.StartDate, found.StartDate)

	// Returned values are copies.
	found.Name = "mutated"
	again, err := s.repo.FindPeriodByID(s.ctx, "jan")
	s.Require().NoError(err)
	s.Equal("jan", again.Name)

	_, err = s.repo.FindPeriodByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PeriodRepositoryTestSuite) TestInsertRejectsOverlapInSameScopeOnly() {
	s.Require().NoError(s.repo.InsertPeriod(s.ctx, newPeriod("jan", nil, "2024-01-01", "2024-01-31", domain.PeriodOpen)))

	err := s.repo.InsertPeriod(s.ctx, newPeriod("boundary", nil, "2024-01-31", "2024-02-29", domain.PeriodOpen))
	s.ErrorIs(err, apperrors.ErrConflict)

	s.NoError(s.repo.InsertPeriod(s.ctx, newPeriod("org-jan", strPtr("org-a"), "2024-01-01", "2024-01-31", domain.PeriodOpen)))
}

func (s *PeriodRepositoryTestSuite) TestFindOverlappingExcludesID() {
	s.Require().NoError(s.repo.InsertPeriod(s.ctx, newPeriod("jan", nil, "2024-01-01", "2024-01-31", domain.PeriodOpen)))

	found, err := s.repo.FindOverlappingPeriods(s.ctx, nil, d("2024-01-15"), d("2024-02-15"), nil)
	s.Require().NoError(err)
	s.Len(found, 1)

	found, err = s.repo.FindOverlappingPeriods(s.ctx, nil, d("2024-01-15"), d("2024-02-15"), strPtr("jan"))
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *PeriodRepositoryTestSuite) TestFindCurrentPicksOpenInScope() {
	s.Require().NoError(s.repo.InsertPeriod(s.ctx, newPeriod("jan", nil, "2024-01-01", "2024-01-31", domain.PeriodClosed)))
	s.Require().NoError(s.repo.InsertPeriod(s.ctx, newPeriod("feb", nil, "2024-02-01", "2024-02-29", domain.PeriodOpen)))

	_, err := s.repo.FindCurrentPeriod(s.ctx, nil, d("2024-01-15"))
	s.ErrorIs(err, apperrors.ErrNotFound)

	current, err := s.repo.FindCurrentPeriod(s.ctx, nil, d("2024-02-29"))
	s.Require().NoError(err)
	s.Equal("feb", current.PeriodID)

	_, err = s.repo.FindCurrentPeriod(s.ctx, strPtr("org-a"), d("2024-02-10"))
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PeriodRepositoryTestSuite) TestListPeriodsFiltersAndOrders() {
	s.Require().NoError(s.repo.InsertPeriod(s.ctx, newPeriod("jan", nil, "2024-01-01", "2024-01-31", domain.PeriodClosed)))
	s.Require().NoError(s.repo.InsertPeriod(s.ctx, newPeriod("feb", nil, "2024-02-01", "2024-02-29", domain.PeriodOpen)))
	s.Require().NoError(s.repo.InsertPeriod(s.ctx, newPeriod("dec", nil, "2023-12-01", "2023-12-31", domain.PeriodOpen)))

	all, err := s.repo.ListPeriods(s.ctx, domain.PeriodFilter{})
	s.Require().NoError(err)
	s.Equal([]string{"feb", "jan", "dec"}, ids(all))

	open := domain.PeriodOpen
	year := 2024
	filtered, err := s.repo.ListPeriods(s.ctx, domain.PeriodFilter{Status: &open, Year: &year})
	s.Require().NoError(err)
	s.Equal([]string{"feb"}, ids(filtered))
}

func (s *PeriodRepositoryTestSuite) TestUnitOfWorkRollsBackOnError() {
	s.Require().NoError(s.repo.InsertPeriod(s.ctx, newPeriod("jan", nil, "2024-01-01", "2024-01-31", domain.PeriodOpen)))

	boom := errors.New("boom")
	err := s.repo.WithinPeriod(s.ctx, "jan", func(ctx context.Context, repo portsrepo.PeriodRepositoryFacade) error {
		s.Require().NoError(repo.RemovePeriod(ctx, "jan"))
		_, err := repo.FindPeriodByID(ctx, "jan")
		s.Require().ErrorIs(err, apperrors.ErrNotFound)
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.repo.FindPeriodByID(s.ctx, "jan")
	s.NoError(err)
}

func (s *PeriodRepositoryTestSuite) TestUpdateAndRemoveMissing() {
	s.ErrorIs(s.repo.UpdatePeriod(s.ctx, newPeriod("nope", nil, "2024-01-01", "2024-01-31", domain.PeriodOpen)), apperrors.ErrNotFound)
	s.ErrorIs(s.repo.RemovePeriod(s.ctx, "nope"), apperrors.ErrNotFound)
}

func TestPeriodRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodRepositoryTestSuite))
}

func TestLedgerRepository_DateRangeIsInclusive(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()
	repo.AddTransactions(
		domain.LedgerTransaction{TransactionID: "before", Debit: decimal.NewFromInt(1), TransactionDate: d("2023-12-31")},
		domain.LedgerTransaction{TransactionID: "first", Debit: decimal.NewFromInt(2), TransactionDate: d("2024-01-01")},
		domain.LedgerTransaction{TransactionID: "last", Credit: decimal.NewFromInt(3), TransactionDate: time.Date(2024, 1, 31, 18, 0, 0, 0, time.UTC)},
	)
	repo.AddJournalEntries(
		domain.JournalEntry{JournalID: "j1", Status: domain.JournalPosted, EntryDate: d("2024-01-10")},
		domain.JournalEntry{JournalID: "j2", Status: domain.JournalPosted, EntryDate: d("2024-02-01")},
	)

	txns, err := repo.FindLedgerTransactionsByDateRange(ctx, d("2024-01-01"), d("2024-01-31"))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "first", txns[0].TransactionID)
	assert.Equal(t, "last", txns[1].TransactionID)

	entries, err := repo.FindJournalEntriesByDateRange(ctx, d("2024-01-01"), d("2024-01-31"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "j1", entries[0].JournalID)
}

func ids(periods []domain.AccountingPeriod) []string {
	out := make([]string, len(periods))
	for i, p := range periods {
		out[i] = p.PeriodID
	}
	return out
}
