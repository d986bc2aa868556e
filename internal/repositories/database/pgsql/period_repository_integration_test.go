//go:build integration

package pgsql

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledger_periods/internal/apperrors"
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_periods/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func migrationsSource() string {
	_, file, _, _ := runtime.Caller(0)
	return "file://" + filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

func date(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

type PgxRepositoryIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
}

func (s *PgxRepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("periods_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err, "failed to start PostgreSQL container")
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(database.RunMigrations(dsn, migrationsSource(), slog.Default()))

	s.pool, err = database.NewPgxPool(s.ctx, dsn, true)
	s.Require().NoError(err)
	s.repos = NewRepositoryProvider(s.pool)
}

func (s *PgxRepositoryIntegrationSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PgxRepositoryIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE accounting_periods, ledger_transactions, journal_entries`)
	s.Require().NoError(err)
}

func (s *PgxRepositoryIntegrationSuite) period(scope *string, start, end string) domain.AccountingPeriod {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.AccountingPeriod{
		PeriodID:       uuid.NewString(),
		OrganizationID: scope,
		Name:           start,
		PeriodType:     domain.PeriodMonth,
		StartDate:      date(start),
		EndDate:        date(end),
		Status:         domain.PeriodOpen,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: "tester", LastUpdatedAt: now, LastUpdatedBy: "tester"},
	}
}

func (s *PgxRepositoryIntegrationSuite) TestInsertFindUpdateRemove() {
	repo := s.repos.PeriodRepo
	p := s.period(nil, "2024-01-01", "2024-01-31")
	s.Require().NoError(repo.InsertPeriod(s.ctx, p))

	found, err := repo.FindPeriodByID(s.ctx, p.PeriodID)
	s.Require().NoError(err)
	s.Nil(found.OrganizationID)
	s.True(found.StartDate.Equal(p.StartDate))
	s.Equal(domain.PeriodOpen, found.Status)

	closedAt := time.Now().UTC().Truncate(time.Microsecond)
	notes := "Closed: done"
	found.Status = domain.PeriodClosed
	found.ClosedAt = &closedAt
	found.Notes = &notes
	s.Require().NoError(repo.UpdatePeriod(s.ctx, *found))

	again, err := repo.FindPeriodByID(s.ctx, p.PeriodID)
	s.Require().NoError(err)
	s.Equal(domain.PeriodClosed, again.Status)
	s.Require().NotNil(again.ClosedAt)
	s.True(again.ClosedAt.Equal(closedAt))
	s.Equal(notes, *again.Notes)

	s.Require().NoError(repo.RemovePeriod(s.ctx, p.PeriodID))
	_, err = repo.FindPeriodByID(s.ctx, p.PeriodID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(repo.RemovePeriod(s.ctx, p.PeriodID), apperrors.ErrNotFound)

	_, err = repo.FindPeriodByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgxRepositoryIntegrationSuite) TestExclusionConstraintRejectsBoundaryOverlap() {
	repo := s.repos.PeriodRepo
	s.Require().NoError(repo.InsertPeriod(s.ctx, s.period(nil, "2024-01-01", "2024-01-31")))

	err := repo.InsertPeriod(s.ctx, s.period(nil, "2024-01-31", "2024-02-29"))
	s.ErrorIs(err, apperrors.ErrConflict)

	org := "org-a"
	s.NoError(repo.InsertPeriod(s.ctx, s.period(&org, "2024-01-01", "2024-01-31")))
}

func (s *PgxRepositoryIntegrationSuite) TestCheckConstraintRejectsInvertedDates() {
	err := s.repos.PeriodRepo.InsertPeriod(s.ctx, s.period(nil, "2024-02-01", "2024-01-01"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PgxRepositoryIntegrationSuite) TestQueries() {
	repo := s.repos.PeriodRepo
	jan := s.period(nil, "2024-01-01", "2024-01-31")
	feb := s.period(nil, "2024-02-01", "2024-02-29")
	dec := s.period(nil, "2023-12-01", "2023-12-31")
	dec.Status = domain.PeriodLocked
	for _, p := range []domain.AccountingPeriod{jan, feb, dec} {
		s.Require().NoError(repo.InsertPeriod(s.ctx, p))
	}

	overlapping, err := repo.FindOverlappingPeriods(s.ctx, nil, date("2024-01-31"), date("2024-02-01"), nil)
	s.Require().NoError(err)
	s.Len(overlapping, 2)

	overlapping, err = repo.FindOverlappingPeriods(s.ctx, nil, date("2024-01-31"), date("2024-02-01"), &jan.PeriodID)
	s.Require().NoError(err)
	s.Require().Len(overlapping, 1)
	s.Equal(feb.PeriodID, overlapping[0].PeriodID)

	current, err := repo.FindCurrentPeriod(s.ctx, nil, date("2024-02-29"))
	s.Require().NoError(err)
	s.Equal(feb.PeriodID, current.PeriodID)

	_, err = repo.FindCurrentPeriod(s.ctx, nil, date("2023-12-15"))
	s.ErrorIs(err, apperrors.ErrNotFound)

	all, err := repo.ListPeriods(s.ctx, domain.PeriodFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(feb.PeriodID, all[0].PeriodID)
	s.Equal(dec.PeriodID, all[2].PeriodID)

	year := 2024
	open := domain.PeriodOpen
	filtered, err := repo.ListPeriods(s.ctx, domain.PeriodFilter{Year: &year, Status: &open})
	s.Require().NoError(err)
	s.Len(filtered, 2)
}

func (s *PgxRepositoryIntegrationSuite) TestWithinScopeRollsBack() {
	repo := s.repos.PeriodRepo
	p := s.period(nil, "2024-03-01", "2024-03-31")

	err := repo.WithinScope(s.ctx, nil, func(ctx context.Context, tx portsrepo.PeriodRepositoryFacade) error {
		if err := tx.InsertPeriod(ctx, p); err != nil {
			return err
		}
		return apperrors.NewBusinessRuleError("abort", p.PeriodID)
	})
	s.ErrorIs(err, apperrors.ErrBusinessRule)

	_, err = repo.FindPeriodByID(s.ctx, p.PeriodID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgxRepositoryIntegrationSuite) TestWithinScopeSerializesOverlapCheck() {
	repo := s.repos.PeriodRepo
	const writers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := s.period(nil, "2024-04-01", "2024-04-30")
			err := repo.WithinScope(s.ctx, nil, func(ctx context.Context, tx portsrepo.PeriodRepositoryFacade) error {
				found, err := tx.FindOverlappingPeriods(ctx, nil, p.StartDate, p.EndDate, nil)
				if err != nil {
					return err
				}
				if len(found) > 0 {
					return apperrors.NewConflictError("overlap", found[0].PeriodID)
				}
				return tx.InsertPeriod(ctx, p)
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
}

func (s *PgxRepositoryIntegrationSuite) TestLedgerReaders() {
	_, err := s.pool.Exec(s.ctx, `
		INSERT INTO ledger_transactions (transaction_id, debit, credit, transaction_date) VALUES
			($1, 100.10, 0, '2024-01-01'),
			($2, 0, 100.10, '2024-01-31'),
			($3, 5, 0, '2024-02-01')`,
		uuid.NewString(), uuid.NewString(), uuid.NewString())
	s.Require().NoError(err)
	_, err = s.pool.Exec(s.ctx, `
		INSERT INTO journal_entries (journal_id, is_balanced, status, entry_date) VALUES
			($1, false, 'POSTED', '2024-01-15'),
			($2, true, 'DRAFT', '2024-03-01')`,
		uuid.NewString(), uuid.NewString())
	s.Require().NoError(err)

	txns, err := s.repos.LedgerRepo.FindLedgerTransactionsByDateRange(s.ctx, date("2024-01-01"), date("2024-01-31"))
	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	s.Equal("100.1", txns[0].Debit.String())

	entries, err := s.repos.JournalRepo.FindJournalEntriesByDateRange(s.ctx, date("2024-01-01"), date("2024-01-31"))
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.True(entries[0].BlocksClose())
}

func TestPgxRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(PgxRepositoryIntegrationSuite))
}
