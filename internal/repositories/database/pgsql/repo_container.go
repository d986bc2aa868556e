package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	periodRepo := newPgxPeriodRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)

	return portsrepo.RepositoryProvider{
		PeriodRepo:  periodRepo,
		LedgerRepo:  ledgerRepo,
		JournalRepo: ledgerRepo,
	}
}
