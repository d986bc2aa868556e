package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_periods/internal/core/domain"
)

// PeriodReader defines read operations for accounting period data
type PeriodReader interface {
	// FindPeriodByID retrieves a period by id. Returns apperrors.ErrNotFound when absent.
	// Inside a unit of work the row stays locked until the unit ends.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// FindOverlappingPeriods returns periods in scope whose [start, end] intersects the given
	// inclusive range, skipping excludeID when set.
	FindOverlappingPeriods(ctx context.Context, scope *string, start, end time.Time, excludeID *string) ([]domain.AccountingPeriod, error)

	// FindCurrentPeriod returns the OPEN period in scope containing asOf, latest start first.
	// Returns apperrors.ErrNotFound when there is none.
	FindCurrentPeriod(ctx context.Context, scope *string, asOf time.Time) (*domain.AccountingPeriod, error)

	// ListPeriods returns periods matching filter ordered by start date, newest first.
	ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting period data
type PeriodWriter interface {
	InsertPeriod(ctx context.Context, period domain.AccountingPeriod) error
	UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error
	RemovePeriod(ctx context.Context, periodID string) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// PeriodTxFunc is a unit of work run against a transaction-bound repository.
type PeriodTxFunc func(ctx context.Context, repo PeriodRepositoryFacade) error

// PeriodTransactor runs units of work that must not interleave with other writers.
// A non-nil error from fn rolls the unit back and is returned unchanged.
type PeriodTransactor interface {
	// WithinScope serializes fn against every other WithinScope call for the same scope.
	WithinScope(ctx context.Context, scope *string, fn PeriodTxFunc) error

	// WithinPeriod serializes fn against other writers of periodID.
	WithinPeriod(ctx context.Context, periodID string, fn PeriodTxFunc) error
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	PeriodTransactor
}
