package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_periods/internal/dto"
)

// PeriodReaderSvc defines read operations for accounting periods
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a period or fails with a not-found error.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves periods matching the filter.
	ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.AccountingPeriod, error)

	// FindCurrentPeriod returns the OPEN period in scope containing asOf, or nil when there is none.
	// A zero asOf means today.
	FindCurrentPeriod(ctx context.Context, scope *string, asOf time.Time) (*domain.AccountingPeriod, error)
}

// PeriodWriterSvc defines write operations for accounting periods
type PeriodWriterSvc interface {
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error)
	UpdatePeriod(ctx context.Context, periodID string, req dto.UpdatePeriodRequest, userID string) (*domain.AccountingPeriod, error)
	DeletePeriod(ctx context.Context, periodID string, userID string) error
}

// PeriodCloserSvc closes periods after reconciling their activity.
type PeriodCloserSvc interface {
	// ClosePeriod reconciles and closes an OPEN period. actorID may be empty.
	ClosePeriod(ctx context.Context, periodID string, req dto.ClosePeriodRequest, actorID string) (*domain.CloseResult, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
	PeriodCloserSvc
}

// OverlapValidatorSvc guards the non-overlap rule for periods in a scope.
type OverlapValidatorSvc interface {
	// CheckNoOverlap fails with a conflict error naming the first overlapping period.
	// It reads through reader so callers can pass a transaction-bound repository.
	CheckNoOverlap(ctx context.Context, reader portsrepo.PeriodReader, scope *string, start, end time.Time, excludeID *string) error
}

// ClosingReconcilerSvc aggregates ledger activity for a date range.
type ClosingReconcilerSvc interface {
	Summarize(ctx context.Context, start, end time.Time) (*domain.ReconciliationSummary, error)
}
