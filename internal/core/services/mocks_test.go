package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy so the service can mutate it freely.
	p := *args.Get(0).(*domain.AccountingPeriod)
	return &p, args.Error(1)
}

func (m *MockPeriodRepository) FindOverlappingPeriods(ctx context.Context, scope *string, start, end time.Time, excludeID *string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, scope, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindCurrentPeriod(ctx context.Context, scope *string, asOf time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, scope, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) InsertPeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) RemovePeriod(ctx context.Context, periodID string) error {
	args := m.Called(ctx, periodID)
	return args.Error(0)
}

// WithinScope records the call and runs fn against the mock itself.
func (m *MockPeriodRepository) WithinScope(ctx context.Context, scope *string, fn portsrepo.PeriodTxFunc) error {
	args := m.Called(ctx, scope)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

// WithinPeriod records the call and runs fn against the mock itself.
func (m *MockPeriodRepository) WithinPeriod(ctx context.Context, periodID string, fn portsrepo.PeriodTxFunc) error {
	args := m.Called(ctx, periodID)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

// --- Mock ledger readers ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindLedgerTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerRepository) FindJournalEntriesByDateRange(ctx context.Context, start, end time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock ClosingReconciler ---
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Summarize(ctx context.Context, start, end time.Time) (*domain.ReconciliationSummary, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSummary), args.Error(1)
}

func mustDate(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }
