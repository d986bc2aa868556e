// Package memory holds process-local stores used by STORAGE_DRIVER=memory and by tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/ledger_periods/internal/apperrors"
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
)

// PeriodRepository keeps accounting periods in a map. Units of work run one at a time
// against a copy of the table that replaces the live table only on success.
type PeriodRepository struct {
	writeMu sync.Mutex   // serializes units of work and single writes
	mu      sync.RWMutex // guards table
	table   periodTable
}

// NewPeriodRepository returns an empty store.
func NewPeriodRepository() *PeriodRepository {
	return &PeriodRepository{table: periodTable{}}
}

var _ portsrepo.PeriodRepositoryWithTx = (*PeriodRepository)(nil)

func (r *PeriodRepository) read() periodTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table
}

// run applies fn to a copy of the table and publishes it if fn succeeds.
func (r *PeriodRepository) run(ctx context.Context, fn portsrepo.PeriodTxFunc) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	staged := r.read().clone()
	if err := fn(ctx, staged); err != nil {
		return err
	}

	r.mu.Lock()
	r.table = staged
	r.mu.Unlock()
	return nil
}

// WithinScope implements portsrepo.PeriodTransactor.
func (r *PeriodRepository) WithinScope(ctx context.Context, _ *string, fn portsrepo.PeriodTxFunc) error {
	return r.run(ctx, fn)
}

// WithinPeriod implements portsrepo.PeriodTransactor.
func (r *PeriodRepository) WithinPeriod(ctx context.Context, _ string, fn portsrepo.PeriodTxFunc) error {
	return r.run(ctx, fn)
}

func (r *PeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	return r.read().FindPeriodByID(ctx, periodID)
}

func (r *PeriodRepository) FindOverlappingPeriods(ctx context.Context, scope *string, start, end time.Time, excludeID *string) ([]domain.AccountingPeriod, error) {
	return r.read().FindOverlappingPeriods(ctx, scope, start, end, excludeID)
}

func (r *PeriodRepository) FindCurrentPeriod(ctx context.Context, scope *string, asOf time.Time) (*domain.AccountingPeriod, error) {
	return r.read().FindCurrentPeriod(ctx, scope, asOf)
}

func (r *PeriodRepository) ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.AccountingPeriod, error) {
	return r.read().ListPeriods(ctx, filter)
}

func (r *PeriodRepository) InsertPeriod(ctx context.Context, period domain.AccountingPeriod) error {
	return r.run(ctx, func(ctx context.Context, repo portsrepo.PeriodRepositoryFacade) error {
		return repo.InsertPeriod(ctx, period)
	})
}

func (r *PeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	return r.run(ctx, func(ctx context.Context, repo portsrepo.PeriodRepositoryFacade) error {
		return repo.UpdatePeriod(ctx, period)
	})
}

func (r *PeriodRepository) RemovePeriod(ctx context.Context, periodID string) error {
	return r.run(ctx, func(ctx context.Context, repo portsrepo.PeriodRepositoryFacade) error {
		return repo.RemovePeriod(ctx, periodID)
	})
}

// periodTable is the unlocked store shared by the live view and staged copies.
// Values are copied in and out so callers never alias stored state.
type periodTable map[string]domain.AccountingPeriod

func (t periodTable) clone() periodTable {
	out := make(periodTable, len(t))
	for id, p := range t {
		out[id] = p
	}
	return out
}

func (t periodTable) FindPeriodByID(_ context.Context, periodID string) (*domain.AccountingPeriod, error) {
	p, ok := t[periodID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return copyPeriod(p), nil
}

func (t periodTable) FindOverlappingPeriods(_ context.Context, scope *string, start, end time.Time, excludeID *string) ([]domain.AccountingPeriod, error) {
	var out []domain.AccountingPeriod
	for _, p := range t {
		if excludeID != nil && p.PeriodID == *excludeID {
			continue
		}
		if p.InScope(scope) && p.Overlaps(start, end) {
			out = append(out, *copyPeriod(p))
		}
	}
	sortByStartAsc(out)
	return out, nil
}

func (t periodTable) FindCurrentPeriod(_ context.Context, scope *string, asOf time.Time) (*domain.AccountingPeriod, error) {
	var best *domain.AccountingPeriod
	for _, p := range t {
		if p.Status != domain.PeriodOpen || !p.InScope(scope) || !p.Contains(asOf) {
			continue
		}
		if best == nil || p.StartDate.After(best.StartDate) {
			best = copyPeriod(p)
		}
	}
	if best == nil {
		return nil, apperrors.ErrNotFound
	}
	return best, nil
}

func (t periodTable) ListPeriods(_ context.Context, filter domain.PeriodFilter) ([]domain.AccountingPeriod, error) {
	out := make([]domain.AccountingPeriod, 0, len(t))
	for _, p := range t {
		if filter.Matches(p) {
			out = append(out, *copyPeriod(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].PeriodID < out[j].PeriodID
	})
	return out, nil
}

func (t periodTable) InsertPeriod(_ context.Context, period domain.AccountingPeriod) error {
	if _, exists := t[period.PeriodID]; exists {
		return apperrors.NewConflictError("accounting period already exists", period.PeriodID)
	}
	if err := t.checkConstraints(period); err != nil {
		return err
	}
	t[period.PeriodID] = *copyPeriod(period)
	return nil
}

func (t periodTable) UpdatePeriod(_ context.Context, period domain.AccountingPeriod) error {
	if _, exists := t[period.PeriodID]; !exists {
		return apperrors.ErrNotFound
	}
	if err := t.checkConstraints(period); err != nil {
		return err
	}
	t[period.PeriodID] = *copyPeriod(period)
	return nil
}

func (t periodTable) RemovePeriod(_ context.Context, periodID string) error {
	if _, exists := t[periodID]; !exists {
		return apperrors.ErrNotFound
	}
	delete(t, periodID)
	return nil
}

// checkConstraints mirrors the table constraints of the PostgreSQL schema.
func (t periodTable) checkConstraints(period domain.AccountingPeriod) error {
	if !period.StartDate.Before(period.EndDate) {
		return apperrors.NewValidationError("endDate", "endDate must be after startDate")
	}
	for id, other := range t {
		if id != period.PeriodID && other.InScope(period.OrganizationID) && other.Overlaps(period.StartDate, period.EndDate) {
			return apperrors.NewConflictError("accounting period overlaps an existing period", id)
		}
	}
	return nil
}

func copyPeriod(p domain.AccountingPeriod) *domain.AccountingPeriod {
	out := p
	out.OrganizationID = copyString(p.OrganizationID)
	out.ClosedBy = copyString(p.ClosedBy)
	out.Notes = copyString(p.Notes)
	if p.ClosedAt != nil {
		closedAt := *p.ClosedAt
		out.ClosedAt = &closedAt
	}
	return &out
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func sortByStartAsc(periods []domain.AccountingPeriod) {
	sort.Slice(periods, func(i, j int) bool {
		if !periods[i].StartDate.Equal(periods[j].StartDate) {
			return periods[i].StartDate.Before(periods[j].StartDate)
		}
		return periods[i].PeriodID < periods[j].PeriodID
	})
}
