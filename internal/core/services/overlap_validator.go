package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_periods/internal/apperrors"
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_periods/internal/core/ports/services"
)

type overlapValidator struct {
	BaseService
}

// NewOverlapValidator creates the validator guarding period date ranges.
func NewOverlapValidator() portssvc.OverlapValidatorSvc {
	return &overlapValidator{}
}

// CheckNoOverlap implements portssvc.OverlapValidatorSvc.
func (v *overlapValidator) CheckNoOverlap(ctx context.Context, reader portsrepo.PeriodReader, scope *string, start, end time.Time, excludeID *string) error {
	overlapping, err := reader.FindOverlappingPeriods(ctx, scope, start, end, excludeID)
	if err != nil {
		v.LogError(ctx, err, "Failed to look up overlapping periods",
			slog.String("scope", domain.ScopeKey(scope)))
		return fmt.Errorf("failed to check period overlap: %w", err)
	}

	for _, existing := range overlapping {
		// Stores may over-fetch; the rule is decided here.
		if excludeID != nil && existing.PeriodID == *excludeID {
			continue
		}
		if !existing.InScope(scope) || !existing.Overlaps(start, end) {
			continue
		}
		v.LogDebug(ctx, "Period overlap detected",
			slog.String("conflicting_period_id", existing.PeriodID),
			slog.String("scope", domain.ScopeKey(scope)))
		return apperrors.NewConflictError(
			fmt.Sprintf("date range %s to %s overlaps period %q (%s to %s)",
				start.Format(domain.DateLayout), end.Format(domain.DateLayout),
				existing.Name,
				existing.StartDate.Format(domain.DateLayout), existing.EndDate.Format(domain.DateLayout)),
			existing.PeriodID,
		)
	}
	return nil
}
