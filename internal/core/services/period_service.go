package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_periods/internal/apperrors"
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_periods/internal/core/ports/services"
	"github.com/SscSPs/ledger_periods/internal/dto"
	"github.com/SscSPs/ledger_periods/internal/platform/lock"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const periodResource = "accounting period"

// PeriodServiceOption is a functional option for configuring the period service
type PeriodServiceOption func(*periodService)

// WithPeriodLocker replaces the in-process lock used to serialize writes to one period.
func WithPeriodLocker(locker lock.Locker) PeriodServiceOption {
	return func(s *periodService) {
		s.locker = locker
	}
}

// WithClock overrides the time source used for audit fields, closedAt and "today".
func WithClock(now func() time.Time) PeriodServiceOption {
	return func(s *periodService) {
		s.now = now
	}
}

// periodService owns the accounting period lifecycle.
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryWithTx
	overlap    portssvc.OverlapValidatorSvc
	reconciler portssvc.ClosingReconcilerSvc
	locker     lock.Locker
	validate   *validator.Validate
	now        func() time.Time
}

// NewPeriodService creates a new period service with the provided dependencies
func NewPeriodService(
	periodRepo portsrepo.PeriodRepositoryWithTx,
	overlap portssvc.OverlapValidatorSvc,
	reconciler portssvc.ClosingReconcilerSvc,
	options ...PeriodServiceOption,
) portssvc.PeriodSvcFacade {
	validate := validator.New()
	// Reuse the gin binding tags on the DTOs.
	validate.SetTagName("binding")

	svc := &periodService{
		periodRepo: periodRepo,
		overlap:    overlap,
		reconciler: reconciler,
		locker:     lock.NewKeyedLocker(),
		validate:   validate,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod validates and persists a new OPEN period.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	scope := domain.NormalizeScope(req.OrganizationID)
	period := domain.AccountingPeriod{
		PeriodID:       uuid.NewString(),
		OrganizationID: scope,
		Name:           name,
		PeriodType:     req.PeriodType,
		StartDate:      start,
		EndDate:        end,
		Status:         domain.PeriodOpen,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err = s.periodRepo.WithinScope(ctx, scope, func(ctx context.Context, repo portsrepo.PeriodRepositoryFacade) error {
		if err := s.overlap.CheckNoOverlap(ctx, repo, scope, start, end, nil); err != nil {
			return err
		}
		return repo.InsertPeriod(ctx, period)
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to create accounting period", slog.String("scope", domain.ScopeKey(scope)))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Accounting period created",
		slog.String("period_id", period.PeriodID),
		slog.String("scope", domain.ScopeKey(scope)),
		slog.String("start_date", start.Format(domain.DateLayout)),
		slog.String("end_date", end.Format(domain.DateLayout)))
	return &period, nil
}

// GetPeriodByID retrieves a period by id.
func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, s.notFoundOr(ctx, err, periodID, "Failed to find accounting period")
	}
	return period, nil
}

// ListPeriods retrieves periods matching filter.
func (s *periodService) ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounting periods")
		return nil, fmt.Errorf("failed to list accounting periods: %w", err)
	}
	if periods == nil {
		return []domain.AccountingPeriod{}, nil
	}
	return periods, nil
}

// FindCurrentPeriod returns the OPEN period containing asOf, or nil.
func (s *periodService) FindCurrentPeriod(ctx context.Context, scope *string, asOf time.Time) (*domain.AccountingPeriod, error) {
	if asOf.IsZero() {
		asOf = s.now().UTC()
	}
	asOf = domain.DateOnly(asOf)
	scope = domain.NormalizeScope(scope)

	period, err := s.periodRepo.FindCurrentPeriod(ctx, scope, asOf)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogDebug(ctx, "No open period contains date",
			slog.String("scope", domain.ScopeKey(scope)),
			slog.String("as_of", asOf.Format(domain.DateLayout)))
		return nil, nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to find current accounting period", slog.String("scope", domain.ScopeKey(scope)))
		return nil, fmt.Errorf("failed to find current accounting period: %w", err)
	}
	return period, nil
}

// UpdatePeriod applies a partial update. Locked periods are immutable, closed periods accept notes only.
func (s *periodService) UpdatePeriod(ctx context.Context, periodID string, req dto.UpdatePeriodRequest, userID string) (*domain.AccountingPeriod, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.PeriodKey(periodID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Scope never changes, so it is safe to read it before taking the scope lock.
	current, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, s.notFoundOr(ctx, err, periodID, "Failed to load accounting period for update")
	}

	var updated domain.AccountingPeriod
	err = s.periodRepo.WithinScope(ctx, current.OrganizationID, func(ctx context.Context, repo portsrepo.PeriodRepositoryFacade) error {
		period, err := repo.FindPeriodByID(ctx, periodID)
		if err != nil {
			return s.notFoundOr(ctx, err, periodID, "Failed to reload accounting period for update")
		}

		switch period.Status {
		case domain.PeriodLocked:
			return apperrors.NewBusinessRuleError("cannot modify a locked period", periodID)
		case domain.PeriodClosed:
			if req.ChangesMoreThanNotes() {
				return apperrors.NewBusinessRuleError("only notes can be changed on a closed period", periodID)
			}
		}

		if err := applyUpdate(period, req); err != nil {
			return err
		}
		if req.ChangesDates() {
			if !period.StartDate.Before(period.EndDate) {
				return apperrors.NewValidationError("endDate", "endDate must be after startDate")
			}
			if err := s.overlap.CheckNoOverlap(ctx, repo, period.OrganizationID, period.StartDate, period.EndDate, &period.PeriodID); err != nil {
				return err
			}
		}

		period.LastUpdatedAt = s.now().UTC()
		period.LastUpdatedBy = userID
		if err := repo.UpdatePeriod(ctx, *period); err != nil {
			return err
		}
		updated = *period
		return nil
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to update accounting period", slog.String("period_id", periodID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Accounting period updated", slog.String("period_id", periodID))
	return &updated, nil
}

// DeletePeriod removes an OPEN period.
func (s *periodService) DeletePeriod(ctx context.Context, periodID string, userID string) error {
	unlock, err := s.locker.Lock(ctx, lock.PeriodKey(periodID))
	if err != nil {
		return err
	}
	defer unlock()

	err = s.periodRepo.WithinPeriod(ctx, periodID, func(ctx context.Context, repo portsrepo.PeriodRepositoryFacade) error {
		period, err := repo.FindPeriodByID(ctx, periodID)
		if err != nil {
			return s.notFoundOr(ctx, err, periodID, "Failed to load accounting period for delete")
		}
		if period.Status != domain.PeriodOpen {
			return apperrors.NewBusinessRuleError("cannot delete a closed or locked period", periodID)
		}
		return repo.RemovePeriod(ctx, periodID)
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to delete accounting period", slog.String("period_id", periodID))
		}
		return err
	}

	s.LogInfo(ctx, "Accounting period deleted", slog.String("period_id", periodID), slog.String("user_id", userID))
	return nil
}

// ClosePeriod reconciles the period's activity and marks it CLOSED.
// Posted, unbalanced journal entries block the close unless req.Force is set.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, req dto.ClosePeriodRequest, actorID string) (*domain.CloseResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.PeriodKey(periodID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result domain.CloseResult
	err = s.periodRepo.WithinPeriod(ctx, periodID, func(ctx context.Context, repo portsrepo.PeriodRepositoryFacade) error {
		period, err := repo.FindPeriodByID(ctx, periodID)
		if err != nil {
			return s.notFoundOr(ctx, err, periodID, "Failed to load accounting period for close")
		}

		if !period.Status.CanTransitionTo(domain.PeriodClosed) {
			switch period.Status {
			case domain.PeriodClosed:
				return apperrors.NewBusinessRuleError("accounting period is already closed", periodID)
			case domain.PeriodLocked:
				return apperrors.NewBusinessRuleError("cannot close a locked period", periodID)
			}
			return apperrors.NewBusinessRuleError(fmt.Sprintf("cannot close a period with status %q", period.Status), periodID)
		}

		summary, err := s.reconciler.Summarize(ctx, period.StartDate, period.EndDate)
		if err != nil {
			return err
		}
		if summary.UnbalancedEntries > 0 {
			if !req.Force {
				return apperrors.NewBusinessRuleError(
					fmt.Sprintf("cannot close period: %d unbalanced journal entries found; use force to override", summary.UnbalancedEntries),
					periodID)
			}
			s.LogWarn(ctx, "Force closing period with unbalanced journal entries",
				slog.String("period_id", periodID),
				slog.Int("unbalanced_entries", summary.UnbalancedEntries))
		}

		now := s.now().UTC()
		period.Status = domain.PeriodClosed
		period.ClosedAt = &now
		period.ClosedBy = nil
		if actorID != "" {
			actor := actorID
			period.ClosedBy = &actor
		}
		if req.Notes != nil && *req.Notes != "" {
			notes := domain.AppendClosingNote(period.Notes, *req.Notes)
			period.Notes = &notes
		}
		period.LastUpdatedAt = now
		period.LastUpdatedBy = actorID

		if err := repo.UpdatePeriod(ctx, *period); err != nil {
			return err
		}
		result = domain.CloseResult{Period: *period, Summary: *summary}
		return nil
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to close accounting period", slog.String("period_id", periodID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Accounting period closed",
		slog.String("period_id", periodID),
		slog.Int("transaction_count", result.Summary.TransactionCount),
		slog.Bool("forced", req.Force))
	return &result, nil
}

func (s *periodService) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return apperrors.NewValidationError(lowerFirst(fe.Field()), describeFieldError(fe))
	}
	return apperrors.NewValidationError("", err.Error())
}

// notFoundOr turns a store not-found into a resource error and logs anything else.
func (s *periodService) notFoundOr(ctx context.Context, err error, periodID, msg string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewResourceNotFoundError(periodResource, periodID)
	}
	s.LogError(ctx, err, msg, slog.String("period_id", periodID))
	return err
}

func applyUpdate(period *domain.AccountingPeriod, req dto.UpdatePeriodRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return apperrors.NewValidationError("name", "name cannot be blank")
		}
		period.Name = name
	}
	if req.PeriodType != nil {
		period.PeriodType = *req.PeriodType
	}
	if req.StartDate != nil {
		start, err := domain.ParseDate(*req.StartDate)
		if err != nil {
			return apperrors.NewValidationError("startDate", "startDate must be a YYYY-MM-DD date")
		}
		period.StartDate = start
	}
	if req.EndDate != nil {
		end, err := domain.ParseDate(*req.EndDate)
		if err != nil {
			return apperrors.NewValidationError("endDate", "endDate must be a YYYY-MM-DD date")
		}
		period.EndDate = end
	}
	if req.Notes != nil {
		period.Notes = req.Notes
	}
	return nil
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := domain.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("startDate", "startDate must be a YYYY-MM-DD date")
	}
	end, err := domain.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("endDate", "endDate must be a YYYY-MM-DD date")
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("endDate", "endDate must be after startDate")
	}
	return start, end, nil
}

// isExpected reports errors that are normal outcomes of a request rather than failures.
func isExpected(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrBusinessRule)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "datetime":
		return "must be a YYYY-MM-DD date"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	}
	return "is invalid"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
