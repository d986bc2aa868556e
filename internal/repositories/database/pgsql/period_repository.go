package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_periods/internal/apperrors"
	"github.com/SscSPs/ledger_periods/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_periods/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_periods/internal/models"
	"github.com/SscSPs/ledger_periods/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	sqlStateUniqueViolation    = "23505"
	sqlStateCheckViolation     = "23514"
	sqlStateExclusionViolation = "23P01"
)

const periodColumns = `period_id, organization_id, name, period_type, start_date, end_date, status,
	closed_at, closed_by, notes, created_at, created_by, last_updated_at, last_updated_by`

// periodSelect reads period_id as text so it scans into a string.
const periodSelect = `period_id::text, organization_id, name, period_type, start_date, end_date, status,
	closed_at, closed_by, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
	periodQueries
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryWithTx {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
		periodQueries:  periodQueries{db: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)

// WithinScope runs fn in a transaction holding the scope's advisory lock, so overlap checks
// and the following write cannot interleave with another writer in the same scope.
func (r *PgxPeriodRepository) WithinScope(ctx context.Context, scope *string, fn portsrepo.PeriodTxFunc) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, scopeLockKey(scope)); err != nil {
			return apperrors.NewAppError(500, "failed to acquire period scope lock", err)
		}
		return fn(ctx, &periodQueries{db: tx, lockRows: true})
	})
}

// WithinPeriod runs fn in a transaction; periods read through the tx repository are row locked.
func (r *PgxPeriodRepository) WithinPeriod(ctx context.Context, _ string, fn portsrepo.PeriodTxFunc) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &periodQueries{db: tx, lockRows: true})
	})
}

func scopeLockKey(scope *string) string {
	return "period-scope:" + domain.ScopeKey(scope)
}

// periodQueries holds the SQL for accounting_periods, bound to a pool or a transaction.
type periodQueries struct {
	db       querier
	lockRows bool
}

var _ portsrepo.PeriodRepositoryFacade = (*periodQueries)(nil)

// FindPeriodByID retrieves a period, locking its row when bound to a transaction.
func (q *periodQueries) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodSelect + ` FROM accounting_periods WHERE period_id = $1`
	if q.lockRows {
		query += ` FOR UPDATE`
	}

	modelPeriod, err := scanPeriod(q.db.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		var pgErr *pgconn.PgError
		// 22P02: invalid_text_representation, i.e. not a UUID.
		if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find accounting period %s", periodID), err)
	}

	period := mapping.ToDomainPeriod(modelPeriod)
	return &period, nil
}

// FindOverlappingPeriods applies the closed-interval test in SQL.
func (q *periodQueries) FindOverlappingPeriods(ctx context.Context, scope *string, start, end time.Time, excludeID *string) ([]domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodSelect + `
		FROM accounting_periods
		WHERE organization_id IS NOT DISTINCT FROM $1
		  AND start_date <= $3
		  AND end_date >= $2
		  AND ($4::uuid IS NULL OR period_id <> $4::uuid)
		ORDER BY start_date`

	return q.queryPeriods(ctx, "find overlapping", query, scope, domain.DateOnly(start), domain.DateOnly(end), excludeID)
}

// FindCurrentPeriod returns the OPEN period containing asOf, latest start first.
func (q *periodQueries) FindCurrentPeriod(ctx context.Context, scope *string, asOf time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodSelect + `
		FROM accounting_periods
		WHERE status = 'OPEN'
		  AND organization_id IS NOT DISTINCT FROM $1
		  AND start_date <= $2
		  AND end_date >= $2
		ORDER BY start_date DESC
		LIMIT 1`

	modelPeriod, err := scanPeriod(q.db.QueryRow(ctx, query, scope, domain.DateOnly(asOf)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find current accounting period", err)
	}
	period := mapping.ToDomainPeriod(modelPeriod)
	return &period, nil
}

// ListPeriods returns periods matching filter, newest start first.
func (q *periodQueries) ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.AccountingPeriod, error) {
	var (
		conds []string
		args  []any
	)
	where := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Status != nil {
		where("status = $%d", string(*filter.Status))
	}
	if filter.Year != nil {
		where("EXTRACT(YEAR FROM start_date)::int = $%d", *filter.Year)
	}
	if filter.OrganizationID != nil {
		where("organization_id = $%d", *filter.OrganizationID)
	}

	query := `SELECT ` + periodSelect + ` FROM accounting_periods`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY start_date DESC, period_id`

	return q.queryPeriods(ctx, "list", query, args...)
}

// InsertPeriod persists a new period. The exclusion constraint reports overlaps that slipped past the validator.
func (q *periodQueries) InsertPeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := q.db.Exec(ctx, query,
		m.PeriodID, m.OrganizationID, m.Name, m.PeriodType, m.StartDate, m.EndDate, m.Status,
		m.ClosedAt, m.ClosedBy, m.Notes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "insert", m.PeriodID)
	}
	return nil
}

// UpdatePeriod overwrites every mutable column of an existing period.
func (q *periodQueries) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		UPDATE accounting_periods
		SET name = $2,
		    period_type = $3,
		    start_date = $4,
		    end_date = $5,
		    status = $6,
		    closed_at = $7,
		    closed_by = $8,
		    notes = $9,
		    last_updated_at = $10,
		    last_updated_by = $11
		WHERE period_id = $1`

	tag, err := q.db.Exec(ctx, query,
		m.PeriodID, m.Name, m.PeriodType, m.StartDate, m.EndDate, m.Status,
		m.ClosedAt, m.ClosedBy, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "update", m.PeriodID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RemovePeriod hard deletes a period.
func (q *periodQueries) RemovePeriod(ctx context.Context, periodID string) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM accounting_periods WHERE period_id = $1`, periodID)
	if err != nil {
		return mapWriteError(err, "delete", periodID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (q *periodQueries) queryPeriods(ctx context.Context, op, query string, args ...any) ([]domain.AccountingPeriod, error) {
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to %s accounting periods", op), err)
	}
	defer rows.Close()

	var modelPeriods []models.AccountingPeriod
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accounting period row", err)
		}
		modelPeriods = append(modelPeriods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("error iterating %s accounting periods", op), err)
	}

	return mapping.ToDomainPeriodSlice(modelPeriods), nil
}

func scanPeriod(row pgx.Row) (models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.OrganizationID,
		&m.Name,
		&m.PeriodType,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// mapWriteError translates constraint violations into domain errors.
func mapWriteError(err error, op, periodID string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateExclusionViolation:
			return apperrors.NewConflictError("accounting period overlaps an existing period in the same scope", periodID)
		case sqlStateUniqueViolation:
			return apperrors.NewConflictError("accounting period already exists", periodID)
		case sqlStateCheckViolation:
			return apperrors.NewValidationError(pgErr.ConstraintName, "violates "+pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, fmt.Sprintf("failed to %s accounting period %s", op, periodID), err)
}
