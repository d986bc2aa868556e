package domain

import (
	"strings"
	"time"
)

// PeriodType describes the length of an accounting period. It is informational only.
type PeriodType string

const (
	PeriodMonth   PeriodType = "MONTH"
	PeriodQuarter PeriodType = "QUARTER"
	PeriodYear    PeriodType = "YEAR"
)

// PeriodStatus is the lifecycle state of an accounting period.
// Status only moves forward: OPEN -> CLOSED -> LOCKED.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

func (s PeriodStatus) rank() int {
	switch s {
	case PeriodOpen:
		return 1
	case PeriodClosed:
		return 2
	case PeriodLocked:
		return 3
	}
	return 0
}

// IsValid reports whether s is one of the known statuses.
func (s PeriodStatus) IsValid() bool {
	return s.rank() > 0
}

// CanTransitionTo reports whether moving from s to next keeps status monotonic.
func (s PeriodStatus) CanTransitionTo(next PeriodStatus) bool {
	return s.IsValid() && next.IsValid() && next.rank() > s.rank()
}

// AccountingPeriod is a named, non-overlapping date window used to bucket financial transactions.
type AccountingPeriod struct {
	PeriodID       string       `json:"periodID"`       // Primary Key (UUID)
	OrganizationID *string      `json:"organizationID"` // nil means the global scope
	Name           string       `json:"name"`
	PeriodType     PeriodType   `json:"periodType"`
	StartDate      time.Time    `json:"startDate"` // calendar date, inclusive
	EndDate        time.Time    `json:"endDate"`   // calendar date, inclusive
	Status         PeriodStatus `json:"status"`
	ClosedAt       *time.Time   `json:"closedAt,omitempty"`
	ClosedBy       *string      `json:"closedBy,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	AuditFields
}

// InScope reports whether the period belongs to scope.
func (p AccountingPeriod) InScope(scope *string) bool {
	return SameScope(p.OrganizationID, scope)
}

// Overlaps applies the closed-interval test: a period ending on the day another starts overlaps it.
func (p AccountingPeriod) Overlaps(start, end time.Time) bool {
	return !p.StartDate.After(end) && !p.EndDate.Before(start)
}

// Contains reports whether date falls inside [StartDate, EndDate].
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !p.StartDate.After(d) && !p.EndDate.Before(d)
}

// SameScope compares two optional organization scopes: both absent, or equal.
func SameScope(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// NormalizeScope maps a blank organization id to the global scope.
func NormalizeScope(scope *string) *string {
	if scope == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*scope)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ScopeKey renders a scope as a stable string for lock keys and logs.
func ScopeKey(scope *string) string {
	if scope == nil {
		return "<global>"
	}
	return *scope
}

// AppendClosingNote appends a close note without discarding prior notes.
func AppendClosingNote(existing *string, note string) string {
	if existing != nil && *existing != "" {
		return *existing + "\nClosed: " + note
	}
	return "Closed: " + note
}

// PeriodFilter narrows ListPeriods. Nil fields are not filtered on.
type PeriodFilter struct {
	Status         *PeriodStatus
	Year           *int    // matches periods whose start date falls in this calendar year
	OrganizationID *string // nil returns every scope
}

// Matches reports whether p satisfies the filter.
func (f PeriodFilter) Matches(p AccountingPeriod) bool {
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.Year != nil && p.StartDate.Year() != *f.Year {
		return false
	}
	if f.OrganizationID != nil && !p.InScope(f.OrganizationID) {
		return false
	}
	return true
}
