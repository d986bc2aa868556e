package dto

import (
	"time"

	"github.com/SscSPs/ledger_periods/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePeriodRequest defines the data needed to create a new accounting period.
type CreatePeriodRequest struct {
	OrganizationID *string           `json:"organizationId,omitempty"`
	Name           string            `json:"name" binding:"required,max=100"`
	PeriodType     domain.PeriodType `json:"periodType" binding:"required,oneof=MONTH QUARTER YEAR"`
	StartDate      string            `json:"startDate" binding:"required,datetime=2006-01-02" example:"2024-01-01"`
	EndDate        string            `json:"endDate" binding:"required,datetime=2006-01-02" example:"2024-01-31"`
	Notes          *string           `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// UpdatePeriodRequest is a partial update. Absent fields are left unchanged.
type UpdatePeriodRequest struct {
	Name       *string            `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	PeriodType *domain.PeriodType `json:"periodType,omitempty" binding:"omitempty,oneof=MONTH QUARTER YEAR"`
	StartDate  *string            `json:"startDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string            `json:"endDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Notes      *string            `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// ChangesMoreThanNotes reports whether the patch touches any field besides notes.
func (r UpdatePeriodRequest) ChangesMoreThanNotes() bool {
	return r.Name != nil || r.PeriodType != nil || r.StartDate != nil || r.EndDate != nil
}

// ChangesDates reports whether the patch moves either boundary.
func (r UpdatePeriodRequest) ChangesDates() bool {
	return r.StartDate != nil || r.EndDate != nil
}

// ClosePeriodRequest carries the optional close note and the force override.
type ClosePeriodRequest struct {
	Notes *string `json:"notes,omitempty" binding:"omitempty,max=2000"`
	Force bool    `json:"force"`
}

// ListPeriodsQuery binds the list endpoint's query string.
type ListPeriodsQuery struct {
	Status         string `form:"status" binding:"omitempty,oneof=OPEN CLOSED LOCKED"`
	Year           *int   `form:"year" binding:"omitempty,gte=1900,lte=9999"`
	OrganizationID string `form:"organizationId"`
}

// ToFilter converts the query into a domain filter.
func (q ListPeriodsQuery) ToFilter() domain.PeriodFilter {
	filter := domain.PeriodFilter{Year: q.Year}
	if q.Status != "" {
		status := domain.PeriodStatus(q.Status)
		filter.Status = &status
	}
	return filter
}

// CurrentPeriodQuery binds the current-period endpoint's query string.
type CurrentPeriodQuery struct {
	OrganizationID string `form:"organizationId"`
	AsOf           string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID       string     `json:"periodID"`
	OrganizationID *string    `json:"organizationId"`
	Name           string     `json:"name"`
	PeriodType     string     `json:"periodType"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	Status         string     `json:"status"`
	ClosedAt       *time.Time `json:"closedAt"`
	ClosedBy       *string    `json:"closedBy"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedBy      string     `json:"createdBy"`
	LastUpdatedAt  time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy  string     `json:"lastUpdatedBy"`
}

// ListPeriodsResponse wraps a list of periods.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// CurrentPeriodResponse wraps the current period, which may be null.
type CurrentPeriodResponse struct {
	Period *PeriodResponse `json:"period"`
}

// ReconciliationSummaryResponse defines the data returned for a close summary.
type ReconciliationSummaryResponse struct {
	TransactionCount  int             `json:"transactionCount"`
	TotalDebits       decimal.Decimal `json:"totalDebits"`
	TotalCredits      decimal.Decimal `json:"totalCredits"`
	UnbalancedEntries int             `json:"unbalancedEntries"`
}

// ClosePeriodResponse is returned by a successful close.
type ClosePeriodResponse struct {
	Period  PeriodResponse                `json:"period"`
	Summary ReconciliationSummaryResponse `json:"summary"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:       p.PeriodID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		PeriodType:     string(p.PeriodType),
		StartDate:      p.StartDate.Format(domain.DateLayout),
		EndDate:        p.EndDate.Format(domain.DateLayout),
		Status:         string(p.Status),
		ClosedAt:       p.ClosedAt,
		ClosedBy:       p.ClosedBy,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
		LastUpdatedAt:  p.LastUpdatedAt,
		LastUpdatedBy:  p.LastUpdatedBy,
	}
}

// ToListPeriodsResponse converts a slice of domain.AccountingPeriod to ListPeriodsResponse.
func ToListPeriodsResponse(periods []domain.AccountingPeriod) ListPeriodsResponse {
	res := ListPeriodsResponse{Periods: make([]PeriodResponse, len(periods))}
	for i := range periods {
		res.Periods[i] = ToPeriodResponse(&periods[i])
	}
	return res
}

// ToCurrentPeriodResponse converts an optional period.
func ToCurrentPeriodResponse(p *domain.AccountingPeriod) CurrentPeriodResponse {
	if p == nil {
		return CurrentPeriodResponse{}
	}
	resp := ToPeriodResponse(p)
	return CurrentPeriodResponse{Period: &resp}
}

// ToClosePeriodResponse converts a domain.CloseResult to ClosePeriodResponse DTO.
func ToClosePeriodResponse(r *domain.CloseResult) ClosePeriodResponse {
	return ClosePeriodResponse{
		Period: ToPeriodResponse(&r.Period),
		Summary: ReconciliationSummaryResponse{
			TransactionCount:  r.Summary.TransactionCount,
			TotalDebits:       r.Summary.TotalDebits,
			TotalCredits:      r.Summary.TotalCredits,
			UnbalancedEntries: r.Summary.UnbalancedEntries,
		},
	}
}
