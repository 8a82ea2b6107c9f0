package dto

import (
	"time"

	"github.com/paydash/payment_request_app/internal/core/domain"
)

// ReportFilterParams defines the query parameters accepted by the reporting
// endpoints. Dates are inclusive and parsed as RFC 3339.
type ReportFilterParams struct {
	StartDate      *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate        *time.Time `form:"endDate" time_format:"2006-01-02"`
	ProjectID      string     `form:"projectID"`
	Status         string     `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED PAID"`
	CounterpartyID string     `form:"counterpartyID"`
	CostCenterID   string     `form:"costCenterID"`
}

// ToDomainFilter converts the query parameters to a domain.RequestFilter.
func (p ReportFilterParams) ToDomainFilter() domain.RequestFilter {
	filter := domain.RequestFilter{
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
	}
	if p.ProjectID != "" {
		filter.ProjectID = &p.ProjectID
	}
	if p.Status != "" {
		status := domain.RequestStatus(p.Status)
		filter.Status = &status
	}
	if p.CounterpartyID != "" {
		filter.CounterpartyID = &p.CounterpartyID
	}
	if p.CostCenterID != "" {
		filter.CostCenterID = &p.CostCenterID
	}
	return filter
}

// RequestSummaryResponse wraps the aggregate reporting view.
type RequestSummaryResponse struct {
	Summary domain.RequestSummary `json:"summary"`
}
