package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestFilter narrows request listing and reporting queries.
// Nil fields are not applied.
type RequestFilter struct {
	ProjectID      *string
	Status         *RequestStatus
	CounterpartyID *string
	CostCenterID   *string
	CreatedBy      *string
	StartDate      *time.Time
	EndDate        *time.Time
}

// RequestSummary aggregates request outcomes for the reporting view.
type RequestSummary struct {
	TotalCount    int64           `json:"totalCount"`
	PendingCount  int64           `json:"pendingCount"`
	ApprovedCount int64           `json:"approvedCount"`
	RejectedCount int64           `json:"rejectedCount"`
	PaidCount     int64           `json:"paidCount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
}
