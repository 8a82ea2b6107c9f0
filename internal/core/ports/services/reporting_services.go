package services

import (
	"context"

	"github.com/paydash/payment_request_app/internal/core/domain"
	"github.com/paydash/payment_request_app/internal/dto"
)

// ReportingSvcFacade defines the reporting view over request outcomes.
// All operations require the caller to hold CanViewReports.
type ReportingSvcFacade interface {
	// GetRequestSummary aggregates counts and amounts per status for the
	// filtered set of requests.
	GetRequestSummary(ctx context.Context, params dto.ReportFilterParams, userID string) (*domain.RequestSummary, error)

	// ExportRequestsCSV renders the filtered set of requests as CSV.
	ExportRequestsCSV(ctx context.Context, params dto.ReportFilterParams, userID string) ([]byte, error)
}
