package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/paydash/payment_request_app/internal/apperrors"
	"github.com/paydash/payment_request_app/internal/core/domain"
	portsrepo "github.com/paydash/payment_request_app/internal/core/ports/repositories"
	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/dto"
)

// reportingService implements the ReportingSvcFacade interface.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	userRepo      portsrepo.UserReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, userRepo: userRepo}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) authorizeViewer(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Permissions.CanViewReports {
		return fmt.Errorf("%w: user %s cannot view reports", apperrors.ErrForbidden, userID)
	}
	return nil
}

func (s *reportingService) GetRequestSummary(ctx context.Context, params dto.ReportFilterParams, userID string) (*domain.RequestSummary, error) {
	if err := s.authorizeViewer(ctx, userID); err != nil {
		return nil, err
	}

	summary, err := s.reportingRepo.GetRequestSummary(ctx, params.ToDomainFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to build request summary")
		return nil, err
	}
	return summary, nil
}

// csvExportHeader is the column order of the exported report.
var csvExportHeader = []string{
	"requestNumber", "status", "amount", "description",
	"projectID", "subAccountID", "accountID", "costCenterID", "counterpartyID",
	"paymentAccountType", "createdAt", "createdBy",
	"approvedAt", "approvedBy", "rejectionReason", "paidAt", "paidBy",
}

func (s *reportingService) ExportRequestsCSV(ctx context.Context, params dto.ReportFilterParams, userID string) ([]byte, error) {
	if err := s.authorizeViewer(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.reportingRepo.FindRequestsForExport(ctx, params.ToDomainFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to load requests for export")
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvExportHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for i := range requests {
		if err := writer.Write(csvExportRow(&requests[i])); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	s.LogInfo(ctx, "Report exported", slog.Int("rows", len(requests)))
	return buf.Bytes(), nil
}

func csvExportRow(request *domain.PaymentRequest) []string {
	return []string{
		request.RequestNumber,
		string(request.Status),
		request.Amount.String(),
		request.Description,
		request.ProjectID,
		request.SubAccountID,
		request.AccountID,
		request.CostCenterID,
		request.CounterpartyID,
		string(request.AccountType),
		request.CreatedAt.UTC().Format(time.RFC3339),
		request.CreatedBy,
		formatOptionalTime(request.ApprovedAt),
		derefOrEmpty(request.ApprovedBy),
		derefOrEmpty(request.RejectionReason),
		formatOptionalTime(request.PaidAt),
		derefOrEmpty(request.PaidBy),
	}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
