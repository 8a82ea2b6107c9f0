package services_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/paydash/payment_request_app/internal/apperrors"
	"github.com/paydash/payment_request_app/internal/core/domain"
	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/core/services"
	"github.com/paydash/payment_request_app/internal/dto"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetRequestSummary(ctx context.Context, filter domain.RequestFilter) (*domain.RequestSummary, error) {
	args := m.Called(ctx, filter)
	var summary *domain.RequestSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*domain.RequestSummary)
	}
	return summary, args.Error(1)
}

func (m *MockReportingRepository) FindRequestsForExport(ctx context.Context, filter domain.RequestFilter) ([]domain.PaymentRequest, error) {
	args := m.Called(ctx, filter)
	var requests []domain.PaymentRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.PaymentRequest)
	}
	return requests, args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockUserRepo      *MockUserRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockUserRepo)
}

func viewer(userID string) *domain.User {
	return &domain.User{
		UserID:      userID,
		Permissions: domain.Permissions{CanViewReports: true},
	}
}

func (suite *ReportingServiceTestSuite) TestGetRequestSummary_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := &domain.RequestSummary{
		TotalCount:   5,
		PendingCount: 2,
		PaidCount:    1,
		TotalAmount:  dec("125000"),
		PaidAmount:   dec("30000"),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(viewer(userID), nil).Once()
	suite.mockReportingRepo.On("GetRequestSummary", ctx, mock.AnythingOfType("domain.RequestFilter")).
		Return(expected, nil).Once()

	summary, err := suite.service.GetRequestSummary(ctx, dto.ReportFilterParams{}, userID)

	suite.Require().NoError(err)
	suite.Equal(expected, summary)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetRequestSummary_WithoutReportRight() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Permissions: domain.Permissions{CanCreateRequest: true}}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	summary, err := suite.service.GetRequestSummary(ctx, dto.ReportFilterParams{}, userID)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetRequestSummary", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetRequestSummary_PassesFilter() {
	ctx := context.Background()
	userID := uuid.NewString()
	projectID := uuid.NewString()
	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	params := dto.ReportFilterParams{
		ProjectID: projectID,
		Status:    "PAID",
		StartDate: &start,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(viewer(userID), nil).Once()
	suite.mockReportingRepo.On("GetRequestSummary", ctx, mock.MatchedBy(func(f domain.RequestFilter) bool {
		return f.ProjectID != nil && *f.ProjectID == projectID &&
			f.Status != nil && *f.Status == domain.StatusPaid &&
			f.StartDate != nil && f.StartDate.Equal(start)
	})).Return(&domain.RequestSummary{}, nil).Once()

	_, err := suite.service.GetRequestSummary(ctx, params, userID)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestExportRequestsCSV_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	approvedAt := time.Date(2026, time.August, 20, 9, 30, 0, 0, time.UTC)
	approverID := uuid.NewString()
	reason := "مستندات ناقص است"
	requests := []domain.PaymentRequest{
		{
			RequestID:     uuid.NewString(),
			RequestNumber: "2026-08-001",
			Amount:        dec("125000.50"),
			Description:   "Cement delivery",
			Status:        domain.StatusApproved,
			AccountType:   domain.PaymentBankAccount,
			ApprovedAt:    &approvedAt,
			ApprovedBy:    &approverID,
			AuditFields:   domain.AuditFields{CreatedAt: approvedAt.Add(-48 * time.Hour)},
		},
		{
			RequestID:       uuid.NewString(),
			RequestNumber:   "2026-08-002",
			Amount:          dec("90000"),
			Status:          domain.StatusRejected,
			RejectionReason: &reason,
			AuditFields:     domain.AuditFields{CreatedAt: approvedAt},
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(viewer(userID), nil).Once()
	suite.mockReportingRepo.On("FindRequestsForExport", ctx, mock.AnythingOfType("domain.RequestFilter")).
		Return(requests, nil).Once()

	data, err := suite.service.ExportRequestsCSV(ctx, dto.ReportFilterParams{}, userID)

	suite.Require().NoError(err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	suite.Require().NoError(err)
	suite.Require().Len(records, 3)
	suite.Equal("requestNumber", records[0][0])
	suite.Equal("2026-08-001", records[1][0])
	suite.Equal("APPROVED", records[1][1])
	suite.Equal("125000.5", records[1][2])
	suite.Equal("2026-08-20T09:30:00Z", records[1][12])
	// Rejection reasons survive export byte for byte.
	suite.Equal(reason, records[2][14])
}

func (suite *ReportingServiceTestSuite) TestExportRequestsCSV_WithoutReportRight() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	data, err := suite.service.ExportRequestsCSV(ctx, dto.ReportFilterParams{}, userID)

	suite.Require().Error(err)
	suite.Nil(data)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
