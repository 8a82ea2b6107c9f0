package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/paydash/payment_request_app/internal/apperrors"
	"github.com/paydash/payment_request_app/internal/core/domain"
	portsrepo "github.com/paydash/payment_request_app/internal/core/ports/repositories"
	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/core/services"
	"github.com/paydash/payment_request_app/internal/dto"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Mock PaymentRequestRepository ---
type MockPaymentRequestRepository struct {
	mock.Mock
}

func (m *MockPaymentRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, requestID)
	var request *domain.PaymentRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.PaymentRequest)
	}
	return request, args.Error(1)
}

func (m *MockPaymentRequestRepository) FindRequests(ctx context.Context, filter domain.RequestFilter, limit int, nextToken *string) ([]domain.PaymentRequest, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var requests []domain.PaymentRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.PaymentRequest)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return requests, token, args.Error(2)
}

func (m *MockPaymentRequestRepository) CountRequestsInMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	args := m.Called(ctx, year, month)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRequestRepository) CountPendingReferencing(ctx context.Context, kind portsrepo.ReferenceKind, entityID string) (int64, error) {
	args := m.Called(ctx, kind, entityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRequestRepository) SaveRequest(ctx context.Context, request domain.PaymentRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPaymentRequestRepository) MarkApproved(ctx context.Context, requestID string, approverID string, now time.Time) error {
	args := m.Called(ctx, requestID, approverID, now)
	return args.Error(0)
}

func (m *MockPaymentRequestRepository) MarkRejected(ctx context.Context, requestID string, approverID string, reason string, now time.Time) error {
	args := m.Called(ctx, requestID, approverID, reason, now)
	return args.Error(0)
}

func (m *MockPaymentRequestRepository) MarkPaid(ctx context.Context, requestID string, payerID string, receipt *string, now time.Time) error {
	args := m.Called(ctx, requestID, payerID, receipt, now)
	return args.Error(0)
}

// --- Mock ProjectReader ---
type MockProjectReader struct {
	mock.Mock
}

func (m *MockProjectReader) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	var project *domain.Project
	if args.Get(0) != nil {
		project = args.Get(0).(*domain.Project)
	}
	return project, args.Error(1)
}

func (m *MockProjectReader) FindProjectWithHierarchy(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	var project *domain.Project
	if args.Get(0) != nil {
		project = args.Get(0).(*domain.Project)
	}
	return project, args.Error(1)
}

func (m *MockProjectReader) FindProjects(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	args := m.Called(ctx, limit, offset)
	var projects []domain.Project
	if args.Get(0) != nil {
		projects = args.Get(0).([]domain.Project)
	}
	return projects, args.Error(1)
}

// --- Test Suite ---
type PaymentRequestServiceTestSuite struct {
	suite.Suite
	mockRequestRepo *MockPaymentRequestRepository
	mockProjectRepo *MockProjectReader
	mockUserRepo    *MockUserRepository
	service         portssvc.PaymentRequestSvcFacade

	projectID      string
	subAccountID   string
	accountID      string
	costCenterID   string
	counterpartyID string
}

func (suite *PaymentRequestServiceTestSuite) SetupTest() {
	suite.mockRequestRepo = new(MockPaymentRequestRepository)
	suite.mockProjectRepo = new(MockProjectReader)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewPaymentRequestService(
		suite.mockRequestRepo,
		services.WithProjectReader(suite.mockProjectRepo),
		services.WithUserReader(suite.mockUserRepo),
	)

	suite.projectID = uuid.NewString()
	suite.subAccountID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.costCenterID = uuid.NewString()
	suite.counterpartyID = uuid.NewString()
}

// testProject builds a well-formed project hierarchy matching the suite IDs.
func (suite *PaymentRequestServiceTestSuite) testProject() *domain.Project {
	return &domain.Project{
		ProjectID: suite.projectID,
		Name:      "Warehouse Expansion",
		IsActive:  true,
		SubAccounts: []domain.SubAccount{{
			SubAccountID: suite.subAccountID,
			ProjectID:    suite.projectID,
			Title:        "Construction",
			Accounts: []domain.Account{{
				AccountID:    suite.accountID,
				SubAccountID: suite.subAccountID,
				Name:         "Materials",
				Code:         "5100",
			}},
		}},
		CostCenters: []domain.CostCenter{{
			CostCenterID: suite.costCenterID,
			ProjectID:    suite.projectID,
			Name:         "Site A",
			Code:         "CC-01",
		}},
		Counterparties: []domain.Counterparty{{
			CounterpartyID: suite.counterpartyID,
			ProjectID:      suite.projectID,
			Name:           "Acme Supplies",
			Type:           domain.CounterpartySupplier,
		}},
	}
}

func (suite *PaymentRequestServiceTestSuite) createReq(amount string) dto.CreatePaymentRequestRequest {
	return dto.CreatePaymentRequestRequest{
		ProjectID:      suite.projectID,
		SubAccountID:   suite.subAccountID,
		AccountID:      suite.accountID,
		CostCenterID:   suite.costCenterID,
		CounterpartyID: suite.counterpartyID,
		Description:    "Cement delivery",
		Amount:         dec(amount),
		AccountType:    domain.PaymentBankAccount,
		AccountInfo:    "IR12 3456 7890",
	}
}

func requesterWith(userID string, perms domain.Permissions) *domain.User {
	return &domain.User{UserID: userID, Permissions: perms}
}

func pendingRequest(requestID, amount string) *domain.PaymentRequest {
	return &domain.PaymentRequest{
		RequestID:     requestID,
		RequestNumber: "2026-08-004",
		Amount:        dec(amount),
		Status:        domain.StatusPending,
	}
}

// --- CreateRequest Tests ---
func (suite *PaymentRequestServiceTestSuite) TestCreateRequest_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := suite.createReq("125000")

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).
		Return(requesterWith(creatorID, domain.Permissions{CanCreateRequest: true}), nil).Once()
	suite.mockProjectRepo.On("FindProjectWithHierarchy", ctx, suite.projectID).
		Return(suite.testProject(), nil).Once()
	suite.mockRequestRepo.On("CountRequestsInMonth", ctx, mock.AnythingOfType("int"), mock.AnythingOfType("time.Month")).
		Return(int64(3), nil).Once()
	suite.mockRequestRepo.On("SaveRequest", ctx, mock.MatchedBy(func(r domain.PaymentRequest) bool {
		return r.Status == domain.StatusPending &&
			r.CreatedBy == creatorID &&
			r.Amount.Equal(dec("125000"))
	})).Return(nil).Once()

	created, err := suite.service.CreateRequest(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.StatusPending, created.Status)
	now := time.Now().UTC()
	suite.Equal(services.FormatRequestNumber(now, 4), created.RequestNumber)
	suite.Nil(created.ApprovedAt)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *PaymentRequestServiceTestSuite) TestCreateRequest_SequenceIncrementsWithinMonth() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	creator := requesterWith(creatorID, domain.Permissions{CanCreateRequest: true})

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).Return(creator, nil).Twice()
	suite.mockProjectRepo.On("FindProjectWithHierarchy", ctx, suite.projectID).
		Return(suite.testProject(), nil).Twice()
	suite.mockRequestRepo.On("CountRequestsInMonth", ctx, mock.AnythingOfType("int"), mock.AnythingOfType("time.Month")).
		Return(int64(0), nil).Once()
	suite.mockRequestRepo.On("CountRequestsInMonth", ctx, mock.AnythingOfType("int"), mock.AnythingOfType("time.Month")).
		Return(int64(1), nil).Once()
	suite.mockRequestRepo.On("SaveRequest", ctx, mock.AnythingOfType("domain.PaymentRequest")).
		Return(nil).Twice()

	first, err := suite.service.CreateRequest(ctx, suite.createReq("100"), creatorID)
	suite.Require().NoError(err)
	second, err := suite.service.CreateRequest(ctx, suite.createReq("200"), creatorID)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Equal(services.FormatRequestNumber(now, 1), first.RequestNumber)
	suite.Equal(services.FormatRequestNumber(now, 2), second.RequestNumber)
}

func (suite *PaymentRequestServiceTestSuite) TestCreateRequest_RetriesOnNumberCollision() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).
		Return(requesterWith(creatorID, domain.Permissions{CanCreateRequest: true}), nil).Once()
	suite.mockProjectRepo.On("FindProjectWithHierarchy", ctx, suite.projectID).
		Return(suite.testProject(), nil).Once()
	// A concurrent submission already took sequence 6.
	suite.mockRequestRepo.On("CountRequestsInMonth", ctx, mock.AnythingOfType("int"), mock.AnythingOfType("time.Month")).
		Return(int64(5), nil).Once()
	suite.mockRequestRepo.On("SaveRequest", ctx, mock.AnythingOfType("domain.PaymentRequest")).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockRequestRepo.On("CountRequestsInMonth", ctx, mock.AnythingOfType("int"), mock.AnythingOfType("time.Month")).
		Return(int64(6), nil).Once()
	suite.mockRequestRepo.On("SaveRequest", ctx, mock.AnythingOfType("domain.PaymentRequest")).
		Return(nil).Once()

	created, err := suite.service.CreateRequest(ctx, suite.createReq("900"), creatorID)

	suite.Require().NoError(err)
	now := time.Now().UTC()
	suite.Equal(services.FormatRequestNumber(now, 7), created.RequestNumber)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *PaymentRequestServiceTestSuite) TestCreateRequest_CreatorWithoutRight() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).
		Return(requesterWith(creatorID, domain.Permissions{}), nil).Once()

	created, err := suite.service.CreateRequest(ctx, suite.createReq("100"), creatorID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

func (suite *PaymentRequestServiceTestSuite) TestCreateRequest_NonPositiveAmount() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).
		Return(requesterWith(creatorID, domain.Permissions{CanCreateRequest: true}), nil).Twice()

	for _, amount := range []string{"0", "-10"} {
		req := suite.createReq(amount)
		created, err := suite.service.CreateRequest(ctx, req, creatorID)
		suite.Require().Error(err, "amount %s", amount)
		suite.Nil(created)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
}

func (suite *PaymentRequestServiceTestSuite) TestCreateRequest_SubAccountOutsideProject() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := suite.createReq("100")
	req.SubAccountID = uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).
		Return(requesterWith(creatorID, domain.Permissions{CanCreateRequest: true}), nil).Once()
	suite.mockProjectRepo.On("FindProjectWithHierarchy", ctx, suite.projectID).
		Return(suite.testProject(), nil).Once()

	created, err := suite.service.CreateRequest(ctx, req, creatorID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

func (suite *PaymentRequestServiceTestSuite) TestCreateRequest_InactiveProject() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	project := suite.testProject()
	project.IsActive = false

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).
		Return(requesterWith(creatorID, domain.Permissions{CanCreateRequest: true}), nil).Once()
	suite.mockProjectRepo.On("FindProjectWithHierarchy", ctx, suite.projectID).
		Return(project, nil).Once()

	created, err := suite.service.CreateRequest(ctx, suite.createReq("100"), creatorID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentRequestServiceTestSuite) TestCreateRequest_AttachesDocuments() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := suite.createReq("100")
	req.Documents = []dto.DocumentPayload{
		{Name: "invoice.pdf", URL: "https://files.example.com/invoice.pdf", ContentType: "application/pdf", SizeBytes: 48211},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).
		Return(requesterWith(creatorID, domain.Permissions{CanCreateRequest: true}), nil).Once()
	suite.mockProjectRepo.On("FindProjectWithHierarchy", ctx, suite.projectID).
		Return(suite.testProject(), nil).Once()
	suite.mockRequestRepo.On("CountRequestsInMonth", ctx, mock.AnythingOfType("int"), mock.AnythingOfType("time.Month")).
		Return(int64(0), nil).Once()
	suite.mockRequestRepo.On("SaveRequest", ctx, mock.MatchedBy(func(r domain.PaymentRequest) bool {
		return len(r.Documents) == 1 &&
			r.Documents[0].Name == "invoice.pdf" &&
			r.Documents[0].RequestID == r.RequestID &&
			r.Documents[0].DocumentID != ""
	})).Return(nil).Once()

	created, err := suite.service.CreateRequest(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.Len(created.Documents, 1)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

// --- ApproveRequest Tests ---
func (suite *PaymentRequestServiceTestSuite) TestApproveRequest_WithinAuthorityLimit() {
	ctx := context.Background()
	approverID := uuid.NewString()
	requestID := uuid.NewString()
	limit := dec("500000")
	approver := requesterWith(approverID, domain.Permissions{CanApprovePayment: true, MaxApprovalAmount: &limit})

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(approver, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(pendingRequest(requestID, "450000"), nil).Once()
	suite.mockRequestRepo.On("MarkApproved", ctx, requestID, approverID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	approved, err := suite.service.ApproveRequest(ctx, requestID, approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, approved.Status)
	suite.Require().NotNil(approved.ApprovedBy)
	suite.Equal(approverID, *approved.ApprovedBy)
	suite.NotNil(approved.ApprovedAt)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *PaymentRequestServiceTestSuite) TestApproveRequest_OverAuthorityLimit() {
	ctx := context.Background()
	approverID := uuid.NewString()
	requestID := uuid.NewString()
	limit := dec("500000")
	approver := requesterWith(approverID, domain.Permissions{CanApprovePayment: true, MaxApprovalAmount: &limit})

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(approver, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(pendingRequest(requestID, "1200000"), nil).Once()

	approved, err := suite.service.ApproveRequest(ctx, requestID, approverID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	// The request must not be touched when authority fails.
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "MarkApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentRequestServiceTestSuite) TestApproveRequest_UnlimitedAuthority() {
	ctx := context.Background()
	approverID := uuid.NewString()
	requestID := uuid.NewString()
	approver := requesterWith(approverID, domain.Permissions{CanApprovePayment: true})

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(approver, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(pendingRequest(requestID, "5000000"), nil).Once()
	suite.mockRequestRepo.On("MarkApproved", ctx, requestID, approverID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	approved, err := suite.service.ApproveRequest(ctx, requestID, approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, approved.Status)
}

func (suite *PaymentRequestServiceTestSuite) TestApproveRequest_ExactlyAtLimit() {
	ctx := context.Background()
	approverID := uuid.NewString()
	requestID := uuid.NewString()
	limit := dec("500000")
	approver := requesterWith(approverID, domain.Permissions{CanApprovePayment: true, MaxApprovalAmount: &limit})

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(approver, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(pendingRequest(requestID, "500000"), nil).Once()
	suite.mockRequestRepo.On("MarkApproved", ctx, requestID, approverID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	approved, err := suite.service.ApproveRequest(ctx, requestID, approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, approved.Status)
}

func (suite *PaymentRequestServiceTestSuite) TestApproveRequest_WithoutApprovalRight() {
	ctx := context.Background()
	approverID := uuid.NewString()
	requestID := uuid.NewString()
	approver := requesterWith(approverID, domain.Permissions{CanCreateRequest: true})

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(approver, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(pendingRequest(requestID, "10"), nil).Once()

	approved, err := suite.service.ApproveRequest(ctx, requestID, approverID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PaymentRequestServiceTestSuite) TestApproveRequest_SecondTransitionLoses() {
	ctx := context.Background()
	approverID := uuid.NewString()
	requestID := uuid.NewString()
	approver := requesterWith(approverID, domain.Permissions{CanApprovePayment: true})

	// The row was already transitioned by a racing rejection, so the guarded
	// update reports a conflict.
	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(approver, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(pendingRequest(requestID, "100"), nil).Once()
	suite.mockRequestRepo.On("MarkApproved", ctx, requestID, approverID, mock.AnythingOfType("time.Time")).
		Return(fmt.Errorf("%w: request is not pending", apperrors.ErrConflict)).Once()

	approved, err := suite.service.ApproveRequest(ctx, requestID, approverID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- RejectRequest Tests ---
func (suite *PaymentRequestServiceTestSuite) TestRejectRequest_Success() {
	ctx := context.Background()
	approverID := uuid.NewString()
	requestID := uuid.NewString()
	reason := "مستندات ناقص است"
	approver := requesterWith(approverID, domain.Permissions{CanApprovePayment: true})

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(approver, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(pendingRequest(requestID, "100"), nil).Once()
	suite.mockRequestRepo.On("MarkRejected", ctx, requestID, approverID, reason, mock.AnythingOfType("time.Time")).Return(nil).Once()

	rejected, err := suite.service.RejectRequest(ctx, requestID, approverID, reason)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, rejected.Status)
	suite.Require().NotNil(rejected.RejectionReason)
	// The reason is stored verbatim, whatever the script.
	suite.Equal(reason, *rejected.RejectionReason)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *PaymentRequestServiceTestSuite) TestRejectRequest_EmptyReason() {
	ctx := context.Background()
	approverID := uuid.NewString()
	requestID := uuid.NewString()

	for _, reason := range []string{"", "   ", "\t\n"} {
		rejected, err := suite.service.RejectRequest(ctx, requestID, approverID, reason)
		suite.Require().Error(err, "reason %q", reason)
		suite.Nil(rejected)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "MarkRejected",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentRequestServiceTestSuite) TestRejectRequest_NoAmountLimitApplies() {
	ctx := context.Background()
	approverID := uuid.NewString()
	requestID := uuid.NewString()
	limit := dec("100")
	// An approver over their approval limit can still reject.
	approver := requesterWith(approverID, domain.Permissions{CanApprovePayment: true, MaxApprovalAmount: &limit})

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(approver, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(pendingRequest(requestID, "999999"), nil).Once()
	suite.mockRequestRepo.On("MarkRejected", ctx, requestID, approverID, "over budget", mock.AnythingOfType("time.Time")).Return(nil).Once()

	rejected, err := suite.service.RejectRequest(ctx, requestID, approverID, "over budget")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, rejected.Status)
}

// --- MarkRequestPaid Tests ---
func (suite *PaymentRequestServiceTestSuite) TestMarkRequestPaid_Success() {
	ctx := context.Background()
	payerID := uuid.NewString()
	requestID := uuid.NewString()
	receipt := "wire-20260815-0042"
	payer := requesterWith(payerID, domain.Permissions{CanMakePayment: true})

	request := pendingRequest(requestID, "75000")
	request.Status = domain.StatusApproved

	suite.mockUserRepo.On("FindUserByID", ctx, payerID).Return(payer, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(request, nil).Once()
	suite.mockRequestRepo.On("MarkPaid", ctx, requestID, payerID, &receipt, mock.AnythingOfType("time.Time")).Return(nil).Once()

	paid, err := suite.service.MarkRequestPaid(ctx, requestID, payerID, &receipt)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, paid.Status)
	suite.Require().NotNil(paid.PaidBy)
	suite.Equal(payerID, *paid.PaidBy)
	suite.Equal(&receipt, paid.PaymentReceipt)
}

func (suite *PaymentRequestServiceTestSuite) TestMarkRequestPaid_WithoutPaymentRight() {
	ctx := context.Background()
	payerID := uuid.NewString()
	requestID := uuid.NewString()
	payer := requesterWith(payerID, domain.Permissions{CanApprovePayment: true})

	request := pendingRequest(requestID, "75000")
	request.Status = domain.StatusApproved

	suite.mockUserRepo.On("FindUserByID", ctx, payerID).Return(payer, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(request, nil).Once()

	paid, err := suite.service.MarkRequestPaid(ctx, requestID, payerID, nil)

	suite.Require().Error(err)
	suite.Nil(paid)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PaymentRequestServiceTestSuite) TestMarkRequestPaid_NotApproved() {
	ctx := context.Background()
	payerID := uuid.NewString()
	requestID := uuid.NewString()
	payer := requesterWith(payerID, domain.Permissions{CanMakePayment: true})

	suite.mockUserRepo.On("FindUserByID", ctx, payerID).Return(payer, nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(pendingRequest(requestID, "100"), nil).Once()
	suite.mockRequestRepo.On("MarkPaid", ctx, requestID, payerID, (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(fmt.Errorf("%w: request is not approved", apperrors.ErrConflict)).Once()

	paid, err := suite.service.MarkRequestPaid(ctx, requestID, payerID, nil)

	suite.Require().Error(err)
	suite.Nil(paid)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- CanUserApprove Tests ---
func (suite *PaymentRequestServiceTestSuite) TestCanUserApprove() {
	ctx := context.Background()
	userID := uuid.NewString()
	limit := dec("500000")
	user := requesterWith(userID, domain.Permissions{CanApprovePayment: true, MaxApprovalAmount: &limit})

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Times(3)

	ok, err := suite.service.CanUserApprove(ctx, userID, dec("499999.99"))
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.service.CanUserApprove(ctx, userID, dec("500000"))
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.service.CanUserApprove(ctx, userID, dec("500000.01"))
	suite.Require().NoError(err)
	suite.False(ok)
}

// --- ListRequests Tests ---
func (suite *PaymentRequestServiceTestSuite) TestListRequests_BuildsFilter() {
	ctx := context.Background()
	token := "eyJjcmVhdGVkQXQi"
	params := dto.ListPaymentRequestsParams{
		ProjectID: suite.projectID,
		Status:    "PENDING",
		Limit:     10,
		NextToken: &token,
	}
	expected := []domain.PaymentRequest{*pendingRequest(uuid.NewString(), "100")}
	next := "eyJuZXh0Ijox"

	suite.mockRequestRepo.On("FindRequests", ctx, mock.MatchedBy(func(f domain.RequestFilter) bool {
		return f.ProjectID != nil && *f.ProjectID == suite.projectID &&
			f.Status != nil && *f.Status == domain.StatusPending &&
			f.CounterpartyID == nil
	}), 10, &token).Return(expected, &next, nil).Once()

	requests, nextToken, err := suite.service.ListRequests(ctx, params)

	suite.Require().NoError(err)
	suite.Len(requests, 1)
	suite.Require().NotNil(nextToken)
	suite.Equal(next, *nextToken)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

// --- FormatRequestNumber Tests ---
func TestFormatRequestNumber(t *testing.T) {
	at := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	if got := services.FormatRequestNumber(at, 1); got != "2026-08-001" {
		t.Errorf("expected 2026-08-001, got %s", got)
	}
	if got := services.FormatRequestNumber(at, 42); got != "2026-08-042" {
		t.Errorf("expected 2026-08-042, got %s", got)
	}
	january := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := services.FormatRequestNumber(january, 120); got != "2027-01-120" {
		t.Errorf("expected 2027-01-120, got %s", got)
	}
}

func TestPaymentRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentRequestServiceTestSuite))
}
