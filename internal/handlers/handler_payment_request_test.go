package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/paydash/payment_request_app/internal/apperrors"
	"github.com/paydash/payment_request_app/internal/core/domain"
	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/dto"
	"github.com/paydash/payment_request_app/internal/handlers"
	"github.com/paydash/payment_request_app/internal/middleware"
)

// --- Mock PaymentRequestService ---
type MockPaymentRequestService struct {
	mock.Mock
}

func (m *MockPaymentRequestService) GetRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRequestService) ListRequests(ctx context.Context, params dto.ListPaymentRequestsParams) ([]domain.PaymentRequest, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.PaymentRequest), next, args.Error(2)
}

func (m *MockPaymentRequestService) CanUserApprove(ctx context.Context, userID string, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRequestService) CreateRequest(ctx context.Context, req dto.CreatePaymentRequestRequest, creatorUserID string) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRequestService) ApproveRequest(ctx context.Context, requestID string, approverID string) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, requestID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRequestService) RejectRequest(ctx context.Context, requestID string, approverID string, reason string) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, requestID, approverID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRequestService) MarkRequestPaid(ctx context.Context, requestID string, payerID string, receipt *string) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, requestID, payerID, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRequest), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PaymentRequestSvcFacade = (*MockPaymentRequestService)(nil)

// --- Test Suite ---
type PaymentRequestHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockRequestSvc *MockPaymentRequestService
	jwtSecret      string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *PaymentRequestHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pra-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *PaymentRequestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockRequestSvc = new(MockPaymentRequestService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPaymentRequestRoutes(v1, suite.mockRequestSvc)
}

func (suite *PaymentRequestHandlerTestSuite) doJSON(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func pendingRequest(requestID string) *domain.PaymentRequest {
	return &domain.PaymentRequest{
		RequestID:      requestID,
		RequestNumber:  "2026-08-001",
		ProjectID:      uuid.NewString(),
		SubAccountID:   uuid.NewString(),
		AccountID:      uuid.NewString(),
		CostCenterID:   uuid.NewString(),
		CounterpartyID: uuid.NewString(),
		Description:    "Concrete delivery",
		Amount:         decimal.RequireFromString("125000.50"),
		AccountType:    domain.PaymentBankAccount,
		Status:         domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: uuid.NewString(),
		},
	}
}

// --- Test Cases ---

func (suite *PaymentRequestHandlerTestSuite) TestCreateRequest_Success() {
	userID := uuid.NewString()
	expected := pendingRequest(uuid.NewString())

	body := dto.CreatePaymentRequestRequest{
		ProjectID:      expected.ProjectID,
		SubAccountID:   expected.SubAccountID,
		AccountID:      expected.AccountID,
		CostCenterID:   expected.CostCenterID,
		CounterpartyID: expected.CounterpartyID,
		Description:    expected.Description,
		Amount:         expected.Amount,
		AccountType:    domain.PaymentBankAccount,
	}

	suite.mockRequestSvc.On("CreateRequest",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreatePaymentRequestRequest) bool {
			return req.ProjectID == expected.ProjectID && req.Amount.Equal(expected.Amount)
		}),
		userID,
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/payment-requests", userID, body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.PaymentRequestResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.RequestID, resp.RequestID)
	suite.Equal("2026-08-001", resp.RequestNumber)
	suite.Equal(domain.StatusPending, resp.Status)

	suite.mockRequestSvc.AssertExpectations(suite.T())
}

func (suite *PaymentRequestHandlerTestSuite) TestCreateRequest_MissingAmount() {
	userID := uuid.NewString()

	body := map[string]any{
		"projectID":      uuid.NewString(),
		"subAccountID":   uuid.NewString(),
		"accountID":      uuid.NewString(),
		"costCenterID":   uuid.NewString(),
		"counterpartyID": uuid.NewString(),
		"accountType":    "CASH",
	}

	w := suite.doJSON(http.MethodPost, "/api/v1/payment-requests", userID, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRequestSvc.AssertNotCalled(suite.T(), "CreateRequest")
}

func (suite *PaymentRequestHandlerTestSuite) TestCreateRequest_NoToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payment-requests", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRequestSvc.AssertNotCalled(suite.T(), "CreateRequest")
}

func (suite *PaymentRequestHandlerTestSuite) TestListRequests_Success() {
	userID := uuid.NewString()
	first := pendingRequest(uuid.NewString())
	second := pendingRequest(uuid.NewString())
	nextToken := "b3BhcXVl"

	suite.mockRequestSvc.On("ListRequests",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListPaymentRequestsParams) bool {
			return p.Status == "PENDING" && p.Limit == 2
		}),
	).Return([]domain.PaymentRequest{*first, *second}, &nextToken, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/payment-requests?status=PENDING&limit=2", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListPaymentRequestsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Requests, 2)
	suite.Equal(first.RequestID, resp.Requests[0].RequestID)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)

	suite.mockRequestSvc.AssertExpectations(suite.T())
}

func (suite *PaymentRequestHandlerTestSuite) TestListRequests_InvalidStatus() {
	userID := uuid.NewString()

	w := suite.doJSON(http.MethodGet, "/api/v1/payment-requests?status=BOGUS", userID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRequestSvc.AssertNotCalled(suite.T(), "ListRequests")
}

func (suite *PaymentRequestHandlerTestSuite) TestGetRequest_NotFound() {
	userID := uuid.NewString()
	requestID := uuid.NewString()

	suite.mockRequestSvc.On("GetRequestByID", mock.Anything, requestID).
		Return(nil, fmt.Errorf("payment request %s: %w", requestID, apperrors.ErrNotFound)).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/payment-requests/"+requestID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockRequestSvc.AssertExpectations(suite.T())
}

func (suite *PaymentRequestHandlerTestSuite) TestApproveRequest_Success() {
	userID := uuid.NewString()
	requestID := uuid.NewString()

	approved := pendingRequest(requestID)
	now := time.Now().UTC()
	approved.Status = domain.StatusApproved
	approved.ApprovedAt = &now
	approved.ApprovedBy = &userID

	suite.mockRequestSvc.On("ApproveRequest", mock.Anything, requestID, userID).
		Return(approved, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/payment-requests/"+requestID+"/approve", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PaymentRequestResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusApproved, resp.Status)
	suite.Require().NotNil(resp.ApprovedBy)
	suite.Equal(userID, *resp.ApprovedBy)

	suite.mockRequestSvc.AssertExpectations(suite.T())
}

func (suite *PaymentRequestHandlerTestSuite) TestApproveRequest_OverLimit() {
	userID := uuid.NewString()
	requestID := uuid.NewString()

	suite.mockRequestSvc.On("ApproveRequest", mock.Anything, requestID, userID).
		Return(nil, fmt.Errorf("amount exceeds approval limit: %w", apperrors.ErrForbidden)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/payment-requests/"+requestID+"/approve", userID, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockRequestSvc.AssertExpectations(suite.T())
}

func (suite *PaymentRequestHandlerTestSuite) TestApproveRequest_AlreadyDecided() {
	userID := uuid.NewString()
	requestID := uuid.NewString()

	suite.mockRequestSvc.On("ApproveRequest", mock.Anything, requestID, userID).
		Return(nil, fmt.Errorf("payment request %s already transitioned: %w", requestID, apperrors.ErrConflict)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/payment-requests/"+requestID+"/approve", userID, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockRequestSvc.AssertExpectations(suite.T())
}

func (suite *PaymentRequestHandlerTestSuite) TestRejectRequest_Success() {
	userID := uuid.NewString()
	requestID := uuid.NewString()
	reason := "مستندات ناقص است"

	rejected := pendingRequest(requestID)
	rejected.Status = domain.StatusRejected
	rejected.RejectionReason = &reason

	suite.mockRequestSvc.On("RejectRequest", mock.Anything, requestID, userID, reason).
		Return(rejected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/payment-requests/"+requestID+"/reject", userID,
		dto.RejectPaymentRequestRequest{Reason: reason})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PaymentRequestResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusRejected, resp.Status)
	suite.Require().NotNil(resp.RejectionReason)
	suite.Equal(reason, *resp.RejectionReason)

	suite.mockRequestSvc.AssertExpectations(suite.T())
}

func (suite *PaymentRequestHandlerTestSuite) TestRejectRequest_MissingReason() {
	userID := uuid.NewString()
	requestID := uuid.NewString()

	w := suite.doJSON(http.MethodPost, "/api/v1/payment-requests/"+requestID+"/reject", userID,
		map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRequestSvc.AssertNotCalled(suite.T(), "RejectRequest")
}

func (suite *PaymentRequestHandlerTestSuite) TestMarkPaid_Success() {
	userID := uuid.NewString()
	requestID := uuid.NewString()
	receipt := "wire-ref-4471"

	paid := pendingRequest(requestID)
	now := time.Now().UTC()
	paid.Status = domain.StatusPaid
	paid.PaidAt = &now
	paid.PaidBy = &userID
	paid.PaymentReceipt = &receipt

	suite.mockRequestSvc.On("MarkRequestPaid", mock.Anything, requestID, userID,
		mock.MatchedBy(func(r *string) bool { return r != nil && *r == receipt }),
	).Return(paid, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/payment-requests/"+requestID+"/pay", userID,
		dto.MarkPaidRequest{Receipt: &receipt})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PaymentRequestResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusPaid, resp.Status)
	suite.Require().NotNil(resp.PaymentReceipt)
	suite.Equal(receipt, *resp.PaymentReceipt)

	suite.mockRequestSvc.AssertExpectations(suite.T())
}

func (suite *PaymentRequestHandlerTestSuite) TestCanApprove() {
	userID := uuid.NewString()

	suite.mockRequestSvc.On("CanUserApprove", mock.Anything, userID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("450000")) }),
	).Return(true, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/payment-requests/can-approve?amount=450000", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.CanApproveResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.CanApprove)

	suite.mockRequestSvc.AssertExpectations(suite.T())
}

func (suite *PaymentRequestHandlerTestSuite) TestCanApprove_BadAmount() {
	userID := uuid.NewString()

	w := suite.doJSON(http.MethodGet, "/api/v1/payment-requests/can-approve?amount=notanumber", userID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRequestSvc.AssertNotCalled(suite.T(), "CanUserApprove")
}

// --- Run Test Suite ---
func TestPaymentRequestHandler(t *testing.T) {
	suite.Run(t, new(PaymentRequestHandlerTestSuite))
}
