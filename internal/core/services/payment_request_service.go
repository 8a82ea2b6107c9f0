package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paydash/payment_request_app/internal/apperrors"
	"github.com/paydash/payment_request_app/internal/core/domain"
	portsrepo "github.com/paydash/payment_request_app/internal/core/ports/repositories"
	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/dto"
)

// requestNumberAttempts bounds retries when a concurrent submission takes
// the same per-month sequence slot.
const requestNumberAttempts = 3

// paymentRequestService implements the PaymentRequestSvcFacade interface.
type paymentRequestService struct {
	BaseService
	requestRepo portsrepo.PaymentRequestRepositoryFacade
	projectRepo portsrepo.ProjectReader
	userRepo    portsrepo.UserReader
}

// PaymentRequestServiceOption is a functional option for configuring the
// payment request service.
type PaymentRequestServiceOption func(*paymentRequestService)

// WithProjectReader adds the project repository dependency used for
// hierarchy validation.
func WithProjectReader(repo portsrepo.ProjectReader) PaymentRequestServiceOption {
	return func(s *paymentRequestService) {
		s.projectRepo = repo
	}
}

// WithUserReader adds the user repository dependency used for permission
// and authority checks.
func WithUserReader(repo portsrepo.UserReader) PaymentRequestServiceOption {
	return func(s *paymentRequestService) {
		s.userRepo = repo
	}
}

// NewPaymentRequestService creates a new payment request service with the
// provided options.
func NewPaymentRequestService(repo portsrepo.PaymentRequestRepositoryFacade, options ...PaymentRequestServiceOption) portssvc.PaymentRequestSvcFacade {
	svc := &paymentRequestService{
		requestRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure paymentRequestService implements the facade interface
var _ portssvc.PaymentRequestSvcFacade = (*paymentRequestService)(nil)

// FormatRequestNumber renders the human-readable request number for a
// creation instant and per-month sequence: YYYY-MM-NNN.
func FormatRequestNumber(at time.Time, sequence int64) string {
	return fmt.Sprintf("%04d-%02d-%03d", at.Year(), int(at.Month()), sequence)
}

func (s *paymentRequestService) CreateRequest(ctx context.Context, req dto.CreatePaymentRequestRequest, creatorUserID string) (*domain.PaymentRequest, error) {
	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find request creator", slog.String("creator_user_id", creatorUserID))
		return nil, err
	}
	if !creator.Permissions.CanCreateRequest {
		err := fmt.Errorf("%w: user %s may not create payment requests", apperrors.ErrForbidden, creatorUserID)
		s.LogWarn(ctx, "User not authorized to create payment requests", slog.String("creator_user_id", creatorUserID))
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	if err := s.validateHierarchy(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request := domain.PaymentRequest{
		RequestID:      uuid.NewString(),
		ProjectID:      req.ProjectID,
		SubAccountID:   req.SubAccountID,
		AccountID:      req.AccountID,
		CostCenterID:   req.CostCenterID,
		CounterpartyID: req.CounterpartyID,
		Description:    req.Description,
		Amount:         req.Amount,
		AccountType:    req.AccountType,
		AccountInfo:    req.AccountInfo,
		Status:         domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for _, doc := range req.Documents {
		request.Documents = append(request.Documents, domain.Document{
			DocumentID:  uuid.NewString(),
			RequestID:   request.RequestID,
			Name:        doc.Name,
			URL:         doc.URL,
			ContentType: doc.ContentType,
			SizeBytes:   doc.SizeBytes,
			UploadedAt:  now,
		})
	}

	// The sequence is the count of requests already created this calendar
	// month plus one. A unique index on request_number backs this up; a
	// concurrent submission landing on the same slot surfaces as a
	// duplicate, in which case the sequence is recomputed.
	for attempt := 0; attempt < requestNumberAttempts; attempt++ {
		count, err := s.requestRepo.CountRequestsInMonth(ctx, now.Year(), now.Month())
		if err != nil {
			s.LogError(ctx, err, "Failed to count requests for numbering")
			return nil, err
		}
		request.RequestNumber = FormatRequestNumber(now, count+1)

		err = s.requestRepo.SaveRequest(ctx, request)
		if err == nil {
			s.LogInfo(ctx, "Payment request created",
				slog.String("request_id", request.RequestID),
				slog.String("request_number", request.RequestNumber),
				slog.String("amount", request.Amount.String()))
			return &request, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save payment request", slog.String("request_id", request.RequestID))
			return nil, err
		}
		s.LogWarn(ctx, "Request number collision, retrying",
			slog.String("request_number", request.RequestNumber),
			slog.Int("attempt", attempt+1))
	}
	return nil, fmt.Errorf("%w: could not allocate a unique request number", apperrors.ErrDuplicate)
}

// validateHierarchy checks that every foreign key on the submission resolves
// within the owning project's hierarchy.
func (s *paymentRequestService) validateHierarchy(ctx context.Context, req dto.CreatePaymentRequestRequest) error {
	project, err := s.projectRepo.FindProjectWithHierarchy(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: project %s", apperrors.ErrNotFound, req.ProjectID)
		}
		s.LogError(ctx, err, "Failed to load project hierarchy", slog.String("project_id", req.ProjectID))
		return err
	}
	if !project.IsActive {
		return fmt.Errorf("%w: project %s is inactive", apperrors.ErrValidation, req.ProjectID)
	}

	subAccount := project.FindSubAccount(req.SubAccountID)
	if subAccount == nil {
		return fmt.Errorf("%w: sub-account %s does not belong to project %s", apperrors.ErrValidation, req.SubAccountID, req.ProjectID)
	}
	if subAccount.FindAccount(req.AccountID) == nil {
		return fmt.Errorf("%w: account %s does not belong to sub-account %s", apperrors.ErrValidation, req.AccountID, req.SubAccountID)
	}
	if !project.HasCostCenter(req.CostCenterID) {
		return fmt.Errorf("%w: cost center %s does not belong to project %s", apperrors.ErrValidation, req.CostCenterID, req.ProjectID)
	}
	if !project.HasCounterparty(req.CounterpartyID) {
		return fmt.Errorf("%w: counterparty %s does not belong to project %s", apperrors.ErrValidation, req.CounterpartyID, req.ProjectID)
	}
	return nil
}

func (s *paymentRequestService) GetRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment request", slog.String("request_id", requestID))
		}
		return nil, err
	}
	return request, nil
}

func (s *paymentRequestService) ListRequests(ctx context.Context, params dto.ListPaymentRequestsParams) ([]domain.PaymentRequest, *string, error) {
	filter := domain.RequestFilter{}
	if params.ProjectID != "" {
		filter.ProjectID = &params.ProjectID
	}
	if params.Status != "" {
		status := domain.RequestStatus(params.Status)
		filter.Status = &status
	}
	if params.CounterpartyID != "" {
		filter.CounterpartyID = &params.CounterpartyID
	}
	if params.CostCenterID != "" {
		filter.CostCenterID = &params.CostCenterID
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	requests, nextToken, err := s.requestRepo.FindRequests(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment requests")
		return nil, nil, err
	}
	return requests, nextToken, nil
}

func (s *paymentRequestService) CanUserApprove(ctx context.Context, userID string, amount decimal.Decimal) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Permissions.CanApprove(amount), nil
}

func (s *paymentRequestService) ApproveRequest(ctx context.Context, requestID string, approverID string) (*domain.PaymentRequest, error) {
	approver, err := s.userRepo.FindUserByID(ctx, approverID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find approver", slog.String("approver_id", approverID))
		return nil, err
	}

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// The authority predicate is the authoritative gate here, regardless of
	// what any client chose to display.
	if !approver.Permissions.CanApprove(request.Amount) {
		err := fmt.Errorf("%w: user %s may not approve amount %s", apperrors.ErrForbidden, approverID, request.Amount.String())
		s.LogWarn(ctx, "Approval denied by authority check",
			slog.String("approver_id", approverID),
			slog.String("request_id", requestID),
			slog.String("amount", request.Amount.String()))
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.requestRepo.MarkApproved(ctx, requestID, approverID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogWarn(ctx, "Approval lost the transition race or request not pending",
				slog.String("request_id", requestID),
				slog.String("status", string(request.Status)))
		} else {
			s.LogError(ctx, err, "Failed to approve payment request", slog.String("request_id", requestID))
		}
		return nil, err
	}

	request.Status = domain.StatusApproved
	request.ApprovedAt = &now
	request.ApprovedBy = &approverID
	request.LastUpdatedAt = now
	request.LastUpdatedBy = approverID

	s.LogInfo(ctx, "Payment request approved",
		slog.String("request_id", requestID),
		slog.String("approver_id", approverID))
	return request, nil
}

func (s *paymentRequestService) RejectRequest(ctx context.Context, requestID string, approverID string, reason string) (*domain.PaymentRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	approver, err := s.userRepo.FindUserByID(ctx, approverID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find approver", slog.String("approver_id", approverID))
		return nil, err
	}
	if !approver.Permissions.CanApprovePayment {
		return nil, fmt.Errorf("%w: user %s may not act on payment requests", apperrors.ErrForbidden, approverID)
	}

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.requestRepo.MarkRejected(ctx, requestID, approverID, reason, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to reject payment request", slog.String("request_id", requestID))
		}
		return nil, err
	}

	request.Status = domain.StatusRejected
	request.ApprovedAt = &now
	request.ApprovedBy = &approverID
	request.RejectionReason = &reason
	request.LastUpdatedAt = now
	request.LastUpdatedBy = approverID

	s.LogInfo(ctx, "Payment request rejected",
		slog.String("request_id", requestID),
		slog.String("approver_id", approverID))
	return request, nil
}

func (s *paymentRequestService) MarkRequestPaid(ctx context.Context, requestID string, payerID string, receipt *string) (*domain.PaymentRequest, error) {
	payer, err := s.userRepo.FindUserByID(ctx, payerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find payer", slog.String("payer_id", payerID))
		return nil, err
	}

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !payer.Permissions.CanPay(request.Amount) {
		return nil, fmt.Errorf("%w: user %s may not pay amount %s", apperrors.ErrForbidden, payerID, request.Amount.String())
	}

	now := time.Now().UTC()
	if err := s.requestRepo.MarkPaid(ctx, requestID, payerID, receipt, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to mark payment request paid", slog.String("request_id", requestID))
		}
		return nil, err
	}

	request.Status = domain.StatusPaid
	request.PaidAt = &now
	request.PaidBy = &payerID
	request.PaymentReceipt = receipt
	request.LastUpdatedAt = now
	request.LastUpdatedBy = payerID

	s.LogInfo(ctx, "Payment request marked paid",
		slog.String("request_id", requestID),
		slog.String("payer_id", payerID))
	return request, nil
}
