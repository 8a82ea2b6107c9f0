package services

import (
	"context"

	"github.com/paydash/payment_request_app/internal/core/domain"
	"github.com/paydash/payment_request_app/internal/dto"
	"github.com/shopspring/decimal"
)

// PaymentRequestReaderSvc defines read operations for payment requests.
type PaymentRequestReaderSvc interface {
	// GetRequestByID retrieves a request with its documents.
	GetRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error)

	// ListRequests retrieves a filtered page of requests, newest first.
	ListRequests(ctx context.Context, params dto.ListPaymentRequestsParams) ([]domain.PaymentRequest, *string, error)

	// CanUserApprove answers the read-only authority query for a user and
	// amount without touching any request.
	CanUserApprove(ctx context.Context, userID string, amount decimal.Decimal) (bool, error)
}

// PaymentRequestWriterSvc defines the submission operation.
type PaymentRequestWriterSvc interface {
	// CreateRequest validates the project hierarchy references, generates
	// the request number and persists the request in PENDING status.
	CreateRequest(ctx context.Context, req dto.CreatePaymentRequestRequest, creatorUserID string) (*domain.PaymentRequest, error)
}

// PaymentRequestApprovalSvc governs the request lifecycle. All transitions
// are one-way and guarded: a transition from an unexpected current status
// fails with ErrConflict and leaves the request untouched.
type PaymentRequestApprovalSvc interface {
	// ApproveRequest transitions PENDING -> APPROVED. The approver must
	// hold CanApprovePayment and pass the authority check for the
	// request's amount.
	ApproveRequest(ctx context.Context, requestID string, approverID string) (*domain.PaymentRequest, error)

	// RejectRequest transitions PENDING -> REJECTED. The reason is
	// mandatory and stored verbatim.
	RejectRequest(ctx context.Context, requestID string, approverID string, reason string) (*domain.PaymentRequest, error)

	// MarkRequestPaid transitions APPROVED -> PAID. The payer must hold
	// CanMakePayment and pass the payment authority check.
	MarkRequestPaid(ctx context.Context, requestID string, payerID string, receipt *string) (*domain.PaymentRequest, error)
}

// PaymentRequestSvcFacade combines all payment-request service interfaces.
type PaymentRequestSvcFacade interface {
	PaymentRequestReaderSvc
	PaymentRequestWriterSvc
	PaymentRequestApprovalSvc
}
