package repositories

import (
	"context"
	"time"

	"github.com/paydash/payment_request_app/internal/core/domain"
)

// ReferenceKind names a project sub-entity a payment request points at.
// Used by the deletion-protection check.
type ReferenceKind string

const (
	RefSubAccount   ReferenceKind = "sub_account_id"
	RefAccount      ReferenceKind = "account_id"
	RefCostCenter   ReferenceKind = "cost_center_id"
	RefCounterparty ReferenceKind = "counterparty_id"
)

// PaymentRequestReader defines read operations for payment requests.
type PaymentRequestReader interface {
	// FindRequestByID retrieves a request with its documents loaded.
	FindRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error)

	// FindRequests retrieves a filtered page of requests ordered newest
	// first, using token-based pagination on (created_at, request_id).
	FindRequests(ctx context.Context, filter domain.RequestFilter, limit int, nextToken *string) ([]domain.PaymentRequest, *string, error)

	// CountRequestsInMonth counts requests created within the given
	// calendar month (UTC). Used for request-number sequencing.
	CountRequestsInMonth(ctx context.Context, year int, month time.Month) (int64, error)

	// CountPendingReferencing counts PENDING requests pointing at the given
	// sub-entity. A non-zero count blocks deletion of that entity.
	CountPendingReferencing(ctx context.Context, kind ReferenceKind, entityID string) (int64, error)
}

// PaymentRequestWriter defines write operations for payment requests.
type PaymentRequestWriter interface {
	// SaveRequest persists a new request together with its documents
	// atomically.
	SaveRequest(ctx context.Context, request domain.PaymentRequest) error
}

// PaymentRequestTransitioner applies status transitions with a
// compare-and-set guard: each method updates the row only when its current
// status equals the expected source state, so the first transition wins and
// a racing second one surfaces as ErrConflict.
type PaymentRequestTransitioner interface {
	// MarkApproved transitions PENDING -> APPROVED.
	MarkApproved(ctx context.Context, requestID string, approverID string, now time.Time) error

	// MarkRejected transitions PENDING -> REJECTED recording the reason.
	MarkRejected(ctx context.Context, requestID string, approverID string, reason string, now time.Time) error

	// MarkPaid transitions APPROVED -> PAID recording the receipt reference.
	MarkPaid(ctx context.Context, requestID string, payerID string, receipt *string, now time.Time) error
}

// PaymentRequestRepositoryFacade combines all payment-request repository
// interfaces.
type PaymentRequestRepositoryFacade interface {
	PaymentRequestReader
	PaymentRequestWriter
	PaymentRequestTransitioner
}

// ReportingRepositoryFacade defines aggregate queries over request outcomes.
type ReportingRepositoryFacade interface {
	// GetRequestSummary aggregates counts and amount totals per status for
	// the filtered set of requests.
	GetRequestSummary(ctx context.Context, filter domain.RequestFilter) (*domain.RequestSummary, error)

	// FindRequestsForExport retrieves the full filtered set, oldest first,
	// for CSV export.
	FindRequestsForExport(ctx context.Context, filter domain.RequestFilter) ([]domain.PaymentRequest, error)
}
