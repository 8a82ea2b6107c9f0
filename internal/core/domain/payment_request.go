package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus indicates the lifecycle state of a payment request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
	StatusPaid     RequestStatus = "PAID"
)

// IsTerminal reports whether no further transition is possible from the
// status. REJECTED and PAID are final; APPROVED still admits PAID.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusPaid
}

// PaymentAccountType is the payment instrument for a request.
type PaymentAccountType string

const (
	PaymentBankCard    PaymentAccountType = "BANK_CARD"
	PaymentBankAccount PaymentAccountType = "BANK_ACCOUNT"
	PaymentCash        PaymentAccountType = "CASH"
	PaymentCheck       PaymentAccountType = "CHECK"
)

// Document is a file attached to a payment request at creation time.
// Only metadata and a URL reference are stored; attachment is append-only
// at creation, there is no post-creation upload.
type Document struct {
	DocumentID  string    `json:"documentID"`
	RequestID   string    `json:"requestID"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// PaymentRequest is the only entity with a lifecycle:
// PENDING -> APPROVED | REJECTED, APPROVED -> PAID. All foreign keys must
// resolve within the owning project's hierarchy.
type PaymentRequest struct {
	RequestID     string `json:"requestID"`     // Primary Key (UUID)
	RequestNumber string `json:"requestNumber"` // Human readable, YYYY-MM-NNN

	ProjectID      string `json:"projectID"`
	SubAccountID   string `json:"subAccountID"`
	AccountID      string `json:"accountID"`
	CostCenterID   string `json:"costCenterID"`
	CounterpartyID string `json:"counterpartyID"`

	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	AccountType PaymentAccountType `json:"accountType"`
	AccountInfo string             `json:"accountInfo"`

	Documents []Document `json:"documents,omitempty"`

	Status          RequestStatus `json:"status"`
	ApprovedAt      *time.Time    `json:"approvedAt,omitempty"`
	ApprovedBy      *string       `json:"approvedBy,omitempty"`
	RejectionReason *string       `json:"rejectionReason,omitempty"`
	PaidAt          *time.Time    `json:"paidAt,omitempty"`
	PaidBy          *string       `json:"paidBy,omitempty"`
	PaymentReceipt  *string       `json:"paymentReceipt,omitempty"`

	AuditFields
}
