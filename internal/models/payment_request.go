package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus mirrors domain.RequestStatus at the persistence layer.
type RequestStatus string

// PaymentRequest represents a payment_requests row.
type PaymentRequest struct {
	RequestID     string `db:"request_id"`
	RequestNumber string `db:"request_number"`

	ProjectID      string `db:"project_id"`
	SubAccountID   string `db:"sub_account_id"`
	AccountID      string `db:"account_id"`
	CostCenterID   string `db:"cost_center_id"`
	CounterpartyID string `db:"counterparty_id"`

	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	AccountType string          `db:"account_type"`
	AccountInfo string          `db:"account_info"`

	Status          RequestStatus `db:"status"`
	ApprovedAt      *time.Time    `db:"approved_at"`
	ApprovedBy      *string       `db:"approved_by"`
	RejectionReason *string       `db:"rejection_reason"`
	PaidAt          *time.Time    `db:"paid_at"`
	PaidBy          *string       `db:"paid_by"`
	PaymentReceipt  *string       `db:"payment_receipt"`

	AuditFields
}

// Document represents a request_documents row.
type Document struct {
	DocumentID  string    `db:"document_id"`
	RequestID   string    `db:"request_id"`
	Name        string    `db:"name"`
	URL         string    `db:"url"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	UploadedAt  time.Time `db:"uploaded_at"`
}
