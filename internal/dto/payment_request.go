package dto

import (
	"time"

	"github.com/paydash/payment_request_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentPayload describes an uploaded file reference attached at request
// creation. The backend stores metadata and the URL only.
type DocumentPayload struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes" binding:"omitempty,min=0"`
}

// CreatePaymentRequestRequest defines the data needed to submit a new
// payment request.
type CreatePaymentRequestRequest struct {
	ProjectID      string                    `json:"projectID" binding:"required"`
	SubAccountID   string                    `json:"subAccountID" binding:"required"`
	AccountID      string                    `json:"accountID" binding:"required"`
	CostCenterID   string                    `json:"costCenterID" binding:"required"`
	CounterpartyID string                    `json:"counterpartyID" binding:"required"`
	Description    string                    `json:"description"`
	Amount         decimal.Decimal           `json:"amount" binding:"required,dgt0"`
	AccountType    domain.PaymentAccountType `json:"accountType" binding:"required,oneof=BANK_CARD BANK_ACCOUNT CASH CHECK"`
	AccountInfo    string                    `json:"accountInfo"`
	Documents      []DocumentPayload         `json:"documents" binding:"omitempty,dive"`
}

// RejectPaymentRequestRequest carries the mandatory rejection reason.
type RejectPaymentRequestRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// MarkPaidRequest carries the optional payment receipt reference.
type MarkPaidRequest struct {
	Receipt *string `json:"receipt"`
}

// DocumentResponse defines the data returned for an attached document.
type DocumentResponse struct {
	DocumentID  string    `json:"documentID"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// PaymentRequestResponse defines the data returned for a payment request.
type PaymentRequestResponse struct {
	RequestID       string                    `json:"requestID"`
	RequestNumber   string                    `json:"requestNumber"`
	ProjectID       string                    `json:"projectID"`
	SubAccountID    string                    `json:"subAccountID"`
	AccountID       string                    `json:"accountID"`
	CostCenterID    string                    `json:"costCenterID"`
	CounterpartyID  string                    `json:"counterpartyID"`
	Description     string                    `json:"description"`
	Amount          decimal.Decimal           `json:"amount"`
	AccountType     domain.PaymentAccountType `json:"accountType"`
	AccountInfo     string                    `json:"accountInfo"`
	Documents       []DocumentResponse        `json:"documents,omitempty"`
	Status          domain.RequestStatus      `json:"status"`
	ApprovedAt      *time.Time                `json:"approvedAt,omitempty"`
	ApprovedBy      *string                   `json:"approvedBy,omitempty"`
	RejectionReason *string                   `json:"rejectionReason,omitempty"`
	PaidAt          *time.Time                `json:"paidAt,omitempty"`
	PaidBy          *string                   `json:"paidBy,omitempty"`
	PaymentReceipt  *string                   `json:"paymentReceipt,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
	CreatedBy       string                    `json:"createdBy"`
}

// ToPaymentRequestResponse converts a domain.PaymentRequest to its DTO.
func ToPaymentRequestResponse(r *domain.PaymentRequest) PaymentRequestResponse {
	resp := PaymentRequestResponse{
		RequestID:       r.RequestID,
		RequestNumber:   r.RequestNumber,
		ProjectID:       r.ProjectID,
		SubAccountID:    r.SubAccountID,
		AccountID:       r.AccountID,
		CostCenterID:    r.CostCenterID,
		CounterpartyID:  r.CounterpartyID,
		Description:     r.Description,
		Amount:          r.Amount,
		AccountType:     r.AccountType,
		AccountInfo:     r.AccountInfo,
		Status:          r.Status,
		ApprovedAt:      r.ApprovedAt,
		ApprovedBy:      r.ApprovedBy,
		RejectionReason: r.RejectionReason,
		PaidAt:          r.PaidAt,
		PaidBy:          r.PaidBy,
		PaymentReceipt:  r.PaymentReceipt,
		CreatedAt:       r.CreatedAt,
		CreatedBy:       r.CreatedBy,
	}
	for _, doc := range r.Documents {
		resp.Documents = append(resp.Documents, DocumentResponse{
			DocumentID:  doc.DocumentID,
			Name:        doc.Name,
			URL:         doc.URL,
			ContentType: doc.ContentType,
			SizeBytes:   doc.SizeBytes,
			UploadedAt:  doc.UploadedAt,
		})
	}
	return resp
}

// ToListPaymentRequestResponse converts a slice of domain requests.
func ToListPaymentRequestResponse(requests []domain.PaymentRequest) []PaymentRequestResponse {
	res := make([]PaymentRequestResponse, len(requests))
	for i := range requests {
		res[i] = ToPaymentRequestResponse(&requests[i])
	}
	return res
}

// ListPaymentRequestsParams defines query parameters for listing requests.
type ListPaymentRequestsParams struct {
	ProjectID      string  `form:"projectID"`
	Status         string  `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED PAID"`
	CounterpartyID string  `form:"counterpartyID"`
	CostCenterID   string  `form:"costCenterID"`
	Limit          int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken      *string `form:"nextToken"`
}

// ListPaymentRequestsResponse wraps a page of requests together with the
// pagination token for the next page, if any.
type ListPaymentRequestsResponse struct {
	Requests  []PaymentRequestResponse `json:"requests"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// CanApproveResponse answers the read-only authority query.
type CanApproveResponse struct {
	CanApprove bool `json:"canApprove"`
}
