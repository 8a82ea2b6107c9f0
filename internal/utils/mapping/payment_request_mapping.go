package mapping

import (
	"github.com/paydash/payment_request_app/internal/core/domain"
	"github.com/paydash/payment_request_app/internal/models"
)

// ToModelPaymentRequest converts a domain PaymentRequest to a model
// PaymentRequest. Documents are mapped separately.
func ToModelPaymentRequest(d domain.PaymentRequest) models.PaymentRequest {
	return models.PaymentRequest{
		RequestID:       d.RequestID,
		RequestNumber:   d.RequestNumber,
		ProjectID:       d.ProjectID,
		SubAccountID:    d.SubAccountID,
		AccountID:       d.AccountID,
		CostCenterID:    d.CostCenterID,
		CounterpartyID:  d.CounterpartyID,
		Description:     d.Description,
		Amount:          d.Amount,
		AccountType:     string(d.AccountType),
		AccountInfo:     d.AccountInfo,
		Status:          models.RequestStatus(d.Status),
		ApprovedAt:      d.ApprovedAt,
		ApprovedBy:      d.ApprovedBy,
		RejectionReason: d.RejectionReason,
		PaidAt:          d.PaidAt,
		PaidBy:          d.PaidBy,
		PaymentReceipt:  d.PaymentReceipt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentRequest converts a model PaymentRequest to a domain
// PaymentRequest
func ToDomainPaymentRequest(m models.PaymentRequest) domain.PaymentRequest {
	return domain.PaymentRequest{
		RequestID:       m.RequestID,
		RequestNumber:   m.RequestNumber,
		ProjectID:       m.ProjectID,
		SubAccountID:    m.SubAccountID,
		AccountID:       m.AccountID,
		CostCenterID:    m.CostCenterID,
		CounterpartyID:  m.CounterpartyID,
		Description:     m.Description,
		Amount:          m.Amount,
		AccountType:     domain.PaymentAccountType(m.AccountType),
		AccountInfo:     m.AccountInfo,
		Status:          domain.RequestStatus(m.Status),
		ApprovedAt:      m.ApprovedAt,
		ApprovedBy:      m.ApprovedBy,
		RejectionReason: m.RejectionReason,
		PaidAt:          m.PaidAt,
		PaidBy:          m.PaidBy,
		PaymentReceipt:  m.PaymentReceipt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentRequestSlice converts a slice of model PaymentRequests to
// domain PaymentRequests
func ToDomainPaymentRequestSlice(ms []models.PaymentRequest) []domain.PaymentRequest {
	ds := make([]domain.PaymentRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentRequest(m)
	}
	return ds
}

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:  d.DocumentID,
		RequestID:   d.RequestID,
		Name:        d.Name,
		URL:         d.URL,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		UploadedAt:  d.UploadedAt,
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:  m.DocumentID,
		RequestID:   m.RequestID,
		Name:        m.Name,
		URL:         m.URL,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		UploadedAt:  m.UploadedAt,
	}
}

// ToDomainDocumentSlice converts a slice of model Documents to domain
// Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}
