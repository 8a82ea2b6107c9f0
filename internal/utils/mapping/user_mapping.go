package mapping

import (
	"github.com/paydash/payment_request_app/internal/core/domain"
	"github.com/paydash/payment_request_app/internal/models"
)

// ToModelUser converts a domain User to a model User, flattening the
// permission record into columns.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:            d.UserID,
		Username:          d.Username,
		Name:              d.Name,
		Email:             d.Email,
		PasswordHash:      d.PasswordHash,
		Role:              models.UserRole(d.Role),
		CanCreateRequest:  d.Permissions.CanCreateRequest,
		CanApprovePayment: d.Permissions.CanApprovePayment,
		CanMakePayment:    d.Permissions.CanMakePayment,
		CanViewReports:    d.Permissions.CanViewReports,
		CanManageUsers:    d.Permissions.CanManageUsers,
		MaxApprovalAmount: d.Permissions.MaxApprovalAmount,
		MaxPaymentAmount:  d.Permissions.MaxPaymentAmount,
		AuditFields:       ToModelAuditFields(d.AuditFields),
		DeletedAt:         d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		Permissions: domain.Permissions{
			CanCreateRequest:  m.CanCreateRequest,
			CanApprovePayment: m.CanApprovePayment,
			CanMakePayment:    m.CanMakePayment,
			CanViewReports:    m.CanViewReports,
			CanManageUsers:    m.CanManageUsers,
			MaxApprovalAmount: m.MaxApprovalAmount,
			MaxPaymentAmount:  m.MaxPaymentAmount,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
