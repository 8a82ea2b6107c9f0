package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole tags a user with their function in the payment workflow.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleRequester UserRole = "REQUESTER"
	RoleApprover  UserRole = "APPROVER"
	RolePayer     UserRole = "PAYER"
)

// Permissions is the capability record attached to a user. A nil amount
// limit means unlimited authority for that action.
type Permissions struct {
	CanCreateRequest  bool             `json:"canCreateRequest"`
	CanApprovePayment bool             `json:"canApprovePayment"`
	CanMakePayment    bool             `json:"canMakePayment"`
	CanViewReports    bool             `json:"canViewReports"`
	CanManageUsers    bool             `json:"canManageUsers"`
	MaxApprovalAmount *decimal.Decimal `json:"maxApprovalAmount,omitempty"`
	MaxPaymentAmount  *decimal.Decimal `json:"maxPaymentAmount,omitempty"`
}

// CanApprove reports whether a user with these permissions may approve a
// request of the given amount. This is the authoritative service-side gate;
// any client-side check is advisory only.
func (p Permissions) CanApprove(amount decimal.Decimal) bool {
	if !p.CanApprovePayment {
		return false
	}
	if p.MaxApprovalAmount == nil {
		return true
	}
	return amount.LessThanOrEqual(*p.MaxApprovalAmount)
}

// CanPay reports whether a user with these permissions may pay out a
// request of the given amount.
func (p Permissions) CanPay(amount decimal.Decimal) bool {
	if !p.CanMakePayment {
		return false
	}
	if p.MaxPaymentAmount == nil {
		return true
	}
	return amount.LessThanOrEqual(*p.MaxPaymentAmount)
}

// DefaultPermissionsForRole returns the capability set a role starts with.
// Per-user overrides are applied on top when a user is created or updated.
func DefaultPermissionsForRole(role UserRole) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			CanCreateRequest:  true,
			CanApprovePayment: true,
			CanMakePayment:    true,
			CanViewReports:    true,
			CanManageUsers:    true,
		}
	case RoleRequester:
		return Permissions{
			CanCreateRequest: true,
		}
	case RoleApprover:
		return Permissions{
			CanApprovePayment: true,
			CanViewReports:    true,
		}
	case RolePayer:
		return Permissions{
			CanMakePayment: true,
			CanViewReports: true,
		}
	default:
		return Permissions{}
	}
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string      `json:"userID"` // Primary Key (UUID)
	Username     string      `json:"username"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Permissions  Permissions `json:"permissions"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
