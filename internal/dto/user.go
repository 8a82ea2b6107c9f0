package dto

import (
	"time"

	"github.com/paydash/payment_request_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest defines the data needed to create a new user.
// Permission overrides are optional; omitted fields fall back to the
// role's default capability set.
type CreateUserRequest struct {
	Username    string                `json:"username" binding:"required,min=3,max=64"`
	Name        string                `json:"name" binding:"required"`
	Email       string                `json:"email" binding:"omitempty,email"`
	Password    string                `json:"password" binding:"required,min=8"`
	Role        domain.UserRole       `json:"role" binding:"required,oneof=ADMIN REQUESTER APPROVER PAYER"`
	Permissions *PermissionsOverrides `json:"permissions"`
}

// PermissionsOverrides carries optional per-user deviations from the role
// defaults. Pointers distinguish "not provided" from explicit false/zero.
type PermissionsOverrides struct {
	CanCreateRequest  *bool            `json:"canCreateRequest"`
	CanApprovePayment *bool            `json:"canApprovePayment"`
	CanMakePayment    *bool            `json:"canMakePayment"`
	CanViewReports    *bool            `json:"canViewReports"`
	CanManageUsers    *bool            `json:"canManageUsers"`
	MaxApprovalAmount *decimal.Decimal `json:"maxApprovalAmount"`
	MaxPaymentAmount  *decimal.Decimal `json:"maxPaymentAmount"`
}

// Apply merges the overrides onto a base permission set.
func (o *PermissionsOverrides) Apply(base domain.Permissions) domain.Permissions {
	if o == nil {
		return base
	}
	if o.CanCreateRequest != nil {
		base.CanCreateRequest = *o.CanCreateRequest
	}
	if o.CanApprovePayment != nil {
		base.CanApprovePayment = *o.CanApprovePayment
	}
	if o.CanMakePayment != nil {
		base.CanMakePayment = *o.CanMakePayment
	}
	if o.CanViewReports != nil {
		base.CanViewReports = *o.CanViewReports
	}
	if o.CanManageUsers != nil {
		base.CanManageUsers = *o.CanManageUsers
	}
	if o.MaxApprovalAmount != nil {
		base.MaxApprovalAmount = o.MaxApprovalAmount
	}
	if o.MaxPaymentAmount != nil {
		base.MaxPaymentAmount = o.MaxPaymentAmount
	}
	return base
}

// UpdateUserRequest defines the data allowed for updating a user.
type UpdateUserRequest struct {
	Name        *string               `json:"name"`
	Email       *string               `json:"email" binding:"omitempty,email"`
	Role        *domain.UserRole      `json:"role" binding:"omitempty,oneof=ADMIN REQUESTER APPROVER PAYER"`
	Permissions *PermissionsOverrides `json:"permissions"`
}

// UserResponse defines the data returned for a user. The password hash is
// never exposed.
type UserResponse struct {
	UserID      string             `json:"userID"`
	Username    string             `json:"username"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        domain.UserRole    `json:"role"`
	Permissions domain.Permissions `json:"permissions"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
		CreatedAt:   u.CreatedAt,
		CreatedBy:   u.CreatedBy,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}
