package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole mirrors domain.UserRole at the persistence layer.
type UserRole string

// User represents a user row. Permission flags are flattened into columns;
// the amount limits are nullable (NULL = unlimited).
type User struct {
	UserID            string           `db:"user_id"`
	Username          string           `db:"username"`
	Name              string           `db:"name"`
	Email             string           `db:"email"`
	PasswordHash      string           `db:"password_hash"`
	Role              UserRole         `db:"role"`
	CanCreateRequest  bool             `db:"can_create_request"`
	CanApprovePayment bool             `db:"can_approve_payment"`
	CanMakePayment    bool             `db:"can_make_payment"`
	CanViewReports    bool             `db:"can_view_reports"`
	CanManageUsers    bool             `db:"can_manage_users"`
	MaxApprovalAmount *decimal.Decimal `db:"max_approval_amount"`
	MaxPaymentAmount  *decimal.Decimal `db:"max_payment_amount"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
