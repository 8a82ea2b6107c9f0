package models

// Project represents a project row.
type Project struct {
	ProjectID   string `db:"project_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// SubAccount represents a sub_accounts row.
type SubAccount struct {
	SubAccountID string `db:"sub_account_id"`
	ProjectID    string `db:"project_id"`
	Title        string `db:"title"`
	AuditFields
}

// Account represents an accounts row, nested under a sub-account.
type Account struct {
	AccountID    string `db:"account_id"`
	SubAccountID string `db:"sub_account_id"`
	Name         string `db:"name"`
	Code         string `db:"code"`
	AuditFields
}

// CostCenter represents a cost_centers row.
type CostCenter struct {
	CostCenterID string `db:"cost_center_id"`
	ProjectID    string `db:"project_id"`
	Name         string `db:"name"`
	Code         string `db:"code"`
	AuditFields
}

// Counterparty represents a counterparties row.
type Counterparty struct {
	CounterpartyID string `db:"counterparty_id"`
	ProjectID      string `db:"project_id"`
	Name           string `db:"name"`
	Type           string `db:"type"`
	ContactInfo    string `db:"contact_info"`
	AuditFields
}
