package domain

// CounterpartyType classifies the external party receiving payment.
type CounterpartyType string

const (
	CounterpartySupplier   CounterpartyType = "SUPPLIER"
	CounterpartyContractor CounterpartyType = "CONTRACTOR"
	CounterpartyOther      CounterpartyType = "OTHER"
)

// Project is the top-level container for the payment-request hierarchy.
// It exclusively owns its sub-accounts, cost centers and counterparties;
// none of them are shared across projects.
type Project struct {
	ProjectID   string `json:"projectID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields

	// Loaded on demand; nil when the project was fetched without its hierarchy.
	SubAccounts    []SubAccount   `json:"subAccounts,omitempty"`
	CostCenters    []CostCenter   `json:"costCenters,omitempty"`
	Counterparties []Counterparty `json:"counterparties,omitempty"`
}

// SubAccount is a named grouping of ledger accounts within a project
// (e.g. "Materials & Equipment").
type SubAccount struct {
	SubAccountID string `json:"subAccountID"`
	ProjectID    string `json:"projectID"`
	Title        string `json:"title"`
	AuditFields

	Accounts []Account `json:"accounts,omitempty"`
}

// Account is a leaf ledger entry nested under a sub-account.
type Account struct {
	AccountID    string `json:"accountID"`
	SubAccountID string `json:"subAccountID"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	AuditFields
}

// CostCenter is an organizational unit against which a payment request's
// cost is attributed.
type CostCenter struct {
	CostCenterID string `json:"costCenterID"`
	ProjectID    string `json:"projectID"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	AuditFields
}

// Counterparty is the external party (supplier, contractor, other)
// receiving payment.
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyID"`
	ProjectID      string           `json:"projectID"`
	Name           string           `json:"name"`
	Type           CounterpartyType `json:"type"`
	ContactInfo    string           `json:"contactInfo"`
	AuditFields
}

// FindSubAccount returns the sub-account with the given ID, if loaded.
func (p *Project) FindSubAccount(subAccountID string) *SubAccount {
	for i := range p.SubAccounts {
		if p.SubAccounts[i].SubAccountID == subAccountID {
			return &p.SubAccounts[i]
		}
	}
	return nil
}

// FindAccount returns the account with the given ID nested under this
// sub-account, if loaded.
func (sa *SubAccount) FindAccount(accountID string) *Account {
	for i := range sa.Accounts {
		if sa.Accounts[i].AccountID == accountID {
			return &sa.Accounts[i]
		}
	}
	return nil
}

// HasCostCenter reports whether the project owns the given cost center.
func (p *Project) HasCostCenter(costCenterID string) bool {
	for i := range p.CostCenters {
		if p.CostCenters[i].CostCenterID == costCenterID {
			return true
		}
	}
	return false
}

// HasCounterparty reports whether the project owns the given counterparty.
func (p *Project) HasCounterparty(counterpartyID string) bool {
	for i := range p.Counterparties {
		if p.Counterparties[i].CounterpartyID == counterpartyID {
			return true
		}
	}
	return false
}
