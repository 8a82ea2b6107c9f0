package mapping

import (
	"github.com/paydash/payment_request_app/internal/core/domain"
	"github.com/paydash/payment_request_app/internal/models"
)

// ToModelProject converts a domain Project to a model Project. Nested
// hierarchy entities are mapped separately; they live in their own tables.
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model Projects to domain Projects
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}

// ToModelSubAccount converts a domain SubAccount to a model SubAccount
func ToModelSubAccount(d domain.SubAccount) models.SubAccount {
	return models.SubAccount{
		SubAccountID: d.SubAccountID,
		ProjectID:    d.ProjectID,
		Title:        d.Title,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubAccount converts a model SubAccount to a domain SubAccount
func ToDomainSubAccount(m models.SubAccount) domain.SubAccount {
	return domain.SubAccount{
		SubAccountID: m.SubAccountID,
		ProjectID:    m.ProjectID,
		Title:        m.Title,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		SubAccountID: d.SubAccountID,
		Name:         d.Name,
		Code:         d.Code,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		SubAccountID: m.SubAccountID,
		Name:         m.Name,
		Code:         m.Code,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCostCenter converts a domain CostCenter to a model CostCenter
func ToModelCostCenter(d domain.CostCenter) models.CostCenter {
	return models.CostCenter{
		CostCenterID: d.CostCenterID,
		ProjectID:    d.ProjectID,
		Name:         d.Name,
		Code:         d.Code,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCostCenter converts a model CostCenter to a domain CostCenter
func ToDomainCostCenter(m models.CostCenter) domain.CostCenter {
	return domain.CostCenter{
		CostCenterID: m.CostCenterID,
		ProjectID:    m.ProjectID,
		Name:         m.Name,
		Code:         m.Code,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCounterparty converts a domain Counterparty to a model Counterparty
func ToModelCounterparty(d domain.Counterparty) models.Counterparty {
	return models.Counterparty{
		CounterpartyID: d.CounterpartyID,
		ProjectID:      d.ProjectID,
		Name:           d.Name,
		Type:           string(d.Type),
		ContactInfo:    d.ContactInfo,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCounterparty converts a model Counterparty to a domain Counterparty
func ToDomainCounterparty(m models.Counterparty) domain.Counterparty {
	return domain.Counterparty{
		CounterpartyID: m.CounterpartyID,
		ProjectID:      m.ProjectID,
		Name:           m.Name,
		Type:           domain.CounterpartyType(m.Type),
		ContactInfo:    m.ContactInfo,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
