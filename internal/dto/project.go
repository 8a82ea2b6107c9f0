package dto

import (
	"time"

	"github.com/paydash/payment_request_app/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateSubAccountRequest defines the data for adding a sub-account.
type CreateSubAccountRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateSubAccountRequest defines the data for renaming a sub-account.
type UpdateSubAccountRequest struct {
	Title string `json:"title" binding:"required"`
}

// CreateAccountRequest defines the data for adding a ledger account under a
// sub-account.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// UpdateAccountRequest defines the data for updating a ledger account.
type UpdateAccountRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// CreateCostCenterRequest defines the data for adding a cost center.
type CreateCostCenterRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// UpdateCostCenterRequest defines the data for updating a cost center.
type UpdateCostCenterRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// CreateCounterpartyRequest defines the data for adding a counterparty.
type CreateCounterpartyRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Type        domain.CounterpartyType `json:"type" binding:"required,oneof=SUPPLIER CONTRACTOR OTHER"`
	ContactInfo string                  `json:"contactInfo"`
}

// UpdateCounterpartyRequest defines the data for updating a counterparty.
type UpdateCounterpartyRequest struct {
	Name        *string                  `json:"name"`
	Type        *domain.CounterpartyType `json:"type" binding:"omitempty,oneof=SUPPLIER CONTRACTOR OTHER"`
	ContactInfo *string                  `json:"contactInfo"`
}

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID    string `json:"accountID"`
	SubAccountID string `json:"subAccountID"`
	Name         string `json:"name"`
	Code         string `json:"code"`
}

// SubAccountResponse defines the data returned for a sub-account.
type SubAccountResponse struct {
	SubAccountID string            `json:"subAccountID"`
	ProjectID    string            `json:"projectID"`
	Title        string            `json:"title"`
	Accounts     []AccountResponse `json:"accounts"`
}

// CostCenterResponse defines the data returned for a cost center.
type CostCenterResponse struct {
	CostCenterID string `json:"costCenterID"`
	ProjectID    string `json:"projectID"`
	Name         string `json:"name"`
	Code         string `json:"code"`
}

// CounterpartyResponse defines the data returned for a counterparty.
type CounterpartyResponse struct {
	CounterpartyID string                  `json:"counterpartyID"`
	ProjectID      string                  `json:"projectID"`
	Name           string                  `json:"name"`
	Type           domain.CounterpartyType `json:"type"`
	ContactInfo    string                  `json:"contactInfo"`
}

// ProjectResponse defines the data returned for a project, including its
// hierarchy when it was loaded.
type ProjectResponse struct {
	ProjectID      string                 `json:"projectID"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	IsActive       bool                   `json:"isActive"`
	SubAccounts    []SubAccountResponse   `json:"subAccounts,omitempty"`
	CostCenters    []CostCenterResponse   `json:"costCenters,omitempty"`
	Counterparties []CounterpartyResponse `json:"counterparties,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	CreatedBy      string                 `json:"createdBy"`
}

// ToProjectResponse converts a domain.Project to a ProjectResponse DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ProjectID:   p.ProjectID,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedBy,
	}
	for _, sa := range p.SubAccounts {
		saResp := SubAccountResponse{
			SubAccountID: sa.SubAccountID,
			ProjectID:    sa.ProjectID,
			Title:        sa.Title,
			Accounts:     make([]AccountResponse, 0, len(sa.Accounts)),
		}
		for _, acc := range sa.Accounts {
			saResp.Accounts = append(saResp.Accounts, AccountResponse{
				AccountID:    acc.AccountID,
				SubAccountID: acc.SubAccountID,
				Name:         acc.Name,
				Code:         acc.Code,
			})
		}
		resp.SubAccounts = append(resp.SubAccounts, saResp)
	}
	for _, cc := range p.CostCenters {
		resp.CostCenters = append(resp.CostCenters, CostCenterResponse{
			CostCenterID: cc.CostCenterID,
			ProjectID:    cc.ProjectID,
			Name:         cc.Name,
			Code:         cc.Code,
		})
	}
	for _, cp := range p.Counterparties {
		resp.Counterparties = append(resp.Counterparties, CounterpartyResponse{
			CounterpartyID: cp.CounterpartyID,
			ProjectID:      cp.ProjectID,
			Name:           cp.Name,
			Type:           cp.Type,
			ContactInfo:    cp.ContactInfo,
		})
	}
	return resp
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}
