package services

import (
	"context"

	"github.com/paydash/payment_request_app/internal/core/domain"
	"github.com/paydash/payment_request_app/internal/dto"
)

// ProjectReaderSvc defines read operations for project data.
type ProjectReaderSvc interface {
	// GetProjectByID retrieves a project with its full hierarchy loaded.
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves a paginated list of projects (hierarchy not
	// loaded).
	ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error)
}

// ProjectWriterSvc defines write operations for projects.
type ProjectWriterSvc interface {
	// CreateProject creates a new project.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)

	// UpdateProject updates a project's name or description.
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, userID string) (*domain.Project, error)

	// DeactivateProject soft-deletes a project.
	DeactivateProject(ctx context.Context, projectID string, userID string) error
}

// ProjectHierarchySvc defines operations on the entities nested under a
// project. Removal of an entity still referenced by a pending payment
// request fails with ErrConflict.
type ProjectHierarchySvc interface {
	AddSubAccount(ctx context.Context, projectID string, req dto.CreateSubAccountRequest, userID string) (*domain.SubAccount, error)
	UpdateSubAccount(ctx context.Context, projectID, subAccountID string, req dto.UpdateSubAccountRequest, userID string) (*domain.SubAccount, error)
	RemoveSubAccount(ctx context.Context, projectID, subAccountID string, userID string) error

	AddAccount(ctx context.Context, projectID, subAccountID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, projectID, subAccountID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	RemoveAccount(ctx context.Context, projectID, subAccountID, accountID string, userID string) error

	AddCostCenter(ctx context.Context, projectID string, req dto.CreateCostCenterRequest, userID string) (*domain.CostCenter, error)
	UpdateCostCenter(ctx context.Context, projectID, costCenterID string, req dto.UpdateCostCenterRequest, userID string) (*domain.CostCenter, error)
	RemoveCostCenter(ctx context.Context, projectID, costCenterID string, userID string) error

	AddCounterparty(ctx context.Context, projectID string, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error)
	UpdateCounterparty(ctx context.Context, projectID, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error)
	RemoveCounterparty(ctx context.Context, projectID, counterpartyID string, userID string) error
}

// ProjectSvcFacade combines all project-related service interfaces.
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
	ProjectHierarchySvc
}
