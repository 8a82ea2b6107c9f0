package repositories

import (
	"context"
	"time"

	"github.com/paydash/payment_request_app/internal/core/domain"
)

// ProjectReader defines read operations for project data.
type ProjectReader interface {
	// FindProjectByID retrieves a project without its nested hierarchy.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// FindProjectWithHierarchy retrieves a project with its sub-accounts
	// (including nested accounts), cost centers and counterparties loaded.
	FindProjectWithHierarchy(ctx context.Context, projectID string) (*domain.Project, error)

	// FindProjects retrieves a paginated list of projects.
	FindProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error)
}

// ProjectWriter defines write operations for projects.
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject updates a project's own fields (not its hierarchy).
	UpdateProject(ctx context.Context, project domain.Project) error

	// DeactivateProject soft-deletes a project.
	DeactivateProject(ctx context.Context, projectID string, userID string, now time.Time) error
}

// ProjectHierarchyWriter defines write operations for entities nested under
// a project. Deletes are hard deletes; the service layer is responsible for
// refusing deletion of entities still referenced by pending requests.
type ProjectHierarchyWriter interface {
	SaveSubAccount(ctx context.Context, subAccount domain.SubAccount) error
	UpdateSubAccount(ctx context.Context, subAccount domain.SubAccount) error
	DeleteSubAccount(ctx context.Context, subAccountID string) error

	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeleteAccount(ctx context.Context, accountID string) error

	SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error
	UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error
	DeleteCostCenter(ctx context.Context, costCenterID string) error

	SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error
	UpdateCounterparty(ctx context.Context, counterparty domain.Counterparty) error
	DeleteCounterparty(ctx context.Context, counterpartyID string) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
	ProjectHierarchyWriter
}
