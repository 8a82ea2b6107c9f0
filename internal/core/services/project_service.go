package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paydash/payment_request_app/internal/apperrors"
	"github.com/paydash/payment_request_app/internal/core/domain"
	portsrepo "github.com/paydash/payment_request_app/internal/core/ports/repositories"
	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/dto"
)

// projectService implements the ProjectSvcFacade interface.
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	requestRepo portsrepo.PaymentRequestReader
}

// ProjectServiceOption is a functional option for configuring the project
// service.
type ProjectServiceOption func(*projectService)

// WithPaymentRequestReader adds the payment-request reader used for the
// deletion-protection checks.
func WithPaymentRequestReader(repo portsrepo.PaymentRequestReader) ProjectServiceOption {
	return func(s *projectService) {
		s.requestRepo = repo
	}
}

// NewProjectService creates a new project service with the provided options.
func NewProjectService(repo portsrepo.ProjectRepositoryFacade, options ...ProjectServiceOption) portssvc.ProjectSvcFacade {
	svc := &projectService{projectRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure projectService implements the ProjectSvcFacade interface
var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("project_id", project.ProjectID))
		return nil, err
	}

	s.LogInfo(ctx, "Project created successfully", slog.String("project_id", project.ProjectID))
	return &project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectWithHierarchy(ctx, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project", slog.String("project_id", projectID))
		}
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	projects, err := s.projectRepo.FindProjects(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, err
	}
	return projects, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, userID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = userID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Project updated successfully", slog.String("project_id", projectID))
	return project, nil
}

func (s *projectService) DeactivateProject(ctx context.Context, projectID string, userID string) error {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !project.IsActive {
		return fmt.Errorf("%w: project %s is already inactive", apperrors.ErrValidation, projectID)
	}

	if err := s.projectRepo.DeactivateProject(ctx, projectID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate project", slog.String("project_id", projectID))
		return err
	}

	s.LogInfo(ctx, "Project deactivated", slog.String("project_id", projectID))
	return nil
}

// guardNotReferenced refuses deletion of a sub-entity that a pending
// request still points at.
func (s *projectService) guardNotReferenced(ctx context.Context, kind portsrepo.ReferenceKind, entityID string) error {
	count, err := s.requestRepo.CountPendingReferencing(ctx, kind, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count pending references", slog.String("entity_id", entityID))
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d pending payment request(s) still reference this entity", apperrors.ErrConflict, count)
	}
	return nil
}

func (s *projectService) AddSubAccount(ctx context.Context, projectID string, req dto.CreateSubAccountRequest, userID string) (*domain.SubAccount, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}

	now := time.Now()
	subAccount := domain.SubAccount{
		SubAccountID: uuid.NewString(),
		ProjectID:    projectID,
		Title:        req.Title,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.projectRepo.SaveSubAccount(ctx, subAccount); err != nil {
		s.LogError(ctx, err, "Failed to save sub-account", slog.String("project_id", projectID))
		return nil, err
	}
	return &subAccount, nil
}

func (s *projectService) UpdateSubAccount(ctx context.Context, projectID, subAccountID string, req dto.UpdateSubAccountRequest, userID string) (*domain.SubAccount, error) {
	subAccount, err := s.findOwnedSubAccount(ctx, projectID, subAccountID)
	if err != nil {
		return nil, err
	}

	subAccount.Title = req.Title
	subAccount.LastUpdatedAt = time.Now()
	subAccount.LastUpdatedBy = userID

	if err := s.projectRepo.UpdateSubAccount(ctx, *subAccount); err != nil {
		s.LogError(ctx, err, "Failed to update sub-account", slog.String("sub_account_id", subAccountID))
		return nil, err
	}
	return subAccount, nil
}

func (s *projectService) RemoveSubAccount(ctx context.Context, projectID, subAccountID string, userID string) error {
	if _, err := s.findOwnedSubAccount(ctx, projectID, subAccountID); err != nil {
		return err
	}
	if err := s.guardNotReferenced(ctx, portsrepo.RefSubAccount, subAccountID); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteSubAccount(ctx, subAccountID); err != nil {
		s.LogError(ctx, err, "Failed to delete sub-account", slog.String("sub_account_id", subAccountID))
		return err
	}
	s.LogInfo(ctx, "Sub-account removed", slog.String("sub_account_id", subAccountID))
	return nil
}

func (s *projectService) AddAccount(ctx context.Context, projectID, subAccountID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if _, err := s.findOwnedSubAccount(ctx, projectID, subAccountID); err != nil {
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		SubAccountID: subAccountID,
		Name:         req.Name,
		Code:         req.Code,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.projectRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("sub_account_id", subAccountID))
		return nil, err
	}
	return &account, nil
}

func (s *projectService) UpdateAccount(ctx context.Context, projectID, subAccountID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.findOwnedAccount(ctx, projectID, subAccountID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Code != nil {
		account.Code = *req.Code
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.projectRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *projectService) RemoveAccount(ctx context.Context, projectID, subAccountID, accountID string, userID string) error {
	if _, err := s.findOwnedAccount(ctx, projectID, subAccountID, accountID); err != nil {
		return err
	}
	if err := s.guardNotReferenced(ctx, portsrepo.RefAccount, accountID); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account removed", slog.String("account_id", accountID))
	return nil
}

func (s *projectService) AddCostCenter(ctx context.Context, projectID string, req dto.CreateCostCenterRequest, userID string) (*domain.CostCenter, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}

	now := time.Now()
	costCenter := domain.CostCenter{
		CostCenterID: uuid.NewString(),
		ProjectID:    projectID,
		Name:         req.Name,
		Code:         req.Code,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.projectRepo.SaveCostCenter(ctx, costCenter); err != nil {
		s.LogError(ctx, err, "Failed to save cost center", slog.String("project_id", projectID))
		return nil, err
	}
	return &costCenter, nil
}

func (s *projectService) UpdateCostCenter(ctx context.Context, projectID, costCenterID string, req dto.UpdateCostCenterRequest, userID string) (*domain.CostCenter, error) {
	costCenter, err := s.findOwnedCostCenter(ctx, projectID, costCenterID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		costCenter.Name = *req.Name
	}
	if req.Code != nil {
		costCenter.Code = *req.Code
	}
	costCenter.LastUpdatedAt = time.Now()
	costCenter.LastUpdatedBy = userID

	if err := s.projectRepo.UpdateCostCenter(ctx, *costCenter); err != nil {
		s.LogError(ctx, err, "Failed to update cost center", slog.String("cost_center_id", costCenterID))
		return nil, err
	}
	return costCenter, nil
}

func (s *projectService) RemoveCostCenter(ctx context.Context, projectID, costCenterID string, userID string) error {
	if _, err := s.findOwnedCostCenter(ctx, projectID, costCenterID); err != nil {
		return err
	}
	if err := s.guardNotReferenced(ctx, portsrepo.RefCostCenter, costCenterID); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteCostCenter(ctx, costCenterID); err != nil {
		s.LogError(ctx, err, "Failed to delete cost center", slog.String("cost_center_id", costCenterID))
		return err
	}
	s.LogInfo(ctx, "Cost center removed", slog.String("cost_center_id", costCenterID))
	return nil
}

func (s *projectService) AddCounterparty(ctx context.Context, projectID string, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}

	now := time.Now()
	counterparty := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		ProjectID:      projectID,
		Name:           req.Name,
		Type:           req.Type,
		ContactInfo:    req.ContactInfo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.projectRepo.SaveCounterparty(ctx, counterparty); err != nil {
		s.LogError(ctx, err, "Failed to save counterparty", slog.String("project_id", projectID))
		return nil, err
	}
	return &counterparty, nil
}

func (s *projectService) UpdateCounterparty(ctx context.Context, projectID, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	counterparty, err := s.findOwnedCounterparty(ctx, projectID, counterpartyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		counterparty.Name = *req.Name
	}
	if req.Type != nil {
		counterparty.Type = *req.Type
	}
	if req.ContactInfo != nil {
		counterparty.ContactInfo = *req.ContactInfo
	}
	counterparty.LastUpdatedAt = time.Now()
	counterparty.LastUpdatedBy = userID

	if err := s.projectRepo.UpdateCounterparty(ctx, *counterparty); err != nil {
		s.LogError(ctx, err, "Failed to update counterparty", slog.String("counterparty_id", counterpartyID))
		return nil, err
	}
	return counterparty, nil
}

func (s *projectService) RemoveCounterparty(ctx context.Context, projectID, counterpartyID string, userID string) error {
	if _, err := s.findOwnedCounterparty(ctx, projectID, counterpartyID); err != nil {
		return err
	}
	if err := s.guardNotReferenced(ctx, portsrepo.RefCounterparty, counterpartyID); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteCounterparty(ctx, counterpartyID); err != nil {
		s.LogError(ctx, err, "Failed to delete counterparty", slog.String("counterparty_id", counterpartyID))
		return err
	}
	s.LogInfo(ctx, "Counterparty removed", slog.String("counterparty_id", counterpartyID))
	return nil
}

// findOwnedSubAccount loads the project hierarchy and resolves a sub-account
// within it, so callers can trust the containment relationship.
func (s *projectService) findOwnedSubAccount(ctx context.Context, projectID, subAccountID string) (*domain.SubAccount, error) {
	project, err := s.projectRepo.FindProjectWithHierarchy(ctx, projectID)
	if err != nil {
		return nil, err
	}
	subAccount := project.FindSubAccount(subAccountID)
	if subAccount == nil {
		return nil, fmt.Errorf("%w: sub-account %s in project %s", apperrors.ErrNotFound, subAccountID, projectID)
	}
	return subAccount, nil
}

func (s *projectService) findOwnedAccount(ctx context.Context, projectID, subAccountID, accountID string) (*domain.Account, error) {
	subAccount, err := s.findOwnedSubAccount(ctx, projectID, subAccountID)
	if err != nil {
		return nil, err
	}
	account := subAccount.FindAccount(accountID)
	if account == nil {
		return nil, fmt.Errorf("%w: account %s in sub-account %s", apperrors.ErrNotFound, accountID, subAccountID)
	}
	return account, nil
}

func (s *projectService) findOwnedCostCenter(ctx context.Context, projectID, costCenterID string) (*domain.CostCenter, error) {
	project, err := s.projectRepo.FindProjectWithHierarchy(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range project.CostCenters {
		if project.CostCenters[i].CostCenterID == costCenterID {
			return &project.CostCenters[i], nil
		}
	}
	return nil, fmt.Errorf("%w: cost center %s in project %s", apperrors.ErrNotFound, costCenterID, projectID)
}

func (s *projectService) findOwnedCounterparty(ctx context.Context, projectID, counterpartyID string) (*domain.Counterparty, error) {
	project, err := s.projectRepo.FindProjectWithHierarchy(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range project.Counterparties {
		if project.Counterparties[i].CounterpartyID == counterpartyID {
			return &project.Counterparties[i], nil
		}
	}
	return nil, fmt.Errorf("%w: counterparty %s in project %s", apperrors.ErrNotFound, counterpartyID, projectID)
}
