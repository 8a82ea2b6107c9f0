package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paydash/payment_request_app/internal/core/domain"
	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/dto"
	"github.com/paydash/payment_request_app/internal/middleware"
)

// projectHandler handles HTTP requests for projects and the entities
// nested under them.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

// newProjectHandler creates a new projectHandler.
func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{
		projectService: ps,
	}
}

// registerProjectRoutes registers all project-related routes.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deactivateProject)

		projects.POST("/:id/sub-accounts", h.addSubAccount)
		projects.PUT("/:id/sub-accounts/:said", h.updateSubAccount)
		projects.DELETE("/:id/sub-accounts/:said", h.removeSubAccount)

		projects.POST("/:id/sub-accounts/:said/accounts", h.addAccount)
		projects.PUT("/:id/sub-accounts/:said/accounts/:aid", h.updateAccount)
		projects.DELETE("/:id/sub-accounts/:said/accounts/:aid", h.removeAccount)

		projects.POST("/:id/cost-centers", h.addCostCenter)
		projects.PUT("/:id/cost-centers/:ccid", h.updateCostCenter)
		projects.DELETE("/:id/cost-centers/:ccid", h.removeCostCenter)

		projects.POST("/:id/counterparties", h.addCounterparty)
		projects.PUT("/:id/counterparties/:cpid", h.updateCounterparty)
		projects.DELETE("/:id/counterparties/:cpid", h.removeCounterparty)
	}
}

// createProject godoc
// @Summary Create a new project
// @Description Creates a new project with an empty hierarchy.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Project created", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// getProject godoc
// @Summary Get a project by ID
// @Description Retrieves a project with its sub-accounts, accounts, cost centers and counterparties.
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	project, err := h.projectService.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Description Retrieves a paginated list of projects without their hierarchies.
// @Tags projects
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProjectsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var params dto.ListProjectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.ListProjectsResponse{Projects: make([]dto.ProjectResponse, len(projects))}
	for i := range projects {
		resp.Projects[i] = dto.ToProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateProject godoc
// @Summary Update a project
// @Description Updates a project's name or description.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deactivateProject godoc
// @Summary Deactivate a project
// @Description Marks a project inactive. Its payment request history remains readable.
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *projectHandler) deactivateProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.DeactivateProject(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// addSubAccount godoc
// @Summary Add a sub-account to a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   subAccount body dto.CreateSubAccountRequest true "Sub-account details"
// @Success 201 {object} dto.SubAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/sub-accounts [post]
func (h *projectHandler) addSubAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSubAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	subAccount, err := h.projectService.AddSubAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSubAccountResponse(subAccount))
}

// updateSubAccount godoc
// @Summary Rename a sub-account
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   said path string true "Sub-account ID"
// @Param   subAccount body dto.UpdateSubAccountRequest true "New title"
// @Success 200 {object} dto.SubAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/sub-accounts/{said} [put]
func (h *projectHandler) updateSubAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSubAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	subAccount, err := h.projectService.UpdateSubAccount(c.Request.Context(), c.Param("id"), c.Param("said"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSubAccountResponse(subAccount))
}

// removeSubAccount godoc
// @Summary Remove a sub-account
// @Description Removes a sub-account and its nested accounts. Fails with 409 while a pending payment request references it.
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   said path string true "Sub-account ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/sub-accounts/{said} [delete]
func (h *projectHandler) removeSubAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.RemoveSubAccount(c.Request.Context(), c.Param("id"), c.Param("said"), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// addAccount godoc
// @Summary Add a ledger account under a sub-account
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   said path string true "Sub-account ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/sub-accounts/{said}/accounts [post]
func (h *projectHandler) addAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.projectService.AddAccount(c.Request.Context(), c.Param("id"), c.Param("said"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAccountResponse(account))
}

// updateAccount godoc
// @Summary Update a ledger account
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   said path string true "Sub-account ID"
// @Param   aid path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/sub-accounts/{said}/accounts/{aid} [put]
func (h *projectHandler) updateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.projectService.UpdateAccount(c.Request.Context(), c.Param("id"), c.Param("said"), c.Param("aid"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(account))
}

// removeAccount godoc
// @Summary Remove a ledger account
// @Description Removes an account. Fails with 409 while a pending payment request references it.
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   said path string true "Sub-account ID"
// @Param   aid path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/sub-accounts/{said}/accounts/{aid} [delete]
func (h *projectHandler) removeAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.RemoveAccount(c.Request.Context(), c.Param("id"), c.Param("said"), c.Param("aid"), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// addCostCenter godoc
// @Summary Add a cost center to a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   costCenter body dto.CreateCostCenterRequest true "Cost center details"
// @Success 201 {object} dto.CostCenterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/cost-centers [post]
func (h *projectHandler) addCostCenter(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	costCenter, err := h.projectService.AddCostCenter(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCostCenterResponse(costCenter))
}

// updateCostCenter godoc
// @Summary Update a cost center
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   ccid path string true "Cost center ID"
// @Param   costCenter body dto.UpdateCostCenterRequest true "Fields to update"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/cost-centers/{ccid} [put]
func (h *projectHandler) updateCostCenter(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	costCenter, err := h.projectService.UpdateCostCenter(c.Request.Context(), c.Param("id"), c.Param("ccid"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCostCenterResponse(costCenter))
}

// removeCostCenter godoc
// @Summary Remove a cost center
// @Description Removes a cost center. Fails with 409 while a pending payment request references it.
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   ccid path string true "Cost center ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/cost-centers/{ccid} [delete]
func (h *projectHandler) removeCostCenter(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.RemoveCostCenter(c.Request.Context(), c.Param("id"), c.Param("ccid"), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// addCounterparty godoc
// @Summary Add a counterparty to a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   counterparty body dto.CreateCounterpartyRequest true "Counterparty details"
// @Success 201 {object} dto.CounterpartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/counterparties [post]
func (h *projectHandler) addCounterparty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	counterparty, err := h.projectService.AddCounterparty(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCounterpartyResponse(counterparty))
}

// updateCounterparty godoc
// @Summary Update a counterparty
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   cpid path string true "Counterparty ID"
// @Param   counterparty body dto.UpdateCounterpartyRequest true "Fields to update"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/counterparties/{cpid} [put]
func (h *projectHandler) updateCounterparty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	counterparty, err := h.projectService.UpdateCounterparty(c.Request.Context(), c.Param("id"), c.Param("cpid"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCounterpartyResponse(counterparty))
}

// removeCounterparty godoc
// @Summary Remove a counterparty
// @Description Removes a counterparty. Fails with 409 while a pending payment request references it.
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   cpid path string true "Counterparty ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/counterparties/{cpid} [delete]
func (h *projectHandler) removeCounterparty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.RemoveCounterparty(c.Request.Context(), c.Param("id"), c.Param("cpid"), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toSubAccountResponse(sa *domain.SubAccount) dto.SubAccountResponse {
	resp := dto.SubAccountResponse{
		SubAccountID: sa.SubAccountID,
		ProjectID:    sa.ProjectID,
		Title:        sa.Title,
		Accounts:     make([]dto.AccountResponse, 0, len(sa.Accounts)),
	}
	for _, acc := range sa.Accounts {
		resp.Accounts = append(resp.Accounts, toAccountResponseValue(acc))
	}
	return resp
}

func toAccountResponse(acc *domain.Account) dto.AccountResponse {
	return toAccountResponseValue(*acc)
}

func toAccountResponseValue(acc domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		AccountID:    acc.AccountID,
		SubAccountID: acc.SubAccountID,
		Name:         acc.Name,
		Code:         acc.Code,
	}
}

func toCostCenterResponse(cc *domain.CostCenter) dto.CostCenterResponse {
	return dto.CostCenterResponse{
		CostCenterID: cc.CostCenterID,
		ProjectID:    cc.ProjectID,
		Name:         cc.Name,
		Code:         cc.Code,
	}
}

func toCounterpartyResponse(cp *domain.Counterparty) dto.CounterpartyResponse {
	return dto.CounterpartyResponse{
		CounterpartyID: cp.CounterpartyID,
		ProjectID:      cp.ProjectID,
		Name:           cp.Name,
		Type:           cp.Type,
		ContactInfo:    cp.ContactInfo,
	}
}
