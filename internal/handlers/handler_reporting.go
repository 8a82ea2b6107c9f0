package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/dto"
)

// reportingHandler handles HTTP requests for reports and exports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers all reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/export", h.exportCSV)
	}
}

// getSummary godoc
// @Summary Get a payment request summary
// @Description Aggregates request counts and amounts per status for the filtered set. Requires reporting rights.
// @Tags reports
// @Produce  json
// @Param   startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   projectID query string false "Filter by project"
// @Param   status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED, PAID)
// @Param   counterpartyID query string false "Filter by counterparty"
// @Param   costCenterID query string false "Filter by cost center"
// @Success 200 {object} dto.RequestSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ReportFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	summary, err := h.reportingService.GetRequestSummary(c.Request.Context(), params, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RequestSummaryResponse{Summary: *summary})
}

// exportCSV godoc
// @Summary Export payment requests as CSV
// @Description Renders the filtered set of requests as a CSV download. Requires reporting rights.
// @Tags reports
// @Produce  text/csv
// @Param   startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   projectID query string false "Filter by project"
// @Param   status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED, PAID)
// @Param   counterpartyID query string false "Filter by counterparty"
// @Param   costCenterID query string false "Filter by cost center"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/export [get]
func (h *reportingHandler) exportCSV(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ReportFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	payload, err := h.reportingService.ExportRequestsCSV(c.Request.Context(), params, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("payment-requests-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}
