package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	portssvc "github.com/paydash/payment_request_app/internal/core/ports/services"
	"github.com/paydash/payment_request_app/internal/dto"
	"github.com/paydash/payment_request_app/internal/middleware"
)

// paymentRequestHandler handles HTTP requests for the payment request
// lifecycle.
type paymentRequestHandler struct {
	requestService portssvc.PaymentRequestSvcFacade
}

// newPaymentRequestHandler creates a new paymentRequestHandler.
func newPaymentRequestHandler(rs portssvc.PaymentRequestSvcFacade) *paymentRequestHandler {
	return &paymentRequestHandler{
		requestService: rs,
	}
}

// RegisterPaymentRequestRoutes registers all payment-request routes.
func RegisterPaymentRequestRoutes(rg *gin.RouterGroup, requestService portssvc.PaymentRequestSvcFacade) {
	h := newPaymentRequestHandler(requestService)

	requests := rg.Group("/payment-requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/can-approve", h.canApprove)
		requests.GET("/:id", h.getRequest)
		requests.POST("/:id/approve", h.approveRequest)
		requests.POST("/:id/reject", h.rejectRequest)
		requests.POST("/:id/pay", h.markRequestPaid)
	}
}

// createRequest godoc
// @Summary Submit a payment request
// @Description Creates a payment request in PENDING status. All referenced entities must belong to the given project.
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   request body dto.CreatePaymentRequestRequest true "Request details"
// @Success 201 {object} dto.PaymentRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-requests [post]
func (h *paymentRequestHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Payment request created",
		slog.String("request_id", request.RequestID),
		slog.String("request_number", request.RequestNumber))
	c.JSON(http.StatusCreated, dto.ToPaymentRequestResponse(request))
}

// getRequest godoc
// @Summary Get a payment request by ID
// @Description Retrieves a payment request with its attached documents.
// @Tags payment-requests
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} dto.PaymentRequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-requests/{id} [get]
func (h *paymentRequestHandler) getRequest(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	request, err := h.requestService.GetRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentRequestResponse(request))
}

// listRequests godoc
// @Summary List payment requests
// @Description Retrieves a filtered page of payment requests, newest first. Pass the returned nextToken to fetch the following page.
// @Tags payment-requests
// @Produce  json
// @Param   projectID query string false "Filter by project"
// @Param   status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED, PAID)
// @Param   counterpartyID query string false "Filter by counterparty"
// @Param   costCenterID query string false "Filter by cost center"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListPaymentRequestsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-requests [get]
func (h *paymentRequestHandler) listRequests(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var params dto.ListPaymentRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	requests, nextToken, err := h.requestService.ListRequests(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListPaymentRequestsResponse{
		Requests:  dto.ToListPaymentRequestResponse(requests),
		NextToken: nextToken,
	})
}

// canApprove godoc
// @Summary Check approval authority
// @Description Answers whether the calling user may approve a request of the given amount. Read-only; no request is touched.
// @Tags payment-requests
// @Produce  json
// @Param   amount query string true "Amount to check"
// @Success 200 {object} dto.CanApproveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-requests/can-approve [get]
func (h *paymentRequestHandler) canApprove(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid amount parameter"})
		return
	}

	canApprove, err := h.requestService.CanUserApprove(c.Request.Context(), userID, amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CanApproveResponse{CanApprove: canApprove})
}

// approveRequest godoc
// @Summary Approve a payment request
// @Description Transitions a PENDING request to APPROVED. The caller must hold approval rights covering the request's amount.
// @Tags payment-requests
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} dto.PaymentRequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-requests/{id}/approve [post]
func (h *paymentRequestHandler) approveRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.ApproveRequest(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Payment request approved", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusOK, dto.ToPaymentRequestResponse(request))
}

// rejectRequest godoc
// @Summary Reject a payment request
// @Description Transitions a PENDING request to REJECTED. A non-empty reason is required and stored verbatim.
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   rejection body dto.RejectPaymentRequestRequest true "Rejection reason"
// @Success 200 {object} dto.PaymentRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-requests/{id}/reject [post]
func (h *paymentRequestHandler) rejectRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.RejectPaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	request, err := h.requestService.RejectRequest(c.Request.Context(), c.Param("id"), userID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Payment request rejected", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusOK, dto.ToPaymentRequestResponse(request))
}

// markRequestPaid godoc
// @Summary Mark a payment request as paid
// @Description Transitions an APPROVED request to PAID, optionally recording a payment receipt reference.
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   payment body dto.MarkPaidRequest false "Payment receipt"
// @Success 200 {object} dto.PaymentRequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-requests/{id}/pay [post]
func (h *paymentRequestHandler) markRequestPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	request, err := h.requestService.MarkRequestPaid(c.Request.Context(), c.Param("id"), userID, req.Receipt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Payment request paid", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusOK, dto.ToPaymentRequestResponse(request))
}
