package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildledger/payables_backend/internal/apperrors"
	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	portssvc "github.com/buildledger/payables_backend/internal/core/ports/services"
	"github.com/buildledger/payables_backend/internal/dto"
	"github.com/buildledger/payables_backend/internal/middleware"
)

// payableHandler handles HTTP requests related to accounts-payable records.
type payableHandler struct {
	payableService portssvc.PayableSvcFacade
}

// newPayableHandler creates a new payableHandler.
func newPayableHandler(payableService portssvc.PayableSvcFacade) *payableHandler {
	return &payableHandler{
		payableService: payableService,
	}
}

// registerPayableRoutes registers the payable lifecycle routes on the given group.
func registerPayableRoutes(group *gin.RouterGroup, payableService portssvc.PayableSvcFacade) {
	h := newPayableHandler(payableService)
	pg := group.Group("/payables")
	pg.POST("", h.createPayable)
	pg.GET("", h.listPayables)
	pg.GET("/:apID", h.getPayable)
	pg.POST("/:apID/approve", h.approvePayable)
	pg.POST("/:apID/cancel", h.cancelPayable)
	pg.POST("/:apID/payments", h.recordPayment)
}

// createPayable godoc
// @Summary Create an accounts-payable record
// @Description Creates a new payable from a vendor invoice, in pending state
// @Tags payables
// @Accept  json
// @Produce  json
// @Param   payable body dto.CreatePayableRequest true "Payable details"
// @Success 201 {object} dto.PayableResponse "The created payable"
// @Failure 400 {object} map[string]string "Invalid request format or values"
// @Failure 401 {object} map[string]string "Missing actor"
// @Failure 409 {object} map[string]string "Duplicate invoice"
// @Failure 500 {object} map[string]string "Failed to create payable"
// @Router /payables [post]
func (h *payableHandler) createPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreatePayableRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createPayable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payable, err := h.payableService.CreatePayable(c.Request.Context(), createReq, actorID)
	if err != nil {
		respondPayableError(c, logger, err, "Failed to create payable")
		return
	}

	logger.Info("Payable created successfully", slog.String("ap_id", payable.APID), slog.String("ap_number", payable.APNumber))
	c.JSON(http.StatusCreated, dto.ToPayableResponse(payable))
}

// getPayable godoc
// @Summary Get an accounts-payable record
// @Description Retrieves a payable with its line items and payments
// @Tags payables
// @Produce  json
// @Param   apID path string true "Payable ID"
// @Success 200 {object} dto.PayableResponse "The payable"
// @Failure 404 {object} map[string]string "Payable not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payable"
// @Router /payables/{apID} [get]
func (h *payableHandler) getPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apID := c.Param("apID")

	payable, err := h.payableService.GetPayableByID(c.Request.Context(), apID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payable not found", slog.String("ap_id", apID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Payable not found"})
			return
		}
		logger.Error("Failed to get payable from service", slog.String("error", err.Error()), slog.String("ap_id", apID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payable"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// listPayables godoc
// @Summary List accounts-payable records
// @Description Retrieves a paginated list of payables, optionally filtered by status
// @Tags payables
// @Produce  json
// @Param   status query string false "Status filter"
// @Param   limit query int false "Page size (default 20)"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListPayablesResponse "The payables"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list payables"
// @Router /payables [get]
func (h *payableHandler) listPayables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListPayablesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listPayables", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	filter := portsrepo.ListPayablesFilter{
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Status != "" {
		status := domain.PayableStatus(params.Status)
		filter.Status = &status
	}

	payables, err := h.payableService.ListPayables(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list payables from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payables"})
		return
	}

	resp := dto.ListPayablesResponse{Payables: make([]dto.PayableResponse, len(payables))}
	for i := range payables {
		resp.Payables[i] = dto.ToPayableResponse(&payables[i])
	}
	c.JSON(http.StatusOK, resp)
}

// approvePayable godoc
// @Summary Approve a pending payable
// @Description Moves a pending payable to approved, recording the approver
// @Tags payables
// @Accept  json
// @Produce  json
// @Param   apID path string true "Payable ID"
// @Param   approval body dto.ApprovePayableRequest false "Approval notes"
// @Success 200 {object} dto.PayableResponse "The approved payable"
// @Failure 404 {object} map[string]string "Payable not found"
// @Failure 409 {object} map[string]string "Concurrent state change"
// @Failure 422 {object} map[string]string "Payable not in pending state"
// @Failure 500 {object} map[string]string "Failed to approve payable"
// @Router /payables/{apID}/approve [post]
func (h *payableHandler) approvePayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apID := c.Param("apID")

	approveReq := dto.ApprovePayableRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&approveReq); err != nil {
			logger.Error("Failed to bind JSON for approvePayable", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payable, err := h.payableService.ApprovePayable(c.Request.Context(), apID, approveReq, actorID)
	if err != nil {
		respondPayableError(c, logger, err, "Failed to approve payable")
		return
	}

	logger.Info("Payable approved successfully", slog.String("ap_id", apID))
	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// cancelPayable godoc
// @Summary Cancel a payable
// @Description Cancels a pending or approved payable that has no recorded payments
// @Tags payables
// @Accept  json
// @Produce  json
// @Param   apID path string true "Payable ID"
// @Param   cancellation body dto.CancelPayableRequest false "Cancellation reason"
// @Success 200 {object} dto.PayableResponse "The cancelled payable"
// @Failure 404 {object} map[string]string "Payable not found"
// @Failure 409 {object} map[string]string "Concurrent state change"
// @Failure 422 {object} map[string]string "Payable not cancellable"
// @Failure 500 {object} map[string]string "Failed to cancel payable"
// @Router /payables/{apID}/cancel [post]
func (h *payableHandler) cancelPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apID := c.Param("apID")

	cancelReq := dto.CancelPayableRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&cancelReq); err != nil {
			logger.Error("Failed to bind JSON for cancelPayable", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payable, err := h.payableService.CancelPayable(c.Request.Context(), apID, cancelReq, actorID)
	if err != nil {
		respondPayableError(c, logger, err, "Failed to cancel payable")
		return
	}

	logger.Info("Payable cancelled successfully", slog.String("ap_id", apID))
	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// recordPayment godoc
// @Summary Record a payment against a payable
// @Description Applies a full or partial payment and posts the balancing journal entry
// @Tags payables
// @Accept  json
// @Produce  json
// @Param   apID path string true "Payable ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.PayableResponse "The payable after the payment"
// @Failure 400 {object} map[string]string "Invalid amount or overpayment"
// @Failure 404 {object} map[string]string "Payable not found"
// @Failure 409 {object} map[string]string "Concurrent payment conflict"
// @Failure 422 {object} map[string]string "Payable not in a payable state"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Router /payables/{apID}/payments [post]
func (h *payableHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	apID := c.Param("apID")

	paymentReq := dto.RecordPaymentRequest{}
	if err := c.ShouldBindJSON(&paymentReq); err != nil {
		logger.Error("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payable, err := h.payableService.RecordPayment(c.Request.Context(), apID, paymentReq, actorID)
	if err != nil {
		respondPayableError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded successfully", slog.String("ap_id", apID), slog.String("status", string(payable.Status)))
	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// respondPayableError maps service error kinds onto HTTP statuses. Validation
// and invalid-operation messages are safe to echo; internal failures are not.
func respondPayableError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Payable not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Payable not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidOperation):
		logger.Warn("Invalid operation", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
