package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/dto"
	"github.com/oluto/oluto-backend/internal/middleware"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// registerPaymentRoutes sets up the payment routes under a business.
func registerPaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentSvcFacade) {
	h := &paymentHandler{paymentService: ps}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:payment_id", h.getPayment)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment and applies it against open invoices or
// @Description bills. Applications must not exceed the payment amount or any
// @Description target's open balance.
// @Tags payments
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Over-applied payment"
// @Security BearerAuth
// @Router /businesses/{business_id}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), c.Param("business_id"), req, userID)
	if err != nil {
		logger.Warn("Failed to record payment", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	// Fetch back with applications so the response reflects what was applied.
	full, applications, err := h.paymentService.GetPaymentByID(c.Request.Context(), c.Param("business_id"), payment.PaymentID, userID)
	if err != nil {
		c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, nil))
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(full, applications))
}

// listPayments godoc
// @Summary List payments for a business
// @Tags payments
// @Produce json
// @Param business_id path string true "Business ID"
// @Param direction query string false "Filter by direction (RECEIVED, SENT)"
// @Param contactID query string false "Filter by contact"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("business_id"), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

// getPayment godoc
// @Summary Get a payment by ID
// @Description Returns the payment together with its applications.
// @Tags payments
// @Produce json
// @Param business_id path string true "Business ID"
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/payments/{payment_id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, applications, err := h.paymentService.GetPaymentByID(c.Request.Context(), c.Param("business_id"), c.Param("payment_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, applications))
}
