package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/dto"
	"github.com/oluto/oluto-backend/internal/middleware"
)

type billHandler struct {
	billService portssvc.BillSvcFacade
}

// registerBillRoutes sets up the accounts payable routes under a business.
func registerBillRoutes(rg *gin.RouterGroup, bs portssvc.BillSvcFacade) {
	h := &billHandler{billService: bs}

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:bill_id", h.getBill)
		bills.PUT("/:bill_id", h.updateBill)
		bills.POST("/:bill_id/void", h.voidBill)
	}
}

// createBill godoc
// @Summary Record a vendor bill
// @Tags bills
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate bill number"
// @Security BearerAuth
// @Router /businesses/{business_id}/bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), c.Param("business_id"), req, userID)
	if err != nil {
		logger.Warn("Failed to create bill", slog.String("error", err.Error()), slog.String("bill_number", req.BillNumber))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List bills for a business
// @Tags bills
// @Produce json
// @Param business_id path string true "Business ID"
// @Param status query string false "Filter by status (DRAFT, OPEN, PARTIAL, PAID, VOID)"
// @Param vendorID query string false "Filter by vendor"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListBillsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), c.Param("business_id"), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListBillsResponse(bills))
}

// getBill godoc
// @Summary Get a bill by ID
// @Tags bills
// @Produce json
// @Param business_id path string true "Business ID"
// @Param bill_id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/bills/{bill_id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	bill, err := h.billService.GetBillByID(c.Request.Context(), c.Param("business_id"), c.Param("bill_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// updateBill godoc
// @Summary Update a bill
// @Description Totals cannot be edited below the amount already paid.
// @Tags bills
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param bill_id path string true "Bill ID"
// @Param bill body dto.UpdateBillRequest true "Fields to update"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/bills/{bill_id} [put]
func (h *billHandler) updateBill(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), c.Param("business_id"), c.Param("bill_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// voidBill godoc
// @Summary Void a bill
// @Description Only bills with no payments applied can be voided.
// @Tags bills
// @Produce json
// @Param business_id path string true "Business ID"
// @Param bill_id path string true "Bill ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Bill has payments applied"
// @Security BearerAuth
// @Router /businesses/{business_id}/bills/{bill_id}/void [post]
func (h *billHandler) voidBill(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.billService.VoidBill(c.Request.Context(), c.Param("business_id"), c.Param("bill_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
