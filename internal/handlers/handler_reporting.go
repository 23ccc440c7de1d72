package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/dto"
	"github.com/oluto/oluto-backend/internal/middleware"
)

const reportDateLayout = "2006-01-02"

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// registerReportingRoutes sets up the financial report routes under a business.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService) {
	h := &reportingHandler{reportingService: rs}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/ar-aging", h.arAging)
	}
}

// parseAsOf reads the asOf query parameter, defaulting to today.
func parseAsOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), true
	}
	asOf, err := time.Parse(reportDateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return asOf, true
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Lists every active account with its debit or credit balance as
// @Description of a date. Total debits always equal total credits.
// @Tags reports
// @Produce json
// @Param business_id path string true "Business ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), c.Param("business_id"), asOf, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report, asOf))
}

// balanceSheet godoc
// @Summary Balance sheet report
// @Description Assets, liabilities and equity as of a date. Equity reflects
// @Description only equity-typed accounts; the period result is not closed
// @Description into equity, so an unclosed ledger may report IsBalanced false.
// @Tags reports
// @Produce json
// @Param business_id path string true "Business ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), c.Param("business_id"), asOf, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, asOf))
}

// profitAndLoss godoc
// @Summary Profit and loss report
// @Description Revenue and expense activity over a period with the resulting
// @Description net income.
// @Tags reports
// @Produce json
// @Param business_id path string true "Business ID"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reports/profit-and-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	from, err := time.Parse(reportDateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(reportDateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date, expected YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Period end must not precede period start"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), c.Param("business_id"), from, to, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// arAging godoc
// @Summary Accounts receivable aging report
// @Description Open invoice balances bucketed by days overdue per customer.
// @Tags reports
// @Produce json
// @Param business_id path string true "Business ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ARAgingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reports/ar-aging [get]
func (h *reportingHandler) arAging(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.ARAging(c.Request.Context(), c.Param("business_id"), asOf, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToARAgingResponse(report))
}
