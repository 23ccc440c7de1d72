package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/dto"
	"github.com/oluto/oluto-backend/internal/middleware"
)

type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// registerJournalRoutes sets up the journal routes under a business.
func registerJournalRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: js}

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journal_id", h.getJournal)
		journals.POST("/:journal_id/reverse", h.reverseJournal)
	}
}

// createJournal godoc
// @Summary Post a journal
// @Description Posts a balanced journal with at least two transactions
// @Description spanning at least two accounts.
// @Tags journals
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param journal body dto.CreateJournalRequest true "Journal details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse "Validation failure or unbalanced journal"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), c.Param("business_id"), req, userID)
	if err != nil {
		logger.Warn("Failed to create journal", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals for a business
// @Tags journals
// @Produce json
// @Param business_id path string true "Business ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Param includeReversals query bool false "Include reversal journals" default(false)
// @Param includeTransactions query bool false "Include transaction lines" default(false)
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), c.Param("business_id"), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getJournal godoc
// @Summary Get a journal by ID
// @Description Returns the journal with its transaction lines.
// @Tags journals
// @Produce json
// @Param business_id path string true "Business ID"
// @Param journal_id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/journals/{journal_id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), c.Param("business_id"), c.Param("journal_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// reverseJournal godoc
// @Summary Reverse a journal
// @Description Creates a reversal journal with flipped debit/credit lines and
// @Description marks the original as reversed.
// @Tags journals
// @Produce json
// @Param business_id path string true "Business ID"
// @Param journal_id path string true "Journal ID"
// @Success 201 {object} dto.JournalResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Journal already reversed or is itself a reversal"
// @Security BearerAuth
// @Router /businesses/{business_id}/journals/{journal_id}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), c.Param("business_id"), c.Param("journal_id"), userID)
	if err != nil {
		logger.Warn("Failed to reverse journal", slog.String("error", err.Error()), slog.String("journal_id", c.Param("journal_id")))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}
