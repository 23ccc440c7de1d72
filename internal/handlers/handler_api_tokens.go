package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/dto"
	"github.com/oluto/oluto-backend/internal/middleware"
)

type apiTokenHandler struct {
	tokenService portssvc.APITokenSvc
}

// registerAPITokenRoutes sets up the routes for API token management.
func registerAPITokenRoutes(rg *gin.RouterGroup, ts portssvc.APITokenSvc) {
	h := &apiTokenHandler{tokenService: ts}

	tokens := rg.Group("/api-tokens")
	{
		tokens.POST("", h.createToken)
		tokens.GET("", h.listTokens)
		tokens.DELETE("/:token_id", h.revokeToken)
	}
}

// createToken godoc
// @Summary Create an API token
// @Description Creates a new API token. The plaintext token is returned only
// @Description once; store it securely.
// @Tags api-tokens
// @Accept json
// @Produce json
// @Param token body dto.CreateAPITokenRequest true "Token details"
// @Success 201 {object} dto.CreateAPITokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api-tokens [post]
func (h *apiTokenHandler) createToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateAPITokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	var expiresIn *time.Duration
	if req.ExpiresInDays != nil {
		d := time.Duration(*req.ExpiresInDays) * 24 * time.Hour
		expiresIn = &d
	}

	plaintext, token, err := h.tokenService.CreateToken(c.Request.Context(), userID, req.Name, expiresIn)
	if err != nil {
		logger.Warn("Failed to create API token", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateAPITokenResponse{
		Token:    plaintext,
		APIToken: dto.ToAPITokenResponse(token),
	})
}

// listTokens godoc
// @Summary List API tokens for the current user
// @Tags api-tokens
// @Produce json
// @Success 200 {object} dto.ListAPITokensResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api-tokens [get]
func (h *apiTokenHandler) listTokens(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tokens, err := h.tokenService.ListTokens(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAPITokensResponse(tokens))
}

// revokeToken godoc
// @Summary Revoke an API token
// @Tags api-tokens
// @Produce json
// @Param token_id path string true "Token ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api-tokens/{token_id} [delete]
func (h *apiTokenHandler) revokeToken(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.tokenService.RevokeToken(c.Request.Context(), userID, c.Param("token_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
