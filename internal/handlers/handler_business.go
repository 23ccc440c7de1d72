package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oluto/oluto-backend/internal/core/domain"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/dto"
	"github.com/oluto/oluto-backend/internal/middleware"
)

type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

func newBusinessHandler(bs portssvc.BusinessSvcFacade) *businessHandler {
	return &businessHandler{businessService: bs}
}

// createBusiness godoc
// @Summary Create a business
// @Description Creates a new business; the creator becomes its admin.
// @Tags businesses
// @Accept json
// @Produce json
// @Param business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} dto.BusinessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), req.Name, req.LegalName, req.Description, userID)
	if err != nil {
		logger.Warn("Failed to create business", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBusinessResponse(business))
}

// listUserBusinesses godoc
// @Summary List businesses for the current user
// @Tags businesses
// @Produce json
// @Param includeDisabled query bool false "Include deactivated businesses"
// @Success 200 {object} dto.ListBusinessesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses [get]
func (h *businessHandler) listUserBusinesses(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	includeDisabled := c.Query("includeDisabled") == "true"

	businesses, err := h.businessService.ListUserBusinesses(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListBusinessesResponse(businesses))
}

// getBusiness godoc
// @Summary Get a business by ID
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id} [get]
func (h *businessHandler) getBusiness(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	businessID := c.Param("business_id")

	// Visibility follows membership; non-members get a not found.
	if err := h.businessService.AuthorizeUserAction(c.Request.Context(), userID, businessID, domain.RoleReadOnly); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
		return
	}

	business, err := h.businessService.FindBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// activateBusiness godoc
// @Summary Activate a business
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/activate [post]
func (h *businessHandler) activateBusiness(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.businessService.ActivateBusiness(c.Request.Context(), c.Param("business_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// deactivateBusiness godoc
// @Summary Deactivate a business
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/deactivate [post]
func (h *businessHandler) deactivateBusiness(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.businessService.DeactivateBusiness(c.Request.Context(), c.Param("business_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listBusinessUsers godoc
// @Summary List members of a business
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {array} dto.UserBusinessResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/users [get]
func (h *businessHandler) listBusinessUsers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.businessService.ListBusinessUsers(c.Request.Context(), c.Param("business_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserBusinessResponse(members))
}

// addUserToBusiness godoc
// @Summary Add a user to a business
// @Tags businesses
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param membership body dto.AddUserToBusinessRequest true "User and role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/users [post]
func (h *businessHandler) addUserToBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AddUserToBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	if err := h.businessService.AddUserToBusiness(c.Request.Context(), userID, req.UserID, c.Param("business_id"), req.Role); err != nil {
		logger.Warn("Failed to add user to business", slog.String("error", err.Error()), slog.String("target_user_id", req.UserID))
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// updateUserBusinessRole godoc
// @Summary Update a member's role
// @Tags businesses
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param user_id path string true "User ID"
// @Param role body dto.UpdateUserBusinessRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/users/{user_id}/role [put]
func (h *businessHandler) updateUserBusinessRole(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateUserBusinessRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	if err := h.businessService.UpdateUserBusinessRole(c.Request.Context(), userID, c.Param("user_id"), c.Param("business_id"), req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// removeUserFromBusiness godoc
// @Summary Remove a user from a business
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/users/{user_id} [delete]
func (h *businessHandler) removeUserFromBusiness(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.businessService.RemoveUserFromBusiness(c.Request.Context(), userID, c.Param("user_id"), c.Param("business_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
