package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/dto"
	"github.com/oluto/oluto-backend/internal/middleware"
)

type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

// registerContactRoutes sets up the contact routes under a business.
func registerContactRoutes(rg *gin.RouterGroup, cs portssvc.ContactSvcFacade) {
	h := &contactHandler{contactService: cs}

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:contact_id", h.getContact)
		contacts.PUT("/:contact_id", h.updateContact)
		contacts.DELETE("/:contact_id", h.deactivateContact)
	}
}

// createContact godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param contact body dto.CreateContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), c.Param("business_id"), req, userID)
	if err != nil {
		logger.Warn("Failed to create contact", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

// listContacts godoc
// @Summary List contacts for a business
// @Tags contacts
// @Produce json
// @Param business_id path string true "Business ID"
// @Param kind query string false "Filter by kind (CUSTOMER, VENDOR, BOTH)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListContactsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListContactsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), c.Param("business_id"), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListContactsResponse(contacts))
}

// getContact godoc
// @Summary Get a contact by ID
// @Tags contacts
// @Produce json
// @Param business_id path string true "Business ID"
// @Param contact_id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/contacts/{contact_id} [get]
func (h *contactHandler) getContact(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contact, err := h.contactService.GetContactByID(c.Request.Context(), c.Param("business_id"), c.Param("contact_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// updateContact godoc
// @Summary Update a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param contact_id path string true "Contact ID"
// @Param contact body dto.UpdateContactRequest true "Fields to update"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/contacts/{contact_id} [put]
func (h *contactHandler) updateContact(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + bindingErrorMessage(err)})
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), c.Param("business_id"), c.Param("contact_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// deactivateContact godoc
// @Summary Deactivate a contact
// @Description Contacts referenced by documents are deactivated, never deleted.
// @Tags contacts
// @Produce json
// @Param business_id path string true "Business ID"
// @Param contact_id path string true "Contact ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/contacts/{contact_id} [delete]
func (h *contactHandler) deactivateContact(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.contactService.DeactivateContact(c.Request.Context(), c.Param("business_id"), c.Param("contact_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
