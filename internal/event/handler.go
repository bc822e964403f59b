package event

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
	"github.com/iedc-carmel/club-management-backend/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"success": false, "message": apperr.MessageOf(err)})
}

// Create godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Router /admin/events [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Wrap(apperr.Validation, "invalid input: "+err.Error(), err))
		return
	}

	principal := middleware.GetPrincipal(c)
	id, err := h.service.CreateEvent(c.Request.Context(), principal.UID, &req, middleware.GetIPFromContext(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "eventId": id})
}

// ListAdmin godoc
// @Summary List all events, newest first
// @Tags events
// @Produce json
// @Router /admin/events [get]
func (h *Handler) ListAdmin(c *gin.Context) {
	events, err := h.service.ListAdmin(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

// Get godoc
// @Summary Get one event
// @Tags events
// @Produce json
// @Router /admin/events/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	e, err := h.service.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}

// Update godoc
// @Summary Update event fields
// @Tags events
// @Accept json
// @Router /admin/events/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Wrap(apperr.Validation, "invalid input: "+err.Error(), err))
		return
	}

	principal := middleware.GetPrincipal(c)
	if err := h.service.UpdateEvent(c.Request.Context(), principal.UID, c.Param("id"), &req, middleware.GetIPFromContext(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "event updated"})
}

// Delete godoc
// @Summary Delete an event (registrations are not cascaded)
// @Tags events
// @Router /admin/events/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if err := h.service.DeleteEvent(c.Request.Context(), principal.UID, c.Param("id"), middleware.GetIPFromContext(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "event deleted"})
}

// ListPublic godoc
// @Summary List upcoming events
// @Tags events
// @Produce json
// @Router /events/public [get]
func (h *Handler) ListPublic(c *gin.Context) {
	events, err := h.service.ListUpcoming(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

// SubmitRegistration godoc
// @Summary Register for an event (auth optional)
// @Tags registrations
// @Accept json
// @Produce json
// @Router /events/{id}/register [post]
func (h *Handler) SubmitRegistration(c *gin.Context) {
	var req SubmitRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Wrap(apperr.Validation, "invalid input: "+err.Error(), err))
		return
	}

	// An invalid or expired token degrades to anonymous here.
	callerUID := ""
	if principal := middleware.GetPrincipal(c); principal != nil {
		callerUID = principal.UID
	}

	reg, err := h.service.SubmitRegistration(c.Request.Context(), c.Param("id"), callerUID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "registrationId": reg.ID, "status": reg.Status})
}

// ListRegistrations godoc
// @Summary List registrations for an event
// @Tags registrations
// @Produce json
// @Param status query string false "pending, verified or rejected"
// @Router /admin/events/{id}/registrations [get]
func (h *Handler) ListRegistrations(c *gin.Context) {
	regs, err := h.service.ListRegistrations(c.Request.Context(), c.Param("id"), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	if regs == nil {
		regs = []Registration{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "registrations": regs})
}

// SetRegistrationStatus godoc
// @Summary Verify or reject a pending registration
// @Tags registrations
// @Accept json
// @Router /admin/events/{id}/registrations/{rid} [post]
func (h *Handler) SetRegistrationStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Wrap(apperr.Validation, "invalid input: "+err.Error(), err))
		return
	}

	principal := middleware.GetPrincipal(c)
	err := h.service.SetRegistrationStatus(c.Request.Context(), principal.UID, c.Param("id"), c.Param("rid"), req.Status, middleware.GetIPFromContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "registration " + req.Status})
}

// DeleteRegistration godoc
// @Summary Delete a registration and decrement the event counter
// @Tags registrations
// @Router /admin/events/{id}/registrations/{rid} [delete]
func (h *Handler) DeleteRegistration(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	err := h.service.DeleteRegistration(c.Request.Context(), principal.UID, c.Param("id"), c.Param("rid"), middleware.GetIPFromContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "registration deleted"})
}
