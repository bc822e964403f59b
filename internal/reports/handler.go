package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
	"github.com/iedc-carmel/club-management-backend/internal/event"
)

// Handler serves registration exports for admins.
type Handler struct {
	events   *event.Service
	exporter Exporter
}

func NewHandler(events *event.Service, exporter Exporter) *Handler {
	return &Handler{events: events, exporter: exporter}
}

func fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"success": false, "message": apperr.MessageOf(err)})
}

// ExportRegistrations godoc
// @Summary Download an event's registration list
// @Produce octet-stream
// @Param id path string true "Event ID"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Param status query string false "Filter by registration status"
// @Router /admin/events/{id}/registrations/export [get]
func (h *Handler) ExportRegistrations(c *gin.Context) {
	eventID := c.Param("id")

	ev, err := h.events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		fail(c, err)
		return
	}

	regs, err := h.events.ListRegistrations(c.Request.Context(), eventID, c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}

	data, filename, contentType, err := h.exporter.ExportRegistrations(c.Query("format"), ev, regs)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
