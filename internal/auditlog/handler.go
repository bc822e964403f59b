package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// List godoc
// @Summary List recent audit log entries
// @Tags auditlogs
// @Produce json
// @Param action query string false "filter by action"
// @Param status query string false "success or failure"
// @Param limit query int false "max entries (default 50)"
// @Router /admin/auditlogs [get]
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.service.List(c.Request.Context(), Filter{
		Action: c.Query("action"),
		Status: c.Query("status"),
		Limit:  limit,
	})
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"success": false, "message": apperr.MessageOf(err)})
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "logs": entries})
}
