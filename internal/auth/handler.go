package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// Login godoc
// @Summary Password login, returns a custom sign-in token
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}

	result, err := h.service.LoginWithPassword(c.Request.Context(), in)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"success": false, "message": apperr.MessageOf(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customToken": result.CustomToken, "user": result.User})
}
